package usecase

import (
	"context"
	"sync"

	"SignalFuse/internal/domain/models"
)

// Batch fusion/estimation: every item is computed independently and its
// outcome settled in place, so one invalid item never aborts its
// siblings. Output order matches input order 1:1.

func (s *DecisionService) FuseConsensusBatch(ctx context.Context, items []models.ConsensusRequest) []models.ConsensusOutcome {
	out := make([]models.ConsensusOutcome, len(items))
	var wg sync.WaitGroup

	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.FuseConsensus(ctx, items[i])
			out[i] = models.ConsensusOutcome{Index: i, Result: res}
			if err != nil {
				out[i].Error = err.Error()
			}
		}(i)
	}

	wg.Wait()
	return out
}

func (s *DecisionService) EstimateExecutionBatch(ctx context.Context, items []models.ExecutionRequest) []models.ExecutionOutcome {
	out := make([]models.ExecutionOutcome, len(items))
	var wg sync.WaitGroup

	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.EstimateExecution(ctx, items[i])
			out[i] = models.ExecutionOutcome{Index: i, Result: res}
			if err != nil {
				out[i].Error = err.Error()
			}
		}(i)
	}

	wg.Wait()
	return out
}
