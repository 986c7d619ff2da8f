package usecase

import (
	"context"
	"time"

	"SignalFuse/internal/domain/models"
	domrepo "SignalFuse/internal/domain/repository"
	domsvc "SignalFuse/internal/domain/service"
	icache "SignalFuse/internal/service/cache"
	applogger "SignalFuse/pkg/logger"
)

// DecisionService is the application-level facade over the two pure
// engines. It stamps results, records metrics, and writes audit rows
// and cache entries behind the synchronous response: infra failures are
// logged and counted, never returned to the caller of a successful
// computation.
type DecisionService struct {
	resolver  domsvc.ConsensusResolver
	optimizer domsvc.ExecutionOptimizer
	store     domrepo.DecisionStore
	publisher domrepo.Publisher
	volume    domrepo.VolumeFeed
	cache     icache.BytesCache
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	cacheTTL  time.Duration
}

func NewDecisionService(
	resolver domsvc.ConsensusResolver,
	optimizer domsvc.ExecutionOptimizer,
	store domrepo.DecisionStore,
	publisher domrepo.Publisher,
	volume domrepo.VolumeFeed,
	cache icache.BytesCache,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *DecisionService {
	return &DecisionService{
		resolver:  resolver,
		optimizer: optimizer,
		store:     store,
		publisher: publisher,
		volume:    volume,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		cacheTTL:  30 * time.Second,
	}
}

func toOpinion(src models.OpinionSource, p models.OpinionPayload) models.SourceOpinion {
	return models.SourceOpinion{
		Source:     src,
		Direction:  models.Direction(p.Direction),
		Confidence: p.Confidence,
		Reasoning:  p.Reasoning,
	}
}

func toPerformance(p *models.PerformancePayload) *models.RecentPerformance {
	if p == nil {
		return nil
	}
	return &models.RecentPerformance{Scanner: p.Scanner, ML: p.ML, RL: p.RL}
}

// FuseConsensus fuses one round of opinions and persists the outcome.
func (s *DecisionService) FuseConsensus(ctx context.Context, req models.ConsensusRequest) (*models.ConsensusResult, error) {
	start := time.Now()
	res, err := s.resolver.Resolve(
		toOpinion(models.SourceScanner, req.Scanner),
		toOpinion(models.SourceML, req.ML),
		toOpinion(models.SourceRL, req.RL),
		toPerformance(req.Performance),
	)
	s.metrics.RecordLatency("consensus_resolve_seconds", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError("consensus_invalid_input")
		return nil, err
	}

	res.Symbol = req.Symbol
	res.Timestamp = time.Now()

	s.metrics.RecordDecision(req.Symbol, string(res.FinalDecision))
	s.metrics.RecordAgreement(req.Symbol, res.AgreementScore)
	s.persistConsensus(ctx, &res)
	return &res, nil
}

// persistConsensus is write-behind: audit row, cache entry, decision event.
func (s *DecisionService) persistConsensus(ctx context.Context, res *models.ConsensusResult) {
	if s.store != nil {
		if err := s.store.StoreConsensus(ctx, res); err != nil {
			s.metrics.RecordError("consensus_store")
			s.logger.Error("consensus store failed", applogger.String("symbol", res.Symbol), applogger.Error(err))
		}
	}
	if s.cache != nil && res.Symbol != "" {
		if err := icache.SetJSON(s.cache, latestDecisionKey(res.Symbol), res, s.cacheTTL); err != nil {
			s.logger.Warn("decision cache set failed", applogger.Error(err))
		}
	}
	if s.publisher != nil {
		ev := &models.DecisionEvent{
			Symbol:          res.Symbol,
			Decision:        res.FinalDecision,
			AgreementScore:  res.AgreementScore,
			ConfidenceScore: res.ConfidenceScore,
			Conflicts:       len(res.ConflictAnalysis),
			Timestamp:       res.Timestamp.Unix(),
		}
		if err := s.publisher.PublishDecision(ctx, ev); err != nil {
			s.metrics.RecordError("decision_publish")
			s.logger.Error("decision publish failed", applogger.String("symbol", res.Symbol), applogger.Error(err))
		}
	}
}

// EstimateExecution costs out one proposed trade. A zero market volume in
// the request is filled from the live volume feed when available; without
// a feed entry the engine rejects it as invalid input.
func (s *DecisionService) EstimateExecution(ctx context.Context, req models.ExecutionRequest) (*models.ExecutionResult, error) {
	cfg := models.ExecutionConfig{
		Symbol:          req.Symbol,
		EntryPrice:      req.EntryPrice,
		PositionSize:    req.PositionSize,
		MarketVolume24h: req.MarketVolume24h,
		OrderType:       models.OrderType(req.OrderType),
		ExchangeFeePct:  req.ExchangeFeePct,
	}
	if cfg.MarketVolume24h == 0 && s.volume != nil {
		if v, ok := s.volume.Volume24h(req.Symbol); ok {
			cfg.MarketVolume24h = v
		}
	}

	start := time.Now()
	res, err := s.optimizer.Optimize(cfg)
	s.metrics.RecordLatency("execution_optimize_seconds", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError("execution_invalid_input")
		return nil, err
	}

	res.Timestamp = time.Now()
	s.metrics.RecordEstimate(req.Symbol, string(res.RecommendedStrategy))
	if s.store != nil {
		if err := s.store.StoreExecution(ctx, &res); err != nil {
			s.metrics.RecordError("execution_store")
			s.logger.Error("execution store failed", applogger.String("symbol", req.Symbol), applogger.Error(err))
		}
	}
	return &res, nil
}

// LatestDecision serves the dashboard read path: cache first, then store.
func (s *DecisionService) LatestDecision(ctx context.Context, symbol string) (*models.ConsensusResult, error) {
	if s.cache != nil {
		var res models.ConsensusResult
		ok, err := icache.GetJSON(s.cache, latestDecisionKey(symbol), &res)
		if err != nil {
			s.logger.Warn("decision cache get failed", applogger.Error(err))
		}
		if ok {
			return &res, nil
		}
	}
	if s.store == nil {
		return nil, nil
	}
	return s.store.LatestConsensus(ctx, symbol)
}

func latestDecisionKey(symbol string) string { return "decision:latest:" + symbol }
