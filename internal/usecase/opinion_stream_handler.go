package usecase

import (
	"context"
	"encoding/json"
	"time"

	"SignalFuse/internal/domain/models"
	pkgkafka "SignalFuse/pkg/kafka"
)

// OpinionStreamHandler consumes OpinionSet messages published by the
// upstream producers (scanner, ML, RL) and runs them through the same
// fusion path as the HTTP API. Per-message failures are returned to the
// consumer for its retry/DLQ handling.
type OpinionStreamHandler struct {
	topic   string
	service *DecisionService
}

func NewOpinionStreamHandler(topic string, service *DecisionService) *OpinionStreamHandler {
	return &OpinionStreamHandler{topic: topic, service: service}
}

func (h *OpinionStreamHandler) Topic() string { return h.topic }

func (h *OpinionStreamHandler) Handle(ctx context.Context, b []byte) error {
	var set models.OpinionSet
	if err := json.Unmarshal(b, &set); err != nil {
		return err
	}
	if set.Timestamp > 1e11 { // ms
		set.Timestamp = set.Timestamp / 1000
	}

	_, err := h.service.FuseConsensus(ctx, models.ConsensusRequest{
		Symbol:      set.Symbol,
		Scanner:     set.Scanner,
		ML:          set.ML,
		RL:          set.RL,
		Performance: set.Performance,
	})
	if err != nil {
		return err
	}

	// E2E latency from producer event time to fused decision (approx)
	if set.Timestamp > 0 {
		h.service.metrics.RecordLatency("fuse_e2e_seconds", time.Since(time.Unix(set.Timestamp, 0)).Seconds())
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*OpinionStreamHandler)(nil)
