package repository

import (
	"context"

	"SignalFuse/internal/domain/models"
)

// VolumeFeed streams live market volume and serves the current 24h USD
// volume per symbol. Fills ExecutionConfig.MarketVolume24h when a caller
// omits it.
type VolumeFeed interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Run(ctx context.Context) <-chan error
	Volume24h(symbol string) (float64, bool)
	Close() error
	IsConnected() bool
}

// Publisher emits decision events for downstream dashboard consumers.
type Publisher interface {
	PublishDecision(ctx context.Context, ev *models.DecisionEvent) error
	Close() error
}

// DecisionStore persists fused decisions and execution estimates for audit
// and the dashboard read path.
type DecisionStore interface {
	Init(ctx context.Context) error
	StoreConsensus(ctx context.Context, res *models.ConsensusResult) error
	StoreExecution(ctx context.Context, res *models.ExecutionResult) error
	LatestConsensus(ctx context.Context, symbol string) (*models.ConsensusResult, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters for both engines.
type Metrics interface {
	RecordDecision(symbol string, decision string)
	RecordAgreement(symbol string, score int)
	RecordEstimate(symbol string, strategy string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
