package usecase

import (
	"context"
	"testing"

	"SignalFuse/internal/domain/models"
	"SignalFuse/internal/services/execution"
	"SignalFuse/internal/services/fusion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopMetrics struct{}

func (noopMetrics) RecordDecision(string, string) {}
func (noopMetrics) RecordAgreement(string, int)   {}
func (noopMetrics) RecordEstimate(string, string) {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordLatency(string, float64) {}

type staticVolumes map[string]float64

func (staticVolumes) Connect(context.Context) error        { return nil }
func (staticVolumes) Subscribe(context.Context) error      { return nil }
func (staticVolumes) Run(context.Context) <-chan error     { return nil }
func (staticVolumes) Close() error                         { return nil }
func (staticVolumes) IsConnected() bool                    { return true }
func (v staticVolumes) Volume24h(symbol string) (float64, bool) {
	x, ok := v[symbol]
	return x, ok
}

func newTestService(volumes staticVolumes) *DecisionService {
	return NewDecisionService(
		fusion.NewEngine(),
		execution.NewEstimator(),
		nil, nil, volumes, nil,
		noopMetrics{}, nil,
	)
}

func opinion(dir string, conf float64) models.OpinionPayload {
	return models.OpinionPayload{Direction: dir, Confidence: conf}
}

func TestFuseConsensusBatchPreservesOrderAndIsolatesFailures(t *testing.T) {
	s := newTestService(nil)

	items := []models.ConsensusRequest{
		{Symbol: "BTCUSDT", Scanner: opinion("BUY", 0.8), ML: opinion("BUY", 0.8), RL: opinion("BUY", 0.8)},
		{Symbol: "ETHUSDT", Scanner: opinion("BUY", 1.5), ML: opinion("BUY", 0.8), RL: opinion("BUY", 0.8)}, // bad confidence
		{Symbol: "SOLUSDT", Scanner: opinion("SELL", 0.7), ML: opinion("SELL", 0.6), RL: opinion("HOLD", 0.5)},
	}

	out := s.FuseConsensusBatch(context.Background(), items)
	require.Len(t, out, 3)

	for i, o := range out {
		assert.Equal(t, i, o.Index)
	}

	require.NotNil(t, out[0].Result)
	assert.Equal(t, "BTCUSDT", out[0].Result.Symbol)
	assert.Equal(t, models.DirectionBuy, out[0].Result.FinalDecision)
	assert.Empty(t, out[0].Error)

	assert.Nil(t, out[1].Result)
	assert.NotEmpty(t, out[1].Error)

	require.NotNil(t, out[2].Result)
	assert.Equal(t, "SOLUSDT", out[2].Result.Symbol)
	assert.Empty(t, out[2].Error)
}

func TestEstimateExecutionBatchPreservesOrder(t *testing.T) {
	s := newTestService(nil)

	items := []models.ExecutionRequest{
		{Symbol: "BTCUSDT", EntryPrice: 100, PositionSize: 0.01, MarketVolume24h: 1_000_000_000},
		{Symbol: "ETHUSDT", EntryPrice: -5, PositionSize: 0.01, MarketVolume24h: 1_000_000_000}, // bad price
		{Symbol: "SOLUSDT", EntryPrice: 150, PositionSize: 0.02, MarketVolume24h: 500_000_000},
	}

	out := s.EstimateExecutionBatch(context.Background(), items)
	require.Len(t, out, 3)

	require.NotNil(t, out[0].Result)
	assert.Equal(t, 0, out[0].Index)
	assert.Empty(t, out[0].Error)

	assert.Nil(t, out[1].Result)
	assert.Equal(t, 1, out[1].Index)
	assert.NotEmpty(t, out[1].Error)

	require.NotNil(t, out[2].Result)
	assert.Equal(t, 2, out[2].Index)
}

func TestEstimateExecutionFillsVolumeFromFeed(t *testing.T) {
	s := newTestService(staticVolumes{"BTCUSDT": 2_000_000_000})

	res, err := s.EstimateExecution(context.Background(), models.ExecutionRequest{
		Symbol:       "BTCUSDT",
		EntryPrice:   50_000,
		PositionSize: 0.01,
	})
	require.NoError(t, err)
	// tiny order against the fed 2B volume lands on the lowest slippage tier
	assert.Equal(t, 0.05, res.SlippagePct)
}

func TestEstimateExecutionRejectsMissingVolume(t *testing.T) {
	s := newTestService(staticVolumes{})

	_, err := s.EstimateExecution(context.Background(), models.ExecutionRequest{
		Symbol:       "UNLISTED",
		EntryPrice:   10,
		PositionSize: 0.01,
	})
	require.Error(t, err)

	var inv *models.InvalidInputError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "market_volume_24h", inv.Field)
}

func TestFuseConsensusStampsSymbolAndTimestamp(t *testing.T) {
	s := newTestService(nil)

	res, err := s.FuseConsensus(context.Background(), models.ConsensusRequest{
		Symbol:  "BTCUSDT",
		Scanner: opinion("HOLD", 0.5),
		ML:      opinion("HOLD", 0.5),
		RL:      opinion("HOLD", 0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", res.Symbol)
	assert.False(t, res.Timestamp.IsZero())
}
