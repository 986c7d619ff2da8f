package fusion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalFuse/internal/domain/models"
)

func opinion(src models.OpinionSource, dir models.Direction, conf float64) models.SourceOpinion {
	return models.SourceOpinion{Source: src, Direction: dir, Confidence: conf}
}

func TestResolveUnanimousBuy(t *testing.T) {
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.79),
		opinion(models.SourceML, models.DirectionBuy, 0.87),
		opinion(models.SourceRL, models.DirectionBuy, 0.70),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, models.DirectionBuy, res.FinalDecision)
	// avg 0.7867 × 100, boosted ×1.1 (scanner and ml both ≥0.70, same direction)
	assert.Equal(t, 87, res.AgreementScore)
	// unanimous BUY: vote and weighted confidence coincide
	assert.InDelta(t, 0.7955, res.WeightedVote, 1e-9)
	assert.InDelta(t, 0.7955, res.ConfidenceScore, 1e-9)
	assert.Empty(t, res.ConflictAnalysis)
	assert.NotEmpty(t, res.SolidityReasons)
}

func TestResolveSplitVoteHolds(t *testing.T) {
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.8),
		opinion(models.SourceML, models.DirectionSell, 0.8),
		opinion(models.SourceRL, models.DirectionHold, 0.5),
		nil,
	)
	require.NoError(t, err)

	// (0.8·0.40 − 0.8·0.35 + 0·0.25) is a 0.04 vote: inside the HOLD band
	assert.Equal(t, models.DirectionHold, res.FinalDecision)
	assert.InDelta(t, 0.04, res.WeightedVote, 1e-9)
	assert.Len(t, res.ConflictAnalysis, 3)
}

func TestDecideBoundaryIsExclusive(t *testing.T) {
	cases := []struct {
		vote float64
		want models.Direction
	}{
		{0.30, models.DirectionHold},
		{0.31, models.DirectionBuy},
		{-0.30, models.DirectionHold},
		{-0.31, models.DirectionSell},
		{0, models.DirectionHold},
		{1, models.DirectionBuy},
		{-1, models.DirectionSell},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, decide(tc.vote), "vote %v", tc.vote)
	}
}

func TestResolvePerformanceWeights(t *testing.T) {
	perf := &models.RecentPerformance{Scanner: 2, ML: 1, RL: 1}
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.8),
		opinion(models.SourceML, models.DirectionBuy, 0.8),
		opinion(models.SourceRL, models.DirectionSell, 0.8),
		perf,
	)
	require.NoError(t, err)

	assert.InDelta(t, 0.50, res.SourceBreakdown[models.SourceScanner].Weight, 1e-9)
	assert.InDelta(t, 0.25, res.SourceBreakdown[models.SourceML].Weight, 1e-9)
	assert.InDelta(t, 0.25, res.SourceBreakdown[models.SourceRL].Weight, 1e-9)
	// 0.8·0.5 + 0.8·0.25 − 0.8·0.25
	assert.InDelta(t, 0.4, res.WeightedVote, 1e-9)
	assert.Equal(t, models.DirectionBuy, res.FinalDecision)
	assert.InDelta(t, -0.25, res.SourceBreakdown[models.SourceRL].Contribution, 1e-9)
}

func TestResolveLowConfidenceUnanimityHolds(t *testing.T) {
	// All three agree on BUY but with little conviction: the vote is the
	// shared confidence itself (0.2), well inside the HOLD band.
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.2),
		opinion(models.SourceML, models.DirectionBuy, 0.2),
		opinion(models.SourceRL, models.DirectionBuy, 0.2),
		nil,
	)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, res.WeightedVote, 1e-9)
	assert.Equal(t, models.DirectionHold, res.FinalDecision)
	assert.Empty(t, res.ConflictAnalysis)
}

func TestResolveZeroPerformanceFallsBackToDefaults(t *testing.T) {
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.5),
		opinion(models.SourceML, models.DirectionHold, 0.5),
		opinion(models.SourceRL, models.DirectionHold, 0.5),
		&models.RecentPerformance{},
	)
	require.NoError(t, err)
	assert.InDelta(t, DefaultScannerWeight, res.SourceBreakdown[models.SourceScanner].Weight, 1e-9)
}

func TestResolveAgreementUnanimousWithoutBoost(t *testing.T) {
	// Confidences below the 0.70 boost gate: agreement is a plain
	// round(100 × avgConfidence).
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionSell, 0.5),
		opinion(models.SourceML, models.DirectionSell, 0.5),
		opinion(models.SourceRL, models.DirectionSell, 0.5),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 50, res.AgreementScore)
}

func TestResolveAgreementClampedAt100(t *testing.T) {
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 1),
		opinion(models.SourceML, models.DirectionBuy, 1),
		opinion(models.SourceRL, models.DirectionBuy, 1),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 100, res.AgreementScore)
	assert.InDelta(t, 1.0, res.ConfidenceScore, 1e-9)
}

func TestResolveScoreRanges(t *testing.T) {
	dirs := []models.Direction{models.DirectionBuy, models.DirectionSell, models.DirectionHold}
	confs := []float64{0, 0.33, 0.5, 0.69, 0.7, 0.87, 1}
	for _, d1 := range dirs {
		for _, d2 := range dirs {
			for _, c := range confs {
				res, err := Resolve(
					opinion(models.SourceScanner, d1, c),
					opinion(models.SourceML, d2, 1-c),
					opinion(models.SourceRL, models.DirectionHold, c),
					nil,
				)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, res.AgreementScore, 0)
				assert.LessOrEqual(t, res.AgreementScore, 100)
				assert.GreaterOrEqual(t, res.ConfidenceScore, 0.0)
				assert.LessOrEqual(t, res.ConfidenceScore, 1.0)
			}
		}
	}
}

func TestResolveLowAgreementWarning(t *testing.T) {
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.4),
		opinion(models.SourceML, models.DirectionSell, 0.4),
		opinion(models.SourceRL, models.DirectionHold, 0.4),
		nil,
	)
	require.NoError(t, err)
	// all three directions differ: 30 × 0.4 = 12
	assert.Equal(t, 12, res.AgreementScore)
	assert.Contains(t, res.SolidityReasons[len(res.SolidityReasons)-1], "warning")
}

func TestResolveInvalidInput(t *testing.T) {
	valid := opinion(models.SourceML, models.DirectionHold, 0.5)

	cases := []struct {
		name    string
		scanner models.SourceOpinion
		perf    *models.RecentPerformance
	}{
		{"confidence above one", opinion(models.SourceScanner, models.DirectionBuy, 1.2), nil},
		{"negative confidence", opinion(models.SourceScanner, models.DirectionBuy, -0.1), nil},
		{"unknown direction", opinion(models.SourceScanner, models.Direction("LONG"), 0.5), nil},
		{"negative performance", opinion(models.SourceScanner, models.DirectionBuy, 0.5), &models.RecentPerformance{Scanner: -1, ML: 2, RL: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.scanner, valid, valid, tc.perf)
			require.Error(t, err)
			var inv *models.InvalidInputError
			assert.True(t, errors.As(err, &inv))
		})
	}
}

func TestResolveWeightsSumToOne(t *testing.T) {
	perf := &models.RecentPerformance{Scanner: 7, ML: 13, RL: 29}
	res, err := Resolve(
		opinion(models.SourceScanner, models.DirectionBuy, 0.6),
		opinion(models.SourceML, models.DirectionSell, 0.7),
		opinion(models.SourceRL, models.DirectionHold, 0.8),
		perf,
	)
	require.NoError(t, err)

	var sum float64
	for _, b := range res.SourceBreakdown {
		sum += b.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
