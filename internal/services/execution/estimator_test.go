package execution

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalFuse/internal/domain/models"
)

func TestOptimizeTinyFundamentalOrder(t *testing.T) {
	res, err := Optimize(models.ExecutionConfig{
		Symbol:          "SOLUSDT",
		EntryPrice:      100,
		PositionSize:    0.01,
		MarketVolume24h: 500_000_000,
	})
	require.NoError(t, err)

	// order is ~0.00002% of 24h volume: flat 0.05% tier, ×1.0 scale
	assert.Equal(t, models.CategoryFundamental, res.Category)
	assert.InDelta(t, 0.05, res.SlippagePct, 1e-9)
	assert.Equal(t, models.OrderAllAtOnce, res.RecommendedStrategy)
	assert.Nil(t, res.Pyramid)
	assert.InDelta(t, 0.1, res.FeePct, 1e-9) // default fee
	assert.Equal(t, "excellent conditions, low slippage", res.Recommendation)
}

func TestOptimizeMemeScalingKeepsStrategyUnderTrigger(t *testing.T) {
	res, err := Optimize(models.ExecutionConfig{
		Symbol:          "DOGEUSDT",
		EntryPrice:      100,
		PositionSize:    0.01,
		MarketVolume24h: 500_000_000,
	})
	require.NoError(t, err)

	// 0.05 × 1.5 = 0.075, displayed with 2dp rounding
	assert.InDelta(t, 0.08, res.SlippagePct, 1e-9)
	assert.Equal(t, models.OrderAllAtOnce, res.RecommendedStrategy)
}

func TestOptimizeMemeOverridesToPyramid5(t *testing.T) {
	res, err := Optimize(models.ExecutionConfig{
		Symbol:          "PEPEUSDT",
		EntryPrice:      0.00001,
		PositionSize:    1,
		MarketVolume24h: 100_000,
		OrderType:       models.OrderAllAtOnce,
	})
	require.NoError(t, err)

	// $10,000 order over $100k volume: 10% of book, deep slippage
	assert.Equal(t, models.OrderAllAtOnce, res.RequestedStrategy)
	assert.Equal(t, models.OrderPyramid5, res.RecommendedStrategy)
	require.NotNil(t, res.Pyramid)
	assert.Equal(t, 5, res.Pyramid.Tranches)
	assert.Len(t, res.Pyramid.Orders, 5)
}

func TestOptimizeFundamentalOverridesToPyramid3(t *testing.T) {
	res, err := Optimize(models.ExecutionConfig{
		Symbol:          "SOLUSDT",
		EntryPrice:      150,
		PositionSize:    1,
		MarketVolume24h: 100_000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPyramid3, res.RecommendedStrategy)
	require.NotNil(t, res.Pyramid)
	assert.Equal(t, 3, res.Pyramid.Tranches)
}

func TestPyramidTrancheSizesSumToPosition(t *testing.T) {
	cases := []struct {
		name string
		size float64
		n    int
	}{
		{"three tranches", 0.3, 3},
		{"five tranches", 0.05, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pyr, _ := buildPyramid(100, tc.size, 1.2, tc.n)
			var sum float64
			for _, o := range pyr.Orders {
				sum += o.Size
			}
			assert.InDelta(t, tc.size, sum, 1e-6)
		})
	}
}

func TestPyramidLaterTranchesAbsorbMoreSlippage(t *testing.T) {
	pyr, avg := buildPyramid(200, 0.3, 1.5, 3)

	for i := 1; i < len(pyr.Orders); i++ {
		assert.Greater(t, pyr.Orders[i].Slippage, pyr.Orders[i-1].Slippage)
		assert.Greater(t, pyr.Orders[i].Price, pyr.Orders[i-1].Price)
	}
	// averaging across tranches beats paying full slippage at once
	fullSlippagePrice := 200 * (1 + 1.5/100)
	assert.Less(t, avg, fullSlippagePrice)
	assert.Greater(t, avg, 200.0)
}

func TestOptimizeFinancialImpact(t *testing.T) {
	res, err := Optimize(models.ExecutionConfig{
		Symbol:          "BTCUSDT",
		EntryPrice:      100,
		PositionSize:    0.5,
		MarketVolume24h: 1_000_000_000,
		ExchangeFeePct:  0.1,
	})
	require.NoError(t, err)

	// capitalUsed = 100 × 0.5 = 50; slippage 0.05% → $0.03 after rounding
	assert.InDelta(t, 50*0.02, res.OriginalProfit, 1e-9) // fixed 2% target
	assert.InDelta(t, 0.03, res.SlippageImpact, 1e-9)
	assert.InDelta(t, 0.05, res.FeeImpact, 1e-9)
	// leakage = (0.025 + 0.05) / 1.0 × 100
	assert.InDelta(t, 7.5, res.ProfitLeakagePct, 1e-9)
	assert.InDelta(t, 0.93, res.AdjustedProfit, 1e-9)
}

func TestOptimizeRecommendationTiers(t *testing.T) {
	cases := []struct {
		name string
		cfg  models.ExecutionConfig
		want string
	}{
		{
			// slippage ~5.1% on a meme book: leakage far above 100%
			"avoid",
			models.ExecutionConfig{Symbol: "DOGEUSDT", EntryPrice: 1, PositionSize: 1, MarketVolume24h: 100_000},
			"costs exceed the profit target: avoid market entry, use limit orders",
		},
		{
			// slippage 1.4% + fee 0.1% → leakage 75%, pyramid already forced
			"pyramid",
			models.ExecutionConfig{Symbol: "SOLUSDT", EntryPrice: 1, PositionSize: 1, MarketVolume24h: 300_000},
			"high profit leakage: pyramid entry confirmed to reduce it",
		},
		{
			// slippage 0.125% + fee 0.2% → total 0.325% but leakage only 16.25%
			"monitor",
			models.ExecutionConfig{Symbol: "SOLUSDT", EntryPrice: 1, PositionSize: 0.025, MarketVolume24h: 100_000, ExchangeFeePct: 0.2},
			"strategy acceptable, monitor execution costs",
		},
		{
			"excellent",
			models.ExecutionConfig{Symbol: "BTCUSDT", EntryPrice: 100, PositionSize: 0.01, MarketVolume24h: 500_000_000},
			"excellent conditions, low slippage",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Optimize(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Recommendation)
		})
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	cfg := models.ExecutionConfig{
		Symbol:          "FETUSDT",
		EntryPrice:      2.34,
		PositionSize:    0.42,
		MarketVolume24h: 7_500_000,
		OrderType:       models.OrderPyramid3,
		ExchangeFeePct:  0.075,
	}
	a, err := Optimize(cfg)
	require.NoError(t, err)
	b, err := Optimize(cfg)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(a, b), "identical input must produce bit-identical output")
}

func TestOptimizeInvalidInput(t *testing.T) {
	valid := models.ExecutionConfig{
		Symbol:          "BTCUSDT",
		EntryPrice:      100,
		PositionSize:    0.1,
		MarketVolume24h: 1_000_000,
	}

	cases := []struct {
		name   string
		mutate func(*models.ExecutionConfig)
	}{
		{"zero entry price", func(c *models.ExecutionConfig) { c.EntryPrice = 0 }},
		{"negative entry price", func(c *models.ExecutionConfig) { c.EntryPrice = -5 }},
		{"zero position size", func(c *models.ExecutionConfig) { c.PositionSize = 0 }},
		{"oversized position", func(c *models.ExecutionConfig) { c.PositionSize = 1.01 }},
		{"zero volume", func(c *models.ExecutionConfig) { c.MarketVolume24h = 0 }},
		{"negative volume", func(c *models.ExecutionConfig) { c.MarketVolume24h = -1 }},
		{"unknown order type", func(c *models.ExecutionConfig) { c.OrderType = "TWAP" }},
		{"negative fee", func(c *models.ExecutionConfig) { c.ExchangeFeePct = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			_, err := Optimize(cfg)
			require.Error(t, err)
			var inv *models.InvalidInputError
			assert.True(t, errors.As(err, &inv))
		})
	}
}

func TestBaseSlippageTiers(t *testing.T) {
	cases := []struct {
		orderSizePct float64
		want         float64
	}{
		{0.05, 0.05},
		{0.0999, 0.05},
		{0.1, 0.1 + 0.1*0.1},
		{0.49, 0.1 + 0.49*0.1},
		{0.5, 0.2 + 0.5*0.2},
		{0.99, 0.2 + 0.99*0.2},
		{1.0, 0.4 + 1.0*0.3},
		{10, 0.4 + 10*0.3},
	}
	for _, tc := range cases {
		got := baseSlippage(tc.orderSizePct)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("baseSlippage(%v) = %v, want %v", tc.orderSizePct, got, tc.want)
		}
	}
}

func TestOptimizeSlippageNeverNegative(t *testing.T) {
	res, err := Optimize(models.ExecutionConfig{
		Symbol:          "UNKNOWNCOIN",
		EntryPrice:      0.01,
		PositionSize:    0.0001,
		MarketVolume24h: 1e12,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.SlippagePct, 0.0)
	assert.Equal(t, models.CategoryFundamental, res.Category) // unknown symbol fallback
}
