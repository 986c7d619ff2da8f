// Package execution translates a nominal trade (symbol, price, size) into
// a realistic expected fill: slippage against 24h liquidity, exchange
// fees, staged ("pyramid") entry, and the resulting profit leakage.
// Pure computation, no I/O.
package execution

import (
	"github.com/shopspring/decimal"

	"SignalFuse/internal/domain/models"
	domsvc "SignalFuse/internal/domain/service"
	"SignalFuse/internal/services/category"
)

const (
	// The model assumes a fixed notional base: position dollars are
	// positionSize × $10,000, independent of any account balance.
	notionalBase = 10000.0

	// DefaultFeePct applies when the caller leaves the fee unset.
	DefaultFeePct = 0.1

	// Above this slippage the requested entry strategy is overridden
	// with a pyramid.
	pyramidTrigger = 0.3

	// Fixed nominal profit target: 2% of capital used.
	targetProfitRate = 0.02
)

// Optimize estimates execution costs for the proposed trade and
// recommends an entry strategy.
func Optimize(cfg models.ExecutionConfig) (models.ExecutionResult, error) {
	if err := validate(&cfg); err != nil {
		return models.ExecutionResult{}, err
	}

	cat := category.ForSymbol(cfg.Symbol)

	positionDollars := cfg.PositionSize * notionalBase
	orderSizePct := positionDollars / cfg.MarketVolume24h * 100
	slippagePct := baseSlippage(orderSizePct) * category.SlippageScale(cat)

	strategy := cfg.OrderType
	if slippagePct > pyramidTrigger {
		if cat == models.CategoryMeme || cat == models.CategoryAI {
			strategy = models.OrderPyramid5
		} else {
			strategy = models.OrderPyramid3
		}
	}

	var pyramid *models.PyramidBreakdown
	realPrice := cfg.EntryPrice * (1 + slippagePct/100)
	if strategy != models.OrderAllAtOnce {
		pyramid, realPrice = buildPyramid(cfg.EntryPrice, cfg.PositionSize, slippagePct, strategy.Tranches())
	}

	capitalUsed := cfg.EntryPrice * cfg.PositionSize
	slippageImpact := capitalUsed * slippagePct / 100
	feeImpact := capitalUsed * cfg.ExchangeFeePct / 100
	targetProfit := capitalUsed * targetProfitRate
	totalCost := slippageImpact + feeImpact
	adjustedProfit := targetProfit - totalCost
	leakagePct := totalCost / targetProfit * 100
	totalCostPct := slippagePct + cfg.ExchangeFeePct

	res := models.ExecutionResult{
		Symbol:              cfg.Symbol,
		Category:            cat,
		SlippagePct:         round2(slippagePct),
		SlippageImpact:      round2(slippageImpact),
		FeePct:              round2(cfg.ExchangeFeePct),
		FeeImpact:           round2(feeImpact),
		TotalCostPct:        round2(totalCostPct),
		RequestedStrategy:   cfg.OrderType,
		RecommendedStrategy: strategy,
		Pyramid:             pyramid,
		NominalPrice:        round2(cfg.EntryPrice),
		RealPrice:           round2(realPrice),
		PriceDelta:          round2(realPrice - cfg.EntryPrice),
		OriginalProfit:      round2(targetProfit),
		AdjustedProfit:      round2(adjustedProfit),
		ProfitLeakagePct:    round2(leakagePct),
		Recommendation:      recommendation(leakagePct, totalCostPct, strategy),
	}
	return res, nil
}

func validate(cfg *models.ExecutionConfig) error {
	if cfg.EntryPrice <= 0 {
		return models.NewInvalidInput("entry_price", "must be positive, got %v", cfg.EntryPrice)
	}
	if cfg.PositionSize <= 0 || cfg.PositionSize > 1 {
		return models.NewInvalidInput("position_size", "must be within (0,1], got %v", cfg.PositionSize)
	}
	// Zero volume would divide the order size percentage by zero;
	// rejected instead of propagating an infinite slippage.
	if cfg.MarketVolume24h <= 0 {
		return models.NewInvalidInput("market_volume_24h", "must be positive, got %v", cfg.MarketVolume24h)
	}
	if cfg.OrderType == "" {
		cfg.OrderType = models.OrderAllAtOnce
	}
	if !cfg.OrderType.Valid() {
		return models.NewInvalidInput("order_type", "unknown order type %q", string(cfg.OrderType))
	}
	if cfg.ExchangeFeePct < 0 {
		return models.NewInvalidInput("exchange_fee_pct", "must be non-negative, got %v", cfg.ExchangeFeePct)
	}
	if cfg.ExchangeFeePct == 0 {
		cfg.ExchangeFeePct = DefaultFeePct
	}
	return nil
}

// baseSlippage is the tiered slippage curve over the order's share of
// 24h volume, in percent.
func baseSlippage(orderSizePct float64) float64 {
	switch {
	case orderSizePct < 0.1:
		return 0.05
	case orderSizePct < 0.5:
		return 0.1 + orderSizePct*0.1
	case orderSizePct < 1.0:
		return 0.2 + orderSizePct*0.2
	default:
		return 0.4 + orderSizePct*0.3
	}
}

// buildPyramid splits the position into n equal tranches. Tranche i
// (0-indexed) bears cumulative slippage (total/n)·(i+1), so later
// tranches absorb more while the average across tranches stays below
// paying full slippage on the whole position at once.
func buildPyramid(entryPrice, positionSize, totalSlippage float64, n int) (*models.PyramidBreakdown, float64) {
	trancheSize := positionSize / float64(n)
	orders := make([]models.PyramidTranche, 0, n)

	var priceSum float64
	for i := 0; i < n; i++ {
		trancheSlippage := totalSlippage / float64(n) * float64(i+1)
		price := entryPrice * (1 + trancheSlippage/100)
		priceSum += price
		orders = append(orders, models.PyramidTranche{
			Index:    i + 1,
			Size:     round4(trancheSize),
			Slippage: round2(trancheSlippage),
			Price:    round2(price),
		})
	}
	avgPrice := priceSum / float64(n)

	return &models.PyramidBreakdown{
		Tranches:      n,
		SizePerOrder:  round4(trancheSize),
		Orders:        orders,
		AvgEntryPrice: round2(avgPrice),
	}, avgPrice
}

// recommendation rules are evaluated in order; the first match wins.
func recommendation(leakagePct, totalCostPct float64, strategy models.OrderType) string {
	switch {
	case leakagePct > 100:
		return "costs exceed the profit target: avoid market entry, use limit orders"
	case leakagePct > 50:
		if strategy == models.OrderAllAtOnce {
			return "high profit leakage: switch to pyramid entry to reduce it"
		}
		return "high profit leakage: pyramid entry confirmed to reduce it"
	case totalCostPct > 0.3:
		return "strategy acceptable, monitor execution costs"
	default:
		return "excellent conditions, low slippage"
	}
}

// Cosmetic rounding for display fields only; intermediate math always
// runs on the raw values.
func round2(x float64) float64 { return decimal.NewFromFloat(x).Round(2).InexactFloat64() }
func round4(x float64) float64 { return decimal.NewFromFloat(x).Round(4).InexactFloat64() }

// Estimator is a stateless handle over Optimize for dependency injection.
type Estimator struct{}

func NewEstimator() Estimator { return Estimator{} }

func (Estimator) Optimize(cfg models.ExecutionConfig) (models.ExecutionResult, error) {
	return Optimize(cfg)
}

var _ domsvc.ExecutionOptimizer = Estimator{}
