package models

import "time"

// OrderType is the entry strategy for a position.
type OrderType string

const (
	OrderAllAtOnce OrderType = "ALL_AT_ONCE"
	OrderPyramid3  OrderType = "PYRAMID_3"
	OrderPyramid5  OrderType = "PYRAMID_5"
)

// Valid reports whether o is a known order type.
func (o OrderType) Valid() bool {
	switch o {
	case OrderAllAtOnce, OrderPyramid3, OrderPyramid5:
		return true
	}
	return false
}

// Tranches returns the tranche count for the strategy (1 for ALL_AT_ONCE).
func (o OrderType) Tranches() int {
	switch o {
	case OrderPyramid3:
		return 3
	case OrderPyramid5:
		return 5
	default:
		return 1
	}
}

// ExecutionConfig describes a proposed trade to cost out.
type ExecutionConfig struct {
	Symbol          string    `json:"symbol"`
	EntryPrice      float64   `json:"entry_price"`       // > 0
	PositionSize    float64   `json:"position_size"`     // fraction of capital, (0,1]
	MarketVolume24h float64   `json:"market_volume_24h"` // > 0, USD
	OrderType       OrderType `json:"order_type"`        // caller preference, default ALL_AT_ONCE
	ExchangeFeePct  float64   `json:"exchange_fee_pct"`  // default 0.1 when unset
}

// PyramidTranche is one staged order of a pyramid entry.
type PyramidTranche struct {
	Index    int     `json:"index"`
	Size     float64 `json:"size"`     // fraction of capital, 4dp
	Slippage float64 `json:"slippage"` // cumulative %, 2dp
	Price    float64 `json:"price"`    // 2dp
}

// PyramidBreakdown describes the staged-entry plan.
type PyramidBreakdown struct {
	Tranches      int              `json:"tranches"`
	SizePerOrder  float64          `json:"size_per_order"` // 4dp
	Orders        []PyramidTranche `json:"orders"`
	AvgEntryPrice float64          `json:"avg_entry_price"` // 2dp
}

// ExecutionResult is the cost model output for one proposed trade.
// All monetary and percentage fields carry cosmetic 2dp rounding
// (tranche size 4dp); rounding never feeds back into later math.
type ExecutionResult struct {
	Symbol              string            `json:"symbol"`
	Timestamp           time.Time         `json:"timestamp"`
	Category            Category          `json:"category"`
	SlippagePct         float64           `json:"slippage_pct"`
	SlippageImpact      float64           `json:"slippage_impact"` // USD
	FeePct              float64           `json:"fee_pct"`
	FeeImpact           float64           `json:"fee_impact"` // USD
	TotalCostPct        float64           `json:"total_cost_pct"`
	RequestedStrategy   OrderType         `json:"requested_strategy"`
	RecommendedStrategy OrderType         `json:"recommended_strategy"`
	Pyramid             *PyramidBreakdown `json:"pyramid,omitempty"`
	NominalPrice        float64           `json:"nominal_price"`
	RealPrice           float64           `json:"real_price"`
	PriceDelta          float64           `json:"price_delta"`
	OriginalProfit      float64           `json:"original_profit"` // fixed 2% nominal target
	AdjustedProfit      float64           `json:"adjusted_profit"`
	ProfitLeakagePct    float64           `json:"profit_leakage_pct"`
	Recommendation      string            `json:"recommendation"`
}
