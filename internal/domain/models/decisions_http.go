package models

// Requests for decision HTTP endpoints. Defined in domain for consistency and reuse.

// OpinionPayload carries one source opinion over the wire.
type OpinionPayload struct {
	Direction  string   `json:"direction" validate:"required,oneof=BUY SELL HOLD"`
	Confidence float64  `json:"confidence" validate:"gte=0,lte=1"`
	Reasoning  []string `json:"reasoning,omitempty"`
}

// PerformancePayload carries optional recent per-source performance scores.
type PerformancePayload struct {
	Scanner float64 `json:"scanner" validate:"gte=0"`
	ML      float64 `json:"ml" validate:"gte=0"`
	RL      float64 `json:"rl" validate:"gte=0"`
}

type ConsensusRequest struct {
	Symbol      string              `json:"symbol"`
	Scanner     OpinionPayload      `json:"scanner" validate:"required"`
	ML          OpinionPayload      `json:"ml" validate:"required"`
	RL          OpinionPayload      `json:"rl" validate:"required"`
	Performance *PerformancePayload `json:"recent_performance,omitempty"`
}

type ConsensusBatchRequest struct {
	Items []ConsensusRequest `json:"items" validate:"required,min=1,max=200,dive"`
}

type ExecutionRequest struct {
	Symbol          string  `json:"symbol" validate:"required"`
	EntryPrice      float64 `json:"entry_price" validate:"gt=0"`
	PositionSize    float64 `json:"position_size" validate:"gt=0,lte=1"`
	MarketVolume24h float64 `json:"market_volume_24h" validate:"gte=0"` // 0 means fill from the volume feed
	OrderType       string  `json:"order_type" default:"ALL_AT_ONCE" validate:"oneof=ALL_AT_ONCE PYRAMID_3 PYRAMID_5"`
	ExchangeFeePct  float64 `json:"exchange_fee_pct" default:"0.1" validate:"gte=0"`
}

type ExecutionBatchRequest struct {
	Items []ExecutionRequest `json:"items" validate:"required,min=1,max=200,dive"`
}

type ThresholdsRequest struct {
	Category string `query:"category" json:"category"`
}

type LatestDecisionRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}
