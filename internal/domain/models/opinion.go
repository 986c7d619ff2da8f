package models

// OpinionSource identifies the producer of a trading opinion.
type OpinionSource string

const (
	SourceScanner OpinionSource = "SCANNER"
	SourceML      OpinionSource = "ML"
	SourceRL      OpinionSource = "RL"
)

// Direction is a trading recommendation.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
	DirectionHold Direction = "HOLD"
)

// Valid reports whether d is one of the closed set of directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionBuy, DirectionSell, DirectionHold:
		return true
	}
	return false
}

// Score maps a direction to its numeric vote: BUY=+1, SELL=-1, HOLD=0.
func (d Direction) Score() float64 {
	switch d {
	case DirectionBuy:
		return 1
	case DirectionSell:
		return -1
	default:
		return 0
	}
}

// SourceOpinion is one producer's verdict. Immutable; created upstream,
// consumed once by the consensus engine.
type SourceOpinion struct {
	Source     OpinionSource `json:"source"`
	Direction  Direction     `json:"direction"`
	Confidence float64       `json:"confidence"` // [0,1]
	Reasoning  []string      `json:"reasoning,omitempty"`
}

// RecentPerformance holds one non-negative track-record score per source.
// When the total is positive, consensus weights become each source's share.
type RecentPerformance struct {
	Scanner float64 `json:"scanner"`
	ML      float64 `json:"ml"`
	RL      float64 `json:"rl"`
}

// Total returns the sum of the three performance scores.
func (p RecentPerformance) Total() float64 {
	return p.Scanner + p.ML + p.RL
}
