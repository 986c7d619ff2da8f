package models

import "time"

// SourceBreakdown is one source's contribution to a consensus decision.
type SourceBreakdown struct {
	Vote         Direction `json:"vote"`
	Confidence   float64   `json:"confidence"`
	Weight       float64   `json:"weight"`
	Contribution float64   `json:"contribution"` // direction score × weight
}

// ConsensusResult is the output of fusing exactly three source opinions.
// Computed fresh per call; never mutated after construction.
type ConsensusResult struct {
	Symbol           string                            `json:"symbol,omitempty"`
	Timestamp        time.Time                         `json:"timestamp"`
	FinalDecision    Direction                         `json:"final_decision"`
	AgreementScore   int                               `json:"agreement_score"`  // [0,100]
	ConfidenceScore  float64                           `json:"confidence_score"` // [0,1]
	WeightedVote     float64                           `json:"weighted_vote"`
	SourceBreakdown  map[OpinionSource]SourceBreakdown `json:"source_breakdown"`
	ConflictAnalysis []string                          `json:"conflict_analysis"`
	SolidityReasons  []string                          `json:"solidity_reasons"`
}
