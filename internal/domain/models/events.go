package models

// OpinionSet is the inbound Kafka message: one round of opinions for a
// symbol from all three upstream producers.
type OpinionSet struct {
	Symbol      string              `json:"symbol"`
	Timestamp   int64               `json:"t"` // unix seconds (ms accepted)
	Scanner     OpinionPayload      `json:"scanner"`
	ML          OpinionPayload      `json:"ml"`
	RL          OpinionPayload      `json:"rl"`
	Performance *PerformancePayload `json:"recent_performance,omitempty"`
}

// DecisionEvent is the outbound Kafka message published after a fusion.
type DecisionEvent struct {
	Symbol          string    `json:"symbol"`
	Decision        Direction `json:"decision"`
	AgreementScore  int       `json:"agreement_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	Conflicts       int       `json:"conflicts"`
	Timestamp       int64     `json:"t"`
}
