package models

// Settled batch outcomes. Each item is independently success/error tagged;
// slice order matches the request order 1:1.

type ConsensusOutcome struct {
	Index  int              `json:"index"`
	Result *ConsensusResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type ExecutionOutcome struct {
	Index  int              `json:"index"`
	Result *ExecutionResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
