package service

import "SignalFuse/internal/domain/models"

// ConsensusResolver fuses three labeled opinions into one ranked decision.
// Implementations must be pure: no I/O, no shared mutable state.
type ConsensusResolver interface {
	Resolve(scanner, ml, rl models.SourceOpinion, perf *models.RecentPerformance) (models.ConsensusResult, error)
}

// ExecutionOptimizer models slippage, fees, and staged entry for a trade.
type ExecutionOptimizer interface {
	Optimize(cfg models.ExecutionConfig) (models.ExecutionResult, error)
}

// ThresholdPolicy resolves per-category quality and position-size policy.
type ThresholdPolicy interface {
	ThresholdsFor(cat models.Category) models.AssetCategoryThreshold
	MeetsQuality(cat models.Category, qualityScore float64) bool
	ForSymbol(symbol string) models.Category
}
