package models

// Category is an asset class used for slippage scaling and quality policy.
type Category string

const (
	CategoryTier1       Category = "tier1"
	CategoryFundamental Category = "fundamental"
	CategoryMeme        Category = "meme"
	CategoryAI          Category = "ai"
	CategoryRWA         Category = "rwa"
)

// AssetCategoryThreshold bounds minimum signal quality and maximum position
// size per asset class. Loaded once at process start, never mutated.
type AssetCategoryThreshold struct {
	Category    Category `json:"category"`
	MinQuality  float64  `json:"min_quality"`  // 0-100
	MaxPosition float64  `json:"max_position"` // fraction of capital
	Description string   `json:"description"`
}
