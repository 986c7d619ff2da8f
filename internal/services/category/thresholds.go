// Package category holds the static asset-class policy table: minimum
// signal quality and maximum position size per category, plus the
// symbol-to-category lookup. Read-only after process start.
package category

import (
	"strings"

	"SignalFuse/internal/domain/models"
	domsvc "SignalFuse/internal/domain/service"
)

var thresholds = map[models.Category]models.AssetCategoryThreshold{
	models.CategoryTier1: {
		Category:    models.CategoryTier1,
		MinQuality:  55,
		MaxPosition: 0.15,
		Description: "Large-cap majors: deepest liquidity, lowest quality bar",
	},
	models.CategoryFundamental: {
		Category:    models.CategoryFundamental,
		MinQuality:  65,
		MaxPosition: 0.10,
		Description: "Established projects with real usage and revenue",
	},
	models.CategoryMeme: {
		Category:    models.CategoryMeme,
		MinQuality:  80,
		MaxPosition: 0.03,
		Description: "Sentiment-driven: thin books, demand the highest quality",
	},
	models.CategoryAI: {
		Category:    models.CategoryAI,
		MinQuality:  70,
		MaxPosition: 0.05,
		Description: "AI narrative tokens: volatile, medium liquidity",
	},
	models.CategoryRWA: {
		Category:    models.CategoryRWA,
		MinQuality:  70,
		MaxPosition: 0.07,
		Description: "Real-world-asset tokens: growing but uneven liquidity",
	},
}

// ThresholdsFor returns the policy for cat, falling back to the
// fundamental entry for unrecognized categories. Never fails.
func ThresholdsFor(cat models.Category) models.AssetCategoryThreshold {
	if t, ok := thresholds[cat]; ok {
		return t
	}
	return thresholds[models.CategoryFundamental]
}

// MeetsQuality reports whether qualityScore clears the category's bar.
func MeetsQuality(cat models.Category, qualityScore float64) bool {
	return qualityScore >= ThresholdsFor(cat).MinQuality
}

// SlippageScale is the category multiplier applied to base slippage.
func SlippageScale(cat models.Category) float64 {
	switch cat {
	case models.CategoryMeme:
		return 1.5
	case models.CategoryAI, models.CategoryRWA:
		return 1.2
	default:
		return 1.0
	}
}

// Policy is a stateless handle implementing service.ThresholdPolicy for DI.
type Policy struct{}

func NewPolicy() Policy { return Policy{} }

func (Policy) ThresholdsFor(cat models.Category) models.AssetCategoryThreshold {
	return ThresholdsFor(cat)
}

func (Policy) MeetsQuality(cat models.Category, qualityScore float64) bool {
	return MeetsQuality(cat, qualityScore)
}

func (Policy) ForSymbol(symbol string) models.Category { return ForSymbol(symbol) }

var _ domsvc.ThresholdPolicy = Policy{}

// Parse maps a raw category string onto the closed set; anything
// unknown resolves to fundamental (fallback, not an error). Hyphenated
// spellings such as "tier-1" are accepted.
func Parse(s string) models.Category {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	c := models.Category(norm)
	if _, ok := thresholds[c]; ok {
		return c
	}
	return models.CategoryFundamental
}
