package category

import (
	"strings"

	"SignalFuse/internal/domain/models"
)

// symbolCategories maps base assets to their category. Quote suffixes
// (USDT/USDC/USD) are stripped before lookup.
var symbolCategories = map[string]models.Category{
	"BTC": models.CategoryTier1,
	"ETH": models.CategoryTier1,
	"BNB": models.CategoryTier1,

	"SOL":  models.CategoryFundamental,
	"LINK": models.CategoryFundamental,
	"ADA":  models.CategoryFundamental,
	"AVAX": models.CategoryFundamental,
	"DOT":  models.CategoryFundamental,

	"DOGE": models.CategoryMeme,
	"SHIB": models.CategoryMeme,
	"PEPE": models.CategoryMeme,
	"WIF":  models.CategoryMeme,
	"BONK": models.CategoryMeme,

	"FET":  models.CategoryAI,
	"RNDR": models.CategoryAI,
	"TAO":  models.CategoryAI,
	"GRT":  models.CategoryAI,

	"ONDO":  models.CategoryRWA,
	"POLYX": models.CategoryRWA,
	"RSR":   models.CategoryRWA,
}

var quoteSuffixes = []string{"USDT", "USDC", "USD", "BUSD"}

// ForSymbol resolves a trading symbol to its asset category.
// Unknown symbols default to fundamental.
func ForSymbol(symbol string) models.Category {
	base := strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.IndexAny(base, "-/"); i >= 0 {
		base = base[:i]
	}
	for _, q := range quoteSuffixes {
		if len(base) > len(q) && strings.HasSuffix(base, q) {
			base = strings.TrimSuffix(base, q)
			break
		}
	}
	if c, ok := symbolCategories[base]; ok {
		return c
	}
	return models.CategoryFundamental
}
