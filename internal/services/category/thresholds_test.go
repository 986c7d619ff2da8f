package category

import (
	"testing"

	"SignalFuse/internal/domain/models"
)

func TestThresholdsForUnknownFallsBackToFundamental(t *testing.T) {
	got := ThresholdsFor(models.Category("gaming"))
	want := ThresholdsFor(models.CategoryFundamental)
	if got != want {
		t.Fatalf("unknown category: got %+v, want fundamental %+v", got, want)
	}
}

func TestThresholdsForKnownCategories(t *testing.T) {
	for _, c := range []models.Category{
		models.CategoryTier1,
		models.CategoryFundamental,
		models.CategoryMeme,
		models.CategoryAI,
		models.CategoryRWA,
	} {
		th := ThresholdsFor(c)
		if th.Category != c {
			t.Fatalf("category %s: got entry for %s", c, th.Category)
		}
		if th.MinQuality < 0 || th.MinQuality > 100 {
			t.Fatalf("category %s: min quality %v out of range", c, th.MinQuality)
		}
		if th.MaxPosition <= 0 || th.MaxPosition > 1 {
			t.Fatalf("category %s: max position %v out of range", c, th.MaxPosition)
		}
	}
}

func TestMeetsQuality(t *testing.T) {
	min := ThresholdsFor(models.CategoryMeme).MinQuality
	if !MeetsQuality(models.CategoryMeme, min) {
		t.Fatalf("score equal to min quality must pass")
	}
	if MeetsQuality(models.CategoryMeme, min-0.5) {
		t.Fatalf("score below min quality must fail")
	}
}

func TestSlippageScale(t *testing.T) {
	cases := []struct {
		cat  models.Category
		want float64
	}{
		{models.CategoryMeme, 1.5},
		{models.CategoryAI, 1.2},
		{models.CategoryRWA, 1.2},
		{models.CategoryTier1, 1.0},
		{models.CategoryFundamental, 1.0},
		{models.Category("whatever"), 1.0},
	}
	for _, tc := range cases {
		if got := SlippageScale(tc.cat); got != tc.want {
			t.Fatalf("scale(%s) = %v, want %v", tc.cat, got, tc.want)
		}
	}
}

func TestForSymbol(t *testing.T) {
	cases := []struct {
		symbol string
		want   models.Category
	}{
		{"BTCUSDT", models.CategoryTier1},
		{"eth-usd", models.CategoryTier1},
		{"DOGEUSDT", models.CategoryMeme},
		{"PEPE", models.CategoryMeme},
		{"FETUSDC", models.CategoryAI},
		{"ONDOUSDT", models.CategoryRWA},
		{"SOL/USDT", models.CategoryFundamental},
		{"NOSUCHCOIN", models.CategoryFundamental},
		{"", models.CategoryFundamental},
	}
	for _, tc := range cases {
		if got := ForSymbol(tc.symbol); got != tc.want {
			t.Fatalf("ForSymbol(%q) = %s, want %s", tc.symbol, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	if got := Parse(" Meme "); got != models.CategoryMeme {
		t.Fatalf("Parse meme: got %s", got)
	}
	if got := Parse("defi"); got != models.CategoryFundamental {
		t.Fatalf("Parse unknown: got %s", got)
	}
}

func TestParseAcceptsHyphenatedTier1(t *testing.T) {
	for _, s := range []string{"tier-1", "TIER-1", "tier1"} {
		if got := Parse(s); got != models.CategoryTier1 {
			t.Fatalf("Parse(%q) = %s, want %s", s, got, models.CategoryTier1)
		}
	}
	// the tier1 policy, not the fundamental fallback
	if th := ThresholdsFor(Parse("tier-1")); th.Category != models.CategoryTier1 {
		t.Fatalf("tier-1 resolved to %s policy", th.Category)
	}
}
