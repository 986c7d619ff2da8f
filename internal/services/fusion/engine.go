// Package fusion fuses three independently produced trading opinions
// (scanner, ML model, RL agent) into one ranked decision with an
// agreement score, a weighted confidence, and explanatory traces.
// Everything here is a pure function of its arguments.
package fusion

import (
	"fmt"
	"math"

	"SignalFuse/internal/domain/models"
	domsvc "SignalFuse/internal/domain/service"
)

// Default source weights, replaced by performance shares when a recent
// track record is supplied.
const (
	DefaultScannerWeight = 0.40
	DefaultMLWeight      = 0.35
	DefaultRLWeight      = 0.25
)

// Decision thresholds on the weighted vote. The boundary is exclusive on
// both sides: a vote of exactly +0.3 or -0.3 resolves to HOLD.
const (
	buyThreshold  = 0.3
	sellThreshold = -0.3
)

// Agreement multipliers per unanimity tier, applied to average confidence.
const (
	unanimousAgreement = 100.0
	majorityAgreement  = 65.0
	splitAgreement     = 30.0
	agreementBoost     = 1.1
)

// Resolve fuses the three opinions into a ConsensusResult.
// perf may be nil; when supplied with a positive total, each source's
// weight becomes its share of the total.
func Resolve(scanner, ml, rl models.SourceOpinion, perf *models.RecentPerformance) (models.ConsensusResult, error) {
	if err := validateOpinion("scanner", scanner); err != nil {
		return models.ConsensusResult{}, err
	}
	if err := validateOpinion("ml", ml); err != nil {
		return models.ConsensusResult{}, err
	}
	if err := validateOpinion("rl", rl); err != nil {
		return models.ConsensusResult{}, err
	}

	wScanner, wML, wRL, err := resolveWeights(perf)
	if err != nil {
		return models.ConsensusResult{}, err
	}

	// Normalize so the vote is insensitive to weight sets that do not sum
	// exactly to 1 due to floating point.
	wSum := wScanner + wML + wRL
	wScanner /= wSum
	wML /= wSum
	wRL /= wSum

	// Each source's pull on the vote is its direction scaled by how sure
	// it is: unanimous but hesitant sources can still land in HOLD.
	vote := scanner.Direction.Score()*scanner.Confidence*wScanner +
		ml.Direction.Score()*ml.Confidence*wML +
		rl.Direction.Score()*rl.Confidence*wRL

	decision := decide(vote)

	agreement := agreementScore(scanner, ml, rl)
	confidence := scanner.Confidence*wScanner + ml.Confidence*wML + rl.Confidence*wRL

	res := models.ConsensusResult{
		FinalDecision:   decision,
		AgreementScore:  agreement,
		ConfidenceScore: confidence,
		WeightedVote:    vote,
		SourceBreakdown: map[models.OpinionSource]models.SourceBreakdown{
			models.SourceScanner: breakdown(scanner, wScanner),
			models.SourceML:      breakdown(ml, wML),
			models.SourceRL:      breakdown(rl, wRL),
		},
		ConflictAnalysis: conflicts(scanner, ml, rl),
		SolidityReasons:  solidityReasons(scanner, ml, rl, decision, agreement, confidence),
	}
	return res, nil
}

// decide maps the weighted vote onto a direction. Exclusive boundaries:
// a vote of exactly ±0.3 stays HOLD.
func decide(vote float64) models.Direction {
	switch {
	case vote > buyThreshold:
		return models.DirectionBuy
	case vote < sellThreshold:
		return models.DirectionSell
	default:
		return models.DirectionHold
	}
}

func validateOpinion(name string, op models.SourceOpinion) error {
	if !op.Direction.Valid() {
		return models.NewInvalidInput(name+".direction", "unknown direction %q", string(op.Direction))
	}
	if op.Confidence < 0 || op.Confidence > 1 {
		return models.NewInvalidInput(name+".confidence", "must be within [0,1], got %v", op.Confidence)
	}
	return nil
}

func resolveWeights(perf *models.RecentPerformance) (float64, float64, float64, error) {
	if perf == nil {
		return DefaultScannerWeight, DefaultMLWeight, DefaultRLWeight, nil
	}
	if perf.Scanner < 0 || perf.ML < 0 || perf.RL < 0 {
		return 0, 0, 0, models.NewInvalidInput("recent_performance", "scores must be non-negative")
	}
	total := perf.Total()
	if total <= 0 {
		return DefaultScannerWeight, DefaultMLWeight, DefaultRLWeight, nil
	}
	return perf.Scanner / total, perf.ML / total, perf.RL / total, nil
}

// agreementScore measures directional coincidence on a 0-100 scale,
// weighted by average confidence.
func agreementScore(scanner, ml, rl models.SourceOpinion) int {
	avgConf := (scanner.Confidence + ml.Confidence + rl.Confidence) / 3

	var base float64
	switch {
	case scanner.Direction == ml.Direction && ml.Direction == rl.Direction:
		base = unanimousAgreement
	case scanner.Direction == ml.Direction || ml.Direction == rl.Direction || scanner.Direction == rl.Direction:
		base = majorityAgreement
	default:
		base = splitAgreement
	}

	score := base * avgConf
	if scanner.Confidence >= 0.70 && ml.Confidence >= 0.70 && scanner.Direction == ml.Direction {
		score *= agreementBoost
	}

	score = math.Max(0, math.Min(100, score))
	return int(math.Round(score))
}

func breakdown(op models.SourceOpinion, weight float64) models.SourceBreakdown {
	return models.SourceBreakdown{
		Vote:         op.Direction,
		Confidence:   op.Confidence,
		Weight:       weight,
		Contribution: op.Direction.Score() * weight,
	}
}

// conflicts lists every pairwise direction mismatch. Purely pairwise:
// with three different directions all three pairs appear.
func conflicts(scanner, ml, rl models.SourceOpinion) []string {
	out := []string{}
	pairs := []struct {
		a, b   string
		da, db models.Direction
	}{
		{"scanner", "ml", scanner.Direction, ml.Direction},
		{"scanner", "rl", scanner.Direction, rl.Direction},
		{"ml", "rl", ml.Direction, rl.Direction},
	}
	for _, p := range pairs {
		if p.da != p.db {
			out = append(out, fmt.Sprintf("%s and %s disagree: %s vs %s", p.a, p.b, p.da, p.db))
		}
	}
	return out
}

// solidityReasons builds the ordered justification trace. Every rule is
// evaluated on every call.
func solidityReasons(scanner, ml, rl models.SourceOpinion, decision models.Direction, agreement int, confidence float64) []string {
	reasons := make([]string, 0, 5)

	switch {
	case agreement >= 85:
		reasons = append(reasons, fmt.Sprintf("strong agreement across sources (%d/100)", agreement))
	case agreement >= 65:
		reasons = append(reasons, fmt.Sprintf("good agreement across sources (%d/100)", agreement))
	default:
		reasons = append(reasons, fmt.Sprintf("moderate agreement across sources (%d/100)", agreement))
	}

	switch {
	case confidence >= 0.80:
		reasons = append(reasons, fmt.Sprintf("high weighted confidence (%.2f)", confidence))
	case confidence >= 0.65:
		reasons = append(reasons, fmt.Sprintf("good weighted confidence (%.2f)", confidence))
	default:
		reasons = append(reasons, fmt.Sprintf("moderate weighted confidence (%.2f), caution advised", confidence))
	}

	if scanner.Confidence >= 0.75 && ml.Confidence >= 0.75 {
		reasons = append(reasons, "scanner and ml both report high confidence")
	}
	if rl.Confidence >= 0.70 && decision != models.DirectionHold {
		reasons = append(reasons, "rl agent confident in a directional decision")
	}
	if agreement < 50 {
		reasons = append(reasons, "warning: low agreement, sources diverge")
	}

	return reasons
}

// Engine is a stateless handle over Resolve for dependency injection.
type Engine struct{}

func NewEngine() Engine { return Engine{} }

func (Engine) Resolve(scanner, ml, rl models.SourceOpinion, perf *models.RecentPerformance) (models.ConsensusResult, error) {
	return Resolve(scanner, ml, rl, perf)
}

var _ domsvc.ConsensusResolver = Engine{}
