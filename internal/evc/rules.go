package evc

import (
	"math"
	"strings"

	"github.com/Na1awut/NDLP/internal/domain"
)

// ClassifyZone buckets E into a zone. Boundary values belong to the lower
// (more negative) zone.
func ClassifyZone(e float64) domain.Zone {
	switch {
	case e <= -6:
		return domain.ZoneExtremeNegative
	case e <= -2:
		return domain.ZoneNegative
	case e <= 2:
		return domain.ZoneNeutral
	case e <= 6:
		return domain.ZonePositive
	default:
		return domain.ZoneOverheatPositive
	}
}

// ClassifyPhase derives the trend from (E, ΔE). The ranges overlap on
// purpose; the first matching rule wins.
func ClassifyPhase(e, deltaE float64) domain.Phase {
	switch {
	case e <= -6 && deltaE > 0:
		return domain.PhaseCrashRecovery
	case e > 6 && deltaE < 0:
		return domain.PhasePeak
	case deltaE < -0.5:
		return domain.PhaseDeclining
	case deltaE > 0.5:
		return domain.PhaseRising
	default:
		return domain.PhaseStable
	}
}

// ComputeFlags recomputes the full flag set from this turn's emotion and the
// new E. Nothing carries over from the previous turn.
func ComputeFlags(e domain.EmotionFeatures, energy float64) domain.Flags {
	return domain.Flags{
		Sarcasm:         e.SarcasmProb > 0.5,
		Anger:           e.Valence < -0.5 && e.Arousal > 0.7 && e.Dominance > 0.6,
		Anxiety:         e.Valence < -0.3 && e.Arousal > 0.6 && e.Dominance < 0.4,
		Stress:          e.Arousal > 0.7 && e.SupportNeed > 0.6,
		Crisis:          energy <= -6,
		BoundarySetting: e.Dominance > 0.7 && e.Intent == domain.IntentAggression,
		MoodSwing:       math.Abs(e.Valence) > 0.7 && e.Arousal > 0.6,
	}
}

const policySeparator = " | "

// ResponsePolicy assembles the ordered directive string the reply generator
// consumes as prompt context. Several directives can fire in one turn; the
// evaluation order is fixed.
func ResponsePolicy(zone domain.Zone, phase domain.Phase, flags domain.Flags) string {
	var directives []string

	if flags.Crisis {
		directives = append(directives,
			"CRISIS MODE: the user is in acute distress. Respond with maximum gentleness, never judge or lecture, ask whether they feel safe, and make clear you are here to listen.")
	}
	if flags.Sarcasm {
		directives = append(directives,
			"Sarcasm detected: do not answer literally. Softly ask what they really feel.")
	}
	if flags.Anger {
		directives = append(directives,
			"Anger present: acknowledge the feeling without arguing back, give room to vent, ask what triggered it.")
	}
	if flags.Anxiety {
		directives = append(directives,
			"Anxiety present: speak calmly and slowly, offer reassurance, help organize their thoughts.")
	}

	switch zone {
	case domain.ZoneExtremeNegative:
		directives = append(directives,
			"Extreme negative zone: protect and care, apply no pressure, ask about safety.")
	case domain.ZoneNegative:
		directives = append(directives,
			"Negative zone: empathize and listen first, then gently explore ways forward.")
	case domain.ZonePositive:
		directives = append(directives,
			"Positive zone: be enthusiastic, celebrate with them, encourage.")
	case domain.ZoneOverheatPositive:
		directives = append(directives,
			"Very excited: share the joy but help them stay balanced; do not amplify further.")
	}

	switch phase {
	case domain.PhaseCrashRecovery:
		directives = append(directives,
			"Recovering from a crash: offer light praise and keep watching closely.")
	case domain.PhaseDeclining:
		directives = append(directives,
			"Mood is declining: be extra careful, check in proactively.")
	case domain.PhaseRising:
		directives = append(directives,
			"Mood is improving: keep encouraging.")
	}

	if flags.MoodSwing {
		directives = append(directives,
			"Mood is swinging: stay consistent, do not chase the swings.")
	}

	if len(directives) == 0 {
		directives = append(directives, "Respond naturally and warmly.")
	}

	return strings.Join(directives, policySeparator)
}
