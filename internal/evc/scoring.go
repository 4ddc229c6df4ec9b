package evc

import (
	"math"

	"github.com/Na1awut/NDLP/internal/domain"
)

// Support, drag and sensitivity scoring — the legacy force model kept as one
// weighted component of the blended update.
//
//	S = w1·praise + w2·apology + w3·clarity + w4·trust
//	D = v1·insult + v2·sarcasm + v3·uncertainty + v4·conflict
//	K = K0 + α·arousal + β·uncertainty + γ·risk

const (
	weightPraise  = 0.40
	weightApology = 0.30
	weightClarity = 0.20
	weightTrust   = 0.10

	weightInsult      = 0.30
	weightSarcasm     = 0.25
	weightUncertainty = 0.25
	weightConflict    = 0.20

	kBase  = 1.0
	kAlpha = 0.3 // arousal
	kBeta  = 0.2 // uncertainty
	kGamma = 0.4 // risk
)

// ComputeForces scores the turn against the previous state. The sensitivity
// risk term reads the flag set carried on prev; the flags for this turn are
// recomputed later in the pipeline.
func ComputeForces(e domain.EmotionFeatures, prev domain.State) domain.Forces {
	return domain.Forces{
		S: round4(supportForce(e, prev)),
		D: round4(dragForce(e)),
		K: round4(sensitivity(e, prev)),
	}
}

func supportForce(e domain.EmotionFeatures, prev domain.State) float64 {
	praise := 0.0
	if e.Intent == domain.IntentPraise {
		praise = math.Max(0, e.Valence)
	} else if e.Valence > 0.3 {
		// Partial credit for plain positive valence.
		praise = e.Valence * 0.5
	}

	apology := 0.0
	if e.Intent == domain.IntentApology {
		apology = 0.5
	}

	clarity := 1.0 - e.Uncertainty

	trust := (1.0 - e.SarcasmProb) * 0.5
	if prev.E > 0 {
		trust += 0.3
	}

	s := weightPraise*praise + weightApology*apology + weightClarity*clarity + weightTrust*trust
	return clamp(s, 0, 1)
}

func dragForce(e domain.EmotionFeatures) float64 {
	insult := math.Max(0, -e.Valence)

	conflict := 0.0
	if e.Valence < 0 && e.Dominance > 0.6 {
		conflict = e.Dominance * 0.5
	}

	d := weightInsult*insult + weightSarcasm*e.SarcasmProb +
		weightUncertainty*e.Uncertainty + weightConflict*conflict
	return clamp(d, 0, 1)
}

func sensitivity(e domain.EmotionFeatures, prev domain.State) float64 {
	risk := 0.0
	if prev.Flags.Anger {
		risk += 0.3
	}
	if prev.Flags.Anxiety {
		risk += 0.2
	}
	if prev.Flags.Stress {
		risk += 0.2
	}
	if prev.Flags.Sarcasm {
		risk += 0.15
	}
	if prev.Flags.Crisis {
		risk += 0.5
	}
	risk = math.Min(1.0, risk)

	k := kBase + kAlpha*e.Arousal + kBeta*e.Uncertainty + kGamma*risk
	return clamp(k, 0.5, 2.5)
}
