package evc

import (
	"math"

	"github.com/Na1awut/NDLP/internal/domain"
)

// The eight simulated hormones, in the fixed order used by the interaction
// matrix and for dominant-state tie-breaking.
const (
	serotonin = iota
	dopamine
	cortisol
	oxytocin
	adrenaline
	endorphin
	gaba
	norepinephrine

	numHormones
)

// hormoneSpec pairs a hormone's static parameters with its stimulus
// function. Stimulus maps the turn's emotion features to [0,1]; production
// for the turn is stimulus × maxProduction.
type hormoneSpec struct {
	name          string
	baseline      float64 // resting level, decay target
	halfLife      float64 // turns to close half the distance to baseline
	maxProduction float64
	stimulus      func(e domain.EmotionFeatures) float64
}

var hormoneTable = [numHormones]hormoneSpec{
	serotonin: {
		// Steady wellbeing: builds slowly, fades slowly.
		name: "serotonin", baseline: 3.0, halfLife: 6, maxProduction: 1.5,
		stimulus: func(e domain.EmotionFeatures) float64 {
			posVal := math.Max(0, e.Valence)
			calm := math.Max(0, 1.0-e.Arousal)
			clarity := 1.0 - e.Uncertainty
			return posVal*0.5 + calm*0.3 + clarity*0.2
		},
	},
	dopamine: {
		// Reward spike: fast up, fast down.
		name: "dopamine", baseline: 2.0, halfLife: 2, maxProduction: 3.0,
		stimulus: func(e domain.EmotionFeatures) float64 {
			excitement := math.Max(0, e.Valence) * e.Arousal
			praise := 0.0
			if e.Intent == domain.IntentPraise {
				praise = 0.5
			}
			return math.Min(1.0, excitement*0.6+praise*0.4)
		},
	},
	cortisol: {
		// Stress accumulates and lingers.
		name: "cortisol", baseline: 1.0, halfLife: 8, maxProduction: 2.0,
		stimulus: func(e domain.EmotionFeatures) float64 {
			stress := math.Max(0, -e.Valence)
			tension := e.Arousal * 0.5
			worry := e.Uncertainty * 0.3
			return math.Min(1.0, stress*0.5+tension+worry)
		},
	},
	oxytocin: {
		// Trust is slow to build, easy to lose.
		name: "oxytocin", baseline: 1.0, halfLife: 4, maxProduction: 1.5,
		stimulus: func(e domain.EmotionFeatures) float64 {
			trust := (1.0 - e.SarcasmProb) * 0.3
			gratitude := 0.0
			if e.Intent == domain.IntentPraise || e.Intent == domain.IntentApology {
				gratitude = 0.4
			}
			warmth := math.Max(0, e.Valence) * 0.3
			return math.Min(1.0, trust+gratitude+warmth)
		},
	},
	adrenaline: {
		// Fight-or-flight: sharpest spike, fastest decay.
		name: "adrenaline", baseline: 0.5, halfLife: 1, maxProduction: 5.0,
		stimulus: func(e domain.EmotionFeatures) float64 {
			danger := math.Max(0, -e.Valence) * e.Arousal
			crisis := 0.0
			if e.SupportNeed > 0.8 {
				crisis = 0.5
			}
			anger := 0.0
			if e.Intent == domain.IntentAggression && e.Dominance > 0.7 {
				anger = 0.3
			}
			return math.Min(1.0, danger*0.5+crisis+anger)
		},
	},
	endorphin: {
		// Relief after tension; venting counts as catharsis.
		name: "endorphin", baseline: 1.5, halfLife: 3, maxProduction: 2.0,
		stimulus: func(e domain.EmotionFeatures) float64 {
			relief := math.Max(0, 0.5+e.Valence*0.5)
			venting := 0.0
			if e.Intent == domain.IntentVenting {
				venting = 0.3
			}
			lowArousal := math.Max(0, 1.0-e.Arousal) * 0.2
			return math.Min(1.0, relief*0.5+venting+lowArousal)
		},
	},
	gaba: {
		// Calm brake on the fight-or-flight system.
		name: "gaba", baseline: 2.0, halfLife: 3, maxProduction: 2.0,
		stimulus: func(e domain.EmotionFeatures) float64 {
			calm := math.Max(0, 1.0-e.Arousal)
			safe := math.Max(0, 0.5+e.Valence*0.5)
			lowNeed := math.Max(0, 1.0-e.SupportNeed) * 0.3
			return math.Min(1.0, calm*0.4+safe*0.3+lowNeed)
		},
	},
	norepinephrine: {
		// Alertness and focus; runs alongside adrenaline but outlasts it.
		name: "norepinephrine", baseline: 1.5, halfLife: 2, maxProduction: 2.5,
		stimulus: func(e domain.EmotionFeatures) float64 {
			return math.Min(1.0, e.Arousal*0.6+math.Abs(e.Valence)*0.2+e.Dominance*0.2)
		},
	},
}

// interactionMatrix[target][source] is the signed effect of source on target,
// scaled by the source's normalized level. Positive stimulates, negative
// suppresses. Values follow the real endocrine relationships.
//
//	              sero   dopa   cort   oxy    adre   endo   gaba   nore
var interactionMatrix = [numHormones][numHormones]float64{
	serotonin:      {0.00, +0.10, -0.20, +0.10, 0.00, +0.10, +0.10, 0.00},
	dopamine:       {+0.10, 0.00, 0.00, 0.00, +0.10, 0.00, 0.00, +0.10},
	cortisol:       {-0.15, -0.05, 0.00, -0.15, +0.20, -0.10, -0.10, +0.10},
	oxytocin:       {+0.15, 0.00, -0.15, 0.00, -0.10, +0.10, +0.15, 0.00},
	adrenaline:     {-0.10, +0.05, +0.15, -0.05, 0.00, 0.00, -0.25, +0.15},
	endorphin:      {+0.10, 0.00, -0.10, +0.10, -0.05, 0.00, +0.10, 0.00},
	gaba:           {+0.10, 0.00, -0.10, +0.10, -0.15, +0.05, 0.00, -0.10},
	norepinephrine: {0.00, +0.10, +0.10, 0.00, +0.20, 0.00, -0.10, 0.00},
}

// energyWeights turn the cocktail into a single E value. The weighted sum is
// taken over baseline-relative offsets so the resting cocktail reads as
// exactly neutral. Positive sum is +0.70, negative -0.40, which keeps the
// composite comfortably inside the [-10, 10] scale at full levels.
var energyWeights = [numHormones]float64{
	serotonin:      +0.25,
	dopamine:       +0.15,
	cortisol:       -0.25,
	oxytocin:       +0.15,
	adrenaline:     -0.10,
	endorphin:      +0.10,
	gaba:           +0.05,
	norepinephrine: -0.05,
}

var dominantLabels = [numHormones]string{
	serotonin:      "content",
	dopamine:       "excited",
	cortisol:       "stressed",
	oxytocin:       "trusting",
	adrenaline:     "alert",
	endorphin:      "relieved",
	gaba:           "calm",
	norepinephrine: "focused",
}

// Cocktail is the transient simulated endocrine state for one update call.
// Levels are always clamped to [0, 10]; only the level snapshot is persisted
// between turns.
type Cocktail struct {
	levels [numHormones]float64
}

// NewCocktail returns a cocktail with every hormone at its baseline.
func NewCocktail() *Cocktail {
	var c Cocktail
	for i, spec := range hormoneTable {
		c.levels[i] = spec.baseline
	}
	return &c
}

// Restore overwrites levels from a persisted snapshot. Unknown names are
// ignored and missing hormones stay at the constructed default, so snapshots
// remain compatible across hormone-set changes.
func (c *Cocktail) Restore(levels map[string]float64) {
	for i, spec := range hormoneTable {
		if lvl, ok := levels[spec.name]; ok {
			c.levels[i] = clamp(lvl, 0, 10)
		}
	}
}

// Update runs one full hormone cycle: production from the emotion stimulus,
// cross-hormone interaction, then decay toward baseline.
func (c *Cocktail) Update(e domain.EmotionFeatures) {
	c.produce(e)
	c.interact()
	c.decay()
}

func (c *Cocktail) produce(e domain.EmotionFeatures) {
	for i, spec := range hormoneTable {
		c.levels[i] = math.Min(10, c.levels[i]+spec.stimulus(e)*spec.maxProduction)
	}
}

// interact applies the 8×8 matrix. All targets read the same pre-interaction
// snapshot so the update is simultaneous, not sequential.
func (c *Cocktail) interact() {
	var normalized [numHormones]float64
	for i, lvl := range c.levels {
		normalized[i] = lvl / 10.0
	}
	for target := range hormoneTable {
		sum := 0.0
		for source := range hormoneTable {
			if source == target {
				continue
			}
			sum += interactionMatrix[target][source] * normalized[source]
		}
		c.levels[target] = clamp(c.levels[target]+sum, 0, 10)
	}
}

// decay relaxes each level toward its baseline: the offset halves every
// halfLife turns.
func (c *Cocktail) decay() {
	for i, spec := range hormoneTable {
		rate := math.Pow(0.5, 1.0/spec.halfLife)
		c.levels[i] = spec.baseline + (c.levels[i]-spec.baseline)*rate
	}
}

// Energy is the weighted composite E of the cocktail, measured against the
// resting baseline and clamped to [-10, 10].
func (c *Cocktail) Energy() float64 {
	e := 0.0
	for i, w := range energyWeights {
		e += w * (c.levels[i] - hormoneTable[i].baseline)
	}
	return clamp(e, -10, 10)
}

// DominantState names the hormone furthest above its baseline, or "neutral"
// when nothing is elevated by at least 0.5. Ties go to the first hormone in
// the fixed order.
func (c *Cocktail) DominantState() string {
	maxDiff := math.Inf(-1)
	dominant := "neutral"
	for i, spec := range hormoneTable {
		if diff := c.levels[i] - spec.baseline; diff > maxDiff {
			maxDiff = diff
			dominant = dominantLabels[i]
		}
	}
	if maxDiff < 0.5 {
		return "neutral"
	}
	return dominant
}

// Levels serializes the cocktail for persistence.
func (c *Cocktail) Levels() map[string]float64 {
	out := make(map[string]float64, numHormones)
	for i, spec := range hormoneTable {
		out[spec.name] = c.levels[i]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
