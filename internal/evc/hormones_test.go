package evc

import (
	"testing"

	"github.com/Na1awut/NDLP/internal/domain"
)

func TestNewCocktailAtBaseline(t *testing.T) {
	c := NewCocktail()

	for i, spec := range hormoneTable {
		if c.levels[i] != spec.baseline {
			t.Errorf("%s: expected baseline %v, got %v", spec.name, spec.baseline, c.levels[i])
		}
	}
	if e := c.Energy(); e != 0 {
		t.Errorf("expected zero energy at baseline, got %v", e)
	}
	if d := c.DominantState(); d != "neutral" {
		t.Errorf("expected neutral dominant state at baseline, got %q", d)
	}
}

func TestRestorePartialSnapshot(t *testing.T) {
	c := NewCocktail()
	c.Restore(map[string]float64{
		"cortisol":   5.0,
		"melatonin":  9.0, // not a simulated hormone, must be ignored
		"adrenaline": 42.0,
	})

	if c.levels[cortisol] != 5.0 {
		t.Errorf("expected cortisol=5, got %v", c.levels[cortisol])
	}
	if c.levels[serotonin] != hormoneTable[serotonin].baseline {
		t.Errorf("missing hormones must keep their baseline, got %v", c.levels[serotonin])
	}
	if c.levels[adrenaline] != 10.0 {
		t.Errorf("expected out-of-range level clamped to 10, got %v", c.levels[adrenaline])
	}
}

func TestDecayApproachesBaselineFromAbove(t *testing.T) {
	c := NewCocktail()
	c.Restore(map[string]float64{"cortisol": 8.0})

	prev := c.levels[cortisol]
	for i := 0; i < 50; i++ {
		c.decay()
		lvl := c.levels[cortisol]
		if lvl >= prev {
			t.Fatalf("step %d: decay did not decrease level: %v -> %v", i, prev, lvl)
		}
		if lvl < hormoneTable[cortisol].baseline {
			t.Fatalf("step %d: decay overshot below baseline: %v", i, lvl)
		}
		prev = lvl
	}
	if prev > hormoneTable[cortisol].baseline+0.5 {
		t.Errorf("expected level near baseline after 50 steps, got %v", prev)
	}
}

func TestDecayApproachesBaselineFromBelow(t *testing.T) {
	c := NewCocktail()
	c.Restore(map[string]float64{"gaba": 0.2})

	prev := c.levels[gaba]
	for i := 0; i < 30; i++ {
		c.decay()
		lvl := c.levels[gaba]
		if lvl <= prev {
			t.Fatalf("step %d: decay did not increase level: %v -> %v", i, prev, lvl)
		}
		if lvl > hormoneTable[gaba].baseline {
			t.Fatalf("step %d: decay overshot above baseline: %v", i, lvl)
		}
		prev = lvl
	}
}

func TestDecayHoldsExactlyAtBaseline(t *testing.T) {
	c := NewCocktail()
	c.decay()

	for i, spec := range hormoneTable {
		if c.levels[i] != spec.baseline {
			t.Errorf("%s: decay moved a baseline level to %v", spec.name, c.levels[i])
		}
	}
}

func TestUpdateKeepsLevelsClamped(t *testing.T) {
	c := NewCocktail()
	emotion := domain.EmotionFeatures{
		Valence:     -1.0,
		Arousal:     1.0,
		Dominance:   0.9,
		Intent:      domain.IntentAggression,
		SarcasmProb: 1.0,
		SupportNeed: 1.0,
		Uncertainty: 1.0,
	}

	for i := 0; i < 50; i++ {
		c.Update(emotion)
		for j, lvl := range c.levels {
			if lvl < 0 || lvl > 10 {
				t.Fatalf("turn %d: %s out of range: %v", i+1, hormoneTable[j].name, lvl)
			}
		}
	}
}

func TestDominantStateUnderStress(t *testing.T) {
	c := NewCocktail()
	emotion := domain.NeutralEmotion()
	emotion.Valence = -0.8
	emotion.Arousal = 0.7

	c.Update(emotion)

	if d := c.DominantState(); d != "stressed" {
		t.Errorf("expected stressed dominant state, got %q", d)
	}
}

func TestDominantStateNeutralBelowMargin(t *testing.T) {
	c := NewCocktail()
	c.Restore(map[string]float64{"dopamine": hormoneTable[dopamine].baseline + 0.4})

	if d := c.DominantState(); d != "neutral" {
		t.Errorf("expected neutral when no hormone is 0.5 above baseline, got %q", d)
	}
}

func TestDominantStateTieBreaksInOrder(t *testing.T) {
	c := NewCocktail()
	c.Restore(map[string]float64{
		"dopamine": hormoneTable[dopamine].baseline + 2.0,
		"cortisol": hormoneTable[cortisol].baseline + 2.0,
	})

	// Equal offsets: the earlier hormone in the fixed order wins.
	if d := c.DominantState(); d != "excited" {
		t.Errorf("expected excited on tie, got %q", d)
	}
}

func TestLevelsRoundTrip(t *testing.T) {
	c := NewCocktail()
	emotion := domain.NeutralEmotion()
	emotion.Valence = 0.6
	emotion.Intent = domain.IntentPraise
	c.Update(emotion)

	snapshot := c.Levels()
	if len(snapshot) != numHormones {
		t.Fatalf("expected %d entries, got %d", numHormones, len(snapshot))
	}

	restored := NewCocktail()
	restored.Restore(snapshot)
	if restored.levels != c.levels {
		t.Errorf("snapshot round trip changed levels:\n%v\n%v", c.levels, restored.levels)
	}
}
