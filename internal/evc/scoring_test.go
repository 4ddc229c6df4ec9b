package evc

import (
	"math"
	"testing"
	"time"

	"github.com/Na1awut/NDLP/internal/domain"
)

func TestSupportForcePraise(t *testing.T) {
	prev := InitialState(time.Time{})

	emotion := domain.NeutralEmotion()
	emotion.Valence = 0.8
	emotion.Intent = domain.IntentPraise

	forces := ComputeForces(emotion, prev)

	// 0.4*0.8 + 0.2*0.7 + 0.1*0.5
	if math.Abs(forces.S-0.51) > 1e-9 {
		t.Errorf("expected S=0.51, got %v", forces.S)
	}
}

func TestSupportForcePartialCreditForPositiveValence(t *testing.T) {
	prev := InitialState(time.Time{})

	plain := domain.NeutralEmotion()
	plain.Valence = 0.8

	praised := plain
	praised.Intent = domain.IntentPraise

	sPlain := ComputeForces(plain, prev).S
	sPraised := ComputeForces(praised, prev).S
	if sPlain >= sPraised {
		t.Errorf("plain positive valence (%v) must score below explicit praise (%v)", sPlain, sPraised)
	}
	if sPlain <= ComputeForces(domain.NeutralEmotion(), prev).S {
		t.Errorf("positive valence must still add support, got %v", sPlain)
	}
}

func TestSupportForceTrustBonusFromPositiveState(t *testing.T) {
	emotion := domain.NeutralEmotion()

	low := InitialState(time.Time{})
	high := low
	high.E = 2.0

	sLow := ComputeForces(emotion, low).S
	sHigh := ComputeForces(emotion, high).S

	if math.Abs((sHigh-sLow)-0.03) > 1e-9 {
		t.Errorf("expected trust bonus of 0.03, got %v", sHigh-sLow)
	}
}

func TestDragForce(t *testing.T) {
	emotion := domain.NeutralEmotion()
	emotion.Valence = -0.8
	emotion.SarcasmProb = 0.7

	forces := ComputeForces(emotion, InitialState(time.Time{}))

	// 0.3*0.8 + 0.25*0.7 + 0.25*0.3
	if math.Abs(forces.D-0.49) > 1e-9 {
		t.Errorf("expected D=0.49, got %v", forces.D)
	}
}

func TestDragForceConflictNeedsDominance(t *testing.T) {
	meek := domain.NeutralEmotion()
	meek.Valence = -0.6
	meek.Dominance = 0.3

	pushy := meek
	pushy.Dominance = 0.8

	dMeek := ComputeForces(meek, InitialState(time.Time{})).D
	dPushy := ComputeForces(pushy, InitialState(time.Time{})).D
	if dPushy <= dMeek {
		t.Errorf("dominant negativity (%v) must out-drag submissive (%v)", dPushy, dMeek)
	}
}

func TestSensitivityReadsPreviousFlags(t *testing.T) {
	emotion := domain.NeutralEmotion()
	emotion.Arousal = 0.8

	calm := InitialState(time.Time{})
	charged := calm
	charged.Flags = domain.Flags{Anger: true, Crisis: true}

	kCalm := ComputeForces(emotion, calm).K
	kCharged := ComputeForces(emotion, charged).K

	// 1.0 + 0.3*0.8 + 0.2*0.3 + 0.4*0.8
	if math.Abs(kCharged-1.62) > 1e-9 {
		t.Errorf("expected K=1.62 with anger+crisis history, got %v", kCharged)
	}
	if kCharged <= kCalm {
		t.Errorf("risky history must raise K: %v vs %v", kCharged, kCalm)
	}
}

func TestSensitivityRiskCapped(t *testing.T) {
	emotion := domain.NeutralEmotion()
	emotion.Arousal = 0.8

	prev := InitialState(time.Time{})
	prev.Flags = domain.Flags{Anger: true, Anxiety: true, Stress: true, Sarcasm: true, Crisis: true}

	k := ComputeForces(emotion, prev).K

	// Risk sums to 1.35 but caps at 1.0: 1.0 + 0.24 + 0.06 + 0.4
	if math.Abs(k-1.7) > 1e-9 {
		t.Errorf("expected K=1.7 at the risk cap, got %v", k)
	}
}

func TestForceRangesAtExtremes(t *testing.T) {
	extremes := []domain.EmotionFeatures{
		{Valence: 1, Arousal: 1, Dominance: 1, Intent: domain.IntentPraise},
		{Valence: -1, Arousal: 1, Dominance: 1, Intent: domain.IntentAggression, SarcasmProb: 1, SupportNeed: 1, Uncertainty: 1},
		{},
	}
	prev := InitialState(time.Time{})
	prev.Flags = domain.Flags{Anger: true, Crisis: true}

	for _, e := range extremes {
		f := ComputeForces(e, prev)
		if f.S < 0 || f.S > 1 {
			t.Errorf("S out of range for %+v: %v", e, f.S)
		}
		if f.D < 0 || f.D > 1 {
			t.Errorf("D out of range for %+v: %v", e, f.D)
		}
		if f.K < 0.5 || f.K > 2.5 {
			t.Errorf("K out of range for %+v: %v", e, f.K)
		}
	}
}
