package evc

import (
	"reflect"
	"testing"
	"time"

	"github.com/Na1awut/NDLP/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestInitialStateIsNeutral(t *testing.T) {
	state := InitialState(testNow)

	if state.E != 0 {
		t.Errorf("expected E=0, got %v", state.E)
	}
	if state.Zone != domain.ZoneNeutral {
		t.Errorf("expected neutral zone, got %v", state.Zone)
	}
	if state.Phase != domain.PhaseStable {
		t.Errorf("expected stable phase, got %v", state.Phase)
	}
	if state.Turn != 0 {
		t.Errorf("expected turn=0, got %d", state.Turn)
	}
	if len(state.DeltaHistory) != 0 {
		t.Errorf("expected empty delta history, got %v", state.DeltaHistory)
	}
	if state.DominantState != "neutral" {
		t.Errorf("expected neutral dominant state, got %q", state.DominantState)
	}
	if len(state.HormoneLevels) != numHormones {
		t.Fatalf("expected %d hormone levels, got %d", numHormones, len(state.HormoneLevels))
	}
	for i, spec := range hormoneTable {
		if state.HormoneLevels[spec.name] != spec.baseline {
			t.Errorf("hormone %d (%s): expected baseline %v, got %v",
				i, spec.name, spec.baseline, state.HormoneLevels[spec.name])
		}
	}
}

func TestPositiveEmotionIncreasesE(t *testing.T) {
	state := InitialState(testNow)

	emotion := domain.NeutralEmotion()
	emotion.Valence = 0.8
	emotion.Intent = domain.IntentPraise

	next, _ := Update(state, emotion, testNow)

	if next.E <= 0 {
		t.Errorf("expected E > 0 after praise, got %v", next.E)
	}
	if next.Turn != 1 {
		t.Errorf("expected turn=1, got %d", next.Turn)
	}
}

func TestNegativeEmotionDecreasesE(t *testing.T) {
	state := InitialState(testNow)

	emotion := domain.NeutralEmotion()
	emotion.Valence = -0.8
	emotion.Arousal = 0.7

	next, _ := Update(state, emotion, testNow)

	if next.E >= 0 {
		t.Errorf("expected E < 0 after negative emotion, got %v", next.E)
	}
}

func TestEStaysWithinBounds(t *testing.T) {
	extremes := []domain.EmotionFeatures{
		{Valence: 1.0, Arousal: 1.0, Dominance: 0.5, Intent: domain.IntentPraise, SupportNeed: 0.0},
		{Valence: -1.0, Arousal: 1.0, Dominance: 0.9, Intent: domain.IntentAggression, SarcasmProb: 1.0, SupportNeed: 1.0, Uncertainty: 1.0},
	}

	for _, emotion := range extremes {
		state := InitialState(testNow)
		for i := 0; i < 20; i++ {
			state, _ = Update(state, emotion, testNow)

			if state.E < -10 || state.E > 10 {
				t.Fatalf("turn %d: E out of bounds: %v", i+1, state.E)
			}
			for name, lvl := range state.HormoneLevels {
				if lvl < 0 || lvl > 10 {
					t.Fatalf("turn %d: hormone %s out of bounds: %v", i+1, name, lvl)
				}
			}
		}
	}
}

func TestDeltaERateLimited(t *testing.T) {
	state := InitialState(testNow)
	emotion := domain.NeutralEmotion()
	emotion.Valence = 1.0
	emotion.Arousal = 1.0
	emotion.Intent = domain.IntentPraise

	for i := 0; i < 10; i++ {
		state, _ = Update(state, emotion, testNow)
		if state.DeltaE < -maxDelta || state.DeltaE > maxDelta {
			t.Fatalf("turn %d: delta_E %v exceeds rate limit", i+1, state.DeltaE)
		}
	}
}

func TestNoBipolarJumps(t *testing.T) {
	state := InitialState(testNow)
	state.E = 8.0

	emotion := domain.NeutralEmotion()
	emotion.Valence = -1.0
	emotion.Arousal = 1.0
	emotion.SupportNeed = 1.0

	next, _ := Update(state, emotion, testNow)

	// The blended target is far below E-3, so the step clamps exactly.
	if next.DeltaE != -maxDelta {
		t.Errorf("expected delta_E=%v, got %v", -maxDelta, next.DeltaE)
	}
	if next.E != 5.0 {
		t.Errorf("expected E=5 after clamped drop from 8, got %v", next.E)
	}
}

func TestCrisisFlagTracksEnergyExactly(t *testing.T) {
	state := InitialState(testNow)

	emotion := domain.NeutralEmotion()
	emotion.Valence = -1.0
	emotion.Arousal = 1.0
	emotion.SupportNeed = 1.0

	for i := 0; i < 12; i++ {
		state, _ = Update(state, emotion, testNow)

		wantCrisis := state.E <= -6
		if state.Flags.Crisis != wantCrisis {
			t.Fatalf("turn %d: crisis=%v but E=%v", i+1, state.Flags.Crisis, state.E)
		}
	}

	if state.E >= -1 {
		t.Errorf("expected sustained extreme negativity to push E well below zero, got %v", state.E)
	}
}

func TestUpdateIsPure(t *testing.T) {
	state := InitialState(testNow)
	emotion := domain.NeutralEmotion()
	emotion.Valence = -0.6
	emotion.Arousal = 0.8
	emotion.Intent = domain.IntentVenting

	// A couple of turns first, so prev carries history and hormone drift.
	state, _ = Update(state, emotion, testNow)
	state, _ = Update(state, emotion, testNow)

	next1, forces1 := Update(state, emotion, testNow)
	next2, forces2 := Update(state, emotion, testNow)

	if !reflect.DeepEqual(next1, next2) {
		t.Errorf("identical inputs produced different states:\n%+v\n%+v", next1, next2)
	}
	if forces1 != forces2 {
		t.Errorf("identical inputs produced different forces: %+v vs %+v", forces1, forces2)
	}
}

func TestDeltaHistoryCapped(t *testing.T) {
	state := InitialState(testNow)
	emotion := domain.NeutralEmotion()
	emotion.Valence = 0.5

	for i := 0; i < 8; i++ {
		state, _ = Update(state, emotion, testNow)
	}

	if len(state.DeltaHistory) != deltaHistorySize {
		t.Fatalf("expected history of %d, got %d", deltaHistorySize, len(state.DeltaHistory))
	}
	if last := state.DeltaHistory[len(state.DeltaHistory)-1]; last != state.DeltaE {
		t.Errorf("expected newest history entry %v to equal delta_E %v", last, state.DeltaE)
	}
}

func TestTimestampAndTurnAdvance(t *testing.T) {
	state := InitialState(testNow)
	later := testNow.Add(5 * time.Minute)

	next, _ := Update(state, domain.NeutralEmotion(), later)

	if !next.Timestamp.Equal(later) {
		t.Errorf("expected injected timestamp %v, got %v", later, next.Timestamp)
	}
	if next.Turn != 1 {
		t.Errorf("expected turn=1, got %d", next.Turn)
	}
	if next.EPrev != state.E {
		t.Errorf("expected E_prev=%v, got %v", state.E, next.EPrev)
	}
}

func TestForcesReturnedInValidRanges(t *testing.T) {
	state := InitialState(testNow)
	emotion := domain.NeutralEmotion()
	emotion.Valence = -0.4
	emotion.SarcasmProb = 0.6

	_, forces := Update(state, emotion, testNow)

	if forces.S < 0 || forces.S > 1 {
		t.Errorf("S out of range: %v", forces.S)
	}
	if forces.D < 0 || forces.D > 1 {
		t.Errorf("D out of range: %v", forces.D)
	}
	if forces.K < 0.5 || forces.K > 2.5 {
		t.Errorf("K out of range: %v", forces.K)
	}
}

func TestBotToneAccessors(t *testing.T) {
	state := InitialState(testNow)
	state.BotE = -5.0

	if tone := BotTone(state); tone != "deep_empathy" {
		t.Errorf("expected deep_empathy at bot E=-5, got %q", tone)
	}
	if instr := BotToneInstruction(state); instr == "" {
		t.Error("expected non-empty tone instruction")
	}
}

func TestFiveTurnConversation(t *testing.T) {
	state := InitialState(testNow)

	// Greeting.
	emotion := domain.NeutralEmotion()
	emotion.Valence = 0.2
	emotion.Intent = domain.IntentGreeting
	state, _ = Update(state, emotion, testNow)
	if state.Turn != 1 {
		t.Fatalf("expected turn 1, got %d", state.Turn)
	}
	if state.Zone != domain.ZoneNeutral {
		t.Fatalf("expected neutral zone after greeting, got %v", state.Zone)
	}

	// Two turns of venting.
	emotion = domain.NeutralEmotion()
	emotion.Valence = -0.7
	emotion.Arousal = 0.7
	emotion.Intent = domain.IntentVenting
	emotion.SupportNeed = 0.8
	state, _ = Update(state, emotion, testNow)
	if state.E >= state.EPrev {
		t.Fatalf("expected E to drop while venting, got %v from %v", state.E, state.EPrev)
	}
	state, _ = Update(state, emotion, testNow)

	// Easing off.
	emotion = domain.NeutralEmotion()
	emotion.Valence = -0.2
	emotion.Arousal = 0.4
	state, _ = Update(state, emotion, testNow)

	// Thanks for listening.
	emotion = domain.NeutralEmotion()
	emotion.Valence = 0.6
	emotion.Arousal = 0.4
	emotion.Intent = domain.IntentPraise
	state, _ = Update(state, emotion, testNow)

	if state.DeltaE <= 0 {
		t.Errorf("expected improving delta_E on the praise turn, got %v", state.DeltaE)
	}
	if state.Turn != 5 {
		t.Errorf("expected turn 5, got %d", state.Turn)
	}
}
