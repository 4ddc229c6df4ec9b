// Package evc implements the emotional-state simulation engine: the hormone
// cocktail, the legacy force model it is blended with, zone/phase/flag
// classification, response-policy assembly, and the bot mirroring controller.
// The package is pure computation — no I/O, no hidden state; identical
// (state, emotion, now) inputs always produce identical outputs.
package evc

import (
	"math"
	"time"

	"github.com/Na1awut/NDLP/internal/domain"
)

const (
	maxDelta         = 3.0 // rate limit on |ΔE| per turn
	deltaHistorySize = 5

	hormonalWeight = 0.7 // share of the hormonal composite in the blend
	forcesWeight   = 0.3 // share of the legacy force target
)

// Update is the per-turn state transition. It reconstructs the cocktail and
// bot controller from prev, runs the full pipeline against the turn's
// emotion features, and returns the next state plus the biased forces.
func Update(prev domain.State, emotion domain.EmotionFeatures, now time.Time) (domain.State, domain.Forces) {
	ePrev := prev.E

	// Hormonal model.
	cocktail := NewCocktail()
	if len(prev.HormoneLevels) > 0 {
		cocktail.Restore(prev.HormoneLevels)
	}
	cocktail.Update(emotion)
	eHormonal := cocktail.Energy()

	// Legacy force model, with the therapeutic bias folded into S.
	forces := ComputeForces(emotion, prev)
	sBiased := applyTherapeuticBias(forces.S, ePrev)
	forces.S = round4(sBiased)

	eTargetForces := clamp(forces.K*(sBiased-forces.D)*10, -10, 10)

	// Blend, then rate-limit the step.
	eBlended := hormonalWeight*eHormonal + forcesWeight*eTargetForces
	deltaE := clamp(eBlended-ePrev, -maxDelta, maxDelta)
	eNext := clamp(ePrev+deltaE, -10, 10)

	zone := ClassifyZone(eNext)
	phase := ClassifyPhase(eNext, deltaE)
	flags := ComputeFlags(emotion, eNext)

	history := append(append([]float64(nil), prev.DeltaHistory...), round4(deltaE))
	if len(history) > deltaHistorySize {
		history = history[len(history)-deltaHistorySize:]
	}

	bot := BotState{
		E:              prev.BotE,
		PacingTurns:    prev.BotPacingTurns,
		NegativeStreak: prev.BotNegativeStreak,
	}.Update(eNext)

	next := domain.State{
		E:                 round4(eNext),
		EPrev:             round4(ePrev),
		ETarget:           round4(eBlended),
		DeltaE:            round4(deltaE),
		Zone:              zone,
		Phase:             phase,
		Flags:             flags,
		Turn:              prev.Turn + 1,
		Timestamp:         now,
		DeltaHistory:      history,
		HormoneLevels:     cocktail.Levels(),
		BotE:              round4(bot.E),
		BotPacingTurns:    bot.PacingTurns,
		BotNegativeStreak: bot.NegativeStreak,
		DominantState:     cocktail.DominantState(),
	}

	return next, forces
}

// InitialState builds the neutral starting state used for new sessions and
// explicit resets: E=0, neutral zone, stable phase, baseline hormones, bot
// controller at rest.
func InitialState(now time.Time) domain.State {
	return domain.State{
		E:             0,
		EPrev:         0,
		ETarget:       0,
		DeltaE:        0,
		Zone:          domain.ZoneNeutral,
		Phase:         domain.PhaseStable,
		Flags:         domain.Flags{},
		Turn:          0,
		Timestamp:     now,
		DeltaHistory:  []float64{},
		HormoneLevels: NewCocktail().Levels(),
		DominantState: "neutral",
	}
}

// BotTone returns the bot's tone label for a stored state.
func BotTone(state domain.State) string {
	return BotState{E: state.BotE, PacingTurns: state.BotPacingTurns}.Tone()
}

// BotToneInstruction returns the style directive matching the bot's tone for
// a stored state, for injection into the reply generator's prompt.
func BotToneInstruction(state domain.State) string {
	return BotState{E: state.BotE, PacingTurns: state.BotPacingTurns}.ToneInstruction()
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
