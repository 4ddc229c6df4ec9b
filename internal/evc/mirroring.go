package evc

import "math"

// Bot mirroring — the Pacing & Leading controller. The bot keeps its own
// displayed-tone energy, separate from the user's E, so its tone never
// swings as sharply as the user's state:
//
//	PACE  — drop toward the user's level when they are low
//	MATCH — stay close so they feel understood
//	LEAD  — after enough pacing turns, pull gently upward
const (
	mirrorRatioNegative = 0.6 // fraction of a negative E_user mirrored
	mirrorRatioPositive = 0.8 // fraction of a positive E_user matched
	leadRate            = 0.4 // upward pull per pacing turn past the minimum
	minPacingTurns      = 2
	smoothing           = 0.5 // exponential approach speed to the tone target
	maxLead             = 3.0
	negativeThreshold   = -0.5
)

// BotState is the persisted slice of the mirroring controller.
type BotState struct {
	E              float64 // displayed-tone energy, [-8, 8]
	PacingTurns    int
	NegativeStreak int
}

// Update advances the controller one turn against the user's new energy and
// returns the next state.
func (b BotState) Update(eUser float64) BotState {
	next := b

	if eUser < negativeThreshold {
		next.NegativeStreak++
		next.PacingTurns++
	} else {
		next.NegativeStreak = 0
		// Disengage gradually rather than snapping out of pacing.
		next.PacingTurns = max(0, next.PacingTurns-1)
	}

	mirrorTarget := eUser * mirrorRatioPositive
	if eUser < 0 {
		mirrorTarget = eUser * mirrorRatioNegative
	}

	leadForce := 0.0
	if next.PacingTurns >= minPacingTurns && eUser < 0 {
		leadForce = math.Min(maxLead, leadRate*float64(next.PacingTurns-minPacingTurns))
	}

	target := mirrorTarget + leadForce
	next.E += smoothing * (target - next.E)
	next.E = clamp(next.E, -8, 8)

	return next
}

// Tone maps the bot's energy to a response tone label.
func (b BotState) Tone() string {
	switch {
	case b.E < -3:
		return "deep_empathy"
	case b.E < 0:
		return "gentle_support"
	case b.E < 2:
		return "soft_encouragement"
	default:
		return "hopeful_lead"
	}
}

var toneInstructions = map[string]string{
	"deep_empathy": "Tone: quiet and understanding. Speak softly, show that you feel the weight too. " +
		"Do not rush to comfort or fix anything. Keep it to one or two short sentences of acknowledgement.",
	"gentle_support": "Tone: gentle and non-judgmental. Stay present, listen, hold back advice. " +
		"Ask small follow-up questions so they keep talking.",
	"soft_encouragement": "Tone: lightly encouraging. Start pointing out strengths you notice, " +
		"and praise the courage it took to share.",
	"hopeful_lead": "Tone: leading forward. Invite them to think about goals and what they would like to try, " +
		"and talk about the future in a positive light.",
}

// ToneInstruction returns the style directive for the bot's current tone,
// injected into the reply generator's system context.
func (b BotState) ToneInstruction() string {
	if instr, ok := toneInstructions[b.Tone()]; ok {
		return instr
	}
	return toneInstructions["gentle_support"]
}
