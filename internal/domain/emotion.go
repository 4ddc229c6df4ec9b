package domain

// Intent is the coarse purpose of a user message, as labelled by the
// emotion extractor.
type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentVenting     Intent = "venting"
	IntentSeekingHelp Intent = "seeking_help"
	IntentPraise      Intent = "praise"
	IntentApology     Intent = "apology"
	IntentSarcasm     Intent = "sarcasm"
	IntentAggression  Intent = "aggression"
	IntentNeutral     Intent = "neutral"
	IntentFarewell    Intent = "farewell"
)

// ParseIntent maps a raw label to an Intent, defaulting to neutral for
// anything it does not recognize.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentGreeting, IntentVenting, IntentSeekingHelp, IntentPraise,
		IntentApology, IntentSarcasm, IntentAggression, IntentNeutral,
		IntentFarewell:
		return Intent(s)
	default:
		return IntentNeutral
	}
}

// EmotionFeatures is the per-turn emotion record produced by the extractor.
// All scalar fields are pre-validated: valence in [-1,1], the rest in [0,1].
type EmotionFeatures struct {
	Valence     float64 `json:"valence"`      // -1 (negative) .. +1 (positive)
	Arousal     float64 `json:"arousal"`      // 0 (calm) .. 1 (agitated)
	Dominance   float64 `json:"dominance"`    // 0 (submissive) .. 1 (controlling)
	Intent      Intent  `json:"intent"`
	SarcasmProb float64 `json:"sarcasm_prob"`
	SupportNeed float64 `json:"support_need"`
	Uncertainty float64 `json:"uncertainty"`
	Confidence  float64 `json:"confidence"` // extractor's own confidence
}

// NeutralEmotion returns the extractor defaults for a message that carries
// no readable signal.
func NeutralEmotion() EmotionFeatures {
	return EmotionFeatures{
		Valence:     0.0,
		Arousal:     0.5,
		Dominance:   0.5,
		Intent:      IntentNeutral,
		SarcasmProb: 0.0,
		SupportNeed: 0.5,
		Uncertainty: 0.3,
		Confidence:  0.5,
	}
}
