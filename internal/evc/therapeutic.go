package evc

// Therapeutic bias: when the user's energy is negative, the support force is
// nudged upward so the system leans toward encouragement exactly when it is
// needed. The bias is zero at E >= 0 and grows strictly with depth into the
// negative range; the (1-S) term keeps the biased value inside [0,1] without
// saturating early.
func applyTherapeuticBias(s, e float64) float64 {
	if e >= 0 {
		return s
	}
	depth := -e / 10.0 // (0, 1]
	biased := s + 0.15*depth*(1.0-s) + 0.05*depth
	return clamp(biased, 0, 1)
}

// TherapeuticNote returns a short caregiver hint for the reply generator, or
// an empty string when the state needs no special handling.
func TherapeuticNote(e, deltaE float64, turn int) string {
	switch {
	case e <= -6:
		return "The user is in a very low place. Prioritize safety: ask gently whether they feel safe right now, and remind them help is available."
	case e <= -2 && deltaE < -0.5:
		return "Mood is sliding. Slow down, check in proactively, and avoid problem-solving until the user feels heard."
	case e < 0 && deltaE > 0.5:
		return "The user is climbing out of a low. Acknowledge the effort quietly without celebrating too early."
	default:
		return ""
	}
}
