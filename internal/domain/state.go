package domain

import "time"

type UserID string

// Zone is the coarse bucket of emotional energy E.
type Zone string

const (
	ZoneExtremeNegative  Zone = "ExtremeNegative"  // E <= -6
	ZoneNegative         Zone = "Negative"         // -6 < E <= -2
	ZoneNeutral          Zone = "Neutral"          // -2 < E <= 2
	ZonePositive         Zone = "Positive"         // 2 < E <= 6
	ZoneOverheatPositive Zone = "OverheatPositive" // E > 6
)

// Phase is the trend classification derived from (E, ΔE).
type Phase string

const (
	PhaseCrashRecovery Phase = "CrashRecovery" // E <= -6 and rising
	PhaseDeclining     Phase = "Declining"     // ΔE < -0.5
	PhaseStable        Phase = "Stable"        // |ΔE| <= 0.5
	PhaseRising        Phase = "Rising"        // ΔE > 0.5
	PhasePeak          Phase = "Peak"          // E > 6 and declining
)

// Flags are independent per-turn boolean signals. They are recomputed from
// scratch every turn and never merged with the previous turn's set.
type Flags struct {
	Sarcasm         bool `json:"sarcasm"`
	Anger           bool `json:"anger"`
	Anxiety         bool `json:"anxiety"`
	Stress          bool `json:"stress"`
	Crisis          bool `json:"crisis"`
	BoundarySetting bool `json:"boundary_setting"`
	MoodSwing       bool `json:"mood_swing"`
}

// Forces is the legacy three-value scoring: support S and drag D in [0,1],
// sensitivity K in [0.5, 2.5].
type Forces struct {
	S float64 `json:"S"`
	D float64 `json:"D"`
	K float64 `json:"K"`
}

// State is the complete per-user emotional state persisted between turns.
// Only the scalar snapshots survive across calls; the hormone cocktail and
// bot controller are reconstructed from them on every update.
type State struct {
	E       float64 `json:"E"`       // emotional energy, [-10, 10]
	EPrev   float64 `json:"E_prev"`
	ETarget float64 `json:"E_target"` // blended target before rate limiting
	DeltaE  float64 `json:"delta_E"`  // applied change, [-3, 3]

	Zone  Zone  `json:"zone"`
	Phase Phase `json:"phase"`
	Flags Flags `json:"flags"`

	Turn      int       `json:"turn"`
	Timestamp time.Time `json:"timestamp"`

	// Most recent ΔE values, oldest first, at most 5 kept.
	DeltaHistory []float64 `json:"delta_history"`

	// Hormone cocktail snapshot, keyed by hormone name. A partial or stale
	// map is tolerated on restore: missing hormones start at baseline.
	HormoneLevels map[string]float64 `json:"hormone_levels"`

	// Bot mirroring controller state (Pacing & Leading).
	BotE              float64 `json:"bot_E"` // [-8, 8]
	BotPacingTurns    int     `json:"bot_pacing_turns"`
	BotNegativeStreak int     `json:"bot_negative_streak"`

	// Label of the hormone most above its baseline ("neutral" if none).
	DominantState string `json:"dominant_state"`
}

// Clone deep-copies the state, so stores can hand out snapshots without
// sharing the history slice or the hormone map with callers.
func (s State) Clone() State {
	cp := s
	cp.DeltaHistory = append([]float64(nil), s.DeltaHistory...)
	if s.HormoneLevels != nil {
		cp.HormoneLevels = make(map[string]float64, len(s.HormoneLevels))
		for k, v := range s.HormoneLevels {
			cp.HormoneLevels[k] = v
		}
	}
	return cp
}
