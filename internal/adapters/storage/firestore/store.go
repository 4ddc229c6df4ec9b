package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Na1awut/NDLP/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed state and message store.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) usersCol() *firestore.CollectionRef {
	return s.client.Collection("users")
}

func (s *Store) userDoc(id domain.UserID) *firestore.DocumentRef {
	return s.usersCol().Doc(string(id))
}

func (s *Store) messagesCol(userID domain.UserID) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("messages")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type flagsDoc struct {
	Sarcasm         bool `firestore:"sarcasm"`
	Anger           bool `firestore:"anger"`
	Anxiety         bool `firestore:"anxiety"`
	Stress          bool `firestore:"stress"`
	Crisis          bool `firestore:"crisis"`
	BoundarySetting bool `firestore:"boundary_setting"`
	MoodSwing       bool `firestore:"mood_swing"`
}

type stateDoc struct {
	E       float64 `firestore:"e"`
	EPrev   float64 `firestore:"e_prev"`
	ETarget float64 `firestore:"e_target"`
	DeltaE  float64 `firestore:"delta_e"`

	Zone  string   `firestore:"zone"`
	Phase string   `firestore:"phase"`
	Flags flagsDoc `firestore:"flags"`

	Turn      int       `firestore:"turn"`
	Timestamp time.Time `firestore:"timestamp"`

	DeltaHistory  []float64          `firestore:"delta_history"`
	HormoneLevels map[string]float64 `firestore:"hormone_levels"`

	BotE              float64 `firestore:"bot_e"`
	BotPacingTurns    int     `firestore:"bot_pacing_turns"`
	BotNegativeStreak int     `firestore:"bot_negative_streak"`

	DominantState string `firestore:"dominant_state"`
}

type messageDoc struct {
	Author    string    `firestore:"author"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
	E         float64   `firestore:"e"`
	Zone      string    `firestore:"zone"`
}

// ─────────────────────────────────────────
// StateStore implementation
// ─────────────────────────────────────────

func (s *Store) GetState(userID domain.UserID) (*domain.State, error) {
	ctx := context.Background()

	snap, err := s.userDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("firestore GetState: %w", err)
	}

	var doc stateDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetState decode: %w", err)
	}

	return &domain.State{
		E:       doc.E,
		EPrev:   doc.EPrev,
		ETarget: doc.ETarget,
		DeltaE:  doc.DeltaE,
		Zone:    domain.Zone(doc.Zone),
		Phase:   domain.Phase(doc.Phase),
		Flags: domain.Flags{
			Sarcasm:         doc.Flags.Sarcasm,
			Anger:           doc.Flags.Anger,
			Anxiety:         doc.Flags.Anxiety,
			Stress:          doc.Flags.Stress,
			Crisis:          doc.Flags.Crisis,
			BoundarySetting: doc.Flags.BoundarySetting,
			MoodSwing:       doc.Flags.MoodSwing,
		},
		Turn:              doc.Turn,
		Timestamp:         doc.Timestamp,
		DeltaHistory:      doc.DeltaHistory,
		HormoneLevels:     doc.HormoneLevels,
		BotE:              doc.BotE,
		BotPacingTurns:    doc.BotPacingTurns,
		BotNegativeStreak: doc.BotNegativeStreak,
		DominantState:     doc.DominantState,
	}, nil
}

func (s *Store) SaveState(userID domain.UserID, state *domain.State) error {
	ctx := context.Background()

	doc := stateDoc{
		E:       state.E,
		EPrev:   state.EPrev,
		ETarget: state.ETarget,
		DeltaE:  state.DeltaE,
		Zone:    string(state.Zone),
		Phase:   string(state.Phase),
		Flags: flagsDoc{
			Sarcasm:         state.Flags.Sarcasm,
			Anger:           state.Flags.Anger,
			Anxiety:         state.Flags.Anxiety,
			Stress:          state.Flags.Stress,
			Crisis:          state.Flags.Crisis,
			BoundarySetting: state.Flags.BoundarySetting,
			MoodSwing:       state.Flags.MoodSwing,
		},
		Turn:              state.Turn,
		Timestamp:         state.Timestamp,
		DeltaHistory:      state.DeltaHistory,
		HormoneLevels:     state.HormoneLevels,
		BotE:              state.BotE,
		BotPacingTurns:    state.BotPacingTurns,
		BotNegativeStreak: state.BotNegativeStreak,
		DominantState:     state.DominantState,
	}

	if _, err := s.userDoc(userID).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveState: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.ChatMessage) error {
	ctx := context.Background()

	doc := messageDoc{
		Author:    string(msg.Author),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		E:         msg.E,
		Zone:      string(msg.Zone),
	}

	if _, err := s.messagesCol(msg.UserID).Doc(string(msg.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}

	return s.pruneMessages(ctx, msg.UserID)
}

// pruneMessages drops everything beyond the newest MaxStoredMessages.
func (s *Store) pruneMessages(ctx context.Context, userID domain.UserID) error {
	iter := s.messagesCol(userID).
		OrderBy("created_at", firestore.Desc).
		Offset(domain.MaxStoredMessages).
		Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("firestore pruneMessages: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore pruneMessages delete: %w", err)
		}
	}
}

func (s *Store) GetRecentMessages(userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	ctx := context.Background()

	q := s.messagesCol(userID).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var newestFirst []*domain.ChatMessage
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetRecentMessages: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		newestFirst = append(newestFirst, &domain.ChatMessage{
			ID:        domain.MessageID(snap.Ref.ID),
			UserID:    userID,
			Author:    domain.Role(doc.Author),
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt,
			E:         doc.E,
			Zone:      domain.Zone(doc.Zone),
		})
	}

	// Callers expect oldest first.
	out := make([]*domain.ChatMessage, len(newestFirst))
	for i, m := range newestFirst {
		out[len(out)-1-i] = m
	}
	return out, nil
}
