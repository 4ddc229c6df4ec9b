package chat

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Na1awut/NDLP/internal/app/emotion"
	"github.com/Na1awut/NDLP/internal/domain"
	"github.com/Na1awut/NDLP/internal/evc"
	"github.com/Na1awut/NDLP/internal/observability"
)

const (
	// Last N stored messages handed to the reply generator.
	historyWindow = 10

	lockStripes = 64
)

var (
	ErrEmptyMessage = errors.New("message text is empty")
	ErrEmptyUserID  = errors.New("user id is empty")
)

// Service runs the per-turn pipeline: extract emotion, advance the emotional
// state, assemble the response policy, and generate the reply. Turns for the
// same user are serialized on a striped lock so concurrent requests cannot
// interleave read-update-write on the state.
type Service struct {
	llm       domain.LLMClient
	states    domain.StateStore
	messages  domain.MessageStore
	extractor *emotion.Extractor
	now       func() time.Time

	locks [lockStripes]sync.Mutex
}

func NewService(llm domain.LLMClient, states domain.StateStore, messages domain.MessageStore) *Service {
	return &Service{
		llm:       llm,
		states:    states,
		messages:  messages,
		extractor: emotion.NewExtractor(llm),
		now:       time.Now,
	}
}

type SendMessageInput struct {
	UserID domain.UserID
	Text   string
}

type SendMessageOutput struct {
	Reply        string
	State        domain.State
	Emotion      domain.EmotionFeatures
	Forces       domain.Forces
	Policy       string
	Note         string
	Tone         string
	Alert        bool
	UserMessage  *domain.ChatMessage
	AgentMessage *domain.ChatMessage
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	if in.UserID == "" {
		return nil, ErrEmptyUserID
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyMessage
	}

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	lock := s.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()

	prev, err := s.states.GetState(in.UserID)
	if err != nil {
		log.Error("failed to load state", "error", err)
		return nil, err
	}
	if prev == nil {
		initial := evc.InitialState(now)
		prev = &initial
	}

	features := s.extractor.Extract(ctx, in.Text)

	next, forces := evc.Update(*prev, features, now)

	policy := evc.ResponsePolicy(next.Zone, next.Phase, next.Flags)
	note := evc.TherapeuticNote(next.E, next.DeltaE, next.Turn)
	tone := evc.BotTone(next)

	log.Info("state updated",
		"turn", next.Turn,
		"E", next.E,
		"delta_E", next.DeltaE,
		"zone", next.Zone,
		"phase", next.Phase,
		"dominant", next.DominantState,
		"tone", tone,
		"crisis", next.Flags.Crisis,
	)

	history, err := s.messages.GetRecentMessages(in.UserID, historyWindow)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	reply, err := s.llm.GenerateReply(ctx, in.Text, domain.ChatContext{
		UserID:     in.UserID,
		History:    history,
		EVCContext: buildEVCContext(next, policy, note),
	})
	if err != nil {
		log.Error("reply generation failed", "error", err)
		return nil, err
	}

	userMsg := &domain.ChatMessage{
		ID:        domain.MessageID(uuid.NewString()),
		UserID:    in.UserID,
		Author:    domain.RoleUser,
		Text:      in.Text,
		CreatedAt: now,
		E:         next.E,
		Zone:      next.Zone,
	}
	agentMsg := &domain.ChatMessage{
		ID:        domain.MessageID(uuid.NewString()),
		UserID:    in.UserID,
		Author:    domain.RoleAgent,
		Text:      reply,
		CreatedAt: now,
		E:         next.E,
		Zone:      next.Zone,
	}
	if err := s.messages.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}
	if err := s.messages.AppendMessage(agentMsg); err != nil {
		log.Error("failed to append agent message", "error", err)
		return nil, err
	}

	if err := s.states.SaveState(in.UserID, &next); err != nil {
		log.Error("failed to save state", "error", err)
		return nil, err
	}

	if next.Flags.Crisis {
		log.Warn("crisis alert raised", "E", next.E)
	}

	return &SendMessageOutput{
		Reply:        reply,
		State:        next,
		Emotion:      features,
		Forces:       forces,
		Policy:       policy,
		Note:         note,
		Tone:         tone,
		Alert:        next.Flags.Crisis,
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
	}, nil
}

// GetState returns the user's current emotional state, or a fresh initial
// state for users with no history yet.
func (s *Service) GetState(ctx context.Context, userID domain.UserID) (domain.State, error) {
	if userID == "" {
		return domain.State{}, ErrEmptyUserID
	}

	state, err := s.states.GetState(userID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to load state", "user_id", userID, "error", err)
		return domain.State{}, err
	}
	if state == nil {
		return evc.InitialState(s.now()), nil
	}
	return *state, nil
}

// Reset drops the user's emotional state back to the neutral initial state.
func (s *Service) Reset(ctx context.Context, userID domain.UserID) (domain.State, error) {
	if userID == "" {
		return domain.State{}, ErrEmptyUserID
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	initial := evc.InitialState(s.now())
	if err := s.states.SaveState(userID, &initial); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to reset state", "user_id", userID, "error", err)
		return domain.State{}, err
	}

	observability.LoggerFromContext(ctx).Info("state reset", "user_id", userID)
	return initial, nil
}

func (s *Service) userLock(userID domain.UserID) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%lockStripes]
}

// buildEVCContext renders the emotional-state block injected into the reply
// generator's prompt.
func buildEVCContext(state domain.State, policy, note string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Emotional state: E=%.2f (%s, %s), trend %+.2f, feeling %s.\n",
		state.E, state.Zone, state.Phase, state.DeltaE, state.DominantState)
	fmt.Fprintf(&b, "Response policy: %s\n", policy)
	if note != "" {
		fmt.Fprintf(&b, "Care note: %s\n", note)
	}
	b.WriteString(evc.BotToneInstruction(state))
	return b.String()
}
