package domain

import "context"

// ChatContext gives the LLM minimal context about the conversation.
type ChatContext struct {
	UserID UserID

	// Last N exchanges, oldest first.
	History []*ChatMessage

	// EVCContext is the prompt block assembled from the emotional state:
	// energy summary, response policy, therapeutic note, bot tone.
	EVCContext string
}

// LLMClient defines how the core application interacts with an LLM service.
type LLMClient interface {
	GenerateReply(ctx context.Context, userMessage string, chatCtx ChatContext) (string, error)

	// ExtractEmotion asks the model for a structured emotion-feature JSON
	// for the given text. The raw model output is returned; parsing and
	// validation belong to the caller.
	ExtractEmotion(ctx context.Context, text string) (string, error)
}

// StateStore persists the per-user emotional state between turns.
// GetState returns nil (no error) when the user has no stored state;
// callers substitute a fresh initial state.
type StateStore interface {
	GetState(userID UserID) (*State, error)
	SaveState(userID UserID, state *State) error
}

// MessageStore persists conversation history.
type MessageStore interface {
	AppendMessage(msg *ChatMessage) error
	GetRecentMessages(userID UserID, limit int) ([]*ChatMessage, error)
}
