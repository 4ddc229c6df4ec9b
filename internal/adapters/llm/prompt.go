package llm

import (
	"strings"

	"github.com/Na1awut/NDLP/internal/domain"
)

const baseSystemPrompt = `
You are "Nong Care", an emotional-support companion chatbot.

Your role:
- You listen with warmth and without judgment, in Thai or English, matching the user's language.
- You help the user feel heard before anything else; advice comes second, if at all.
- You are NOT a therapist, doctor, or emergency service and you do NOT give medical or psychiatric diagnoses.

General style guidelines:
- Answer in the SAME LANGUAGE as the user.
- Be concise: a few short sentences, not essays.
- Use simple, everyday language.
- Reflect back what you understood before asking anything.
- Ask at most one gentle follow-up question.

Boundaries and safety:
- If the user mentions self-harm, suicide, or hurting someone, encourage them to seek immediate help from local emergency services or a trusted person.
- Make it clear you cannot replace professional mental health care, especially in crisis situations.
- Never give instructions on how to self-harm or harm others.

You will also receive an "Emotional state" block describing the user's current
emotional energy, a response policy, and a tone instruction. Follow the policy
and tone exactly; they take priority over your default style.
`

const extractionPrompt = `
Analyze the emotional content of the user message below and answer with ONLY a
JSON object, no markdown, no commentary. Use exactly these fields:

{
  "valence": <float -1.0..1.0, negative to positive feeling>,
  "arousal": <float 0.0..1.0, calm to agitated>,
  "dominance": <float 0.0..1.0, submissive to controlling>,
  "intent": <one of "greeting","venting","seeking_help","praise","apology","sarcasm","aggression","neutral","farewell">,
  "sarcasm_prob": <float 0.0..1.0>,
  "support_need": <float 0.0..1.0, how much emotional support the user needs>,
  "uncertainty": <float 0.0..1.0, how unsure or confused the user sounds>,
  "confidence": <float 0.0..1.0, your confidence in this analysis>
}

The message may be in Thai or English.

User message:
`

// BuildSystemPrompt combines the persona with the per-turn emotional-state
// block assembled by the chat service.
func BuildSystemPrompt(evcContext string) string {
	if evcContext == "" {
		return baseSystemPrompt
	}
	var b strings.Builder
	b.WriteString(baseSystemPrompt)
	b.WriteString("\nEmotional state:\n")
	b.WriteString(evcContext)
	return b.String()
}

// BuildExtractionPrompt wraps raw user text in the emotion-analysis request.
func BuildExtractionPrompt(text string) string {
	return extractionPrompt + text
}

// RenderHistory flattens stored messages into a plain-text transcript, oldest
// first, for clients that cannot take structured turns.
func RenderHistory(history []*domain.ChatMessage) string {
	var parts []string
	for _, m := range history {
		role := "user"
		if m.Author == domain.RoleAgent {
			role = "assistant"
		}
		parts = append(parts, role+": "+m.Text)
	}
	return strings.Join(parts, "\n")
}
