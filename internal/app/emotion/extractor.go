package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Na1awut/NDLP/internal/domain"
	"github.com/Na1awut/NDLP/internal/observability"
)

// Extractor turns raw user text into validated emotion features. It asks the
// LLM for a structured reading first and falls back to keyword rules whenever
// the model output is missing or unusable, so the engine always receives a
// well-formed record.
type Extractor struct {
	llm domain.LLMClient
}

func NewExtractor(llm domain.LLMClient) *Extractor {
	return &Extractor{llm: llm}
}

func (x *Extractor) Extract(ctx context.Context, text string) domain.EmotionFeatures {
	log := observability.LoggerFromContext(ctx)

	raw, err := x.llm.ExtractEmotion(ctx, text)
	if err != nil {
		log.Warn("emotion extraction failed, using keyword fallback", "error", err)
		return KeywordFeatures(text)
	}

	features, err := parseFeatures(raw)
	if err != nil {
		log.Warn("unusable emotion payload, using keyword fallback", "error", err)
		return KeywordFeatures(text)
	}
	return features
}

// rawFeatures uses pointers so absent fields keep their neutral defaults
// instead of collapsing to zero.
type rawFeatures struct {
	Valence     *float64 `json:"valence"`
	Arousal     *float64 `json:"arousal"`
	Dominance   *float64 `json:"dominance"`
	Intent      string   `json:"intent"`
	SarcasmProb *float64 `json:"sarcasm_prob"`
	SupportNeed *float64 `json:"support_need"`
	Uncertainty *float64 `json:"uncertainty"`
	Confidence  *float64 `json:"confidence"`
}

func parseFeatures(raw string) (domain.EmotionFeatures, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return domain.EmotionFeatures{}, fmt.Errorf("no JSON object in model output")
	}

	var r rawFeatures
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return domain.EmotionFeatures{}, fmt.Errorf("decoding emotion payload: %w", err)
	}

	f := domain.NeutralEmotion()
	if r.Valence != nil {
		f.Valence = clamp(*r.Valence, -1, 1)
	}
	if r.Arousal != nil {
		f.Arousal = clamp(*r.Arousal, 0, 1)
	}
	if r.Dominance != nil {
		f.Dominance = clamp(*r.Dominance, 0, 1)
	}
	if r.Intent != "" {
		f.Intent = domain.ParseIntent(r.Intent)
	}
	if r.SarcasmProb != nil {
		f.SarcasmProb = clamp(*r.SarcasmProb, 0, 1)
	}
	if r.SupportNeed != nil {
		f.SupportNeed = clamp(*r.SupportNeed, 0, 1)
	}
	if r.Uncertainty != nil {
		f.Uncertainty = clamp(*r.Uncertainty, 0, 1)
	}
	if r.Confidence != nil {
		f.Confidence = clamp(*r.Confidence, 0, 1)
	}
	return f, nil
}

// extractJSON pulls the outermost JSON object out of a model response,
// tolerating markdown fences and surrounding prose.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
