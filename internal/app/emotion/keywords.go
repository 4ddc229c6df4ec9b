package emotion

import (
	"strings"

	"github.com/Na1awut/NDLP/internal/domain"
)

// Keyword fallback for when the model gives nothing usable. The lists cover
// Thai and English because the bot serves both. This is deliberately coarse:
// its job is to keep the engine fed with a sane reading, not to compete with
// the model.

const fallbackConfidence = 0.4

var (
	crisisPhrases = []string{
		"อยากตาย", "ไม่อยากอยู่แล้ว", "ฆ่าตัวตาย", "ทำร้ายตัวเอง",
		"want to die", "kill myself", "end it all", "hurt myself", "suicide",
	}
	aggressionPhrases = []string{
		"โง่", "เกลียดแก", "ไร้สาระ", "ห่วยแตก",
		"stupid", "idiot", "useless", "shut up", "hate you",
	}
	apologyPhrases = []string{
		"ขอโทษ", "ขอโทด", "ผิดเอง",
		"sorry", "apologize", "my bad", "my fault",
	}
	negativePhrases = []string{
		"เศร้า", "เสียใจ", "เหนื่อย", "เครียด", "ท้อ", "กลัว", "ร้องไห้",
		"sad", "tired", "stressed", "depressed", "exhausted", "awful",
		"terrible", "lonely", "scared", "hopeless",
	}
	praisePhrases = []string{
		"ขอบคุณ", "เก่งมาก", "ดีมาก",
		"thank", "well done", "amazing", "you're great", "appreciate",
	}
	positivePhrases = []string{
		"ดีใจ", "มีความสุข", "สบายใจ", "เยี่ยม", "สนุก",
		"happy", "great", "wonderful", "excited", "relieved", "better now",
	}
	farewellPhrases = []string{
		"ลาก่อน", "บ๊ายบาย", "ไปก่อนนะ",
		"goodbye", "bye", "good night", "see you",
	}
	greetingWords = []string{
		"สวัสดี", "หวัดดี",
		"hello", "hi", "hey",
	}
	sarcasmMarkers = []string{
		"เหรอออ", "จ้าาา", "เยี่ยมเลยนะ",
		"yeah right", "sure sure", "oh great", "how wonderful",
	}
	uncertaintyMarkers = []string{"?", "ไหม", "หรือเปล่า", "มั้ย"}
)

// KeywordFeatures derives emotion features from surface text alone. First
// match wins, ordered from most to least urgent.
func KeywordFeatures(text string) domain.EmotionFeatures {
	lower := strings.ToLower(text)

	f := domain.NeutralEmotion()
	f.Confidence = fallbackConfidence

	switch {
	case containsAny(lower, crisisPhrases):
		f.Valence = -0.9
		f.Arousal = 0.8
		f.Dominance = 0.2
		f.Intent = domain.IntentSeekingHelp
		f.SupportNeed = 1.0
	case containsAny(lower, aggressionPhrases):
		f.Valence = -0.7
		f.Arousal = 0.8
		f.Dominance = 0.8
		f.Intent = domain.IntentAggression
	case containsAny(lower, apologyPhrases):
		f.Valence = 0.1
		f.Arousal = 0.4
		f.Intent = domain.IntentApology
	case containsAny(lower, negativePhrases):
		f.Valence = -0.6
		f.Arousal = 0.6
		f.Intent = domain.IntentVenting
		f.SupportNeed = 0.7
	case containsAny(lower, praisePhrases):
		f.Valence = 0.7
		f.Intent = domain.IntentPraise
	case containsAny(lower, positivePhrases):
		f.Valence = 0.5
		f.Arousal = 0.4
	case containsAny(lower, farewellPhrases):
		f.Valence = 0.1
		f.Arousal = 0.3
		f.Intent = domain.IntentFarewell
	case hasWord(lower, greetingWords) || containsAny(lower, greetingWords[:2]):
		f.Valence = 0.2
		f.Arousal = 0.4
		f.Intent = domain.IntentGreeting
	}

	if containsAny(lower, sarcasmMarkers) {
		f.SarcasmProb = 0.7
	}
	if containsAny(lower, uncertaintyMarkers) {
		f.Uncertainty = 0.6
	}
	// Repeated exclamation or shouting reads as agitation regardless of topic.
	if strings.Count(text, "!") >= 2 || isShouting(text) {
		f.Arousal = clamp(f.Arousal+0.2, 0, 1)
	}
	return f
}

// isShouting reports whether the message has a run of letters in all caps.
func isShouting(text string) bool {
	upper := 0
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
			if upper >= 4 {
				return true
			}
		case r >= 'a' && r <= 'z':
			upper = 0
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// hasWord matches whole tokens only, so "hi" does not fire inside "this".
func hasWord(text string, words []string) bool {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' || r == '!' || r == '?'
	})
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}
