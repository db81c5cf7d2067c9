package intents

import "strings"

// Language values returned by DetectLanguage.
const (
	LangEnglish  = "english"
	LangHindi    = "hindi"
	LangHinglish = "hinglish"
)

var hinglishWords = map[string]bool{
	"kya": true, "hai": true, "hain": true, "mein": true, "main": true,
	"ho": true, "tum": true, "aap": true, "kaise": true, "kaisa": true,
	"nahi": true, "haan": true, "accha": true, "theek": true, "baat": true,
	"karo": true, "karna": true, "chahiye": true, "mujhe": true, "tumhe": true,
	"apna": true, "mera": true, "tera": true, "uska": true, "humara": true,
	"yahan": true, "wahan": true, "batao": true, "bolo": true, "samjho": true,
	"dekho": true, "suno": true, "zaroor": true, "bilkul": true, "bahut": true,
	"thoda": true, "zyada": true, "abhi": true, "phir": true, "lekin": true,
	"aur": true, "ya": true, "matlab": true, "kyun": true, "kab": true,
	"kahan": true, "kaun": true, "kitna": true, "kitni": true,
}

// DetectLanguage classifies input as hindi (Devanagari script), hinglish
// (Hindi words in Roman script) or english. Two Hinglish words anywhere, or
// one in a message of five words or fewer, is enough for hinglish.
func DetectLanguage(text string) string {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return LangHindi
		}
	}

	words := strings.Fields(strings.ToLower(text))
	count := 0
	for _, w := range words {
		if hinglishWords[w] {
			count++
		}
	}
	if count >= 2 || (count == 1 && len(words) <= 5) {
		return LangHinglish
	}
	return LangEnglish
}

// LanguageInstruction returns the system-prompt line for non-English input,
// empty for English.
func LanguageInstruction(language string) string {
	switch language {
	case LangHindi:
		return "\nLANGUAGE: User is writing in Hindi (Devanagari). Respond ONLY in Hindi (Devanagari script).\n"
	case LangHinglish:
		return "\nLANGUAGE: User is writing in Hinglish (Hindi using Roman letters). Respond in Hinglish - casual Hindi using Roman letters, like a friend would text.\n"
	default:
		return ""
	}
}
