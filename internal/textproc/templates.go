package textproc

import (
	"strings"
	"unicode"

	"github.com/murmurapp/murmur/internal/config"
)

var fillerWords = []string{
	"um", "uh", "like", "you know", "basically", "actually",
	"just", "sort of", "kind of", "i mean", "well",
}

// formatWithTemplate is the deterministic fallback applied when the humanizer
// service is unavailable.
func formatWithTemplate(text, mode string, tone, detail int) string {
	switch mode {
	case config.FormatModeProfessionalEmail:
		return templateProfessionalEmail(text, tone)
	case config.FormatModeAIPrompt:
		return templateAIPrompt(text, detail)
	default:
		return text
	}
}

func templateProfessionalEmail(text string, tone int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	sentences := strings.Split(text, ". ")
	cleaned := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		cleaned = append(cleaned, capitalizeSentence(sentence))
	}
	result := strings.Join(cleaned, ". ")
	if result != "" && !strings.HasSuffix(result, ".") {
		result += "."
	}
	if tone >= 4 {
		result = "Dear recipient,\n\n" + result + "\n\nBest regards"
	}
	return result
}

// capitalizeSentence upcases the first rune and lowercases the rest, so
// shouted dictation still reads as a sentence.
func capitalizeSentence(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(strings.ToLower(text))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func templateAIPrompt(text string, detail int) string {
	result := strings.TrimSpace(text)
	for _, filler := range fillerWords {
		result = strings.ReplaceAll(result, " "+filler+" ", " ")
		if strings.HasPrefix(strings.ToLower(result), filler+" ") {
			result = result[len(filler)+1:]
		}
	}
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}
	result = strings.TrimSpace(result)
	if detail >= 4 && result != "" {
		result = "Task: " + result
	}
	return result
}
