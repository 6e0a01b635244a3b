// Package textproc applies pure text transforms to transcribed utterances:
// spacing, capitalization, bullet points, and email shaping based on the
// text preceding the cursor in the focused field.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

const sentenceEnders = ".!?"

var greetingPattern = regexp.MustCompile(
	`(?i)^(hi|hello|hey|dear|good morning|good afternoon|good evening)(\s+\w+)?\s*,?`,
)

var signoffPattern = regexp.MustCompile(
	`(?i)^(best|best regards|regards|thanks|thank you|sincerely|cheers|kind regards` +
		`|warm regards|yours truly|respectfully|take care)\s*,?$`,
)

// Options selects which shaping policies apply.
type Options struct {
	SmartSpacing bool
	BulletMode   bool
	EmailMode    bool
}

// ApplySmartSpacing inserts spacing and capitalization between the preceding
// context and new text. An empty context means no context was available.
func ApplySmartSpacing(context, text string) string {
	if text == "" {
		return text
	}
	if context == "" {
		return " " + text
	}

	last := context[len(context)-1]
	switch {
	case last == '\n' || last == '\r':
		return capitalizeFirst(text)
	case unicode.IsSpace(rune(last)):
		return text
	case strings.ContainsRune(sentenceEnders, rune(last)):
		return " " + capitalizeFirst(text)
	default:
		return " " + text
	}
}

// ApplyBulletMode renders text as a bullet list item, inserting a line break
// when the context does not already end one.
func ApplyBulletMode(context, text string) string {
	if text == "" {
		return text
	}

	bullet := "- " + text
	if context == "" {
		return bullet
	}
	if strings.HasSuffix(context, "\n") || strings.HasSuffix(context, "\r") {
		return bullet
	}
	return "\n" + bullet
}

// ApplyEmailMode adds blank lines around greetings and before sign-offs.
func ApplyEmailMode(text string) string {
	if text == "" {
		return text
	}

	if signoffPattern.MatchString(strings.TrimSpace(text)) {
		return "\n\n" + text
	}

	loc := greetingPattern.FindStringIndex(text)
	if loc != nil {
		greeting := strings.TrimRight(text[:loc[1]], " \t")
		body := strings.TrimLeft(text[loc[1]:], " \t")
		if body != "" {
			return greeting + "\n\n" + body
		}
		return greeting + "\n\n"
	}

	return text
}

// Process applies all enabled shaping policies. Email shaping runs first and
// independently; bullet formatting takes precedence over smart spacing.
func Process(context, text string, opts Options) string {
	if text == "" {
		return text
	}

	result := text
	if opts.EmailMode {
		result = ApplyEmailMode(result)
	}

	switch {
	case opts.BulletMode:
		result = ApplyBulletMode(context, result)
	case opts.SmartSpacing:
		result = ApplySmartSpacing(context, result)
	}
	return result
}

func capitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
