package textproc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/murmurapp/murmur/internal/config"
)

const formatRequestTimeout = 20 * time.Second

var emailToneDescriptions = map[int]string{
	1: "warm, friendly, and approachable",
	2: "polite and conversational",
	3: "standard professional",
	4: "formal and business-like",
	5: "very formal, corporate, and authoritative",
}

var promptDetailDescriptions = map[int]string{
	1: "Ultra-concise and direct. Minimize word count ruthlessly.",
	2: "Concise but clear. Remove unnecessary words.",
	3: "Balanced clarity and brevity.",
	4: "Detailed and well-structured. Include context and constraints.",
	5: "Comprehensive and structured. Use sections, bullet points, explicit constraints, and examples where helpful.",
}

// Formatter rewrites transcribed text per format mode, delegating to the
// humanizer service with a deterministic local template fallback. Format
// never fails: service trouble degrades to the template result.
type Formatter struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewFormatter builds a formatter from config. When the service is disabled
// or no credential is configured, only the template path is used.
func NewFormatter(cfg config.FormatterConfig, logger *slog.Logger) *Formatter {
	f := &Formatter{model: cfg.Model, logger: logger}
	if !cfg.Enable {
		return f
	}

	apiKey := config.APIKey(cfg.APIKeyEnv)
	if apiKey == "" {
		return f
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	f.client = openai.NewClientWithConfig(clientCfg)
	return f
}

// Format rewrites text for the given mode. Mode "normal" is the identity.
func (f *Formatter) Format(ctx context.Context, text, mode string, tone, detail int) string {
	if text == "" || mode == config.FormatModeNormal {
		return text
	}

	if f.client != nil {
		formatted, err := f.formatWithService(ctx, text, mode, tone, detail)
		if err == nil {
			return formatted
		}
		if f.logger != nil {
			f.logger.Warn("format service failed; using template fallback",
				"mode", mode,
				"error", err.Error(),
			)
		}
	}

	return formatWithTemplate(text, mode, tone, detail)
}

func (f *Formatter) formatWithService(ctx context.Context, text, mode string, tone, detail int) (string, error) {
	system := systemPrompt(mode, tone, detail)
	if system == "" {
		return text, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, formatRequestTimeout)
	defer cancel()

	resp, err := f.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model:     f.model,
		MaxTokens: 1024,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("format completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("format completion returned no choices")
	}

	formatted := strings.TrimSpace(resp.Choices[0].Message.Content)
	if formatted == "" {
		return "", fmt.Errorf("format completion returned empty text")
	}
	return formatted, nil
}

func systemPrompt(mode string, tone, detail int) string {
	switch mode {
	case config.FormatModeProfessionalEmail:
		desc, ok := emailToneDescriptions[tone]
		if !ok {
			desc = emailToneDescriptions[3]
		}
		return fmt.Sprintf(
			"Rewrite this dictated text as a professional email. Tone: %s (%d/5). "+
				"Maintain the core message but use proper grammar and standard email conventions. "+
				"Output ONLY the formatted text, nothing else.",
			desc, tone,
		)
	case config.FormatModeAIPrompt:
		desc, ok := promptDetailDescriptions[detail]
		if !ok {
			desc = promptDetailDescriptions[3]
		}
		return fmt.Sprintf(
			"Rewrite this dictated text as an AI prompt. Detail level: %s (%d/5). "+
				"Remove filler words, structure for optimal AI comprehension. "+
				"Output ONLY the formatted text, nothing else.",
			desc, detail,
		)
	default:
		return ""
	}
}

// FormatModeOrder is the cycling order used by the format-cycle hotkeys.
var FormatModeOrder = []string{
	config.FormatModeNormal,
	config.FormatModeProfessionalEmail,
	config.FormatModeAIPrompt,
}

// CycleMode steps through format modes by direction (-1 or +1), wrapping.
func CycleMode(current string, direction int) string {
	idx := 0
	for i, mode := range FormatModeOrder {
		if mode == current {
			idx = i
			break
		}
	}
	n := len(FormatModeOrder)
	idx = ((idx+direction)%n + n) % n
	return FormatModeOrder[idx]
}
