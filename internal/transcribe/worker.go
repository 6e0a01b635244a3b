// Package transcribe adapts the OpenAI-compatible speech endpoint into the
// dictation pipeline's one-buffer-in, text-out transcription contract.
package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/murmurapp/murmur/internal/audio"
	"github.com/murmurapp/murmur/internal/config"
)

const (
	// minSamples is a tenth of a second; shorter buffers cannot contain
	// speech and are answered with empty text without a service call.
	minSamples = audio.SampleRate / 10

	loadProbeTimeout   = 10 * time.Second
	transcribeTimeout  = 60 * time.Second
	transcribeFilename = "utterance.wav"
)

// Hints carries dictionary bias data for one transcription call.
type Hints struct {
	InitialPrompt string
	Hotwords      string
}

// Worker performs synchronous transcription calls. The coordinator dispatches
// each call on a background goroutine and guarantees at most one in flight.
type Worker struct {
	client   *openai.Client
	model    string
	language string
	logger   *slog.Logger

	loaded atomic.Bool
}

// NewWorker builds a worker from speech service config.
func NewWorker(cfg config.SpeechConfig, logger *slog.Logger) *Worker {
	apiKey := config.APIKey(cfg.APIKeyEnv)
	if apiKey == "" {
		// Local whisper servers accept any bearer token.
		apiKey = "unused"
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Worker{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		language: cfg.Language,
		logger:   logger,
	}
}

// LoadModel performs one-time initialization: a readiness probe against the
// speech endpoint. It must be called before Transcribe. A failed probe is
// logged and does not block startup; later calls degrade per-utterance.
func (w *Worker) LoadModel(ctx context.Context) error {
	if w.loaded.Load() {
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, loadProbeTimeout)
	defer cancel()

	start := time.Now()
	if _, err := w.client.ListModels(probeCtx); err != nil {
		if w.logger != nil {
			w.logger.Warn("speech endpoint probe failed; transcription may be unavailable",
				"model", w.model,
				"error", err.Error(),
			)
		}
	} else if w.logger != nil {
		w.logger.Info("speech endpoint ready",
			"model", w.model,
			"probe_ms", time.Since(start).Milliseconds(),
		)
	}

	w.loaded.Store(true)
	return nil
}

// Loaded reports whether LoadModel has completed.
func (w *Worker) Loaded() bool {
	return w.loaded.Load()
}

// Transcribe converts 16kHz mono samples into trimmed text. Empty or
// too-short input returns empty text, not an error. Calling Transcribe
// before LoadModel is a sequencing bug and panics.
func (w *Worker) Transcribe(ctx context.Context, samples []float32, hints Hints) (string, error) {
	if !w.loaded.Load() {
		panic("transcribe: Transcribe called before LoadModel")
	}

	if len(samples) < minSamples {
		return "", nil
	}

	wav := EncodeWAV(samples, audio.SampleRate)

	language := strings.TrimSpace(w.language)
	if language == "auto" {
		language = ""
	}

	reqCtx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	resp, err := w.client.CreateTranscription(reqCtx, openai.AudioRequest{
		Model:    w.model,
		FilePath: transcribeFilename,
		Reader:   bytes.NewReader(wav),
		Prompt:   buildPrompt(hints),
		Language: language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe request: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// buildPrompt folds dictionary hints into the recognizer prompt. The
// endpoint has no dedicated hotword field, so bare words ride along in
// the prompt when no phonetic vocabulary is present.
func buildPrompt(hints Hints) string {
	prompt := strings.TrimSpace(hints.InitialPrompt)
	if prompt != "" {
		return prompt
	}
	hotwords := strings.TrimSpace(hints.Hotwords)
	if hotwords == "" {
		return ""
	}
	return "Vocabulary: " + hotwords + "."
}
