package transcribe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murmurapp/murmur/internal/config"
)

func testWorker() *Worker {
	return NewWorker(config.SpeechConfig{
		BaseURL:   "http://127.0.0.1:1/v1",
		APIKeyEnv: "MURMUR_TEST_UNSET_KEY",
		Model:     "whisper-1",
		Language:  "en",
	}, nil)
}

func TestTranscribeBeforeLoadModelPanics(t *testing.T) {
	w := testWorker()

	require.Panics(t, func() {
		_, _ = w.Transcribe(context.Background(), make([]float32, minSamples), Hints{})
	})
}

func TestTranscribeShortInputReturnsEmptyWithoutNetwork(t *testing.T) {
	w := testWorker()
	w.loaded.Store(true)

	// Below the speech floor: no request is made, so the unreachable
	// endpoint never matters.
	text, err := w.Transcribe(context.Background(), make([]float32, minSamples-1), Hints{})
	require.NoError(t, err)
	require.Empty(t, text)

	text, err = w.Transcribe(context.Background(), nil, Hints{})
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestLoadedReflectsLoadModel(t *testing.T) {
	w := testWorker()
	require.False(t, w.Loaded())

	// The probe endpoint is unreachable; LoadModel still succeeds and
	// marks the worker ready.
	require.NoError(t, w.LoadModel(context.Background()))
	require.True(t, w.Loaded())

	require.NoError(t, w.LoadModel(context.Background()))
}

func TestBuildPrompt(t *testing.T) {
	require.Empty(t, buildPrompt(Hints{}))
	require.Equal(t, "Vocabulary: kubernetes (koo-ber-net-ees).", buildPrompt(Hints{
		InitialPrompt: "Vocabulary: kubernetes (koo-ber-net-ees).",
		Hotwords:      "kubernetes",
	}))
	require.Equal(t, "Vocabulary: grafana, loki.", buildPrompt(Hints{Hotwords: "grafana, loki"}))
}
