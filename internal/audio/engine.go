package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/jfreymuth/pulse"
)

const (
	// SampleRate is the fixed capture rate expected by the recognizer.
	SampleRate = 16000

	// blockFrames is the requested callback granularity per channel
	// (~32ms at 16kHz).
	blockFrames = 512

	// levelHistoryCap bounds the loudness ring to roughly two seconds
	// of callback history.
	levelHistoryCap = 60
)

// Engine owns the input stream. While armed it buffers captured mono blocks
// for the current recording session; regardless of arm state it maintains a
// bounded history of per-block RMS loudness for live visualization.
type Engine struct {
	input  string
	logger *slog.Logger

	mu       sync.Mutex
	client   *pulse.Client
	stream   *pulse.RecordStream
	device   Device
	channels int
	open     bool
	armed    bool
	blocks   [][]float32

	levelMu sync.Mutex
	levels  []float64
}

// NewEngine creates an engine bound to an input-device preference.
func NewEngine(input string, logger *slog.Logger) *Engine {
	return &Engine{input: input, logger: logger}
}

// OpenStream resolves the input source and starts a continuously running
// 16kHz record stream. Devices that reject mono are opened with up to two
// channels; the callback downmixes to mono by channel averaging.
func (e *Engine) OpenStream(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.open {
		return fmt.Errorf("audio stream already open")
	}

	client, err := pulse.NewClient(
		pulse.ClientApplicationName("murmur"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return fmt.Errorf("connect pulse server: %w", err)
	}

	devices, err := listDevices(client)
	if err != nil {
		client.Close()
		return err
	}
	device, err := ResolveDevice(devices, e.input)
	if err != nil {
		client.Close()
		return err
	}

	source, err := client.SourceByID(device.Name)
	if err != nil {
		client.Close()
		return fmt.Errorf("resolve source %q: %w", device.Name, err)
	}

	channels := device.Channels
	if channels > 2 {
		channels = 2
	}
	if channels < 1 {
		channels = 1
	}

	opts := []pulse.RecordOption{
		pulse.RecordSource(source),
		pulse.RecordSampleRate(SampleRate),
		pulse.RecordBufferFragmentSize(uint32(blockFrames * 4 * channels)),
		pulse.RecordMediaName("murmur dictation"),
	}
	if channels == 2 {
		opts = append(opts, pulse.RecordStereo)
	} else {
		opts = append(opts, pulse.RecordMono)
	}

	stream, err := client.NewRecord(pulse.Float32Writer(e.onBlock), opts...)
	if err != nil {
		client.Close()
		return fmt.Errorf("create pulse record stream: %w", err)
	}

	e.client = client
	e.stream = stream
	e.device = device
	e.channels = channels
	e.open = true
	stream.Start()

	if e.logger != nil {
		e.logger.Info("audio stream open",
			"device", DescribeDevice(device),
			"channels", channels,
			"sample_rate", SampleRate,
		)
	}

	go func() {
		<-ctx.Done()
		e.CloseStream()
	}()

	return nil
}

// CloseStream stops and releases the input stream. Safe to call repeatedly.
func (e *Engine) CloseStream() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return
	}
	if e.stream != nil {
		e.stream.Stop()
		e.stream.Close()
		e.stream = nil
	}
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	e.open = false
	e.armed = false
	e.blocks = nil
}

// Device returns the resolved capture device metadata.
func (e *Engine) Device() Device {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.device
}

// StartRecording arms the engine: subsequent callback blocks are appended
// to a fresh session buffer. Level history restarts with the session.
func (e *Engine) StartRecording() {
	e.mu.Lock()
	e.armed = true
	e.blocks = nil
	e.mu.Unlock()

	e.levelMu.Lock()
	e.levels = nil
	e.levelMu.Unlock()
}

// StopRecording disarms the engine and returns the flattened session buffer,
// or nil when no blocks were captured.
func (e *Engine) StopRecording() []float32 {
	e.mu.Lock()
	e.armed = false
	blocks := e.blocks
	e.blocks = nil
	e.mu.Unlock()

	if len(blocks) == 0 {
		return nil
	}

	total := 0
	for _, block := range blocks {
		total += len(block)
	}
	out := make([]float32, 0, total)
	for _, block := range blocks {
		out = append(out, block...)
	}
	return out
}

// Recording reports whether the engine is currently armed.
func (e *Engine) Recording() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.armed
}

// GetLevels returns exactly count loudness values: the most recent count
// entries, left-padded with zeros when history is shorter.
func (e *Engine) GetLevels(count int) []float64 {
	if count <= 0 {
		return nil
	}

	e.levelMu.Lock()
	history := append([]float64(nil), e.levels...)
	e.levelMu.Unlock()

	out := make([]float64, count)
	if len(history) >= count {
		copy(out, history[len(history)-count:])
		return out
	}
	copy(out[count-len(history):], history)
	return out
}

// onBlock is the stream callback. It runs on the Pulse delivery goroutine
// and must never block: buffer append and level push each hold a narrow lock.
func (e *Engine) onBlock(p []float32) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	mono := e.downmix(p)

	e.mu.Lock()
	if e.armed {
		e.blocks = append(e.blocks, mono)
	}
	e.mu.Unlock()

	e.pushLevel(rms(mono))
	return len(p), nil
}

// downmix averages interleaved channels into a fresh mono block.
func (e *Engine) downmix(p []float32) []float32 {
	e.mu.Lock()
	channels := e.channels
	e.mu.Unlock()

	if channels <= 1 {
		mono := make([]float32, len(p))
		copy(mono, p)
		return mono
	}

	frames := len(p) / channels
	mono := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += p[i*channels+c]
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}

// pushLevel appends one loudness sample, dropping the oldest past capacity.
func (e *Engine) pushLevel(level float64) {
	e.levelMu.Lock()
	e.levels = append(e.levels, level)
	if overflow := len(e.levels) - levelHistoryCap; overflow > 0 {
		copy(e.levels, e.levels[overflow:])
		e.levels = e.levels[:levelHistoryCap]
	}
	e.levelMu.Unlock()
}

// rms computes root-mean-square loudness of one mono block.
func rms(block []float32) float64 {
	if len(block) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range block {
		sum += float64(sample) * float64(sample)
	}
	return math.Sqrt(sum / float64(len(block)))
}
