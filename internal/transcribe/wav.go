package transcribe

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeWAV renders float32 samples as a 16-bit PCM mono WAV file in memory.
func EncodeWAV(samples []float32, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)

	dataSize := len(samples) * 2
	byteRate := sampleRate * channels * (bitsPerSample / 8)
	blockAlign := channels * (bitsPerSample / 8)

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	writeUint32(&buf, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	writeUint32(&buf, 16)
	writeUint16(&buf, 1) // PCM
	writeUint16(&buf, channels)
	writeUint32(&buf, uint32(sampleRate))
	writeUint32(&buf, uint32(byteRate))
	writeUint16(&buf, uint16(blockAlign))
	writeUint16(&buf, bitsPerSample)
	buf.WriteString("data")
	writeUint32(&buf, uint32(dataSize))

	for _, sample := range samples {
		buf.Write(pcm16(sample))
	}

	return buf.Bytes()
}

// pcm16 converts one float sample in [-1, 1] to little-endian int16 bytes.
func pcm16(sample float32) []byte {
	clamped := math.Max(-1, math.Min(1, float64(sample)))
	value := int16(math.Round(clamped * math.MaxInt16))
	return []byte{byte(value), byte(uint16(value) >> 8)}
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
