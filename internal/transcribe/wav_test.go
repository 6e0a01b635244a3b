package transcribe

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	wav := EncodeWAV([]float32{0, 0.5, -0.5}, 16000)
	require.Len(t, wav, 44+6)

	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "WAVE", string(wav[8:12]))
	require.Equal(t, "fmt ", string(wav[12:16]))
	require.Equal(t, "data", string(wav[36:40]))

	require.Equal(t, uint32(36+6), binary.LittleEndian.Uint32(wav[4:8]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))  // PCM
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))  // mono
	require.Equal(t, uint32(16000), binary.LittleEndian.Uint32(wav[24:28]))
	require.Equal(t, uint32(32000), binary.LittleEndian.Uint32(wav[28:32])) // byte rate
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]))    // block align
	require.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	require.Equal(t, uint32(6), binary.LittleEndian.Uint32(wav[40:44]))
}

func TestEncodeWAVSampleConversion(t *testing.T) {
	wav := EncodeWAV([]float32{0, 1, -1, 2, -2}, 16000)
	data := wav[44:]

	samples := make([]int16, 5)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
	}

	require.Equal(t, int16(0), samples[0])
	require.Equal(t, int16(32767), samples[1])
	require.Equal(t, int16(-32767), samples[2])
	// Out-of-range input clamps instead of wrapping.
	require.Equal(t, int16(32767), samples[3])
	require.Equal(t, int16(-32767), samples[4])
}

func TestEncodeWAVEmptyInput(t *testing.T) {
	wav := EncodeWAV(nil, 16000)
	require.Len(t, wav, 44)
	require.Equal(t, uint32(0), binary.LittleEndian.Uint32(wav[40:44]))
}
