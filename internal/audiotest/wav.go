// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV16 builds a canonical 44-byte-header PCM WAV file in memory.
// samples are interleaved when channels > 1.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	data := new(bytes.Buffer)
	_ = binary.Write(data, binary.LittleEndian, samples)

	return WAV(sampleRate, channels, 16, data.Bytes())
}

// WAV wraps raw little-endian PCM data in a canonical WAV header. The
// header fields are written as given, so channels may describe a layout
// data does not actually hold.
func WAV(sampleRate, channels, bitDepth int, data []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * bitDepth / 8)
	dataSize := uint32(len(data))

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate)*uint32(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitDepth))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(data)

	return buf.Bytes()
}

// SineWAV16 builds a mono WAV of the given duration in seconds holding a
// sine at half scale.
func SineWAV16(sampleRate int, seconds float64, frequency float64) []byte {
	n := int(float64(sampleRate) * seconds)
	samples := make([]int16, n)
	for i := range samples {
		v := 0.5 * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
		samples[i] = int16(v * 32767)
	}

	return WAV16(sampleRate, 1, samples)
}
