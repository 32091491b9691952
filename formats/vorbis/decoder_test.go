// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type mockOggReader struct {
	data     []float32
	channels int
	err      error
}

func (m *mockOggReader) SampleRate() int { return 44100 }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if len(m.data) == 0 {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	n := copy(p, m.data)
	m.data = m.data[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:        &mockOggReader{data: []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}, channels: 2},
		sampleRate: 44100,
		channels:   2,
	}

	// an odd-sized dst must still be filled with whole frames only
	dst := make([]float32, 5)
	n, err := s.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	if dst[0] != 0.1 || dst[3] != -0.2 {
		t.Errorf("ReadSamples() values = %v", dst[:n])
	}

	n, err = s.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	n, err = s.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("third ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_TooSmallDst(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockOggReader{data: []float32{1, 1}, channels: 2}, channels: 2}
	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(len 1) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_WrapsError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt page")
	s := &source{dec: &mockOggReader{err: boom, channels: 1}, channels: 1}

	if _, err := s.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestDecoder_DecodeInvalid(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("OggS but not really"))); err == nil {
		t.Error("Decode(garbage) expected an error")
	}
}
