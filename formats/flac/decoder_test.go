// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/mewkiz/flac/frame"
)

type mockStream struct {
	frames []*frame.Frame
	err    error
	closed bool
}

func (m *mockStream) ParseNext() (*frame.Frame, error) {
	if len(m.frames) == 0 {
		if m.err != nil {
			return nil, m.err
		}
		return nil, io.EOF
	}

	f := m.frames[0]
	m.frames = m.frames[1:]
	return f, nil
}

func (m *mockStream) Close() error {
	m.closed = true
	return nil
}

func newFrame(channels ...[]int32) *frame.Frame {
	f := &frame.Frame{}
	for _, samples := range channels {
		f.Subframes = append(f.Subframes, &frame.Subframe{Samples: samples})
	}
	return f
}

func TestSource_ReadSamplesInterleaves(t *testing.T) {
	t.Parallel()

	stream := &mockStream{frames: []*frame.Frame{
		newFrame([]int32{16384, 8192}, []int32{-16384, -8192}),
		newFrame([]int32{0}, []int32{32767}),
	}}
	s := &source{stream: stream, sampleRate: 44100, channels: 2, bitDepth: 16}

	// dst smaller than one frame's worth forces pending carry-over
	dst := make([]float32, 3)
	n, err := s.ReadSamples(dst)
	if err != nil || n != 3 {
		t.Fatalf("ReadSamples() = %d, %v; want 3, nil", n, err)
	}
	want := []float32{0.5, -0.5, 0.25}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	n, err = s.ReadSamples(dst)
	if err != nil || n != 3 {
		t.Fatalf("second ReadSamples() = %d, %v; want 3, nil", n, err)
	}
	if dst[0] != -0.25 || dst[1] != 0 {
		t.Errorf("second read = %v", dst[:n])
	}

	n, err = s.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("third ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}

	if err := s.Close(); err != nil || !stream.closed {
		t.Errorf("Close() = %v, closed = %v", err, stream.closed)
	}
}

func TestSource_BitDepthScaling(t *testing.T) {
	t.Parallel()

	stream := &mockStream{frames: []*frame.Frame{newFrame([]int32{4194304, -64})}}
	s := &source{stream: stream, sampleRate: 48000, channels: 1, bitDepth: 24}

	dst := make([]float32, 2)
	if _, err := s.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if dst[0] != 0.5 {
		t.Errorf("24-bit half scale = %v, want 0.5", dst[0])
	}
	if dst[1] >= 0 {
		t.Errorf("negative sample decoded as %v", dst[1])
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("crc mismatch")
	s := &source{stream: &mockStream{err: boom}, channels: 1, bitDepth: 16}
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}

	s = &source{stream: &mockStream{frames: []*frame.Frame{newFrame([]int32{1})}}, channels: 2, bitDepth: 16}
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("ReadSamples() error = %v, want ErrChannelMismatch", err)
	}
}

func TestDecoder_DecodeInvalid(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("RIFF....WAVE"))); err == nil {
		t.Error("Decode(non-flac) expected an error")
	}
}
