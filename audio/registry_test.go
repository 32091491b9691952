// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/audenhance/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

type failingDecoder struct{}

func (failingDecoder) Decode(io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

type mockEncoder struct{}

func (mockEncoder) Encode(io.WriteSeeker, *Buffer) error { return nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}
	registry.RegisterDecoder("wav", decoder)

	got, ok := registry.Decoder("wav")
	if !ok {
		t.Fatal("Registry.Decoder() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Decoder() returned different decoder instance")
	}
}

func TestRegistry_ExtensionNormalization(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "mp3"}
	registry.RegisterDecoder(".MP3", decoder)

	for _, ext := range []string{"mp3", ".mp3", "MP3", " .Mp3 "} {
		if got, ok := registry.Decoder(ext); !ok || got != decoder {
			t.Errorf("Registry.Decoder(%q) = %v, %v; want registered decoder", ext, got, ok)
		}
	}
}

func TestRegistry_MultipleFormats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	oggDecoder := &mockDecoder{name: "ogg"}

	registry.RegisterDecoder("wav", wavDecoder)
	registry.RegisterDecoder("mp3", mp3Decoder)
	registry.RegisterDecoder("ogg", oggDecoder)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"ogg", oggDecoder, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Decoder(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Decoder(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Decoder(%q) returned wrong decoder", tt.format)
			}
		})
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := &mockDecoder{name: "first"}
	second := &mockDecoder{name: "second"}

	registry.RegisterDecoder("wav", first)
	registry.RegisterDecoder("wav", second)

	got, _ := registry.Decoder("wav")
	if got != second {
		t.Error("Registry.Decoder() did not return the overwritten decoder")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.RegisterDecoder("wav", &mockDecoder{})
	registry.RegisterDecoder("flac", failingDecoder{})
	registry.RegisterDecoder("mp3", &mockDecoder{})
	registry.RegisterEncoder("wav", mockEncoder{})

	if got, want := registry.DecoderFormats(), []string{"flac", "mp3", "wav"}; !slices.Equal(got, want) {
		t.Errorf("DecoderFormats() = %v, want %v", got, want)
	}
	if got, want := registry.EncoderFormats(), []string{"wav"}; !slices.Equal(got, want) {
		t.Errorf("EncoderFormats() = %v, want %v", got, want)
	}

	if _, ok := registry.Encoder("mp3"); ok {
		t.Error("Registry.Encoder(mp3) ok = true, want false")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.RegisterDecoder("format", decoder)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _ = registry.Decoder("format")
			_ = registry.DecoderFormats()
			done <- true
		}()
	}
	for range 20 {
		<-done
	}

	if got, ok := registry.Decoder("format"); !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func BenchmarkRegistry_Decoder(b *testing.B) {
	registry := NewRegistry()
	registry.RegisterDecoder("wav", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Decoder("wav")
	}
}
