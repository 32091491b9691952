// SPDX-License-Identifier: EPL-2.0

package audenhance_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/audenhance"
	"github.com/ik5/audenhance/audio"
	"github.com/ik5/audenhance/enhance"
	"github.com/ik5/audenhance/internal/audiotest"
)

// Example_enhance runs the chunked enhancement on an in-memory signal.
func Example_enhance() {
	cfg := audenhance.DefaultConfig()
	cfg.ChunkDuration = time.Second

	p, err := audenhance.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	preset, _ := enhance.LookupPreset("Podcast")
	buf := audio.NewBuffer(audiotest.Noise(2500, 0.1, 1), 1000)

	out, err := p.Enhance(context.Background(), buf, preset.Params, func(done, total int) {
		fmt.Printf("chunk %d/%d\n", done, total)
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out.Len(), out.Duration())
	// Output:
	// chunk 1/3
	// chunk 2/3
	// chunk 3/3
	// 2500 2.5s
}

// Example_processBatch enhances two uploads, one of which is not audio.
func Example_processBatch() {
	dir, _ := os.MkdirTemp("", "audenhance-example-*")
	defer os.RemoveAll(dir)

	cfg := audenhance.DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.TempDir = dir

	p, err := audenhance.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	uploads := []audenhance.Upload{
		audenhance.BytesUpload("interview.wav", audiotest.SineWAV16(8000, 0.5, 440)),
		audenhance.BytesUpload("notes.wav", []byte("not really a wav file")),
	}

	preset, _ := enhance.LookupPreset("Interview")
	results, err := p.ProcessBatch(context.Background(), uploads, preset.Params, nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%s: %s failed\n", res.Name, audenhance.StageOf(res.Err))
			continue
		}
		fmt.Printf("%s -> %s (%s)\n", res.Name, res.DownloadName, res.MIMEType)
	}
	// Output:
	// interview.wav -> final_interview.wav (audio/wav)
	// notes.wav: decode failed
}
