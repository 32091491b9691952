// SPDX-License-Identifier: EPL-2.0

package chunk

import (
	"fmt"
	"iter"

	"github.com/ik5/audenhance/audio"
)

// ProgressFunc is called after each chunk with the number of chunks done
// so far and the announced total.
type ProgressFunc func(done, total int)

// Recombiner concatenates processed chunks in index order. Adjacent chunks
// are butted together with no crossfade.
type Recombiner struct {
	sampleRate int
	total      int
	progress   ProgressFunc

	next    int
	samples []float64
}

// NewRecombiner prepares to receive total chunks at sampleRate. A zero
// total disables the upper bound. progress may be nil.
func NewRecombiner(sampleRate, total int, progress ProgressFunc) *Recombiner {
	return &Recombiner{
		sampleRate: sampleRate,
		total:      total,
		progress:   progress,
	}
}

// Add appends c. Chunks must arrive with indexes 0, 1, 2, ...
func (r *Recombiner) Add(c Chunk) error {
	if c.Index != r.next {
		return fmt.Errorf("%w: got %d, want %d", ErrOutOfOrder, c.Index, r.next)
	}
	if c.SampleRate != r.sampleRate {
		return fmt.Errorf("%w: %d != %d", ErrRateMismatch, c.SampleRate, r.sampleRate)
	}
	if r.total > 0 && r.next >= r.total {
		return fmt.Errorf("%w: %d", ErrTooManyChunks, r.total)
	}

	r.samples = append(r.samples, c.Samples...)
	r.next++

	if r.progress != nil {
		r.progress(r.next, r.total)
	}

	return nil
}

// Done returns the number of chunks added.
func (r *Recombiner) Done() int { return r.next }

// Buffer returns the concatenation of everything added so far. The
// returned buffer owns its samples.
func (r *Recombiner) Buffer() *audio.Buffer {
	samples := make([]float64, len(r.samples))
	copy(samples, r.samples)

	return audio.NewBuffer(samples, r.sampleRate)
}

// Join recombines an ordered sequence of chunks.
func Join(sampleRate int, chunks iter.Seq[Chunk]) (*audio.Buffer, error) {
	r := NewRecombiner(sampleRate, 0, nil)
	for c := range chunks {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}

	return r.Buffer(), nil
}
