// SPDX-License-Identifier: EPL-2.0

package audenhance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance/audio"
	"github.com/ik5/audenhance/chunk"
	"github.com/ik5/audenhance/convert"
	"github.com/ik5/audenhance/enhance"
	"github.com/ik5/audenhance/formats"
	"github.com/ik5/audenhance/internal/outfile"
)

// Pipeline runs decode, chunked enhancement, encode and conversion for
// one file at a time. It holds no per-file state and may be shared.
type Pipeline struct {
	cfg       Config
	registry  *audio.Registry
	converter *convert.Converter
}

type Option func(*Pipeline)

// WithRegistry replaces the built-in codec registry.
func WithRegistry(reg *audio.Registry) Option {
	return func(p *Pipeline) { p.registry = reg }
}

// WithConverter replaces the default converter (native codecs plus
// ffmpeg from PATH).
func WithConverter(c *convert.Converter) Option {
	return func(p *Pipeline) { p.converter = c }
}

func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg.Format = audio.NormalizeExt(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	if p.registry == nil {
		p.registry = formats.NewRegistry()
	}
	if p.converter == nil {
		p.converter = convert.New(p.registry, convert.FFmpeg{})
	}

	return p, nil
}

func (p *Pipeline) Config() Config { return p.cfg }

func (p *Pipeline) Registry() *audio.Registry { return p.registry }

func (p *Pipeline) Converter() *convert.Converter { return p.converter }

// Decode reads a whole stream in the container named by ext into a mono
// buffer, resampled to the configured rate when one is set.
func (p *Pipeline) Decode(r io.Reader, ext string) (*audio.Buffer, error) {
	dec, ok := p.registry.Decoder(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnsupportedFormat, audio.NormalizeExt(ext))
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src, p.cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyAudio
	}

	return buf, nil
}

// DecodeFile opens path and decodes it by its extension.
func (p *Pipeline) DecodeFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return p.Decode(f, filepath.Ext(path))
}

// Enhance splits buf into chunks, runs the effect chain for params over
// each one in order and joins the results. progress, when set, is called
// after every chunk.
func (p *Pipeline) Enhance(ctx context.Context, buf *audio.Buffer, params enhance.Params, progress chunk.ProgressFunc) (*audio.Buffer, error) {
	if buf.SampleRate <= 0 {
		return nil, audio.ErrInvalidSampleRate
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := p.cfg.ChunkDuration
	chain := enhance.NewChain(params)
	total := chunk.Count(buf.Len(), buf.SampleRate, d)
	rec := chunk.NewRecombiner(buf.SampleRate, total, progress)

	for c := range chunk.Split(buf, d) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"function": "Pipeline.Enhance",
			"chunk":    c.Index,
			"total":    total,
			"start":    c.Start().Seconds(),
			"end":      (c.Start() + c.Duration()).Seconds(),
		}).Debug("Processing chunk")

		out, err := chain.Process(c.Samples, c.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", c.Index, err)
		}

		c.Samples = out
		if err := rec.Add(c); err != nil {
			return nil, err
		}
	}

	return rec.Buffer(), nil
}

// ProcessFile enhances the audio file at path and writes it to the output
// directory in the configured format. name is the original upload name
// the download name is derived from; an empty name yields
// enhanced_audio.<ext>. Failures are returned as *StageError; the Result
// is filled in as far as the pipeline got. A panic in any stage, such as
// a codec tripping over a corrupt file, is returned as ErrPanicked tagged
// with that stage.
func (p *Pipeline) ProcessFile(ctx context.Context, path, name string, params enhance.Params, progress chunk.ProgressFunc) (res Result, err error) {
	format := p.cfg.Format
	res = Result{
		Name:         name,
		Format:       format,
		MIMEType:     convert.MIMEType(format),
		DownloadName: DownloadName(name, format),
	}

	log := logrus.WithFields(logrus.Fields{
		"function": "Pipeline.ProcessFile",
		"file":     name,
		"params":   params.String(),
	})

	stage := StageDecode
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"stage": stage,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")

			res.OutputPath = ""
			err = &StageError{Stage: stage, Name: name, Err: fmt.Errorf("%w: %v", ErrPanicked, r)}
		}
	}()

	if err := params.Validate(); err != nil {
		return res, &StageError{Stage: StageEnhance, Name: name, Err: err}
	}

	buf, err := p.DecodeFile(path)
	if err != nil {
		return res, &StageError{Stage: StageDecode, Name: name, Err: err}
	}
	res.Duration = buf.Duration()
	res.Chunks = chunk.Count(buf.Len(), buf.SampleRate, p.cfg.ChunkDuration)

	log.WithFields(logrus.Fields{
		"duration":    res.Duration.Seconds(),
		"sample_rate": buf.SampleRate,
		"chunks":      res.Chunks,
	}).Info("Decoded audio")

	stage = StageEnhance
	out, err := p.Enhance(ctx, buf, params, progress)
	if err != nil {
		return res, &StageError{Stage: StageEnhance, Name: name, Err: err}
	}

	stage = StageEncode
	finalPath, err := p.write(ctx, out, name, res.DownloadName)
	if err != nil {
		return res, err
	}
	res.OutputPath = finalPath

	log.WithField("output", finalPath).Info("Enhanced audio written")

	return res, nil
}

// write encodes buf under OutputDir as downloadName, or a suffixed name
// when that is taken. Formats without a native encoder are written as a
// temporary wav and converted. The output name is claimed before any
// encoding starts and released again on failure.
func (p *Pipeline) write(ctx context.Context, buf *audio.Buffer, name, downloadName string) (string, error) {
	stageErr := func(stage Stage, err error) error {
		return &StageError{Stage: stage, Name: name, Err: err}
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return "", stageErr(StageEncode, fmt.Errorf("%w", err))
	}

	out, err := outfile.Create(p.cfg.OutputDir, downloadName)
	if err != nil {
		return "", stageErr(StageEncode, err)
	}
	finalPath := out.Name()

	done := false
	defer func() {
		if !done {
			_ = os.Remove(finalPath)
		}
	}()

	if enc, ok := p.registry.Encoder(p.cfg.Format); ok {
		if err := encodeFile(out, enc, buf); err != nil {
			return "", stageErr(StageEncode, err)
		}
		done = true
		return finalPath, nil
	}
	out.Close()

	wavEnc, ok := p.registry.Encoder(convert.DefaultFormat)
	if !ok {
		return "", stageErr(StageEncode, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, convert.DefaultFormat))
	}

	tmp, err := os.CreateTemp(p.cfg.OutputDir, ".audenhance-*."+convert.DefaultFormat)
	if err != nil {
		return "", stageErr(StageEncode, fmt.Errorf("%w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := encodeFile(tmp, wavEnc, buf); err != nil {
		return "", stageErr(StageEncode, err)
	}

	converted, err := p.converter.Convert(ctx, tmpPath, p.cfg.Format)
	if err != nil {
		return "", stageErr(StageConvert, err)
	}

	// Replaces the empty file that holds the name.
	if err := os.Rename(converted, finalPath); err != nil {
		_ = os.Remove(converted)
		return "", stageErr(StageConvert, fmt.Errorf("%w", err))
	}

	done = true
	return finalPath, nil
}

// encodeFile encodes buf into f and closes it.
func encodeFile(f *os.File, enc audio.Encoder, buf *audio.Buffer) error {
	if err := enc.Encode(f, buf); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
