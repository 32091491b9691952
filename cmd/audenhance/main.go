// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance"
	"github.com/ik5/audenhance/convert"
	"github.com/ik5/audenhance/enhance"
	"github.com/ik5/audenhance/formats"
	"github.com/ik5/audenhance/internal/cli"
	"github.com/ik5/audenhance/internal/logging"
	"github.com/ik5/audenhance/internal/ui"
	"github.com/ik5/audenhance/internal/web"
)

var (
	version = "0.1.0"
)

var errFilesFailed = errors.New("one or more files failed")

// CLI defines the command-line interface
type CLI struct {
	Version   versionFlag `short:"v" help:"Show version information."`
	LogLevel  string      `name:"log-level" default:"info" enum:"trace,debug,info,warn,error" env:"AUDENHANCE_LOG_LEVEL" help:"Log level."`
	LogFormat string      `name:"log-format" default:"text" enum:"text,json" env:"AUDENHANCE_LOG_FORMAT" help:"Log output format."`
	LogFile   string      `name:"log-file" type:"path" env:"AUDENHANCE_LOG_FILE" help:"Append logs to this file instead of stderr."`

	Process ProcessCmd `cmd:"" help:"Enhance audio files from the command line."`
	Serve   ServeCmd   `cmd:"" help:"Run the Audio Enhancer Pro browser interface."`
}

type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong) error {
	cli.PrintVersion(app.Stdout, version)
	app.Exit(0)
	return nil
}

// PipelineFlags are shared by every command that enhances audio.
type PipelineFlags struct {
	ChunkDuration time.Duration `name:"chunk-duration" default:"10s" env:"AUDENHANCE_CHUNK_DURATION" help:"Length of each enhancement chunk."`
	SampleRate    int           `name:"sample-rate" default:"0" env:"AUDENHANCE_SAMPLE_RATE" help:"Resample to this rate; 0 keeps the file's rate."`
	OutputDir     string        `name:"output-dir" short:"o" type:"path" default:"output" env:"AUDENHANCE_OUTPUT_DIR" help:"Directory for enhanced files."`
	TempDir       string        `name:"temp-dir" type:"path" env:"AUDENHANCE_TEMP_DIR" help:"Root for per-batch temporary files."`
	Format        string        `short:"f" default:"wav" enum:"wav,aiff,mp3,ogg,flac" env:"AUDENHANCE_FORMAT" help:"Output format."`
	FFmpeg        string        `name:"ffmpeg" default:"ffmpeg" env:"AUDENHANCE_FFMPEG" help:"ffmpeg binary used for mp3, ogg and flac."`
}

func (f PipelineFlags) pipeline() (*audenhance.Pipeline, error) {
	if err := os.MkdirAll(f.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	reg := formats.NewRegistry()
	cfg := audenhance.Config{
		ChunkDuration: f.ChunkDuration,
		SampleRate:    f.SampleRate,
		OutputDir:     f.OutputDir,
		TempDir:       f.TempDir,
		Format:        f.Format,
	}

	return audenhance.New(cfg,
		audenhance.WithRegistry(reg),
		audenhance.WithConverter(convert.New(reg, convert.FFmpeg{Binary: f.FFmpeg})),
	)
}

// ProcessCmd enhances files given on the command line.
type ProcessCmd struct {
	PipelineFlags `embed:""`

	Preset string  `short:"p" default:"Podcast" env:"AUDENHANCE_PRESET" help:"Podcast, Music, Voice Memo, Interview or Custom."`
	Noise  float64 `default:"0.5" env:"AUDENHANCE_NOISE" help:"Noise reduction strength (0.1-1.0), with --preset Custom."`
	Amp    float64 `default:"1.0" env:"AUDENHANCE_AMP" help:"Amplification (0.5-2.0), with --preset Custom."`
	Norm   float64 `default:"1.0" env:"AUDENHANCE_NORM" help:"Normalization level (0.5-2.0), with --preset Custom."`
	Plain  bool    `help:"Print one line per file instead of the progress view."`

	Files []string `arg:"" name:"files" help:"Audio files to process (mp3, wav, ogg, flac, aiff)." type:"existingfile"`
}

// ServeCmd runs the browser front-end.
type ServeCmd struct {
	PipelineFlags `embed:""`

	Addr         string `default:":8080" env:"AUDENHANCE_ADDR" help:"Listen address."`
	MaxUpload    int64  `name:"max-upload" default:"104857600" env:"AUDENHANCE_MAX_UPLOAD" help:"Largest accepted request body in bytes."`
	SupportEmail string `name:"support-email" default:"audioenhancerpro@gmail.com" env:"AUDENHANCE_SUPPORT_EMAIL" help:"Contact address shown on the Support tab."`
}

// runContext is bound into every command's Run.
type runContext struct {
	ctx     context.Context
	logFile bool
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("audenhance"),
		kong.Description("Audio Enhancer Pro: noise reduction, normalization and amplification for uploads"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	var out io.Writer = os.Stderr
	if cliArgs.LogFile != "" {
		f, err := os.OpenFile(cliArgs.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			cli.PrintError(fmt.Sprintf("opening log file: %v", err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := logging.Configure(logrus.StandardLogger(), cliArgs.LogLevel, cliArgs.LogFormat, out); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := kctx.Run(&runContext{ctx: ctx, logFile: cliArgs.LogFile != ""})
	stop()
	if err != nil {
		if !errors.Is(err, errFilesFailed) {
			cli.PrintError(err.Error())
		}
		os.Exit(1)
	}
}

func (c *ProcessCmd) Run(rc *runContext) error {
	params, err := enhance.Resolve(c.Preset, enhance.Params{
		NoiseReduction: c.Noise,
		Amplification:  c.Amp,
		Normalization:  c.Norm,
	})
	if err != nil {
		return err
	}

	p, err := c.pipeline()
	if err != nil {
		return err
	}

	uploads := make([]audenhance.Upload, len(c.Files))
	names := make([]string, len(c.Files))
	for i, path := range c.Files {
		uploads[i] = audenhance.FileUpload(path)
		names[i] = filepath.Base(path)
	}

	logrus.WithFields(logrus.Fields{
		"function": "ProcessCmd.Run",
		"preset":   c.Preset,
		"params":   params.String(),
		"files":    len(uploads),
		"chunk":    c.ChunkDuration,
	}).Debug("Starting batch")

	var results []audenhance.Result
	if c.Plain {
		results, err = p.ProcessBatch(rc.ctx, uploads, params, plainObserver{w: os.Stdout})
	} else {
		results, err = runInteractive(rc, p, uploads, names, c.Preset+" "+params.String(), params)
	}
	if err != nil {
		return err
	}

	for _, res := range results {
		if !res.OK() {
			return errFilesFailed
		}
	}

	return nil
}

// runInteractive drives the batch from a goroutine while the progress view
// owns the terminal. Logs would tear the view, so without --log-file they
// are dropped for its lifetime.
func runInteractive(rc *runContext, p *audenhance.Pipeline, uploads []audenhance.Upload, names []string, settings string, params enhance.Params) ([]audenhance.Result, error) {
	if !rc.logFile {
		logger := logrus.StandardLogger()
		prev := logger.Out
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(prev)
	}

	ctx, cancel := context.WithCancel(rc.ctx)
	defer cancel()

	prog := tea.NewProgram(ui.NewModel(names, settings), tea.WithContext(ctx))

	var (
		results  []audenhance.Result
		batchErr error
	)
	done := make(chan struct{})

	go func() {
		defer close(done)
		results, batchErr = p.ProcessBatch(ctx, uploads, params, ui.NewObserver(prog.Send))
		prog.Send(ui.AllCompleteMsg{Err: batchErr})
	}()

	_, runErr := prog.Run()
	// Quitting the view early cancels whatever is still queued.
	cancel()
	<-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("UI error: %w", runErr)
	}

	return results, batchErr
}

// plainObserver prints one line per finished file.
type plainObserver struct {
	audenhance.NopObserver
	w io.Writer
}

func (o plainObserver) FileFinished(_ int, res audenhance.Result) {
	cli.PrintResult(o.w, res)
}

func (c *ServeCmd) Run(rc *runContext) error {
	p, err := c.pipeline()
	if err != nil {
		return err
	}

	srv, err := web.New(p, web.Config{
		MaxUploadBytes: c.MaxUpload,
		SupportEmail:   c.SupportEmail,
	})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(rc.ctx, c.Addr)
}
