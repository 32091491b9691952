// SPDX-License-Identifier: EPL-2.0

// Package web serves the browser front-end: upload, preset or slider
// selection, per-file results with playback, download and conversion.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// DefaultSupportEmail is shown on the guide and support tabs.
	DefaultSupportEmail = "audioenhancerpro@gmail.com"
	// DefaultMaxUploadBytes caps one /process request body.
	DefaultMaxUploadBytes = 100 << 20
	// DefaultFileSizeHintMB is the per-file size the guide recommends.
	DefaultFileSizeHintMB = 10

	// multipartMemory is how much of a form is kept in memory before
	// file parts spill to disk.
	multipartMemory = 32 << 20

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config holds the web-only settings; audio settings live in the
// pipeline's audenhance.Config.
type Config struct {
	MaxUploadBytes int64
	FileSizeHintMB int
	SupportEmail   string
}

func DefaultConfig() Config {
	return Config{
		MaxUploadBytes: DefaultMaxUploadBytes,
		FileSizeHintMB: DefaultFileSizeHintMB,
		SupportEmail:   DefaultSupportEmail,
	}
}

type Server struct {
	cfg      Config
	pipeline *audenhance.Pipeline
	store    *store
	pages    map[string]*template.Template
}

var pageNames = []string{"home", "guide", "support", "results"}

func New(p *audenhance.Pipeline, cfg Config) (*Server, error) {
	def := DefaultConfig()
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.FileSizeHintMB <= 0 {
		cfg.FileSizeHintMB = def.FileSizeHintMB
	}
	if cfg.SupportEmail == "" {
		cfg.SupportEmail = def.SupportEmail
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Server{
		cfg:      cfg,
		pipeline: p,
		store:    newStore(),
		pages:    pages,
	}, nil
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /guide", s.handleGuide)
	mux.HandleFunc("GET /support", s.handleSupport)
	mux.HandleFunc("POST /process", s.handleProcess)
	mux.HandleFunc("GET /results/{id}", s.handleResult)
	mux.HandleFunc("POST /results/{id}/convert", s.handleConvert)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return loggingMiddleware(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"function": "Server.ListenAndServe",
			"addr":     addr,
		}).Info("Server listening")

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.WithField("function", "Server.ListenAndServe").Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
