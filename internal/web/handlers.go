// SPDX-License-Identifier: EPL-2.0

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audenhance"
	"github.com/ik5/audenhance/convert"
	"github.com/ik5/audenhance/enhance"
	"github.com/ik5/audenhance/formats"
)

// limits feeds the slider bounds to the template.
type limits struct {
	MinNoise, MaxNoise float64
	MinAmp, MaxAmp     float64
	MinNorm, MaxNorm   float64
}

var sliderLimits = limits{
	MinNoise: enhance.MinNoiseReduction, MaxNoise: enhance.MaxNoiseReduction,
	MinAmp: enhance.MinAmplification, MaxAmp: enhance.MaxAmplification,
	MinNorm: enhance.MinNormalization, MaxNorm: enhance.MaxNormalization,
}

// resultView is one file on the results page.
type resultView struct {
	ID           string
	Name         string
	Progress     []string
	Stage        audenhance.Stage
	Error        string
	MIMEType     string
	DownloadName string
}

type pageData struct {
	Tab          string
	Presets      []enhance.Preset
	Custom       string
	Preset       string
	ShowSliders  bool
	Params       enhance.Params
	Limits       limits
	Formats      []string
	Format       string
	Accept       string
	AcceptList   string
	MaxFileMB    int
	ChunkSeconds float64
	SupportEmail string
	Settings     string
	Results      []resultView
}

func (s *Server) page(tab string) pageData {
	return pageData{
		Tab:          tab,
		Presets:      enhance.Presets(),
		Custom:       enhance.Custom,
		Preset:       enhance.DefaultPreset,
		Limits:       sliderLimits,
		Formats:      convert.Formats(),
		Format:       s.pipeline.Config().Format,
		Accept:       acceptAttr(),
		AcceptList:   acceptList(),
		MaxFileMB:    s.cfg.FileSizeHintMB,
		ChunkSeconds: s.pipeline.Config().ChunkDuration.Seconds(),
		SupportEmail: s.cfg.SupportEmail,
	}
}

func acceptAttr() string {
	exts := make([]string, 0, len(formats.UploadExtensions)+1)
	for _, ext := range formats.UploadExtensions {
		exts = append(exts, "."+ext)
	}
	exts = append(exts, ".aif")

	return strings.Join(exts, ",")
}

func acceptList() string {
	names := make([]string, len(formats.UploadExtensions))
	for i, ext := range formats.UploadExtensions {
		names[i] = strings.ToUpper(ext)
	}
	last := len(names) - 1

	return strings.Join(names[:last], ", ") + ", or " + names[last]
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := s.pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Server.render",
			"page":     name,
			"error":    err.Error(),
		}).Error("Template execution failed")
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.page("home")

	choice := strings.TrimSpace(r.URL.Query().Get("preset"))
	switch {
	case strings.EqualFold(choice, enhance.Custom):
		data.Preset = enhance.Custom
		data.ShowSliders = true
		// sliders start from the default preset's values
		if p, err := enhance.LookupPreset(enhance.DefaultPreset); err == nil {
			data.Params = p.Params
		}
	case choice != "":
		if p, err := enhance.LookupPreset(choice); err == nil {
			data.Preset = p.Name
			data.Params = p.Params
		}
	}

	s.render(w, http.StatusOK, "home", data)
}

func (s *Server) handleGuide(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "guide", s.page("guide"))
}

func (s *Server) handleSupport(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "support", s.page("support"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"results": s.store.len(),
	}); err != nil {
		logrus.WithField("function", "Server.handleHealth").WithError(err).Warn("Failed to write health response")
	}
}

// paramsFromForm resolves the preset, reading the sliders only for Custom.
func paramsFromForm(r *http.Request) (enhance.Params, error) {
	preset := r.FormValue("preset")
	if preset == "" {
		preset = enhance.DefaultPreset
	}

	var custom enhance.Params
	if strings.EqualFold(strings.TrimSpace(preset), enhance.Custom) {
		fields := []struct {
			key string
			dst *float64
		}{
			{"noise", &custom.NoiseReduction},
			{"amp", &custom.Amplification},
			{"norm", &custom.Normalization},
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(f.key)), 64)
			if err != nil {
				return enhance.Params{}, fmt.Errorf("invalid %s value: %q", f.key, r.FormValue(f.key))
			}
			*f.dst = v
		}
	}

	return enhance.Resolve(preset, custom)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid upload form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	params, err := paramsFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := s.pipeline.Config().Format
	if f := r.FormValue("format"); f != "" {
		format = strings.ToLower(strings.TrimSpace(f))
	}
	if !convert.Supported(format) {
		http.Error(w, fmt.Sprintf("unsupported output format %q", format), http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	uploads := make([]audenhance.Upload, len(headers))
	for i, fh := range headers {
		uploads[i] = audenhance.Upload{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return openPart(fh) },
		}
	}

	obs := newProgressObserver(s.pipeline.Config().ChunkDuration, len(uploads))
	results, err := s.pipeline.ProcessBatch(r.Context(), uploads, params, obs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Server.handleProcess",
			"error":    err.Error(),
		}).Error("Batch could not run")
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	data := s.page("home")
	data.Settings = params.String()
	for i, res := range results {
		if res.Err == nil && res.Format != format {
			res = s.convertResult(r, res, format)
		}
		view := s.view(res)
		view.Progress = obs.lines[i]
		data.Results = append(data.Results, view)
	}

	s.render(w, http.StatusOK, "results", data)
}

func openPart(fh *multipart.FileHeader) (io.ReadCloser, error) {
	return fh.Open()
}

// convertResult re-encodes a finished file, turning a failure into a
// convert-stage error on the result.
func (s *Server) convertResult(r *http.Request, res audenhance.Result, format string) audenhance.Result {
	path, err := s.pipeline.Converter().Convert(r.Context(), res.OutputPath, format)
	if err != nil {
		res.Err = &audenhance.StageError{Stage: audenhance.StageConvert, Name: res.Name, Err: err}
		return res
	}

	res.OutputPath = path
	res.Format = format
	res.MIMEType = convert.MIMEType(format)
	res.DownloadName = audenhance.DownloadName(res.Name, format)

	return res
}

// view stores successful results and builds their page entry.
func (s *Server) view(res audenhance.Result) resultView {
	v := resultView{Name: res.Name}
	if v.Name == "" {
		v.Name = res.DownloadName
	}

	if res.Err != nil {
		v.Stage = audenhance.StageOf(res.Err)
		v.Error = res.Err.Error()
		return v
	}

	v.MIMEType = res.MIMEType
	v.DownloadName = res.DownloadName
	v.ID = s.store.put(entry{
		Name:         res.Name,
		Path:         res.OutputPath,
		Format:       res.Format,
		MIMEType:     res.MIMEType,
		DownloadName: res.DownloadName,
	})

	return v
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	e, ok := s.store.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(e.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "result unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", e.MIMEType)
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": e.DownloadName}))
	}

	http.ServeContent(w, r, e.DownloadName, info.ModTime(), f)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	e, ok := s.store.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	if !convert.Supported(format) {
		http.Error(w, fmt.Sprintf("unsupported output format %q", format), http.StatusBadRequest)
		return
	}

	res := s.convertResult(r, audenhance.Result{
		Name:         e.Name,
		OutputPath:   e.Path,
		Format:       e.Format,
		MIMEType:     e.MIMEType,
		DownloadName: e.DownloadName,
	}, format)

	status := http.StatusOK
	if res.Err != nil {
		status = http.StatusInternalServerError
	}

	data := s.page("home")
	data.Results = []resultView{s.view(res)}
	s.render(w, status, "results", data)
}

// progressObserver records one line per finished chunk for each file.
type progressObserver struct {
	audenhance.NopObserver

	chunk time.Duration
	lines [][]string
}

func newProgressObserver(chunk time.Duration, files int) *progressObserver {
	return &progressObserver{chunk: chunk, lines: make([][]string, files)}
}

func (o *progressObserver) ChunkDone(index int, _ string, done, total int) {
	start := time.Duration(done-1) * o.chunk
	end := time.Duration(done) * o.chunk
	o.lines[index] = append(o.lines[index], fmt.Sprintf("Processing chunk %d of %d: %s to %s", done, total, start, end))
}
