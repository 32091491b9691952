// SPDX-License-Identifier: EPL-2.0

// Package ui provides the Bubbletea progress view for batch processing
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FileStatus represents the processing state of a single file
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusProcessing
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single upload
type FileProgress struct {
	Name         string
	OutputPath   string
	DownloadName string
	Status       FileStatus

	Chunks     int
	ChunksDone int
	Progress   float64 // 0.0 to 1.0

	StartTime   time.Time
	ElapsedTime time.Duration

	// Duration of the decoded audio, known once the file is complete.
	Duration time.Duration

	Error error
}

// Model is the Bubbletea model for the processing UI
type Model struct {
	Files          []FileProgress
	CurrentIndex   int
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	// Settings is a one-line description of the parameters in use.
	Settings string

	StartTime time.Time
	Done      bool
	// Err is set when the batch as a whole could not run.
	Err error

	Width  int
	Height int
}

// NewModel creates a new UI model with the given upload names
func NewModel(names []string, settings string) Model {
	files := make([]FileProgress, len(names))
	for i, name := range names {
		files[i] = FileProgress{
			Name:   name,
			Status: StatusQueued,
		}
	}

	return Model{
		Files:        files,
		CurrentIndex: -1,
		TotalFiles:   len(names),
		Settings:     settings,
		StartTime:    time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileStartMsg:
		if !m.valid(msg.FileIndex) {
			return m, nil
		}
		m.CurrentIndex = msg.FileIndex
		m.Files[msg.FileIndex].Status = StatusProcessing
		m.Files[msg.FileIndex].StartTime = time.Now()

	case ChunkMsg:
		if m.valid(msg.FileIndex) {
			m.Files[msg.FileIndex] = updateFileProgress(m.Files[msg.FileIndex], msg)
		}

	case FileCompleteMsg:
		if !m.valid(msg.FileIndex) {
			return m, nil
		}
		fp := &m.Files[msg.FileIndex]
		res := msg.Result
		fp.OutputPath = res.OutputPath
		fp.DownloadName = res.DownloadName
		fp.Duration = res.Duration
		if res.Chunks > 0 {
			fp.Chunks = res.Chunks
			fp.ChunksDone = res.Chunks
		}
		fp.Error = res.Err
		if !fp.StartTime.IsZero() {
			fp.ElapsedTime = time.Since(fp.StartTime)
		}

		if res.Err != nil {
			fp.Status = StatusError
			m.FailedFiles++
		} else {
			fp.Status = StatusComplete
			fp.Progress = 1
			m.CompletedFiles++
		}

	case AllCompleteMsg:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderProcessingView(m)
}

func (m Model) valid(i int) bool {
	return i >= 0 && i < len(m.Files)
}

// updateFileProgress applies a chunk report to a FileProgress
func updateFileProgress(fp FileProgress, msg ChunkMsg) FileProgress {
	fp.Status = StatusProcessing
	fp.Chunks = msg.Total
	fp.ChunksDone = msg.Done
	if msg.Total > 0 {
		fp.Progress = float64(msg.Done) / float64(msg.Total)
	}
	if !fp.StartTime.IsZero() {
		fp.ElapsedTime = time.Since(fp.StartTime)
	}

	return fp
}
