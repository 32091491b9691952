// SPDX-License-Identifier: EPL-2.0

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/audenhance"
)

// FileStartMsg indicates a file has been picked up from the queue.
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// ChunkMsg reports one more enhanced chunk of the current file.
type ChunkMsg struct {
	FileIndex int
	Done      int
	Total     int
}

// FileCompleteMsg carries the outcome of one file.
type FileCompleteMsg struct {
	FileIndex int
	Result    audenhance.Result
}

// AllCompleteMsg indicates the batch is over. Err is set when the batch
// could not run at all.
type AllCompleteMsg struct {
	Err error
}

// Observer forwards batch events to a running program as messages.
type Observer struct {
	send func(tea.Msg)
}

// NewObserver returns an Observer that delivers through send, usually
// (*tea.Program).Send.
func NewObserver(send func(tea.Msg)) Observer {
	return Observer{send: send}
}

func (o Observer) FileStarted(index, _ int, name string) {
	o.send(FileStartMsg{FileIndex: index, FileName: name})
}

func (o Observer) ChunkDone(index int, _ string, done, chunks int) {
	o.send(ChunkMsg{FileIndex: index, Done: done, Total: chunks})
}

func (o Observer) FileFinished(index int, res audenhance.Result) {
	o.send(FileCompleteMsg{FileIndex: index, Result: res})
}
