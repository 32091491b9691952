// SPDX-License-Identifier: EPL-2.0

package web

import (
	"sync"

	"github.com/google/uuid"
)

// entry is one downloadable file.
type entry struct {
	Name         string
	Path         string
	Format       string
	MIMEType     string
	DownloadName string
}

// store keeps finished files addressable by an opaque id for the life of
// the process. The files themselves stay in the output directory.
type store struct {
	mtx     sync.RWMutex
	entries map[string]entry
}

func newStore() *store {
	return &store{entries: make(map[string]entry)}
}

func (s *store) put(e entry) string {
	id := uuid.NewString()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.entries[id] = e

	return id
}

func (s *store) get(id string) (entry, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return entry{}, false
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	e, ok := s.entries[id]

	return e, ok
}

func (s *store) len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.entries)
}
