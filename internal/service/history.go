package service

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/passmint/passmint-go/internal/export"
	"github.com/passmint/passmint-go/internal/model"
)

var ErrHistoryEmpty = errors.New("no passwords to export")

// HistoryService keeps the passwords generated during the current session.
// The core stays stateless; this is the explicit application state the shells
// own and re-render after each call. The mutex is only there because the HTTP
// shell serves requests concurrently.
type HistoryService struct {
	mu      sync.Mutex
	entries []model.GeneratedPassword
}

// NewHistoryService creates an empty session history.
func NewHistoryService() *HistoryService {
	return &HistoryService{}
}

// Append adds entries to the history in order.
func (s *HistoryService) Append(entries ...model.GeneratedPassword) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

// List returns a copy of the history in generation order.
func (s *HistoryService) List() []model.GeneratedPassword {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.GeneratedPassword, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the history and returns how many entries were dropped.
func (s *HistoryService) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = nil
	return n
}

// Export writes the history to w in the given format. An empty history is an
// error so the shells can tell the user there is nothing to export.
func (s *HistoryService) Export(w io.Writer, format export.Format) error {
	entries := s.List()
	if len(entries) == 0 {
		return ErrHistoryEmpty
	}
	return export.Export(w, entries, format)
}

// Import parses a collection from r and appends it to the history, returning
// the number of entries added.
func (s *HistoryService) Import(r io.Reader, format export.Format) (int, error) {
	entries, err := export.Import(r, format)
	if err != nil {
		return 0, err
	}
	s.Append(entries...)
	return len(entries), nil
}

// ExportFile writes the history to path, deriving the format from the file
// extension.
func (s *HistoryService) ExportFile(path string) error {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Export(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportFile reads a collection from path, deriving the format from the file
// extension, and appends it to the history.
func (s *HistoryService) ImportFile(path string) (int, error) {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return s.Import(f, format)
}
