// Package store reads and writes Caddyfiles on disk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jorge-barreto/contty/internal/caddyfile"
)

const defaultPerm = 0644

// Load reads and parses the Caddyfile at path. A missing file yields an
// empty document so the first run can create it.
func Load(path string) (*caddyfile.Document, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	return s.Doc, nil
}

// Snapshot is a parsed Caddyfile together with the bytes it was parsed
// from, so that an unchanged document is not rewritten.
type Snapshot struct {
	Path string
	Doc  *caddyfile.Document

	data   []byte
	exists bool
}

// Open reads and parses the Caddyfile at path. A missing file yields an
// empty document.
func Open(path string) (*Snapshot, error) {
	s := &Snapshot{Path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		s.data, s.exists = data, true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}
	doc, err := caddyfile.Parse(caddyfile.Lines(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Doc = doc
	return s, nil
}

// Render returns the file content for the current document.
func (s *Snapshot) Render() ([]byte, error) {
	data, err := caddyfile.Render(s.Doc)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", s.Path, err)
	}
	return data, nil
}

// Commit writes the document back if its rendering differs from what was
// read. It reports whether the file was written.
func (s *Snapshot) Commit() (bool, error) {
	data, err := s.Render()
	if err != nil {
		return false, err
	}
	if s.exists && bytes.Equal(data, s.data) {
		return false, nil
	}
	if err := write(s.Path, data); err != nil {
		return false, err
	}
	s.data, s.exists = data, true
	return true, nil
}

// Save renders doc and atomically replaces the file at path. Nothing is
// written when rendering fails. An existing file keeps its permissions.
func Save(path string, doc *caddyfile.Document) error {
	data, err := caddyfile.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return write(path, data)
}

func write(path string, data []byte) error {
	perm := os.FileMode(defaultPerm)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomic(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
