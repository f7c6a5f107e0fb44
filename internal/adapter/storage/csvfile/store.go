// Package csvfile provides a FlatStore that keeps one CSV file per record.
//
// The first line of every file is the header. Writes go to a temp file in
// the same directory which is renamed over the target, so readers never
// observe a partially written file.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/photosphere/connect-admin-console/internal/domain/storage"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store is a directory of CSV files.
type Store struct {
	dir string
}

var _ storage.FlatStore = (*Store)(nil)

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file backing the named record.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Read parses the named CSV file.
func (s *Store) Read(ctx context.Context, name string) ([]storage.Row, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: missing header", name)
		}
		return nil, fmt.Errorf("parse %s header: %w", name, err)
	}

	var rows []storage.Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		row := make(storage.Row, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Write replaces the named CSV file atomically.
func (s *Store) Write(ctx context.Context, name string, columns []string, rows []storage.Row) error {
	if err := checkName(name); err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("write %s: no columns", name)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("encode %s header: %w", name, err)
	}
	rec := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	path := s.Path(name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", name, err)
	}

	return nil
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid record name %q", name)
	}
	return nil
}
