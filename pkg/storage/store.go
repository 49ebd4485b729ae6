package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/todo/pkg/model"
)

// DefaultFile is the backing file used when nothing is configured.
const DefaultFile = "tasks.json"

// Store reads and writes the task collection to a single backing file.
// No file handle is held between calls.
type Store struct {
	Path   string
	format string
	codec  codec
}

// New returns a Store for path. The format follows the file extension.
func New(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	format := formatFor(path)
	return &Store{Path: path, format: format, codec: codecFor(format)}
}

// Format returns the serialization format in use.
func (s *Store) Format() string {
	return s.format
}

// Load reads the collection. A missing or empty file is an empty collection.
// On a *ReadError an empty, non-nil collection is still returned so callers
// can carry on.
func (s *Store) Load() ([]model.Task, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Task{}, nil
		}
		return []model.Task{}, &ReadError{Path: s.Path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Task{}, nil
	}

	tasks, err := s.codec.Unmarshal(data)
	if err != nil {
		return []model.Task{}, &ReadError{Path: s.Path, Err: err}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := checkShape(tasks); err != nil {
		return []model.Task{}, &ReadError{Path: s.Path, Err: err}
	}
	return tasks, nil
}

// Save replaces the backing file with tasks. The data goes to a temporary
// file in the same directory which is then renamed over the target, so a
// failed write never truncates the previous contents.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := s.codec.Marshal(tasks)
	if err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}
	if err := writeAtomic(s.Path, data); err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}
	return nil
}

// defaultPerm applies to a backing file that does not exist yet.
const defaultPerm fs.FileMode = 0o644

func writeAtomic(path string, data []byte) error {
	perm := defaultPerm
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// checkShape rejects files whose records break the collection invariants.
// Nil tag lists are normalized to empty.
func checkShape(tasks []model.Task) error {
	seen := make(map[int]bool, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		if task.ID <= 0 {
			return fmt.Errorf("record %d: id must be positive, got %d", i+1, task.ID)
		}
		if seen[task.ID] {
			return fmt.Errorf("record %d: duplicate id %d", i+1, task.ID)
		}
		seen[task.ID] = true
		if !task.Status.Valid() {
			return fmt.Errorf("record %d: unknown status '%s'", i+1, task.Status)
		}
		if task.Tags == nil {
			task.Tags = []string{}
		}
	}
	return nil
}
