// Package storage persists the task list as a flat text file, one task per
// line, fields joined by task.Separator. Every save rewrites the whole file
// atomically and keeps the previous version as a .bak copy.
package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chattybuddy/internal/fsutil"
	"chattybuddy/internal/logging"
	"chattybuddy/internal/task"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	// DefaultFilename is the task file inside the data directory.
	DefaultFilename = "chattybuddy.txt"
)

var (
	// ErrPersistence is the kind of every PersistenceError.
	ErrPersistence = errors.New("persistence failure")

	// ErrRecovered marks a load that succeeded from the .bak copy after the
	// main file turned out to be corrupt.
	ErrRecovered = errors.New("task file recovered from backup")
)

// PersistenceError describes a failed load or save. Line is the 1-based
// line of a corrupt record, or 0.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Line int
	Err  error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s %s: line %d: %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPersistence) hold for every PersistenceError.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Storage reads and writes the task file.
type Storage struct {
	dataDir  string
	filename string
	sep      string
	now      func() time.Time // injectable clock for deterministic tests
	log      *slog.Logger
}

// New creates the data directory if needed and returns a Storage for
// filename inside it. An empty filename means DefaultFilename.
func New(dataDir, filename string) (*Storage, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Storage{
		dataDir:  dataDir,
		filename: filename,
		sep:      task.Separator,
		now:      time.Now,
		log:      logging.Discard(),
	}, nil
}

// SetNowFunc overrides the clock used to name moved-aside files. Passing
// nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// SetLogger sets the logger; nil silences logging.
func (s *Storage) SetLogger(l *slog.Logger) {
	s.log = logging.For(l, "storage")
}

// DataDir returns the data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// Path returns the path of the task file.
func (s *Storage) Path() string {
	return filepath.Join(s.dataDir, s.filename)
}

// Load reads every task in file order. A missing file yields an empty list
// and no error. A line that does not decode fails the whole load.
func (s *Storage) Load() ([]task.Task, error) {
	tasks, err := ReadFile(s.Path(), s.sep)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("no task file yet, starting empty", "path", s.Path())
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	s.log.Debug("loaded tasks", "path", s.Path(), "count", len(tasks))
	return tasks, nil
}

// LoadWithRecovery is Load with a fallback: when the file is corrupt and the
// .bak copy decodes, the corrupt file is moved aside, the backup is written
// back in its place, and the tasks are returned together with an error
// wrapping ErrRecovered that says what happened.
func (s *Storage) LoadWithRecovery() ([]task.Task, error) {
	tasks, err := s.Load()
	if err == nil {
		return tasks, nil
	}
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Line == 0 {
		return nil, err
	}

	path := s.Path()
	backup, bakErr := ReadFile(path+".bak", s.sep)
	if bakErr != nil {
		s.log.Error("task file corrupt and no usable backup", "path", path, "err", err)
		return nil, err
	}

	moved, mvErr := fsutil.MoveAside(path, s.now())
	if mvErr != nil {
		return nil, fmt.Errorf("%w (could not move corrupt file: %v)", err, mvErr)
	}
	if err := fsutil.CopyFileAtomic(path+".bak", path, dataFilePerm); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}

	s.log.Warn("recovered task file from backup", "path", path, "moved_to", moved, "cause", err)
	return backup, fmt.Errorf("%w: %v (corrupt file moved to %s)", ErrRecovered, err, moved)
}

// Save rewrites the file with tasks in order.
func (s *Storage) Save(tasks []task.Task) error {
	path := s.Path()
	data := Encode(tasks, s.sep)

	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		s.log.Error("save failed", "path", path, "err", err)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	s.log.Debug("saved tasks", "path", path, "count", len(tasks))
	return nil
}

// Encode renders tasks as file contents, one line each.
func Encode(tasks []task.Task, sep string) []byte {
	var buf bytes.Buffer
	for _, t := range tasks {
		buf.WriteString(t.PersistedLine(sep))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ReadFile decodes the task file at path. Blank lines are skipped. The
// error for a missing file satisfies errors.Is(err, os.ErrNotExist).
func ReadFile(path, sep string) ([]task.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	tasks := []task.Task{}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := task.ParseLine(line, sep)
		if err != nil {
			return nil, &PersistenceError{Op: "load", Path: path, Line: lineNo, Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	return tasks, nil
}
