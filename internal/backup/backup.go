// Package backup provides backup and restore of the task file. Each backup
// is a timestamped directory holding a copy of the file and a manifest.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"chattybuddy/internal/fsutil"
	"chattybuddy/internal/storage"
	"chattybuddy/internal/task"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// ErrNoBackups is returned by RestoreLatest when there is nothing to restore.
var ErrNoBackups = errors.New("no backups available")

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string // e.g. ~/.chattybuddy
	dataFile   string // task file name inside dataDir
	backupDir  string // e.g. ~/.chattybuddy/backups
	appVersion string
	now        func() time.Time
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2025-12-15_143022_123)
	Path      string         // Full path to backup directory
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // tasks, done
}

// NewManager creates a new backup manager for dataFile inside dataDir. An
// empty dataFile means storage.DefaultFilename.
func NewManager(dataDir, dataFile, appVersion string) *Manager {
	if dataFile == "" {
		dataFile = storage.DefaultFilename
	}
	return &Manager{
		dataDir:    dataDir,
		dataFile:   dataFile,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock used to name backups. nil restores time.Now.
func (m *Manager) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	m.now = now
}

// Create creates a new backup of the task file.
// Returns the backup name (timestamp format) on success.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Milliseconds keep names unique within a second; a clash still bumps.
	now := m.now()
	name := backupName(now)
	backupPath := filepath.Join(m.backupDir, name)
	for i := 0; exists(backupPath) && i < 1000; i++ {
		now = now.Add(time.Millisecond)
		name = backupName(now)
		backupPath = filepath.Join(m.backupDir, name)
	}

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var copiedFiles []string
	stats := make(map[string]int)

	srcPath := filepath.Join(m.dataDir, m.dataFile)
	if exists(srcPath) {
		dstPath := filepath.Join(backupPath, m.dataFile)
		if err := fsutil.CopyFileAtomic(srcPath, dstPath, 0600); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", m.dataFile, err)
		}
		copiedFiles = append(copiedFiles, m.dataFile)

		if tasks, err := storage.ReadFile(srcPath, task.Separator); err == nil {
			stats["tasks"] = len(tasks)
			stats["done"] = countDone(tasks)
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, sorted by creation time (newest first).
func (m *Manager) List() ([]BackupInfo, error) {
	if !exists(m.backupDir) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue // Skip invalid backups
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore restores the task file from a specific backup.
// It creates a safety backup before restoring, and fails if the restored
// file does not decode.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if !exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		// Fall back to the current file name if manifest is missing
		manifest.Files = []string{m.dataFile}
	}
	if len(manifest.Files) > 1 {
		return fmt.Errorf("manifest lists %d files, want at most one", len(manifest.Files))
	}

	var srcPath string
	if len(manifest.Files) == 1 {
		filename := manifest.Files[0]
		if filename != filepath.Base(filename) {
			return fmt.Errorf("manifest lists invalid file %q", filename)
		}
		srcPath = filepath.Join(backupPath, filename)
		if !exists(srcPath) {
			return fmt.Errorf("backup %s is missing %s", name, filename)
		}
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	if srcPath != "" {
		dstPath := filepath.Join(m.dataDir, m.dataFile)
		if err := fsutil.CopyFileAtomic(srcPath, dstPath, 0600); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filepath.Base(srcPath), safetyName, err)
		}
	}

	dstPath := filepath.Join(m.dataDir, m.dataFile)
	if _, err := storage.ReadFile(dstPath, task.Separator); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", m.dataFile, safetyName, err)
	}

	return nil
}

// RestoreLatest restores from the most recent backup and returns its name.
func (m *Manager) RestoreLatest() (string, error) {
	backups, err := m.List()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", ErrNoBackups
	}

	name := backups[0].Name
	return name, m.Restore(name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if !exists(backupPath) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if !exists(filepath.Join(m.backupDir, name)) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*BackupInfo, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
	}
	if manifest.Stats == nil {
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func countDone(tasks []task.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Done {
			n++
		}
	}
	return n
}

func backupName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format("2006-01-02_150405"), t.Nanosecond()/1e6)
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// writeJSON writes a value as JSON to a file.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// readJSON reads JSON from a file into a value.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both 2006-01-02_150405 and 2006-01-02_150405_XXX.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.ParseInLocation("2006-01-02_150405", name[:17], time.Local)
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.ParseInLocation("2006-01-02_150405", name, time.Local)
}
