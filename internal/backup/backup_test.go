package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chattybuddy/internal/storage"
)

const testFile = "chattybuddy.txt"

const sampleTasks = "T | 0 | read book\n" +
	"D | 1 | submit report | 2019-10-15\n" +
	"E | 0 | party | 2019-10-15 1800 | 2019-10-15 2200\n"

// writeTasks writes raw task file contents for testing.
func writeTasks(t *testing.T, dataDir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dataDir, testFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write task file: %v", err)
	}
}

func readTasks(t *testing.T, dataDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dataDir, testFile))
	if err != nil {
		t.Fatalf("failed to read task file: %v", err)
	}
	return string(data)
}

// newTestManager returns a manager whose clock advances one second per backup.
func newTestManager(t *testing.T, dataDir string) *Manager {
	t.Helper()
	m := NewManager(dataDir, testFile, "1.2.0-test")
	clock := time.Date(2025, 12, 15, 14, 30, 22, 0, time.Local)
	m.SetNowFunc(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	return m
}

func TestManager_Create(t *testing.T) {
	tmpDir := t.TempDir()
	writeTasks(t, tmpDir, sampleTasks)

	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if name != "2025-12-15_143023_000" {
		t.Errorf("backup name = %q", name)
	}

	backupPath := filepath.Join(tmpDir, BackupsDir, name)
	data, err := os.ReadFile(filepath.Join(backupPath, testFile))
	if err != nil {
		t.Fatalf("task file not backed up: %v", err)
	}
	if string(data) != sampleTasks {
		t.Errorf("backup contents = %q", data)
	}

	raw, err := os.ReadFile(filepath.Join(backupPath, ManifestFile))
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatalf("manifest invalid: %v", err)
	}
	if manifest.Version != ManifestVersion || manifest.AppVersion != "1.2.0-test" {
		t.Errorf("manifest = %+v", manifest)
	}
	if len(manifest.Files) != 1 || manifest.Files[0] != testFile {
		t.Errorf("manifest files = %v", manifest.Files)
	}
	if manifest.Stats["tasks"] != 3 || manifest.Stats["done"] != 1 {
		t.Errorf("manifest stats = %v", manifest.Stats)
	}
}

func TestManager_CreateWithNoTaskFile(t *testing.T) {
	tmpDir := t.TempDir()
	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		t.Fatalf("GetBackup() error: %v", err)
	}
	if len(info.Stats) != 0 {
		t.Errorf("stats = %v, want empty", info.Stats)
	}
}

func TestManager_CreateSameInstant(t *testing.T) {
	tmpDir := t.TempDir()
	manager := NewManager(tmpDir, testFile, "test")
	fixed := time.Date(2025, 12, 15, 14, 30, 22, 0, time.Local)
	manager.SetNowFunc(func() time.Time { return fixed })

	first, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("two backups share the name %s", first)
	}
}

func TestManager_List(t *testing.T) {
	tmpDir := t.TempDir()
	writeTasks(t, tmpDir, sampleTasks)
	manager := newTestManager(t, tmpDir)

	var names []string
	for i := 0; i < 3; i++ {
		name, err := manager.Create()
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		names = append(names, name)
	}

	// Junk in the backups directory is skipped.
	if err := os.MkdirAll(filepath.Join(tmpDir, BackupsDir, "not-a-backup"), 0700); err != nil {
		t.Fatal(err)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() returned %d backups, want 3", len(backups))
	}
	if backups[0].Name != names[2] || backups[2].Name != names[0] {
		t.Errorf("List() order = %s, %s, %s", backups[0].Name, backups[1].Name, backups[2].Name)
	}
}

func TestManager_ListEmpty(t *testing.T) {
	backups, err := NewManager(t.TempDir(), testFile, "test").List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %v", backups)
	}
}

func TestManager_Restore(t *testing.T) {
	tmpDir := t.TempDir()
	writeTasks(t, tmpDir, sampleTasks)
	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	writeTasks(t, tmpDir, "T | 0 | something else\n")

	if err := manager.Restore(name); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if got := readTasks(t, tmpDir); got != sampleTasks {
		t.Errorf("restored contents = %q", got)
	}

	tasks, err := storage.ReadFile(filepath.Join(tmpDir, testFile), " | ")
	if err != nil || len(tasks) != 3 {
		t.Errorf("restored file decodes to %d tasks, err %v", len(tasks), err)
	}
}

func TestManager_RestoreCreatesSafetyBackup(t *testing.T) {
	tmpDir := t.TempDir()
	writeTasks(t, tmpDir, sampleTasks)
	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}
	writeTasks(t, tmpDir, "T | 1 | current\n")

	if err := manager.Restore(name); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("backups = %d, want 2 (original + safety)", len(backups))
	}
	safety, err := os.ReadFile(filepath.Join(backups[0].Path, testFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(safety) != "T | 1 | current\n" {
		t.Errorf("safety backup = %q", safety)
	}
}

func TestManager_RestoreRejectsCorruptBackup(t *testing.T) {
	tmpDir := t.TempDir()
	writeTasks(t, tmpDir, "X | 0 | not a task\n")
	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}

	err = manager.Restore(name)
	if err == nil {
		t.Fatal("Restore() of a corrupt backup succeeded")
	}
	if !strings.Contains(err.Error(), "safety backup") {
		t.Errorf("error %q does not name the safety backup", err)
	}
}

func TestManager_RestoreRejectsMultiFileManifest(t *testing.T) {
	tmpDir := t.TempDir()
	writeTasks(t, tmpDir, sampleTasks)
	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}

	manifestPath := filepath.Join(tmpDir, BackupsDir, name, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		t.Fatal(err)
	}
	manifest.Files = append(manifest.Files, "other.txt")
	if err := writeJSON(manifestPath, manifest); err != nil {
		t.Fatal(err)
	}
	writeTasks(t, tmpDir, "T | 0 | current\n")

	if err := manager.Restore(name); err == nil {
		t.Fatal("Restore() with two manifest files succeeded")
	}
	if got := readTasks(t, tmpDir); got != "T | 0 | current\n" {
		t.Errorf("task file changed to %q", got)
	}
	backups, err := manager.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("backups = %d, want 1 (no safety backup for a rejected restore)", len(backups))
	}
}

func TestManager_RestoreLatest(t *testing.T) {
	tmpDir := t.TempDir()
	manager := newTestManager(t, tmpDir)

	if _, err := manager.RestoreLatest(); err != ErrNoBackups {
		t.Errorf("RestoreLatest() on empty = %v, want ErrNoBackups", err)
	}

	writeTasks(t, tmpDir, "T | 0 | first\n")
	if _, err := manager.Create(); err != nil {
		t.Fatal(err)
	}
	writeTasks(t, tmpDir, "T | 0 | second\n")
	latest, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}
	writeTasks(t, tmpDir, "T | 0 | third\n")

	name, err := manager.RestoreLatest()
	if err != nil {
		t.Fatalf("RestoreLatest() error: %v", err)
	}
	if name != latest {
		t.Errorf("restored %s, want %s", name, latest)
	}
	if got := readTasks(t, tmpDir); got != "T | 0 | second\n" {
		t.Errorf("contents = %q", got)
	}
}

func TestManager_RestoreNonexistent(t *testing.T) {
	manager := NewManager(t.TempDir(), testFile, "test")

	if err := manager.Restore("2020-01-01_000000_000"); err == nil {
		t.Error("Restore() of a missing backup succeeded")
	}
}

func TestManager_RejectsBadNames(t *testing.T) {
	manager := NewManager(t.TempDir(), testFile, "test")

	for _, name := range []string{"", "../etc", "2020-01-01_000000_000/../x", "backup"} {
		if err := manager.Restore(name); err == nil {
			t.Errorf("Restore(%q) succeeded", name)
		}
		if err := manager.Delete(name); err == nil {
			t.Errorf("Delete(%q) succeeded", name)
		}
	}
}

func TestManager_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	manager := newTestManager(t, tmpDir)

	name, err := manager.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := manager.Delete(name); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := manager.GetBackup(name); err == nil {
		t.Error("backup still present after Delete()")
	}
}

func TestManager_Prune(t *testing.T) {
	tmpDir := t.TempDir()
	manager := newTestManager(t, tmpDir)

	var names []string
	for i := 0; i < 5; i++ {
		name, err := manager.Create()
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}

	deleted, err := manager.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune() deleted %d, want 3", deleted)
	}

	backups, _ := manager.List()
	if len(backups) != 2 || backups[0].Name != names[4] || backups[1].Name != names[3] {
		t.Errorf("remaining = %v", backups)
	}

	if _, err := manager.Prune(-1); err == nil {
		t.Error("Prune(-1) succeeded")
	}
}

func TestParseBackupName(t *testing.T) {
	got, err := parseBackupName("2025-12-15_143022_250")
	if err != nil {
		t.Fatalf("parseBackupName() error: %v", err)
	}
	want := time.Date(2025, 12, 15, 14, 30, 22, 250*int(time.Millisecond), time.Local)
	if !got.Equal(want) {
		t.Errorf("parseBackupName() = %v, want %v", got, want)
	}

	if _, err := parseBackupName("2025-12-15_143022"); err != nil {
		t.Errorf("short form rejected: %v", err)
	}
	if _, err := parseBackupName("2025-12-15_143022_abc"); err == nil {
		t.Error("bad milliseconds accepted")
	}
}
