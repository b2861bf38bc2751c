package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/soberly/internal/clock"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/storage/sqlite"
	"github.com/julianstephens/soberly/internal/storage/storagetest"
)

// setupTestDB creates an initialized database holding the sample profile.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "soberly.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.SaveProfile(storagetest.SampleProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	clk := clock.NewFixed(time.Date(2026, 3, 10, 14, 5, 9, 0, time.Local))
	mgr := NewManager(dbPath, clk)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got, want := filepath.Base(path), "soberly-20260310-140509.db"; got != want {
		t.Errorf("backup name = %q, want %q", got, want)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup dir = %q", filepath.Dir(path))
	}

	profile, err := openStore(t, path).LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() from backup error = %v", err)
	}
	if !profile.Equal(storagetest.SampleProfile()) {
		t.Errorf("backup profile = %+v, want sample", profile)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"), nil)
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want ErrNoDatabase", err)
	}
}

func TestUniqueNamesWithinSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, clock.NewFixed(time.Date(2026, 3, 10, 14, 5, 9, 0, time.Local)))

	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		name := filepath.Base(path)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 4 {
		t.Errorf("List() = %d backups, want 4", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	clk := clock.NewFixed(time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local))
	mgr := NewManager(dbPath, clk)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		clk.Advance(time.Minute)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("List() = %d backups, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backup %d is newer than backup %d", i, i-1)
		}
	}
	newest := clk.Now().Add(-time.Minute)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, nil)

	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Fatalf("List() on missing dir = %v, %v", backups, err)
	}

	if err := os.MkdirAll(mgr.Dir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "soberly-garbage.db", "soberly-20260101-120000-x.db", "other-20260101-120000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("List() = %d backups, want 1", len(backups))
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"soberly-20260310-140509.db", true},
		{"soberly-20260310-140509-3.db", true},
		{"soberly-20260310-1405.db", false},
		{"soberly-20260310-140509-.db", false},
		{"daylit-20260310-140509.db", false},
		{"soberly-20260310-140509.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := parseName(tt.name); ok != tt.ok {
				t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	clk := clock.NewFixed(time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local))
	mgr := NewManager(dbPath, clk)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	store.Close()

	clk.Advance(time.Minute)
	previous, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if previous == "" {
		t.Error("Restore() should snapshot the current database first")
	}

	if _, err := openStore(t, previous).LoadProfile(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("pre-restore snapshot should hold the cleared state, got %v", err)
	}
	profile, err := openStore(t, dbPath).LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() after restore error = %v", err)
	}
	if !profile.Equal(storagetest.SampleProfile()) {
		t.Errorf("restored profile = %+v, want sample", profile)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, nil)

	invalid := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalid, []byte("not a database"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(invalid); err == nil {
		t.Error("Restore() should reject a file that is not a database")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("Restore() should reject a missing file")
	}
}
