package tracker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/soberly/internal/backup"
	"github.com/julianstephens/soberly/internal/clock"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage/sqlite"
)

func TestSQLiteResetWithBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "soberly.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer store.Close()

	clk := clock.NewFixed(testNow)
	tk := New(store, clk, nil, nil).WithBackups(backup.NewManager(dbPath, clk))
	tk.Load()

	if _, err := tk.SaveProfile(context.Background(), validInput()); err != nil {
		t.Fatal(err)
	}
	if _, err := tk.AddMood(models.MoodOkay, "first entry"); err != nil {
		t.Fatal(err)
	}

	snapshot, err := tk.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	saved := sqlite.NewStore(snapshot)
	if err := saved.Load(); err != nil {
		t.Fatalf("Load(snapshot) error = %v", err)
	}
	defer saved.Close()
	if _, err := saved.LoadProfile(); err != nil {
		t.Errorf("snapshot should hold the profile: %v", err)
	}
	moods, err := saved.LoadMoodEntries()
	if err != nil || len(moods) != 1 {
		t.Errorf("snapshot moods = %v, %v", moods, err)
	}

	reloaded := New(store, clk, nil, nil)
	reloaded.Load()
	if reloaded.IsSetupComplete() {
		t.Error("profile should be gone after reset")
	}
}
