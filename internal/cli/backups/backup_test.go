package backups

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/soberly/internal/cli/clitest"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/storage/sqlite"
)

func sqliteEnv(t *testing.T) *clitest.Env {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "soberly.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return clitest.New(t, store)
}

func TestBackup_Unsupported(t *testing.T) {
	env := clitest.New(t, nil)
	err := (&BackupListCmd{}).Run(env.Context)
	if err == nil || !strings.Contains(err.Error(), "SQLite") {
		t.Fatalf("Run() error = %v, want unsupported error", err)
	}
}

func TestBackup_CreateListRestore(t *testing.T) {
	env := sqliteEnv(t)

	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(env.Buf.String(), "No backups yet.") {
		t.Errorf("empty list output = %q", env.Buf.String())
	}

	// Snapshot with one mood, then add a second.
	if _, err := env.Tracker.AddMood(models.MoodGood, ""); err != nil {
		t.Fatalf("AddMood() error = %v", err)
	}
	env.Buf.Reset()
	if err := (&BackupCreateCmd{}).Run(env.Context); err != nil {
		t.Fatalf("create error = %v", err)
	}
	if !strings.Contains(env.Buf.String(), "Backup created:") {
		t.Errorf("create output = %q", env.Buf.String())
	}
	if _, err := env.Tracker.AddMood(models.MoodBad, ""); err != nil {
		t.Fatalf("AddMood() error = %v", err)
	}

	env.Buf.Reset()
	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(env.Buf.String(), " 1. ") {
		t.Errorf("list output = %q", env.Buf.String())
	}

	env.Clock.Advance(time.Minute)
	env.Buf.Reset()
	if err := (&BackupRestoreCmd{Backup: "1"}).Run(env.Context); err != nil {
		t.Fatalf("restore error = %v", err)
	}
	out := env.Buf.String()
	if !strings.Contains(out, "Restored from") || !strings.Contains(out, "replaced database was saved") {
		t.Errorf("restore output = %q", out)
	}

	restored := sqlite.NewStore(env.Store.GetConfigPath())
	if err := restored.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer restored.Close()
	moods, err := restored.LoadMoodEntries()
	if err != nil {
		t.Fatalf("LoadMoodEntries() error = %v", err)
	}
	if len(moods) != 1 || moods[0].Mood != models.MoodGood {
		t.Errorf("restored moods = %+v, want the single good entry", moods)
	}
}

func TestBackupRestore_BadReference(t *testing.T) {
	env := sqliteEnv(t)
	for _, ref := range []string{"3", "0", filepath.Join(t.TempDir(), "missing.db")} {
		if err := (&BackupRestoreCmd{Backup: ref}).Run(env.Context); err == nil {
			t.Errorf("restore %q expected error", ref)
		}
	}
}
