package reminder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/soberly/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func withProcesses(t *testing.T, self int, procs map[int]string) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc = oldFind
		getpidFunc = oldPid
	})
	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireLock(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		procs    map[int]string
		wantErr  error
	}{
		{name: "no lockfile"},
		{name: "stale pid", existing: "4242\n"},
		{name: "pid reused by other program", existing: "4242", procs: map[int]string{4242: "bash"}},
		{name: "malformed lockfile", existing: "not-a-pid"},
		{name: "held by running daemon", existing: "4242", procs: map[int]string{4242: "soberly"}, wantErr: ErrAlreadyRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcesses(t, 100, tt.procs)
			path := filepath.Join(dir, constants.ReminderLockfileName)
			if tt.existing != "" {
				if err := os.WriteFile(path, []byte(tt.existing), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			lock, err := AcquireLock(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AcquireLock() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AcquireLock() error = %v", err)
			}

			content, err := os.ReadFile(lock.Path())
			if err != nil {
				t.Fatal(err)
			}
			if string(content) != "100\n" {
				t.Errorf("lockfile content = %q, want our pid", content)
			}

			if err := lock.Release(); err != nil {
				t.Fatalf("Release() error = %v", err)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Error("lockfile should be removed after Release")
			}
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, nil)

	lock, err := AcquireLock(dir)
	if err != nil {
		t.Fatal(err)
	}
	// Another daemon took over after ours was considered stale.
	if err := os.WriteFile(lock.Path(), []byte("200"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Error("foreign lockfile should be left in place")
	}
}
