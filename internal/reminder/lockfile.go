package reminder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/soberly/internal/constants"
)

// ErrAlreadyRunning is returned when another reminder daemon holds the lock.
var ErrAlreadyRunning = errors.New("reminder daemon is already running")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a PID lockfile held by the running reminder daemon.
type Lock struct {
	path string
}

// AcquireLock creates the lockfile in dir. A lockfile left behind by a
// process that no longer exists, or whose PID now belongs to another
// program, is treated as stale and replaced.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.ReminderLockfileName)

	if pid, err := readLockfile(path); err == nil {
		if holderAlive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		// A malformed lockfile cannot protect anything; overwrite it.
		_ = os.Remove(path)
	}

	content := strconv.Itoa(getpidFunc()) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Path returns the lockfile location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	pid, err := readLockfile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if pid != getpidFunc() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func readLockfile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}

func holderAlive(pid int) bool {
	if pid == getpidFunc() {
		return false
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
