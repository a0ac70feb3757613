package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

const lockFile = "predict.lock"

// Lock marks a prediction as in flight for a session directory.
type Lock struct {
	path string
}

// Lock acquires the in-flight lock. If another live process holds it,
// a *BusyError matching ErrBusy is returned. A lock left by a process that
// no longer exists is reclaimed.
func (s *Store) Lock() (*Lock, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	path := filepath.Join(s.dir, lockFile)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		pid, alive := holder(path)
		if alive {
			return nil, &BusyError{PID: pid}
		}
		s.logger.Warn("removing stale prediction lock", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}
	return nil, ErrBusy
}

// holder returns the PID recorded in the lock file and whether that process
// is still running. An unreadable or empty lock counts as stale.
func holder(path string) (int, bool) {
	data, err := os.ReadFile(path) // #nosec G304 - lock file inside the session directory
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	proc, err := ps.FindProcess(pid)
	if err != nil || proc == nil {
		return pid, false
	}
	return pid, true
}

// Release removes the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
