// Package lockfile guards a store path against concurrent writers in other
// processes. The lock is a sibling file "<path>.lock" holding "pid|executable".
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when a live process holds the lock
var ErrLocked = errors.New("store is locked by another process")

// HeldError reports who holds the lock
type HeldError struct {
	PID        int
	Executable string
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("%v (pid %d, %s)", ErrLocked, e.PID, e.Executable)
}

func (e *HeldError) Unwrap() error { return ErrLocked }

type Lock struct {
	path    string
	content string
}

// PathFor returns the lock file path guarding storePath
func PathFor(storePath string) string {
	return storePath + constants.LockFileSuffix
}

// Acquire takes the lock for storePath. A lock left behind by a process that
// no longer exists, or whose PID now belongs to a different program, is stale
// and is replaced.
func Acquire(storePath string) (*Lock, error) {
	path := PathFor(storePath)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, selfExecutable(pid))

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, content: content}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		holder, err := readHolder(path)
		if err == nil && holder.alive() {
			return nil, &HeldError{PID: holder.pid, Executable: holder.executable}
		}

		logger.Warn("Removing stale lock file", "path", path, "content", holder.raw)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock file: %w", err)
		}
	}

	return nil, fmt.Errorf("could not acquire lock %s", path)
}

// Release removes the lock file if it still belongs to this lock
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(string(data)) != l.content {
		return nil
	}
	return os.Remove(l.path)
}

type holder struct {
	pid        int
	executable string
	raw        string
}

func readHolder(path string) (holder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return holder{}, err
	}
	raw := strings.TrimSpace(string(data))
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return holder{raw: raw}, errors.New("lock file is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return holder{raw: raw}, errors.New("invalid process ID in lock file")
	}
	return holder{pid: pid, executable: parts[1], raw: raw}, nil
}

func (h holder) alive() bool {
	p, err := findProcessFunc(h.pid)
	if err != nil || p == nil {
		return false
	}
	// PIDs get reused; only the same program counts as the holder
	return h.executable == "" || p.Executable() == h.executable
}

func selfExecutable(pid int) string {
	if p, err := findProcessFunc(pid); err == nil && p != nil {
		return p.Executable()
	}
	return filepath.Base(os.Args[0])
}
