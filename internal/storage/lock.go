package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/julianstephens/dayweave/internal/constants"
	apperrors "github.com/julianstephens/dayweave/internal/errors"
)

// LockFileName is the advisory lock file kept at the workspace root.
const LockFileName = ".dayweave.lock"

// Lock is an advisory flock on the workspace. Plan generation and
// finalization take it exclusive; read-only commands take it shared.
type Lock struct {
	path string
	file *os.File
}

// AcquireExclusive takes the workspace write lock, retrying until the
// configured timeout before giving up with a LockTimeout.
func AcquireExclusive(root string) (*Lock, error) {
	return acquire(root, unix.LOCK_EX, constants.DefaultLockTimeout)
}

// AcquireShared takes a read lock; concurrent readers are fine, a writer
// blocks them out.
func AcquireShared(root string) (*Lock, error) {
	return acquire(root, unix.LOCK_SH, constants.DefaultLockTimeout)
}

func acquire(root string, how int, timeout time.Duration) (*Lock, error) {
	path := filepath.Join(root, LockFileName)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		err := unix.Flock(int(f.Fd()), how|unix.LOCK_NB)
		if err == nil {
			break
		}
		if err != unix.EWOULDBLOCK && err != unix.EAGAIN {
			f.Close()
			return nil, fmt.Errorf("failed to lock workspace: %w", err)
		}
		if time.Now().After(deadline) {
			f.Close()
			return nil, &apperrors.LockTimeout{Path: path}
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Record the holder's PID so a stale lock can be diagnosed. Best
	// effort; the flock itself is the source of truth.
	if how == unix.LOCK_EX {
		if err := f.Truncate(0); err == nil {
			f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
		}
	}

	return &Lock{path: path, file: f}, nil
}

// Release drops the lock. The lock file itself is left in place; removing
// it would race other processes opening it.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return err
	}
	return closeErr
}

// ReadLockPID returns the PID recorded in the workspace lock file, for
// stale-lock diagnostics. Returns 0 when no lock file or PID exists.
func ReadLockPID(root string) (int, error) {
	data, err := os.ReadFile(filepath.Join(root, LockFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	pid, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("malformed lock file: %q", text)
	}
	return pid, nil
}
