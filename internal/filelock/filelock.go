// Package filelock guards the state directory against concurrent
// driftwall instances. Two slideshows driving the same wallpaper would
// fight over the surface, so the run command takes this lock first.
//
// The lock is a pidfile: acquiring writes the owner's pid, and a stale
// file left by a dead process is reclaimed by checking whether that pid
// is still alive.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/errors"
)

// ErrLocked reports that another live instance holds the lock.
var ErrLocked = errors.New("state directory is locked by another instance")

// Lock is a held instance lock. Release it on shutdown.
type Lock struct {
	fs   afero.Fs
	path string
}

// Acquire takes the instance lock for stateDir. It fails with ErrLocked
// while the owning process is alive and reclaims the pidfile otherwise.
func Acquire(fs afero.Fs, stateDir string) (*Lock, error) {
	if err := fs.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	path := filepath.Join(stateDir, "driftwall.pid")

	if pid, ok := readPid(fs, path); ok && pidAlive(pid) {
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
	}

	pid := os.Getpid()
	if err := afero.WriteFile(fs, path, []byte(strconv.Itoa(pid)+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("failed to write pidfile: %w", err)
	}
	return &Lock{fs: fs, path: path}, nil
}

// Release drops the lock. Safe to call more than once.
func (l *Lock) Release() error {
	err := l.fs.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the pidfile location.
func (l *Lock) Path() string {
	return l.path
}

func readPid(fs afero.Fs, path string) (int, bool) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// pidAlive reports whether the process exists. Signal 0 probes without
// delivering anything.
func pidAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
