package filelock

import (
	"os"
	"strconv"
	"testing"

	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/errors"
)

func TestAcquireAndRelease(t *testing.T) {
	fs := afero.NewMemMapFs()

	lock, err := Acquire(fs, "/state")
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}

	data, err := afero.ReadFile(fs, lock.Path())
	if err != nil {
		t.Fatalf("pidfile missing: %v", err)
	}
	if string(data) != strconv.Itoa(os.Getpid())+"\n" {
		t.Errorf("pidfile = %q, want own pid", data)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if exists, _ := afero.Exists(fs, lock.Path()); exists {
		t.Error("pidfile still present after release")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release() failed: %v", err)
	}
}

func TestSecondAcquireBlocked(t *testing.T) {
	fs := afero.NewMemMapFs()

	lock, err := Acquire(fs, "/state")
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	defer lock.Release()

	// The pidfile names this test process, which is certainly alive.
	if _, err := Acquire(fs, "/state"); !errors.Is(err, ErrLocked) {
		t.Errorf("second Acquire() error = %v, want ErrLocked", err)
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	fs := afero.NewMemMapFs()

	lock, err := Acquire(fs, "/state")
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}

	if _, err := Acquire(fs, "/state"); err != nil {
		t.Errorf("reacquire failed: %v", err)
	}
}

func TestCorruptPidfileReclaimed(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/state/driftwall.pid", []byte("not a pid"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := Acquire(fs, "/state"); err != nil {
		t.Errorf("Acquire() over corrupt pidfile failed: %v", err)
	}
}
