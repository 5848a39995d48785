package emit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "units")
	files := []File{
		{Name: FileMath, Content: []byte("package units\n")},
		{Name: FileBase, Content: []byte("package units\n\ntype M float32\n")},
	}

	res, err := Write(context.Background(), dir, files, time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Written, []string{FileBase, FileMath}) {
		t.Errorf("written = %v", res.Written)
	}
	got, err := os.ReadFile(filepath.Join(dir, FileBase))
	if err != nil || string(got) != string(files[1].Content) {
		t.Fatalf("base.go = %q, %v", got, err)
	}

	res, err = Write(context.Background(), dir, files, time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Written) != 0 || len(res.Unchanged) != 2 {
		t.Errorf("second write: written %v, unchanged %v", res.Written, res.Unchanged)
	}
}

func TestWrite_RemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{FileAutoDerived, "helpers.go"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("package units\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res, err := Write(context.Background(), dir, []File{{Name: FileMath, Content: []byte("package units\n")}}, time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Removed, []string{FileAutoDerived}) {
		t.Errorf("removed = %v, want [%s]", res.Removed, FileAutoDerived)
	}
	if _, err := os.Stat(filepath.Join(dir, "helpers.go")); err != nil {
		t.Errorf("foreign file must be kept: %v", err)
	}
}

func TestWrite_Locked(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, LockFile))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("cannot take lock: %v", err)
	}
	defer held.Unlock()

	files := []File{{Name: FileMath, Content: []byte("package units\n")}}
	if _, err := Write(context.Background(), dir, files, 0, nil); !errors.Is(err, ErrLocked) {
		t.Errorf("err = %v, want ErrLocked", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := Write(ctx, dir, files, time.Minute, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileMath)); !os.IsNotExist(err) {
		t.Error("nothing may be written without the lock")
	}
}
