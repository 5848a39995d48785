package emit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// LockFile is created in the output directory while files are written.
const LockFile = ".unitgen.lock"

// lockRetry is the delay between lock attempts.
const lockRetry = 200 * time.Millisecond

// WriteResult reports what Write changed.
type WriteResult struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

// Write stores files in dir under an exclusive lock on dir, waiting at most
// timeout for another writer to finish. Files whose content is unchanged are
// left alone; generator files not in files are removed. Other files in dir
// are never touched.
func Write(ctx context.Context, dir string, files []File, timeout time.Duration, log *zap.Logger) (*WriteResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output dir: %w", err)
	}
	unlock, err := acquireOutputLock(ctx, dir, timeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b File) int { return strings.Compare(a.Name, b.Name) })

	res := &WriteResult{}
	keep := make(map[string]bool, len(sorted))
	for _, f := range sorted {
		keep[f.Name] = true
		path := filepath.Join(dir, f.Name)
		changed, err := writeIfChanged(path, f.Content)
		if err != nil {
			return res, fmt.Errorf("cannot write %s: %w", path, err)
		}
		if !changed {
			res.Unchanged = append(res.Unchanged, f.Name)
			continue
		}
		res.Written = append(res.Written, f.Name)
		log.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(f.Content)))
	}

	stale := FileNames()
	slices.Sort(stale)
	for _, name := range stale {
		if keep[name] {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return res, fmt.Errorf("cannot remove stale %s: %w", path, err)
		}
		res.Removed = append(res.Removed, name)
		log.Debug("removed stale file", zap.String("path", path))
	}
	return res, nil
}

// acquireOutputLock takes the output directory lock, retrying until timeout
// or ctx ends.
func acquireOutputLock(ctx context.Context, dir string, timeout time.Duration) (func(), error) {
	lockPath := filepath.Join(dir, LockFile)
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire output lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, lockPath)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetry):
		}
	}
}

// writeIfChanged replaces path with content through a temporary file in the
// same directory. It reports false when path already holds content.
func writeIfChanged(path string, content []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && string(old) == string(content) {
		return false, nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, err
	}
	return true, os.Rename(tmp.Name(), path)
}

// Busy reports whether another generation currently holds the lock on dir.
// A missing dir is not busy.
func Busy(dir string) (bool, error) {
	lockPath := filepath.Join(dir, LockFile)
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		return false, nil
	}
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil {
		return false, fmt.Errorf("cannot probe output lock: %w", err)
	}
	if locked {
		_ = l.Unlock()
	}
	return !locked, nil
}
