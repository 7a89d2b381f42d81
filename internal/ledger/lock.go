package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Lock serializes the load-merge-save sequence across processes. Two runs
// against the same ledger path would otherwise race at the file level and
// the second writer would silently drop the first one's records.
type Lock struct {
	path string
}

// Acquire takes an exclusive lock for the given ledger path. It fails fast
// when another run already holds it.
func Acquire(ledgerPath string) (*Lock, error) {
	lockPath := ledgerPath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("ledger %s is locked by another run (remove %s if it is stale)", ledgerPath, lockPath)
	}
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()

	return &Lock{path: lockPath}, nil
}

// Release removes the lock file. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	return os.Remove(l.path)
}
