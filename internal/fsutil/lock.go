package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked : un autre processus tient déjà le verrou du dossier.
var ErrLocked = errors.New("output directory is locked by another process")

const lockFileName = ".transcripter.lock"

// LockDir prend un verrou exclusif sur dir (fichier .transcripter.lock).
// Réessaie toutes les 200ms jusqu'à l'expiration de ctx.
func LockDir(ctx context.Context, dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	fl := flock.New(filepath.Join(dir, lockFileName))
	ok, err := fl.TryLockContext(ctx, 200*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
		}
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return fl, nil
}
