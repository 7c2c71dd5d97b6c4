package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/transcripter/internal/assets"
	"github.com/patrickprogramme/transcripter/internal/fsutil"
	"github.com/patrickprogramme/transcripter/internal/logging"
)

// DefaultConfig écrit la configuration d'exemple embarquée vers path.
// Un fichier existant n'est jamais remplacé : created vaut alors false.
func DefaultConfig(path string) (created bool, err error) {
	return writeAsset(path, assets.Embedded, assets.DefaultConfigAsset)
}

func writeAsset(path string, fsys fs.FS, name string) (bool, error) {
	switch st, err := os.Stat(path); {
	case err == nil && st.IsDir():
		return false, fmt.Errorf("config %s : est un répertoire", path)
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("config %s : %w", path, err)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return false, fmt.Errorf("asset %s : %w", name, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("config %s : %w", path, err)
		}
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return false, fmt.Errorf("config %s : %w", path, err)
	}

	log := logging.WithComponent("bootstrap")
	log.Info().Str("path", path).Msg("created default config")
	return true, nil
}
