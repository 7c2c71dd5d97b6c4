package yt

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// GetVersion exécute le binaire yt-dlp avec l'option --version et retourne sa sortie.
func (y *YtDlp) GetVersion(ctx context.Context) (string, error) {
	cmd := ytdlp.New()
	if exe := y.executable(); exe != "" {
		cmd = cmd.SetExecutable(exe)
	}
	res, err := cmd.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("échec exécution yt-dlp --version : %w", classifyRunError(err))
	}
	return strings.TrimSpace(res.Stdout), nil
}
