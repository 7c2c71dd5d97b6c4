package yt

import (
	"context"
	"errors"
)

var (
	// ErrBinaryNotFound : yt-dlp absent ou impossible à lancer.
	ErrBinaryNotFound = errors.New("yt-dlp binary not found or failed to run")
	// ErrSubtitleFileMissing : yt-dlp s'est exécuté mais aucun fichier de cues n'a été écrit.
	ErrSubtitleFileMissing = errors.New("subtitle file missing after download")
)

// Interface est l'abstraction utilisée par l'application. Elle facilite le test
// en autorisant une implémentation factice dans les tests.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	ExtractRaw(ctx context.Context, url string, cookieFile string) (*ExtractedRaw, error)
	DownloadSubtitle(ctx context.Context, req SubtitleRequest) ([]byte, error)
}
