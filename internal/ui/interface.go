package ui

import (
	"context"
)

type Interface interface {
	// GetVideo renvoie une URL YouTube ou un identifiant valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetVideo(ctx context.Context) (string, error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
