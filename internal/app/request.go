package app

import (
	"strings"

	"github.com/patrickprogramme/transcripter/internal/config"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

// Request : une vidéo à traiter et les options qui s'y appliquent.
type Request struct {
	VideoID         string // identifiant ou URL
	Language        string
	PreferManual    bool
	OutputFormat    model.OutputFormat
	IncludeMetadata bool
}

// NewRequest remplit les options depuis la configuration.
func NewRequest(cfg *config.Config, videoID string) Request {
	return Request{
		VideoID:         strings.TrimSpace(videoID),
		Language:        cfg.Language,
		PreferManual:    cfg.PreferManualSubs,
		OutputFormat:    cfg.OutputFormat,
		IncludeMetadata: cfg.IncludeMetadata,
	}
}

func (r Request) normalized() Request {
	r.VideoID = strings.TrimSpace(r.VideoID)
	r.Language = strings.TrimSpace(r.Language)
	if r.Language == "" {
		r.Language = "en"
	}
	if r.OutputFormat == "" {
		r.OutputFormat = model.OutputStructured
	}
	return r
}
