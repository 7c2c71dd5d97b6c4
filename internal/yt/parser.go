package yt

import (
	"encoding/json"
	"fmt"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

// ParseYTDLP transforme le JSON brut en struct Meta.
// Les champs de métadonnées sont recopiés sans transformation.
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}

	meta := &model.Meta{
		ID: y.ID,
		Video: model.VideoMetadata{
			Title:       y.Title,
			Duration:    y.Duration,
			Uploader:    y.Uploader,
			UploadDate:  y.UploadDate,
			ViewCount:   y.ViewCount,
			Description: y.Description,
			Thumbnail:   y.Thumbnail,
			Tags:        y.Tags,
			Categories:  y.Categories,
		},
		Captions: model.CaptionCatalog{
			Manual:    collectTracks(y.Subtitles, model.SubSourceManual),
			Automatic: collectTracks(y.AutomaticCaptions, model.SubSourceAutomatic),
		},
	}
	return meta, nil
}

// collectTracks garde toutes les pistes de chaque langue, quel que soit le format :
// seule la présence compte pour la sélection.
func collectTracks(in map[string][]subtitleItem, src model.SubSource) map[string][]model.SubtitleTrack {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]model.SubtitleTrack, len(in))
	for lang, items := range in {
		if len(items) == 0 {
			continue
		}
		tracks := make([]model.SubtitleTrack, 0, len(items))
		for _, it := range items {
			f, err := model.ParseFormat(it.Ext)
			if err != nil {
				f = model.Format(it.Ext) // format inconnu : on garde l'extension brute
			}
			tracks = append(tracks, model.SubtitleTrack{
				Lang:   lang,
				Format: f,
				URL:    it.URL,
				Source: src,
			})
		}
		out[lang] = tracks
	}
	return out
}
