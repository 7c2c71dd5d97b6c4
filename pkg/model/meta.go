package model

import (
	"fmt"
	"sort"
	"strings"
)

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown   SubSource = "unknown"
	SubSourceAutomatic SubSource = "automatic"
	SubSourceManual    SubSource = "manual"
)

// SubtitleType est la valeur exposée dans le champ subtitleType du résultat.
func (s SubSource) SubtitleType() string {
	if s == SubSourceManual {
		return "manual"
	}
	return "auto-generated"
}

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	default:
		return "unknown subtitles"
	}
}

// SubtitleTrack décrit une piste de sous-titres associée à une vidéo.
type SubtitleTrack struct {
	Lang   string    `json:"lang"`
	Format Format    `json:"format,omitempty"`
	URL    string    `json:"url,omitempty"`
	Source SubSource `json:"source,omitempty"`
}

func (s SubtitleTrack) String() string {
	return fmt.Sprintf("SubtitleTrack(lang=%s, format=%s, source=%s)", s.Lang, s.Format, s.Source)
}

// CaptionCatalog liste les pistes disponibles par code langue.
// Seule la présence d'une liste non vide compte pour la sélection ;
// une langue peut apparaître dans les deux maps, une seule, ou aucune.
type CaptionCatalog struct {
	Manual    map[string][]SubtitleTrack `json:"manual,omitempty"`
	Automatic map[string][]SubtitleTrack `json:"automatic,omitempty"`
}

// Tracks retourne les pistes de la source demandée pour lang (nil si absente).
func (c CaptionCatalog) Tracks(lang string, src SubSource) []SubtitleTrack {
	switch src {
	case SubSourceManual:
		return c.Manual[lang]
	case SubSourceAutomatic:
		return c.Automatic[lang]
	default:
		return nil
	}
}

// Has indique si lang possède au moins une piste pour la source donnée.
func (c CaptionCatalog) Has(lang string, src SubSource) bool {
	return len(c.Tracks(lang, src)) > 0
}

// Languages retourne les codes langue (triés) présents pour une source.
func (c CaptionCatalog) Languages(src SubSource) []string {
	var m map[string][]SubtitleTrack
	switch src {
	case SubSourceManual:
		m = c.Manual
	case SubSourceAutomatic:
		m = c.Automatic
	}
	out := make([]string, 0, len(m))
	for lang, tracks := range m {
		if len(tracks) > 0 {
			out = append(out, lang)
		}
	}
	sort.Strings(out)
	return out
}

// VideoMetadata : champs recopiés tels quels depuis le JSON de yt-dlp.
type VideoMetadata struct {
	Title       string   `json:"title"`
	Duration    float64  `json:"duration"`
	Uploader    string   `json:"uploader"`
	UploadDate  string   `json:"uploadDate"`
	ViewCount   int64    `json:"view_count"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
}

// Meta regroupe les métadonnées extraites d'une vidéo YouTube.
type Meta struct {
	ID       string         `json:"id"`
	Video    VideoMetadata  `json:"video"`
	Captions CaptionCatalog `json:"captions"`
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Uploader=%s, Manual=%d, Auto=%d]",
		m.ID, m.Video.Title, m.Video.Uploader,
		len(m.Captions.Languages(SubSourceManual)), len(m.Captions.Languages(SubSourceAutomatic)))
}

// Pretty retourne une fiche multi-lignes simple avec les langues disponibles.
func (m Meta) Pretty() string {
	formatLangs := func(list []string) string {
		if len(list) == 0 {
			return "(aucun)"
		}
		return strings.Join(list, ", ")
	}

	return fmt.Sprintf(
		"Meta:\n"+
			"  ID         : %s\n"+
			"  Title      : %q\n"+
			"  Uploader   : %s\n"+
			"  Date       : %s\n"+
			"  AutoSubs   : %s\n"+
			"  ManualSubs : %s\n",
		m.ID,
		m.Video.Title,
		m.Video.Uploader,
		m.Video.UploadDate,
		formatLangs(m.Captions.Languages(SubSourceAutomatic)),
		formatLangs(m.Captions.Languages(SubSourceManual)),
	)
}
