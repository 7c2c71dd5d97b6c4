package yt

import (
	"encoding/json"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

type subtitleItem struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ytdlpOutput représente la sortie JSON brute retournée par yt-dlp pour une vidéo.
//
// Subtitles et AutomaticCaptions sont des maps où :
//   - la clé (string) correspond au code langue de la piste (ex. "fr", "en", "en-US").
//   - la valeur ([]subtitleItem) liste toutes les pistes disponibles pour cette langue,
//     une par format (vtt, srv3, json3...).
type ytdlpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Duration          float64                   `json:"duration"`
	Uploader          string                    `json:"uploader"`
	UploadDate        string                    `json:"upload_date"`
	ViewCount         int64                     `json:"view_count"`
	Description       string                    `json:"description"`
	Thumbnail         string                    `json:"thumbnail"`
	Tags              []string                  `json:"tags"`
	Categories        []string                  `json:"categories"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ExtractedRaw contient le JSON raw, une liste de lignes d'avertissements
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// PrettyJSON retourne un json indenté
func (r *ExtractedRaw) PrettyJSON() ([]byte, error) {
	var obj any
	if err := json.Unmarshal(r.JSON, &obj); err != nil {
		return nil, err
	}
	return json.MarshalIndent(obj, "", "  ")
}

// SubtitleRequest décrit le téléchargement d'une piste déjà sélectionnée.
type SubtitleRequest struct {
	URL           string
	Lang          string          // code retenu par la sélection
	RequestedLang string          // code demandé, ses variantes servent de repli pour trouver le fichier
	Source        model.SubSource // manual => --write-subs
	CookieFile    string
}

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + config.
type YtDlp struct {
	Name   string
	Path   string // chemin vers l'exe ; vide => résolu par go-ytdlp
	Config YtDlpConfig
}
