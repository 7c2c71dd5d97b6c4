package model

import "encoding/json"

// Cue : un sous-titre minuté, secondes arrondies à la milliseconde.
// Duration peut être négative si la source est incohérente (fin < début).
type Cue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Result est l'enregistrement produit pour une vidéo.
// Transcript nil : sortie structurée non demandée. Non nil mais vide : aucune cue retenue,
// encodé "transcript":[].
// Error n'est renseigné que pour les items en échec d'un batch tolérant.
type Result struct {
	YoutubeID      string         `json:"youtubeId,omitempty"`
	SubtitleType   string         `json:"subtitleType,omitempty"`
	Language       string         `json:"language,omitempty"`
	Transcript     []Cue          `json:"transcript"`
	TranscriptText *string        `json:"transcriptText,omitempty"`
	Metadata       *VideoMetadata `json:"metadata,omitempty"`
	Error          string         `json:"error,omitempty"`
}

type resultJSON struct {
	YoutubeID      string         `json:"youtubeId,omitempty"`
	SubtitleType   string         `json:"subtitleType,omitempty"`
	Language       string         `json:"language,omitempty"`
	Transcript     *[]Cue         `json:"transcript,omitempty"`
	TranscriptText *string        `json:"transcriptText,omitempty"`
	Metadata       *VideoMetadata `json:"metadata,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// MarshalJSON omet transcript seulement quand il est nil.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		YoutubeID:      r.YoutubeID,
		SubtitleType:   r.SubtitleType,
		Language:       r.Language,
		TranscriptText: r.TranscriptText,
		Metadata:       r.Metadata,
		Error:          r.Error,
	}
	if r.Transcript != nil {
		out.Transcript = &r.Transcript
	}
	return json.Marshal(out)
}

// Failed indique si le résultat représente un item en échec.
func (r Result) Failed() bool {
	return r.Error != ""
}
