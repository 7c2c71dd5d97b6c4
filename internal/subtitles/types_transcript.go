// Package subtitles sélectionne la piste de sous-titres à récupérer et transforme
// un fichier de cues (VTT/SRT) en transcript minuté. Le package ne fait aucune I/O.
package subtitles

import (
	"strings"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

// Transcript : suite ordonnée de cues, dans l'ordre d'apparition du fichier source.
// Jamais dédupliquée ni fusionnée.
type Transcript struct {
	Cues []model.Cue
}

// NewTranscript construit un Transcript à partir de cues déjà prêts.
func NewTranscript(cues []model.Cue) Transcript {
	return Transcript{Cues: cues}
}

func (t Transcript) Len() int {
	return len(t.Cues)
}

func (t Transcript) IsEmpty() bool {
	return len(t.Cues) == 0
}

// PlainText joint le texte des cues par un espace. Recalculé à chaque appel.
func (t Transcript) PlainText() string {
	parts := make([]string, 0, len(t.Cues))
	for _, c := range t.Cues {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " ")
}
