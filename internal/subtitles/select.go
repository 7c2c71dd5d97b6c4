package subtitles

import (
	"errors"
	"fmt"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

var ErrNoSubtitle = errors.New("no subtitle available for given language")

// NotFoundError : aucune variante de la langue demandée n'existe, ni en manuel
// ni en automatique. errors.Is(err, ErrNoSubtitle) est vrai.
type NotFoundError struct {
	Lang string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no transcript found for this video with language %q", e.Lang)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNoSubtitle
}

// Selection : la piste retenue et sa provenance.
type Selection struct {
	Lang   string          // code langue réellement utilisé (peut être une variante)
	Source model.SubSource // manual ou automatic
}

func (s Selection) IsManual() bool {
	return s.Source == model.SubSourceManual
}

// SubtitleType : "manual" ou "auto-generated".
func (s Selection) SubtitleType() string {
	return s.Source.SubtitleType()
}

// LanguageVariants retourne les codes essayés, dans l'ordre : exact, _US, -US.
func LanguageVariants(lang string) []string {
	return []string{lang, lang + "_US", lang + "-US"}
}

// Select choisit une piste dans le catalogue.
//
// preferManual=true : toutes les variantes en manuel d'abord, puis toutes en automatique.
// preferManual=false : variante par variante, manuel puis automatique ; une variante
// plus tardive n'est jamais choisie avant une plus précoce.
//
// Des maps nil ou vides sont traitées comme absentes.
func Select(c model.CaptionCatalog, lang string, preferManual bool) (Selection, error) {
	variants := LanguageVariants(lang)

	if preferManual {
		for _, v := range variants {
			if c.Has(v, model.SubSourceManual) {
				return Selection{Lang: v, Source: model.SubSourceManual}, nil
			}
		}
		for _, v := range variants {
			if c.Has(v, model.SubSourceAutomatic) {
				return Selection{Lang: v, Source: model.SubSourceAutomatic}, nil
			}
		}
		return Selection{}, &NotFoundError{Lang: lang}
	}

	for _, v := range variants {
		if c.Has(v, model.SubSourceManual) {
			return Selection{Lang: v, Source: model.SubSourceManual}, nil
		}
		if c.Has(v, model.SubSourceAutomatic) {
			return Selection{Lang: v, Source: model.SubSourceAutomatic}, nil
		}
	}
	return Selection{}, &NotFoundError{Lang: lang}
}

// SelectedTracks retourne les pistes correspondant à une sélection.
func SelectedTracks(c model.CaptionCatalog, s Selection) []model.SubtitleTrack {
	return c.Tracks(s.Lang, s.Source)
}
