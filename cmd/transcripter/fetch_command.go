package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/internal/clipboard"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/internal/subtitles"
	"github.com/patrickprogramme/transcripter/internal/ui"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

type requestFlags struct {
	lang         string
	preferManual bool
	format       string
	metadata     bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.lang, "lang", "l", "", "Langue demandée (défaut : config)")
	cmd.Flags().BoolVar(&f.preferManual, "prefer-manual", true, "Préférer les sous-titres manuels dans toutes les variantes de langue")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "structured | plainText | both (défaut : config)")
	cmd.Flags().BoolVar(&f.metadata, "metadata", false, "Inclure les métadonnées de la vidéo")
}

// apply surcharge la requête issue de la config avec les flags explicitement passés.
func (f *requestFlags) apply(cmd *cobra.Command, req *app.Request) error {
	if cmd.Flags().Changed("lang") {
		req.Language = f.lang
	}
	if cmd.Flags().Changed("prefer-manual") {
		req.PreferManual = f.preferManual
	}
	if cmd.Flags().Changed("format") {
		of, err := model.ParseOutputFormat(f.format)
		if err != nil {
			return err
		}
		req.OutputFormat = of
	}
	if cmd.Flags().Changed("metadata") {
		req.IncludeMetadata = f.metadata
	}
	return nil
}

func newFetchCommand(cc *commandContext) *cobra.Command {
	var (
		rf      requestFlags
		copyOut bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [video-id|url]",
		Short: "Récupère la transcription d'une vidéo et l'écrit en JSON sur stdout",
		Long: "Récupère la transcription d'une vidéo et l'écrit en JSON sur stdout.\n" +
			"Sans argument, la vidéo est lue depuis le presse-papier puis demandée au terminal.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var video string
			if len(args) == 1 {
				video = args[0]
			} else {
				v, err := ui.NewTerminal(stdinIsTerminal()).GetVideo(ctx)
				if err != nil {
					return err
				}
				video = v
			}

			deps, err := cc.newApp(ctx, !noCache)
			if err != nil {
				return err
			}
			defer deps.Close()

			req := app.NewRequest(deps.app.Config(), video)
			if err := rf.apply(cmd, &req); err != nil {
				return err
			}

			res, err := deps.app.Process(ctx, req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}

			if copyOut {
				copyResult(res)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copier le texte de la transcription dans le presse-papier")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignorer le cache local")
	return cmd
}

func copyResult(res *model.Result) {
	log := logging.WithComponent("clipboard")

	var text string
	if res.TranscriptText != nil {
		text = *res.TranscriptText
	} else {
		text = subtitles.NewTranscript(res.Transcript).PlainText()
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.Warn().Err(err).Msg("copie impossible")
		return
	}
	fmt.Fprintln(os.Stderr, "Transcription copiée dans le presse-papier.")
}
