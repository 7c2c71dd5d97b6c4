package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/internal/metrics"
)

func newBatchCommand(cc *commandContext) *cobra.Command {
	var (
		rf             requestFlags
		input          string
		outDir         string
		continueOnFail bool
		noCache        bool
		textfile       string
	)

	cmd := &cobra.Command{
		Use:   "batch [video-id|url...]",
		Short: "Traite une liste de vidéos et écrit <id>.json par vidéo",
		Long: "Traite une liste de vidéos (arguments et/ou --input, une par ligne, # pour commenter)\n" +
			"et écrit un fichier <id>.json par vidéo dans le dossier de sortie.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			videos := append([]string{}, args...)
			if input != "" {
				more, err := readInputFile(input)
				if err != nil {
					return err
				}
				videos = append(videos, more...)
			}
			if len(videos) == 0 {
				return fmt.Errorf("aucune vidéo à traiter (arguments ou --input)")
			}

			deps, err := cc.newApp(ctx, !noCache)
			if err != nil {
				return err
			}
			defer deps.Close()

			cfg := deps.app.Config()
			if cmd.Flags().Changed("continue-on-fail") {
				cfg.ContinueOnFail = continueOnFail
			}
			if !cmd.Flags().Changed("out") {
				outDir = cfg.OutputDir
			}
			if cmd.Flags().Changed("metrics-textfile") {
				cfg.Metrics.Textfile = textfile
			}

			reqs := make([]app.Request, 0, len(videos))
			for _, v := range videos {
				req := app.NewRequest(cfg, v)
				if err := rf.apply(cmd, &req); err != nil {
					return err
				}
				reqs = append(reqs, req)
			}

			report, runErr := deps.app.RunBatch(ctx, reqs, outDir)
			fmt.Fprintln(cmd.ErrOrStderr(), renderReport(report))

			if err := metrics.WriteTextfile(cfg.Metrics.Textfile, deps.registry); err != nil {
				log := logging.WithComponent("metrics")
				log.Warn().Err(err).Msg("textfile")
			}
			return runErr
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "Fichier listant les vidéos (- pour stdin)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Dossier de sortie (défaut : output_dir de la config)")
	cmd.Flags().BoolVar(&continueOnFail, "continue-on-fail", false, "Écrire {\"error\"} pour une vidéo en échec et continuer")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignorer le cache local")
	cmd.Flags().StringVar(&textfile, "metrics-textfile", "", "Fichier .prom écrit en fin de lot")
	return cmd
}

func readInputFile(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return app.ReadInputs(r)
}

func renderReport(report app.BatchReport) string {
	rows := make([][]string, 0, len(report.Items))
	for _, it := range report.Items {
		detail := it.Path
		if it.Err != nil {
			detail = it.Err.Error()
		}
		cues := "-"
		if it.Cues != app.NoCues {
			cues = strconv.Itoa(it.Cues)
		}
		rows = append(rows, []string{it.VideoID, it.Status, it.SubtitleType, cues, detail})
	}
	return renderTable(
		[]string{"Vidéo", "Statut", "Type", "Cues", "Détail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
