package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/transcripter/internal/updater"
	"github.com/patrickprogramme/transcripter/internal/yt"
)

func newVersionCommand(cc *commandContext) *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Affiche la version de transcripter et de yt-dlp",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "transcripter %s\n", version)

			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			_, ver, err := yt.InitYtDlp(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "yt-dlp %s\n", ver)

			if !checkUpdate {
				return nil
			}
			uctx, cancel := context.WithTimeout(ctx, defaultUpdateTimeout)
			defer cancel()
			up, err := updater.CheckYtDlp(uctx, ver, runtime.GOOS)
			if err != nil {
				return err
			}
			if !up.Outdated {
				fmt.Fprintln(out, "yt-dlp est à jour.")
				return nil
			}
			fmt.Fprintf(out, "Nouvelle version disponible : %s\n%s\n", up.Latest.Tag, up.Link())
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "Comparer avec la dernière release GitHub de yt-dlp")
	return cmd
}
