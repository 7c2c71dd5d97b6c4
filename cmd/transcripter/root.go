package main

import (
	"github.com/spf13/cobra"
)

// version est injectée au build (-ldflags "-X main.version=...").
var version = "dev"

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "transcripter",
		Short:         "Récupère et normalise les transcriptions de vidéos YouTube via yt-dlp",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := cc.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "", "Chemin du fichier de configuration (yaml ou toml)")
	rootCmd.PersistentFlags().StringVar(&cc.ytDlpPath, "yt-dlp-path", "", "Chemin vers l'exécutable yt-dlp")
	rootCmd.PersistentFlags().StringVar(&cc.logLevel, "log-level", "", "Niveau de log (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cc.cookieFile, "cookie-file", "", "Fichier cookies.txt (Netscape) passé à yt-dlp")
	rootCmd.PersistentFlags().StringVar(&cc.cookieString, "cookie-string", "", "Contenu de cookies Netscape (écrit dans un fichier temporaire)")

	rootCmd.AddCommand(newFetchCommand(cc))
	rootCmd.AddCommand(newBatchCommand(cc))
	rootCmd.AddCommand(newServeCommand(cc))
	rootCmd.AddCommand(newVersionCommand(cc))
	rootCmd.AddCommand(newConfigCommand(cc))

	return rootCmd
}

// shouldSkipConfig : commandes qui fonctionnent sans fichier de configuration.
func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfig"] == "true" {
			return true
		}
	}
	return false
}
