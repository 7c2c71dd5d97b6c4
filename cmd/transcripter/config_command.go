package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/transcripter/internal/bootstrap"
	"github.com/patrickprogramme/transcripter/internal/config"
)

func newConfigCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Gestion du fichier de configuration",
	}

	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Écrit le fichier de configuration d'exemple (sans écraser)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if cc.configPath != "" {
				path = cc.configPath
			}
			if len(args) == 1 {
				path = args[0]
			}
			created, err := bootstrap.DefaultConfig(path)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s existe déjà, inchangé\n", path)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Affiche la configuration effective",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			b, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
