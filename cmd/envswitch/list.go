package main

import (
	"github.com/aretw0/envswitch/internal/config"
	"github.com/aretw0/envswitch/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all environments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd)
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		tui.NewPrinter(cmd.OutOrStdout(), false).EnvironmentList(cfg.Environments)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
