package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/envswitch/internal/cli"
	"github.com/aretw0/envswitch/internal/presentation/tui"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the last activated environment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetInt("history")

		return withApp(optionsFrom(cmd), func(app *cli.App) error {
			printer := tui.NewPrinter(cmd.OutOrStdout(), false)

			if history > 0 {
				records, err := app.Engine.History(cmd.Context(), history)
				if err != nil {
					return err
				}
				for i := range records {
					printer.Record(&records[i])
				}
				return nil
			}

			rec, err := app.Engine.Current(cmd.Context())
			if errors.Is(err, domain.ErrRecordNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No environment activated yet")
				return nil
			}
			if err != nil {
				return err
			}
			printer.Record(rec)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
	currentCmd.Flags().IntP("history", "n", 0, "Print the last N activations instead")
}
