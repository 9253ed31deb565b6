package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/envswitch"
	"github.com/aretw0/envswitch/internal/cli"
	"github.com/aretw0/envswitch/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <env_name>",
	Short: "Show an environment's definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(optionsFrom(cmd), func(app *cli.App) error {
			env, err := app.Engine.Lookup(args[0])
			var nf *envswitch.NotFoundError
			if errors.As(err, &nf) {
				tui.NewPrinter(cmd.OutOrStdout(), false).NotFound(nf.Name, nf.Available)
				return nil
			}
			if err != nil {
				return err
			}

			styled, _ := cmd.Flags().GetBool("style")
			render := tui.NewRenderer(styled && tui.IsTerminal(os.Stdout))
			out, err := render(tui.EnvironmentMarkdown(env))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("style", true, "Render markdown when stdout is a terminal")
}
