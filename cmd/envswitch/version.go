package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/envswitch"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of envswitch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "envswitch version %s\n", strings.TrimSpace(envswitch.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
