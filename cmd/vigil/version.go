package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/vigil"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vigil",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vigil version %s\n", strings.TrimSpace(vigil.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
