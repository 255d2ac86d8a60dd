package main

import (
	"fmt"

	"github.com/aretw0/leveledit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of leveledit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "leveledit version %s\n", leveledit.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
