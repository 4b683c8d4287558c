// Command bitframe loads delimited sources into bitmap indexes and prints
// statistics about them.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bitframe [command] (flags)",
	Short: "bitmap index builder and inspector",
	Long:  ``,
}

func main() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		newStatsCmd().Cmd,
		versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
