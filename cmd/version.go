package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/lordralex/ballot/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
