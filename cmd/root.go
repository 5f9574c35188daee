package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

// cfgFile is the optional config file; the environment always wins over it.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "ballot",
	Short:        "Voting ledger node",
	Long:         "Runs a voting ledger with a transaction pool in front of it, and the surfaces that expose it.",
	SilenceUsage: true,
}

// Execute is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
}

func initConfig() {
	if cfgFile == "" {
		return
	}

	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Unable to read config %s: %s\n", cfgFile, err)
		os.Exit(1)
	}
}
