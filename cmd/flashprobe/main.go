package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	flagConfig  string
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "flashprobe",
		Short:        "Smoke tester for flashcard API deployments",
		Long:         "A command-line tool that probes a flashcard web application's HTTP API end to end: authentication, deck and card management, and credit endpoints. Each run walks a fixed sequence of steps and reports pass/fail/skip counts.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.flashprobe.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flashprobe %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDirectCmd())
	rootCmd.AddCommand(newHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
