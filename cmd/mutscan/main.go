// Package main provides the mutscan command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutscan",
		Short: "Classify point mutations in Sanger reads against a reference",
		Long: `mutscan aligns basecalled AB1 trace reads against a reference
nucleotide sequence and classifies every point mutation at the codon
level as silent or missense.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mutscan version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig loads ~/.mutscan.yaml if present and sets defaults.
func initConfig() error {
	viper.SetDefault("trim", 50)
	viper.SetDefault("workers", 0)
	viper.SetDefault("format", "")

	home, err := os.UserHomeDir()
	if err != nil {
		return nil // no home dir, run with defaults
	}

	viper.SetConfigFile(filepath.Join(home, ".mutscan.yaml"))
	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
