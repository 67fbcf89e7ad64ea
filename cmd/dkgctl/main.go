package main

import (
	"fmt"
	"os"

	"github.com/nandgate/hwdkg/internal/config"
	"github.com/nandgate/hwdkg/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"

	cfgFile string
	verbose bool
	cfg     *config.Config
	diag    *logging.Diagnostics
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "dkgctl",
	Short:   "Build, enrich, and query the design knowledge graph",
	Long:    `dkgctl normalizes a netlist into a graph, layers in constraint and timing data, builds abstraction views, and answers structural/timing queries against the result.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			cfg = config.Default()
		}
		if verbose {
			cfg.Logging.Debug = true
		}
		diag = logging.New(cfg.Logging.JSONFormat, cfg.Logging.Debug)
	},
}

func init() {
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: dkg.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(watchCmd)
}
