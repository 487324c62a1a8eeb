// Package main provides the job matcher command line: the HTTP API server plus
// offline scoring and ranking over JSON files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/logger"
)

// app carries the state resolved before any subcommand runs
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "job_matcher",
		Short:         "Job and candidate matching engine",
		Long:          "job_matcher scores resumes against job descriptions and ranks pools of jobs or candidates, as a REST API or from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to a YAML or JSON config file")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("json", false, "Log in JSON format")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print a readable summary to stderr")
	_ = a.v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("log.json", flags.Lookup("json"))

	rootCmd.AddCommand(newServeCmd(a), newMatchCmd(a), newRecommendCmd(a))
	return rootCmd
}

func (a *app) load(_ *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.cfg = cfg
	a.logger = log
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
