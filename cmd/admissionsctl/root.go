package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"admissions-workers/internal/app"
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	logLevel   = "warn"
	logFormat  = "console"
	outputJSON bool
)

// openResources is replaced in tests.
var openResources = func(ctx context.Context) (*app.Resources, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	log := logger.NewStructured(logLevel, logFormat, "stderr")
	return app.Open(ctx, cfg, log, app.Options{ConnectAttempts: 3, ConnectDelay: time.Second})
}

var rootCmd = &cobra.Command{
	Use:           "admissionsctl",
	Short:         "Operate the admissions application store",
	Long:          `Review, edit, delete and export stored admission applications, read contact messages and search the course catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		logLevel = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "logging level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logFormat, "log format (json|console)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withResources opens the configured backends for one command.
func withResources(cmd *cobra.Command, fn func(ctx context.Context, res *app.Resources) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := openResources(ctx)
	if err != nil {
		return err
	}
	defer res.Close()
	return fn(ctx, res)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
