// Package cli holds the flags and start-up shared by the topiclab commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"topiclab/internal/config"
	"topiclab/internal/logging"
)

type Options struct {
	ConfigPath string
	ModelsDir  string
	Verbose    bool
}

func (o *Options) Register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.ConfigPath, "config", "c", config.DefaultFile, "config file (optional)")
	f.StringVarP(&o.ModelsDir, "models", "m", "", "model directory (overrides config)")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "debug logging")
}

// Load reads the config, applies the flag overrides and builds the logger.
func (o *Options) Load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if o.ModelsDir != "" {
		cfg.Models.Dir = o.ModelsDir
	}

	level := cfg.Log.Level
	if o.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// Execute runs cmd and exits non-zero on failure.
func Execute(cmd *cobra.Command) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}
