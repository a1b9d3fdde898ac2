package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docpod/internal/app/logging"
	"docpod/internal/config"
)

// Persistent flag names shared by all commands
const (
	ConfigFlag  = "config"
	VerboseFlag = "verbose"
)

// Load reads the configuration selected by the command flags and builds the logger
func Load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString(ConfigFlag)
	verbose, _ := cmd.Flags().GetBool(VerboseFlag)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	keys, err := config.GetAPIKeys()
	if err != nil {
		return nil, nil, err
	}
	cfg.ResolveAPIKeys(keys)

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(cfg.Environment != "production", level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
