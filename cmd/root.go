package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mocapkit/amassget/common"
	"github.com/mocapkit/amassget/config"
)

var rootCmd = &cobra.Command{
	Use:           "amassget",
	Short:         "Download and unpack AMASS motion-capture datasets",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config file named by the command's --config flag and
// attaches the process logger to the command context.
func setup(cmd *cobra.Command) (context.Context, *config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger := common.NewLogger(cfg.Log.Level)
	ctx := log.WithContext(cmd.Context(), logger)
	logger.Debugf("loaded config: %s", path)
	return ctx, cfg, nil
}
