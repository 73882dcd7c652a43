package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/uprel/pkg/cli/config"
	"github.com/m-mizutani/uprel/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	// Uploading is the root action so that the binary works as a GitHub
	// Action entrypoint without arguments
	upload := cmdUpload()

	app := &cli.Command{
		Name:    "uprel",
		Usage:   "Upload a file to a GitHub release",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), upload.Flags...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: upload.Action,
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
