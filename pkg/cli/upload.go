package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/uprel/pkg/cli/config"
	"github.com/m-mizutani/uprel/pkg/domain/interfaces"
	"github.com/m-mizutani/uprel/pkg/domain/model"
	"github.com/m-mizutani/uprel/pkg/domain/types"
	"github.com/m-mizutani/uprel/pkg/infra/actions"
	"github.com/m-mizutani/uprel/pkg/infra/console"
	githubinfra "github.com/m-mizutani/uprel/pkg/infra/github"
	sentryinfra "github.com/m-mizutani/uprel/pkg/infra/sentry"
	"github.com/m-mizutani/uprel/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrRunFailed is returned when the upload was reported as failed
var ErrRunFailed = goerr.New("upload run failed")

func cmdUpload() *cli.Command {
	var (
		inputCfg  config.Input
		githubCfg config.GitHub
		sentryCfg config.Sentry
	)

	flags := append(inputCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a file as an asset of the release matching a tag",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
			ctx = ctxlog.With(ctx, logger)

			reporter, ambient, err := newReporter(&githubCfg)
			if err != nil {
				return err
			}

			if sentryCfg.Enabled() {
				hub, err := sentryinfra.Init(sentryCfg.DSN, types.Version)
				if err != nil {
					return err
				}
				sentryReporter := sentryinfra.Wrap(reporter, hub)
				defer sentryReporter.Flush()
				reporter = sentryReporter
			}

			uc, input, err := newUploader(ctx, reporter, ambient, &inputCfg, &githubCfg)
			if err != nil {
				logger.Error("Invalid configuration", "error", err)
				reporter.SetFailed(err.Error())
				return ErrRunFailed
			}

			uc.Run(ctx, input)

			if reporter.Failed() {
				return ErrRunFailed
			}
			return nil
		},
	}
}

// newReporter selects the reporter for the current host and returns the
// repository the run belongs to
func newReporter(githubCfg *config.GitHub) (interfaces.Reporter, model.Repository, error) {
	if os.Getenv("GITHUB_ACTIONS") != "true" {
		var ambient model.Repository
		if repo, err := model.ParseRepository(os.Getenv("GITHUB_REPOSITORY")); err == nil {
			ambient = repo
		}
		return console.New(os.Stdout), ambient, nil
	}

	reporter := actions.New()
	reporter.AddMask(githubCfg.Token)
	reporter.AddMask(githubCfg.PrivateKey)

	ambient, err := reporter.Repository()
	if err != nil {
		return nil, model.Repository{}, err
	}
	return reporter, ambient, nil
}

func newUploader(ctx context.Context, reporter interfaces.Reporter, ambient model.Repository, inputCfg *config.Input, githubCfg *config.GitHub) (interfaces.UploadUseCase, *model.Input, error) {
	logger := ctxlog.From(ctx)

	if err := inputCfg.LoadFile(); err != nil {
		return nil, nil, err
	}
	if err := githubCfg.Validate(); err != nil {
		return nil, nil, err
	}

	clientOpts, err := githubCfg.ClientOptions()
	if err != nil {
		return nil, nil, err
	}

	githubClient, err := githubinfra.NewClient(clientOpts...)
	if err != nil {
		return nil, nil, err
	}

	input := inputCfg.Model(githubCfg.Token)
	logger.Debug("Starting upload",
		slog.Any("input", input),
		slog.String("ambient_repo", ambient.String()),
	)

	return usecase.NewUploader(githubClient, reporter, usecase.WithAmbientRepository(ambient)), input, nil
}
