package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/uprel/pkg/domain/interfaces"
	"github.com/m-mizutani/uprel/pkg/domain/model"
)

type uploader struct {
	githubClient interfaces.GitHubClient
	reporter     interfaces.Reporter
	ambientRepo  model.Repository
}

// Option configures the upload use case
type Option func(*uploader)

// WithAmbientRepository sets the repository used when no repo_name is given
func WithAmbientRepository(repo model.Repository) Option {
	return func(uc *uploader) {
		uc.ambientRepo = repo
	}
}

// NewUploader creates a new instance of UploadUseCase
func NewUploader(githubClient interfaces.GitHubClient, reporter interfaces.Reporter, opts ...Option) interfaces.UploadUseCase {
	uc := &uploader{
		githubClient: githubClient,
		reporter:     reporter,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run resolves the release for the input tag, publishes its notes and
// uploads the file. Any error ends up in reporter.SetFailed.
func (uc *uploader) Run(ctx context.Context, input *model.Input) {
	logger := ctxlog.From(ctx)

	if err := uc.run(ctx, input); err != nil {
		logger.Error("Upload failed", "error", err)
		uc.reporter.SetFailed(err.Error())
	}
}

func (uc *uploader) run(ctx context.Context, input *model.Input) error {
	if err := input.Validate(); err != nil {
		return err
	}

	repo, err := model.ResolveRepository(input.RepoName, uc.ambientRepo)
	if err != nil {
		return err
	}

	tag := model.NormalizeTag(input.Tag)

	release, err := uc.LocateRelease(ctx, repo, tag)
	if err != nil {
		return err
	}
	uc.reporter.SetOutput(model.OutputNotes, release.Body)

	result, err := uc.UploadAsset(ctx, repo, release, &model.UploadRequest{
		File:      input.File,
		AssetName: input.AssetName,
		Tag:       tag,
		Overwrite: input.Overwrite,
	})
	if err != nil {
		return err
	}

	if result.DownloadURL != "" {
		uc.reporter.SetOutput(model.OutputBrowserDownloadURL, result.DownloadURL)
	}

	return nil
}

// LocateRelease returns the release whose tag equals tag
func (uc *uploader) LocateRelease(ctx context.Context, repo model.Repository, tag string) (*model.Release, error) {
	logger := ctxlog.From(ctx)
	logger.Debug("Getting release by tag", "repo", repo.String(), "tag", tag)

	release, err := uc.githubClient.GetReleaseByTag(ctx, repo, tag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release by tag",
			goerr.V("repo", repo.String()),
			goerr.V("tag", tag),
		)
	}

	logger.Info("Found release",
		"repo", repo.String(),
		"tag", tag,
		"release_id", release.ID,
	)

	return release, nil
}

// UploadAsset uploads req.File to release as req.AssetName. A path that is
// not a regular file is skipped and yields an empty result. If an asset with
// the same name exists and req.Overwrite is false, the run is marked failed
// but the existing asset's URL is still returned.
func (uc *uploader) UploadAsset(ctx context.Context, repo model.Repository, release *model.Release, req *model.UploadRequest) (*model.UploadResult, error) {
	logger := ctxlog.From(ctx)

	stat, err := os.Stat(req.File)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat file", goerr.V("file", req.File))
	}
	if !stat.Mode().IsRegular() {
		logger.Debug("Skipping path since it is not a file", "file", req.File)
		return &model.UploadResult{}, nil
	}

	data, err := os.ReadFile(req.File)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("file", req.File))
	}

	assets, err := uc.githubClient.ListReleaseAssets(ctx, repo, release.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list release assets",
			goerr.V("repo", repo.String()),
			goerr.V("release_id", release.ID),
		)
	}

	result := &model.UploadResult{}
	if existing := findAsset(assets, req.AssetName); existing != nil {
		if !req.Overwrite {
			uc.reporter.SetFailed("An asset called " + req.AssetName + " already exists.")
			return &model.UploadResult{
				DownloadURL: existing.BrowserDownloadURL,
				Existing:    true,
			}, nil
		}

		logger.Debug("Asset already exists in release, overwriting it",
			"asset_name", req.AssetName,
			"asset_id", existing.ID,
			"tag", req.Tag,
		)
		if err := uc.githubClient.DeleteReleaseAsset(ctx, repo, existing.ID); err != nil {
			return nil, goerr.Wrap(err, "failed to delete existing release asset",
				goerr.V("asset_name", req.AssetName),
				goerr.V("asset_id", existing.ID),
			)
		}
		result.Replaced = true
	} else {
		logger.Debug("No pre-existing asset found in release",
			"asset_name", req.AssetName,
			"tag", req.Tag,
		)
	}

	logger.Debug("Uploading file to release",
		"file", req.File,
		"asset_name", req.AssetName,
		"tag", req.Tag,
		"size_bytes", len(data),
	)

	uploaded, err := uc.githubClient.UploadReleaseAsset(ctx, release.UploadURL, req.AssetName, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("asset_name", req.AssetName),
			goerr.V("tag", req.Tag),
		)
	}

	logger.Info("Uploaded release asset",
		"asset_name", uploaded.Name,
		"asset_id", uploaded.ID,
		"url", uploaded.BrowserDownloadURL,
		"replaced", result.Replaced,
	)

	result.DownloadURL = uploaded.BrowserDownloadURL
	return result, nil
}

func findAsset(assets []*model.Asset, name string) *model.Asset {
	for _, a := range assets {
		if a.Name == name {
			return a
		}
	}
	return nil
}
