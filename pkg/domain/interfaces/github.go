package interfaces

import (
	"context"

	"github.com/m-mizutani/uprel/pkg/domain/model"
)

// GitHubClient defines the release operations used against the GitHub API
type GitHubClient interface {
	// GetReleaseByTag returns the release whose tag matches exactly
	GetReleaseByTag(ctx context.Context, repo model.Repository, tag string) (*model.Release, error)

	// ListReleaseAssets returns all assets of the release across every page
	ListReleaseAssets(ctx context.Context, repo model.Repository, releaseID int64) ([]*model.Asset, error)

	// DeleteReleaseAsset deletes a release asset by its ID
	DeleteReleaseAsset(ctx context.Context, repo model.Repository, assetID int64) error

	// UploadReleaseAsset uploads data as a new asset to the release's upload endpoint
	UploadReleaseAsset(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error)
}
