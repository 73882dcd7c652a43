package interfaces

import (
	"context"

	"github.com/m-mizutani/uprel/pkg/domain/model"
)

// UploadUseCase defines operations for uploading a file to a release
type UploadUseCase interface {
	// Run executes the whole upload flow. Errors are reported through the
	// Reporter instead of being returned.
	Run(ctx context.Context, input *model.Input)

	// LocateRelease finds the release for tag
	LocateRelease(ctx context.Context, repo model.Repository, tag string) (*model.Release, error)

	// UploadAsset uploads the file to the release and returns the asset's download URL
	UploadAsset(ctx context.Context, repo model.Repository, release *model.Release, req *model.UploadRequest) (*model.UploadResult, error)
}
