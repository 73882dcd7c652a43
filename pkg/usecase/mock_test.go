package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/uprel/pkg/domain/model"
)

// MockGitHubClient is a mock implementation of GitHubClient that records
// every call in order
type MockGitHubClient struct {
	getReleaseByTagFunc    func(ctx context.Context, repo model.Repository, tag string) (*model.Release, error)
	listReleaseAssetsFunc  func(ctx context.Context, repo model.Repository, releaseID int64) ([]*model.Asset, error)
	deleteReleaseAssetFunc func(ctx context.Context, repo model.Repository, assetID int64) error
	uploadReleaseAssetFunc func(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error)

	calls []MockCall
}

type MockCall struct {
	Method    string
	Repo      model.Repository
	Tag       string
	ID        int64
	UploadURL string
	Name      string
	Data      []byte
}

func (m *MockGitHubClient) GetReleaseByTag(ctx context.Context, repo model.Repository, tag string) (*model.Release, error) {
	m.calls = append(m.calls, MockCall{Method: "GetReleaseByTag", Repo: repo, Tag: tag})
	if m.getReleaseByTagFunc != nil {
		return m.getReleaseByTagFunc(ctx, repo, tag)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) ListReleaseAssets(ctx context.Context, repo model.Repository, releaseID int64) ([]*model.Asset, error) {
	m.calls = append(m.calls, MockCall{Method: "ListReleaseAssets", Repo: repo, ID: releaseID})
	if m.listReleaseAssetsFunc != nil {
		return m.listReleaseAssetsFunc(ctx, repo, releaseID)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) DeleteReleaseAsset(ctx context.Context, repo model.Repository, assetID int64) error {
	m.calls = append(m.calls, MockCall{Method: "DeleteReleaseAsset", Repo: repo, ID: assetID})
	if m.deleteReleaseAssetFunc != nil {
		return m.deleteReleaseAssetFunc(ctx, repo, assetID)
	}
	return errors.New("mock not configured")
}

func (m *MockGitHubClient) UploadReleaseAsset(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error) {
	m.calls = append(m.calls, MockCall{Method: "UploadReleaseAsset", UploadURL: uploadURL, Name: name, Data: data})
	if m.uploadReleaseAssetFunc != nil {
		return m.uploadReleaseAssetFunc(ctx, uploadURL, name, data)
	}
	return nil, errors.New("mock not configured")
}

// Methods returns called method names in order
func (m *MockGitHubClient) Methods() []string {
	methods := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		methods = append(methods, c.Method)
	}
	return methods
}

func (m *MockGitHubClient) callsOf(method string) []MockCall {
	var out []MockCall
	for _, c := range m.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// MockReporter records outputs and failures
type MockReporter struct {
	outputs  map[string]string
	failures []string
}

func newMockReporter() *MockReporter {
	return &MockReporter{outputs: map[string]string{}}
}

func (r *MockReporter) SetOutput(name, value string) {
	r.outputs[name] = value
}

func (r *MockReporter) SetFailed(msg string) {
	r.failures = append(r.failures, msg)
}

func (r *MockReporter) Failed() bool {
	return len(r.failures) > 0
}
