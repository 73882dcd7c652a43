package github

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/uprel/pkg/domain/interfaces"
	"github.com/m-mizutani/uprel/pkg/domain/model"
)

const (
	defaultAPIURL = "https://api.github.com"

	// assetContentType is sent for every upload regardless of file extension
	assetContentType = "binary/octet-stream"

	listPerPage = 100
)

type client struct {
	githubClient *github.Client
}

type options struct {
	token          string
	apiURL         string
	appID          int64
	installationID int64
	privateKey     []byte
}

// Option configures the GitHub client
type Option func(*options)

// WithToken authenticates with a personal access token or GITHUB_TOKEN
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithAppInstallation authenticates as a GitHub App installation. It takes
// precedence over WithToken.
func WithAppInstallation(appID, installationID int64, privateKey []byte) Option {
	return func(o *options) {
		o.appID = appID
		o.installationID = installationID
		o.privateKey = privateKey
	}
}

// WithAPIURL sets the REST API endpoint, e.g. https://ghe.example.com/api/v3
func WithAPIURL(apiURL string) Option {
	return func(o *options) {
		o.apiURL = apiURL
	}
}

// NewClient creates a new GitHub client
func NewClient(opts ...Option) (interfaces.GitHubClient, error) {
	o := &options{
		apiURL: defaultAPIURL,
	}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := &http.Client{}
	if o.appID != 0 {
		itr, err := ghinstallation.New(http.DefaultTransport, o.appID, o.installationID, o.privateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport",
				goerr.V("app_id", o.appID),
				goerr.V("installation_id", o.installationID),
			)
		}
		itr.BaseURL = strings.TrimSuffix(o.apiURL, "/")
		httpClient = &http.Client{Transport: itr}
	}

	githubClient := github.NewClient(httpClient)
	if o.appID == 0 && o.token != "" {
		githubClient = githubClient.WithAuthToken(o.token)
	}

	if apiURL := strings.TrimSuffix(o.apiURL, "/"); apiURL != "" && apiURL != defaultAPIURL {
		uploadURL := strings.TrimSuffix(apiURL, "/api/v3")
		enterprise, err := githubClient.WithEnterpriseURLs(apiURL, uploadURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure GitHub API URL", goerr.V("api_url", o.apiURL))
		}
		githubClient = enterprise
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetReleaseByTag returns the release whose tag matches exactly
func (c *client) GetReleaseByTag(ctx context.Context, repo model.Repository, tag string) (*model.Release, error) {
	release, _, err := c.githubClient.Repositories.GetReleaseByTag(ctx, repo.Owner, repo.Name, tag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release",
			goerr.V("repo", repo.String()),
			goerr.V("tag", tag),
		)
	}

	return &model.Release{
		ID:        release.GetID(),
		TagName:   release.GetTagName(),
		UploadURL: release.GetUploadURL(),
		Body:      release.GetBody(),
	}, nil
}

// ListReleaseAssets returns the assets of a release, following pagination
func (c *client) ListReleaseAssets(ctx context.Context, repo model.Repository, releaseID int64) ([]*model.Asset, error) {
	opts := &github.ListOptions{PerPage: listPerPage}

	var assets []*model.Asset
	for {
		page, resp, err := c.githubClient.Repositories.ListReleaseAssets(ctx, repo.Owner, repo.Name, releaseID, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list release assets",
				goerr.V("repo", repo.String()),
				goerr.V("release_id", releaseID),
				goerr.V("page", opts.Page),
			)
		}

		for _, a := range page {
			assets = append(assets, toAsset(a))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return assets, nil
}

// DeleteReleaseAsset deletes a release asset
func (c *client) DeleteReleaseAsset(ctx context.Context, repo model.Repository, assetID int64) error {
	if _, err := c.githubClient.Repositories.DeleteReleaseAsset(ctx, repo.Owner, repo.Name, assetID); err != nil {
		return goerr.Wrap(err, "failed to delete release asset",
			goerr.V("repo", repo.String()),
			goerr.V("asset_id", assetID),
		)
	}
	return nil
}

// UploadReleaseAsset posts data to the release's upload endpoint. uploadURL
// may carry the "{?name,label}" URI template suffix returned by the API.
func (c *client) UploadReleaseAsset(ctx context.Context, uploadURL, name string, data []byte) (*model.Asset, error) {
	endpoint, err := expandUploadURL(uploadURL, name)
	if err != nil {
		return nil, err
	}

	req, err := c.githubClient.NewUploadRequest(endpoint, bytes.NewReader(data), int64(len(data)), assetContentType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upload request", goerr.V("url", endpoint))
	}

	asset := new(github.ReleaseAsset)
	if _, err := c.githubClient.Do(ctx, req, asset); err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("url", endpoint),
			goerr.V("name", name),
		)
	}

	return toAsset(asset), nil
}

func expandUploadURL(uploadURL, name string) (string, error) {
	if i := strings.Index(uploadURL, "{"); i >= 0 {
		uploadURL = uploadURL[:i]
	}

	u, err := url.Parse(uploadURL)
	if err != nil {
		return "", goerr.Wrap(err, "invalid upload URL", goerr.V("url", uploadURL))
	}

	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func toAsset(a *github.ReleaseAsset) *model.Asset {
	return &model.Asset{
		ID:                 a.GetID(),
		Name:               a.GetName(),
		BrowserDownloadURL: a.GetBrowserDownloadURL(),
		Size:               int64(a.GetSize()),
	}
}
