package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	githubinfra "github.com/m-mizutani/uprel/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token          string `masq:"secret"`
	APIURL         string
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub token used to upload assets",
			Destination: &c.Token,
			Sources:     cli.EnvVars("INPUT_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API endpoint",
			Value:       "https://api.github.com",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("INPUT_GITHUB_API_URL", "GITHUB_API_URL"),
		},
		&cli.Int64Flag{
			Name:        "app-id",
			Usage:       "GitHub App ID (authenticate as an App installation instead of token)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("INPUT_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("INPUT_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("INPUT_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "app-private-key-file",
			Usage:       "Path to GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("INPUT_APP_PRIVATE_KEY_FILE"),
		},
	}
}

// UseApp reports whether GitHub App credentials are configured
func (c *GitHub) UseApp() bool {
	return c.AppID != 0
}

// Validate checks that some form of credential is configured
func (c *GitHub) Validate() error {
	if c.UseApp() {
		if c.InstallationID == 0 {
			return goerr.New("input required and not supplied: app_installation_id")
		}
		if c.PrivateKey == "" && c.PrivateKeyFile == "" {
			return goerr.New("input required and not supplied: app_private_key")
		}
		return nil
	}

	if c.Token == "" {
		return goerr.New("input required and not supplied: token")
	}
	return nil
}

// ClientOptions converts the configuration into GitHub client options
func (c *GitHub) ClientOptions() ([]githubinfra.Option, error) {
	opts := []githubinfra.Option{
		githubinfra.WithAPIURL(c.APIURL),
	}

	if !c.UseApp() {
		return append(opts, githubinfra.WithToken(c.Token)), nil
	}

	key := []byte(c.PrivateKey)
	if c.PrivateKeyFile != "" {
		data, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
		}
		key = data
	}

	return append(opts, githubinfra.WithAppInstallation(c.AppID, c.InstallationID, key)), nil
}
