package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/uprel/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Input holds the upload inputs. Overwrite is kept as a string because only
// the literal "true" enables it.
type Input struct {
	File       string
	Tag        string
	AssetName  string
	Overwrite  string
	RepoName   string
	ConfigFile string
}

// fileInput is the layout of the TOML configuration file
type fileInput struct {
	File      string `toml:"file"`
	Tag       string `toml:"tag"`
	AssetName string `toml:"asset_name"`
	Overwrite string `toml:"overwrite"`
	RepoName  string `toml:"repo_name"`
}

// Flags returns CLI flags for upload inputs
func (c *Input) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Usage:       "Local file to upload",
			Destination: &c.File,
			Sources:     cli.EnvVars("INPUT_FILE"),
		},
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Tag of the release (refs/tags/ and refs/heads/ prefixes are stripped)",
			Destination: &c.Tag,
			Sources:     cli.EnvVars("INPUT_TAG"),
		},
		&cli.StringFlag{
			Name:        "asset-name",
			Usage:       "Name of the asset in the release",
			Destination: &c.AssetName,
			Sources:     cli.EnvVars("INPUT_ASSET_NAME"),
		},
		&cli.StringFlag{
			Name:        "overwrite",
			Usage:       `Set to "true" to replace an existing asset with the same name`,
			Destination: &c.Overwrite,
			Sources:     cli.EnvVars("INPUT_OVERWRITE"),
		},
		&cli.StringFlag{
			Name:        "repo-name",
			Usage:       "Target repository as owner/repo (default: the workflow's repository)",
			Destination: &c.RepoName,
			Sources:     cli.EnvVars("INPUT_REPO_NAME"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "TOML file providing default inputs",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("INPUT_CONFIG", "UPREL_CONFIG"),
		},
	}
}

// LoadFile fills inputs that are still empty from ConfigFile. Values from
// flags and environment variables take precedence.
func (c *Input) LoadFile() error {
	if c.ConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.ConfigFile))
	}

	var f fileInput
	if err := toml.Unmarshal(data, &f); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigFile))
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.File, f.File)
	fill(&c.Tag, f.Tag)
	fill(&c.AssetName, f.AssetName)
	fill(&c.Overwrite, f.Overwrite)
	fill(&c.RepoName, f.RepoName)

	return nil
}

// Model converts the inputs into model.Input
func (c *Input) Model(token string) *model.Input {
	return &model.Input{
		Token:     token,
		File:      c.File,
		Tag:       c.Tag,
		AssetName: c.AssetName,
		Overwrite: model.ParseOverwrite(c.Overwrite),
		RepoName:  c.RepoName,
	}
}
