package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Output names published to the CI host
const (
	OutputNotes              = "notes"
	OutputBrowserDownloadURL = "browser_download_url"
)

var tagRefPrefixes = []string{
	"refs/tags/",
	"refs/heads/",
}

// Input holds configuration values fixed for one run
type Input struct {
	Token     string `masq:"secret"`
	File      string
	Tag       string
	AssetName string
	Overwrite bool
	RepoName  string
}

// Validate checks that required values are present. Token is not checked
// here because an App installation may authenticate instead.
func (x *Input) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"file", x.File},
		{"tag", x.Tag},
		{"asset_name", x.AssetName},
	}
	for _, r := range required {
		if r.value == "" {
			return goerr.New("input required and not supplied: " + r.name)
		}
	}
	return nil
}

// NormalizeTag strips a leading "refs/tags/" and then a leading
// "refs/heads/", each at most once.
func NormalizeTag(tag string) string {
	for _, prefix := range tagRefPrefixes {
		tag = strings.TrimPrefix(tag, prefix)
	}
	return tag
}

// ParseOverwrite reports whether v enables overwriting. Only the literal
// "true" does.
func ParseOverwrite(v string) bool {
	return v == "true"
}
