package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Repository identifies a GitHub repository
type Repository struct {
	Owner string
	Name  string
}

// String returns "owner/name"
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository splits an "owner/repo" string. Segments after the second
// slash are ignored.
func ParseRepository(repoName string) (Repository, error) {
	parts := strings.Split(repoName, "/")

	var owner, name string
	owner = parts[0]
	if len(parts) > 1 {
		name = parts[1]
	}

	if owner == "" {
		return Repository{}, goerr.New("could not extract 'owner' from 'repo_name'", goerr.V("repo_name", repoName))
	}
	if name == "" {
		return Repository{}, goerr.New("could not extract 'repo' from 'repo_name'", goerr.V("repo_name", repoName))
	}

	return Repository{Owner: owner, Name: name}, nil
}

// ResolveRepository returns the repository named by repoName, or ambient
// when repoName is empty.
func ResolveRepository(repoName string, ambient Repository) (Repository, error) {
	if repoName == "" {
		return ambient, nil
	}
	return ParseRepository(repoName)
}
