package actions

import (
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/uprel/pkg/domain/model"
	"github.com/sethvargo/go-githubactions"
)

// Reporter publishes outputs and failures to the GitHub Actions runner
type Reporter struct {
	action *githubactions.Action
	failed bool
}

type options struct {
	writer io.Writer
	getenv func(string) string
}

// Option configures the Reporter
type Option func(*options)

// WithWriter sets where workflow commands are written (default: stdout)
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithGetenv replaces the environment lookup
func WithGetenv(getenv func(string) string) Option {
	return func(o *options) {
		o.getenv = getenv
	}
}

// New creates a Reporter for the current runner
func New(opts ...Option) *Reporter {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var actionOpts []githubactions.Option
	if o.writer != nil {
		actionOpts = append(actionOpts, githubactions.WithWriter(o.writer))
	}
	if o.getenv != nil {
		actionOpts = append(actionOpts, githubactions.WithGetenv(o.getenv))
	}

	return &Reporter{
		action: githubactions.New(actionOpts...),
	}
}

// SetOutput writes an output through the GITHUB_OUTPUT file command
func (r *Reporter) SetOutput(name, value string) {
	r.action.SetOutput(name, value)
}

// SetFailed emits an error annotation and marks the run failed
func (r *Reporter) SetFailed(msg string) {
	r.failed = true
	r.action.Errorf("%s", msg)
}

// Failed reports whether SetFailed has been called
func (r *Reporter) Failed() bool {
	return r.failed
}

// AddMask prevents secret from being printed in the job log
func (r *Reporter) AddMask(secret string) {
	if secret != "" {
		r.action.AddMask(secret)
	}
}

// Repository returns the repository the workflow runs in
func (r *Reporter) Repository() (model.Repository, error) {
	ghCtx, err := r.action.Context()
	if err != nil {
		return model.Repository{}, goerr.Wrap(err, "failed to load GitHub Actions context")
	}

	owner, name := ghCtx.Repo()
	return model.Repository{Owner: owner, Name: name}, nil
}
