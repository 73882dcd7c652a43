package sentry

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/uprel/pkg/domain/interfaces"
)

const flushTimeout = 2 * time.Second

// Reporter forwards failures to Sentry and delegates everything to the
// wrapped Reporter
type Reporter struct {
	interfaces.Reporter
	hub *sentry.Hub
}

// Init initializes a Sentry client for dsn
func Init(dsn, release string) (*sentry.Hub, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry client")
	}
	return sentry.NewHub(client, sentry.NewScope()), nil
}

// Wrap returns a Reporter that also captures failures on hub
func Wrap(base interfaces.Reporter, hub *sentry.Hub) *Reporter {
	return &Reporter{
		Reporter: base,
		hub:      hub,
	}
}

// SetFailed captures msg in Sentry and then marks the base reporter failed
func (r *Reporter) SetFailed(msg string) {
	r.hub.CaptureMessage(msg)
	r.Reporter.SetFailed(msg)
}

// Flush waits for buffered events to be delivered
func (r *Reporter) Flush() bool {
	return r.hub.Flush(flushTimeout)
}
