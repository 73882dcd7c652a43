package config

import "github.com/urfave/cli/v3"

// Sentry holds Sentry configuration. Reporting is disabled when DSN is empty.
type Sentry struct {
	DSN string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for failure reporting",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("INPUT_SENTRY_DSN", "SENTRY_DSN"),
		},
	}
}

// Enabled reports whether a DSN is configured
func (c *Sentry) Enabled() bool {
	return c.DSN != ""
}
