package interfaces

// Reporter publishes run results to the CI host
type Reporter interface {
	// SetOutput records a named output value
	SetOutput(name, value string)

	// SetFailed marks the run as failed with msg
	SetFailed(msg string)

	// Failed reports whether SetFailed has been called
	Failed() bool
}
