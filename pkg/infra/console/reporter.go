package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter prints outputs and failures to a terminal. Used when running
// outside of GitHub Actions.
type Reporter struct {
	w      io.Writer
	failed bool
	key    *color.Color
	fail   *color.Color
}

// New creates a Reporter writing to w. A nil w writes to stdout.
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{
		w:    w,
		key:  color.New(color.FgCyan, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
	}
}

// SetOutput prints "name: value"
func (r *Reporter) SetOutput(name, value string) {
	_, _ = r.key.Fprint(r.w, name+":")
	_, _ = fmt.Fprintln(r.w, " "+value)
}

// SetFailed prints the failure message and marks the run failed
func (r *Reporter) SetFailed(msg string) {
	r.failed = true
	_, _ = r.fail.Fprint(r.w, "error:")
	_, _ = fmt.Fprintln(r.w, " "+msg)
}

// Failed reports whether SetFailed has been called
func (r *Reporter) Failed() bool {
	return r.failed
}
