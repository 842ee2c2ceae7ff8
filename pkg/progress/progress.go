// Package progress wraps schollz/progressbar for the long-running
// `geoloc build` command, which otherwise gives no feedback while
// streaming a multi-million-line CSV.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar is the minimal surface geoloc's ETL loop needs: add one unit of
// progress per processed CSV line.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New creates a determinate bar over total expected units (e.g. a line
// count from a preliminary scan), described by label.
func New(total int, label string) *Bar {
	return &Bar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(label),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// NewIndeterminate creates a spinner-style bar for a stream whose total
// size isn't known up front.
func NewIndeterminate(label string) *Bar {
	return &Bar{bar: progressbar.NewOptions(-1, progressbar.OptionSetDescription(label))}
}

// NewSilent returns a Bar that writes to w (e.g. io.Discard), for tests
// and non-interactive runs that shouldn't clutter output.
func NewSilent(total int, w io.Writer) *Bar {
	return &Bar{bar: progressbar.NewOptions(total, progressbar.OptionSetWriter(w))}
}

func (b *Bar) Add(n int) { _ = b.bar.Add(n) }

func (b *Bar) Finish() { _ = b.bar.Finish() }
