// Package progress renders progress bars for long extraction and
// ingestion passes. Progress is UI-only; it never affects results.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for module or trace processing.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
}

func baseOptions(label string, width int) []progressbar.Option {
	return []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(width),
		progressbar.OptionSetDescription(label),
		progressbar.OptionClearOnFinish(),
	}
}

// NewSpinner creates a spinner for operations with unknown duration,
// such as an external trace capture run.
func NewSpinner(label string) *Tracker {
	opts := append(baseOptions(label, 20),
		progressbar.OptionSpinnerType(14),
	)
	return &Tracker{bar: progressbar.NewOptions(-1, opts...), label: label}
}

// NewTracker creates a counted bar. The count display is what surfaces
// "module N of M" during extraction and trace ingestion.
func NewTracker(label string, total int) *Tracker {
	opts := append(baseOptions(label, 30),
		progressbar.OptionShowCount(),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: progressbar.NewOptions(total, opts...), label: label}
}

// Tick advances the bar by one module or trace file. Safe to call from
// the worker pool.
func (t *Tracker) Tick() {
	t.bar.Add(1)
}

// FinishSuccess removes the bar without leaving output behind.
func (t *Tracker) FinishSuccess() {
	t.bar.Finish()
	t.bar.Clear()
}

// FinishSkipped removes the bar and notes why the pass was skipped.
func (t *Tracker) FinishSkipped(reason string) {
	t.bar.Finish()
	t.bar.Clear()
	fmt.Fprintf(os.Stderr, "  %s skipped (%s)\n", t.label, reason)
}

// FinishError removes the bar and reports the failure.
func (t *Tracker) FinishError(err error) {
	t.bar.Finish()
	t.bar.Clear()
	fmt.Fprintf(os.Stderr, "  %s error: %v\n", t.label, err)
}
