package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Meter renders Progress Bus events as a terminal spinner/bar. It is one
// of several possible consumers of a Bus; a TUI or a JSON emitter consumes
// the same event stream differently.
type Meter struct {
	bar *progressbar.ProgressBar
}

// NewMeter creates a Meter. If enabled is false, all methods are no-ops.
func NewMeter(enabled bool) *Meter {
	if !enabled {
		return &Meter{}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
	)
	return &Meter{bar: bar}
}

// Run drains events from the bus until it closes, rendering StatusUpdate
// messages and printing a final summary line on Completed or Error.
func (m *Meter) Run(events <-chan Event) {
	for e := range events {
		switch e.Kind {
		case EventStatusUpdate:
			m.describe(fmt.Sprintf("[%s] %s", e.Stage, e.Message))
		case EventError:
			m.finish(fmt.Sprintf("error: %v", e.Err))
		case EventCompleted:
			r := e.Result
			m.finish(fmt.Sprintf("found %d duplicate sets across %d files (%s duplicate) in %s",
				r.DuplicateSets, r.TotalFiles, humanize.IBytes(uint64(r.DuplicateBytes)), r.Elapsed.Round(time.Millisecond)))
		}
	}
}

func (m *Meter) describe(s string) {
	if m.bar != nil {
		m.bar.Describe(s)
	}
}

func (m *Meter) finish(s string) {
	if m.bar == nil {
		return
	}
	_ = m.bar.Finish()
	fmt.Fprintln(os.Stderr, "✔ "+s)
}
