package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// progress draws a bar on stderr while units decode. It stays silent when
// stderr is not a terminal.
type progress struct {
	bar     *progressbar.ProgressBar
	enabled bool
}

func newProgress(quiet bool) *progress {
	return &progress{enabled: !quiet && term.IsTerminal(int(os.Stderr.Fd()))}
}

// unit is a build.Options.Progress callback.
func (p *progress) unit(done, total int, _ string) {
	if !p.enabled {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Decoding units"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("units/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}
	_ = p.bar.Set(done)
}

// reset prepares for another build.
func (p *progress) reset() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
	p.bar = nil
}
