package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinner redraws a single status line with the elapsed time until it is
// stopped or its context ends. A nil *spinner is valid and does nothing.
type spinner struct {
	w       io.Writer
	label   string
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
	lastLen int
}

// startSpinner starts drawing label on w and returns the running spinner.
func startSpinner(ctx context.Context, w io.Writer, label string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, label: label, cancel: cancel, done: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	start := time.Now()
	tick := time.NewTicker(spinnerTick)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.lastLen))
			return
		case <-tick.C:
			elapsed := time.Since(start).Truncate(100 * time.Millisecond)
			line := fmt.Sprintf("%s %s %s", spinnerFrames[frame%len(spinnerFrames)], s.label, elapsed)
			s.lastLen = len([]rune(line))
			fmt.Fprintf(s.w, "\r%s %s %s",
				styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				styleMuted.Render(s.label),
				styleMuted.Render(elapsed.String()))
		}
	}
}

// stop ends the animation and blanks the line. It waits for the drawing
// goroutine, so nothing is written to w after it returns.
func (s *spinner) stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}
