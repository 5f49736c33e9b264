package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// spinner is a simple stderr progress indicator with context
// cancellation support. It is used while an analysis or render is
// running so the terminal doesn't look stuck on large graphs.
type spinner struct {
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// newSpinner starts a spinner that stops when ctx is cancelled or stop
// is called, whichever comes first.
func newSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		message: message,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			}
		}
	}()

	return s
}

// stop halts the animation and clears the line.
func (s *spinner) stop() {
	s.cancel()
	<-s.stopped
}

func (s *spinner) clearLine() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// stopWithSuccess stops the spinner and shows a success message.
func (s *spinner) stopWithSuccess(message string) {
	s.stop()
	printSuccess("%s", message)
}

// stopWithError stops the spinner and shows an error message.
func (s *spinner) stopWithError(message string) {
	s.stop()
	printError("%s", message)
}
