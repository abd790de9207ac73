package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a message on statusOut while a quiet command works. It
// stops by itself when its context ends.
type spinner struct {
	ctx  context.Context
	msg  string
	out  io.Writer
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// startSpinner starts drawing msg right away.
func startSpinner(ctx context.Context, msg string) *spinner {
	s := &spinner{
		ctx:  ctx,
		msg:  msg,
		out:  statusOut,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.stop:
			return
		case <-s.ctx.Done():
			return
		case <-tick.C:
			icon := styleSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(s.out, "\r%s %s", icon, styleDim.Render(s.msg))
		}
	}
}

// Stop ends the animation and blanks the line. Later calls do nothing.
func (s *spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
	})
}

// Fail stops the spinner and reports msg, or a cancellation if the context
// ended first.
func (s *spinner) Fail(msg string) {
	s.Stop()
	if s.ctx.Err() != nil {
		printWarning("Cancelled")
		return
	}
	printError("%s", msg)
}
