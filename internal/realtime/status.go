package realtime

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/wonny/tradecare/backend/internal/contracts"
)

// ConsoleSink prints status lines as they arrive
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink writes to w, or stdout when w is nil
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{w: w}
}

// Emit prints the event message on its own line
func (c *ConsoleSink) Emit(event contracts.StatusEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// stage headers get a blank line above them, like a sectioned log
	if event.State == contracts.EventStarted && event.Stage == contracts.StageStructure {
		fmt.Fprintln(c.w)
	}
	fmt.Fprintln(c.w, event.Message)
}

// MultiSink fans every event out to each sink in order
type MultiSink []contracts.StatusSink

// Emit forwards the event to every non-nil sink
func (m MultiSink) Emit(event contracts.StatusEvent) {
	for _, s := range m {
		if s != nil {
			s.Emit(event)
		}
	}
}
