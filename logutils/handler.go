package logutils

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/apex/log"
)

// MultiLineIndentHandler is an apex/log handler writing
//
//	<time> <L> <message> key=value ...
//
// Continuation lines of a multi-line message are indented to line up
// under the first line of the message.
type MultiLineIndentHandler struct {
	mu         sync.Mutex
	w          io.Writer
	timeFormat string
}

// NewMultiLineIndentHandler creates a handler writing to w. An empty
// timeFormat uses "2006-01-02 15:04:05".
func NewMultiLineIndentHandler(w io.Writer, timeFormat string) *MultiLineIndentHandler {
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05"
	}
	return &MultiLineIndentHandler{w: w, timeFormat: timeFormat}
}

// HandleLog implements log.Handler.
func (h *MultiLineIndentHandler) HandleLog(e *log.Entry) error {
	header := fmt.Sprintf("%s %.1s ", e.Timestamp.Format(h.timeFormat), strings.ToUpper(e.Level.String()))
	msg := strings.ReplaceAll(e.Message, "\n", "\n"+strings.Repeat(" ", len(header)))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(msg)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

var _ log.Handler = (*MultiLineIndentHandler)(nil)
