package transporters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"listingpilot/pkg/log"
)

// Text writes human-readable lines for local development:
//
//	15:04:05.000 INFO  message key=value request_id=abc
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

// NewText writes to w, or to stdout when w is nil.
func NewText(w io.Writer) *Text {
	if w == nil {
		w = os.Stdout
	}
	return &Text{w: w}
}

func (t *Text) Name() string { return "text" }

func (t *Text) Write(entry log.Entry) error {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s %s", entry.Level, entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, formatValue(entry.Fields[k]))
	}
	if entry.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", entry.RequestID)
	}
	if entry.TraceID != "" {
		fmt.Fprintf(&b, " trace_id=%s", entry.TraceID)
	}
	if entry.Caller != "" {
		fmt.Fprintf(&b, " caller=%s", entry.Caller)
	}
	b.WriteByte('\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) Close() error { return nil }

func formatValue(v any) string {
	switch x := v.(type) {
	case error:
		return fmt.Sprintf("%q", x.Error())
	case string:
		if strings.ContainsAny(x, " \t\"=") {
			return fmt.Sprintf("%q", x)
		}
		return x
	case time.Duration:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// ForFormat returns the transporter for a LOG_FORMAT value. Anything other
// than "text" selects JSON.
func ForFormat(format string, w io.Writer) log.Transporter {
	if strings.EqualFold(format, "text") {
		return NewText(w)
	}
	return NewJSON(w)
}
