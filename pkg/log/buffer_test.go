package log

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

type recorder struct {
	mu       sync.Mutex
	entries  []Entry
	writeErr error
	closed   bool
	gate     chan struct{}
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Write(e Entry) error {
	if r.gate != nil {
		<-r.gate
	}
	if r.writeErr != nil {
		return r.writeErr
	}
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

func TestBuffer_CloseFlushesInOrder(t *testing.T) {
	// Arrange
	rec := &recorder{}
	buf := NewBuffer(10, rec)

	// Act
	for _, m := range []string{"a", "b", "c"} {
		buf.Send(*NewEntry(Info, m))
	}
	buf.Close()

	// Assert
	if got := strings.Join(rec.messages(), ""); got != "abc" {
		t.Errorf("delivered %q, want %q", got, "abc")
	}
	if !rec.closed {
		t.Error("transporter should be closed")
	}
}

func TestBuffer_SendAfterCloseIsIgnored(t *testing.T) {
	rec := &recorder{}
	buf := NewBuffer(10, rec)
	buf.Close()
	buf.Close()

	buf.Send(*NewEntry(Info, "late"))

	if len(rec.messages()) != 0 {
		t.Error("entry sent after Close should be dropped")
	}
}

func TestBuffer_FullQueueDropsOldest(t *testing.T) {
	// Arrange
	rec := &recorder{gate: make(chan struct{})}
	buf := NewBuffer(1, rec)

	// Act
	for i := 0; i < 5; i++ {
		buf.Send(*NewEntry(Info, "msg"))
	}
	dropped := buf.DroppedCount()
	close(rec.gate)
	buf.Close()

	// Assert
	if dropped < 3 {
		t.Errorf("DroppedCount() = %d, want at least 3", dropped)
	}
}

func TestBuffer_WriteErrorGoesToFallback(t *testing.T) {
	var fallback bytes.Buffer
	rec := &recorder{writeErr: errors.New("disk full")}
	buf := NewBuffer(10, rec)
	buf.fallback = &fallback

	buf.Send(*NewEntry(Error, "boom"))
	buf.Close()

	if !strings.Contains(fallback.String(), "disk full") {
		t.Errorf("fallback output = %q", fallback.String())
	}
}
