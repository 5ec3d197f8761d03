package log

// Transporter delivers entries to a destination such as stdout or a file.
// Write is only ever called from the buffer worker goroutine.
type Transporter interface {
	Name() string
	Write(entry Entry) error
	Close() error
}

type discard struct{}

func (discard) Name() string      { return "discard" }
func (discard) Write(Entry) error { return nil }
func (discard) Close() error      { return nil }
