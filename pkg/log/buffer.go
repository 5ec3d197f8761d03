package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer hands entries to transporters on a background goroutine. When the
// queue is full the oldest queued entry is discarded to make room.
type Buffer struct {
	queue        chan Entry
	transporters []Transporter
	fallback     io.Writer

	dropped   atomic.Int64
	closed    atomic.Bool
	closeOnce sync.Once
	stop      chan struct{}
	stopped   chan struct{}
}

// NewBuffer starts the delivery goroutine. capacity must be at least 1.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		queue:        make(chan Entry, capacity),
		transporters: transporters,
		fallback:     os.Stderr,
		stop:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go b.run()
	return b
}

// Send enqueues entry without blocking. It is a no-op after Close.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}
	for attempt := 0; attempt < 2; attempt++ {
		select {
		case b.queue <- entry:
			return
		default:
		}
		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
		}
	}
	b.dropped.Add(1)
}

// DroppedCount is the number of entries discarded because the queue was full.
func (b *Buffer) DroppedCount() int64 {
	return b.dropped.Load()
}

// Close drains the queue, then closes every transporter. Repeated calls are safe.
func (b *Buffer) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		close(b.stop)
		<-b.stopped

	drain:
		for {
			select {
			case e := <-b.queue:
				b.deliver(e)
			default:
				break drain
			}
		}
		for _, t := range b.transporters {
			if err := t.Close(); err != nil {
				fmt.Fprintf(b.fallback, "log transporter %q close: %v\n", t.Name(), err)
			}
		}
	})
}

func (b *Buffer) run() {
	defer close(b.stopped)
	for {
		select {
		case e := <-b.queue:
			b.deliver(e)
		case <-b.stop:
			return
		}
	}
}

func (b *Buffer) deliver(e Entry) {
	for _, t := range b.transporters {
		if err := t.Write(e); err != nil {
			fmt.Fprintf(b.fallback, "log transporter %q: %v\n", t.Name(), err)
		}
	}
}
