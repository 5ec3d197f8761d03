// Package transporters holds the log destinations selected by LOG_FORMAT.
package transporters

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"listingpilot/pkg/log"
)

// JSON writes one JSON object per line.
type JSON struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSON writes to w, or to stdout when w is nil.
func NewJSON(w io.Writer) *JSON {
	if w == nil {
		w = os.Stdout
	}
	return &JSON{w: w}
}

func (j *JSON) Name() string { return "json" }

func (j *JSON) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.w.Write(append(data, '\n'))
	return err
}

func (j *JSON) Close() error { return nil }
