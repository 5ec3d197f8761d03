package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"listingpilot/pkg/log"
	"listingpilot/pkg/log/transporters"
)

func TestCloseWithTimeout_LogsFailure(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := log.New(log.Info, transporters.NewJSON(&buf))
	log.SetDefault(logger)
	var hadDeadline bool

	// Act
	closeWithTimeout("history store", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return errors.New("server selection timeout")
	})
	logger.Close()

	// Assert
	out := buf.String()
	if !hadDeadline {
		t.Error("close hook should receive a context with a deadline")
	}
	for _, want := range []string{`"level":"WARN"`, `"component":"history store"`, "server selection timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestCloseWithTimeout_SilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Info, transporters.NewJSON(&buf))
	log.SetDefault(logger)

	closeWithTimeout("tracing", func(context.Context) error { return nil })
	logger.Close()

	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %s", buf.String())
	}
}
