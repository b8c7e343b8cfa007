package spinner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Processing documents...")

	if spinner.IsActive() {
		t.Error("spinner should not be active before Start()")
	}

	spinner.Start()
	if !spinner.IsActive() {
		t.Error("spinner should be active after Start()")
	}

	// allow a few frames to render
	time.Sleep(250 * time.Millisecond)

	spinner.Stop()
	if spinner.IsActive() {
		t.Error("spinner should not be active after Stop()")
	}

	output := buf.String()
	if output == "" {
		t.Fatal("expected output to be written to buffer")
	}
	if !strings.Contains(output, "Processing documents...") {
		t.Error("expected the message in the output")
	}
	// non-terminal writers get a plain carriage return on Stop
	if !strings.HasSuffix(output, "\r") {
		t.Error("expected output to end with a carriage return")
	}
}

func TestSpinnerUpdateMessage(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Processing 1/2: first")

	spinner.Start()
	time.Sleep(150 * time.Millisecond)
	spinner.UpdateMessage("Processing 2/2: second")
	time.Sleep(150 * time.Millisecond)
	spinner.Stop()

	output := buf.String()
	if !strings.Contains(output, "Processing 1/2: first") {
		t.Error("expected the initial message in the output")
	}
	if !strings.Contains(output, "Processing 2/2: second") {
		t.Error("expected the updated message in the output")
	}
}

func TestSpinnerIdempotentStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Working...")

	// double Start must not spawn a second goroutine or panic
	spinner.Start()
	spinner.Start()
	if !spinner.IsActive() {
		t.Error("spinner should be active after repeated Start()")
	}

	// double Stop and Stop-without-Start must be safe as well
	spinner.Stop()
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("spinner should not be active after Stop()")
	}

	fresh := New(context.Background(), &buf, "Never started")
	fresh.Stop()
	if fresh.IsActive() {
		t.Error("stopping an unstarted spinner must be a no-op")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	spinner := New(ctx, &buf, "Cancellable...")

	spinner.Start()
	cancel()

	// Stop still completes cleanly after the parent context is gone
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("spinner should not be active after cancellation and Stop()")
	}
}
