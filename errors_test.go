// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gfx/glsafe/gl"
)

func TestDriverErrorTaxonomy(t *testing.T) {
	err := translateError("BufferData", gl.OUT_OF_MEMORY)
	if !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("OUT_OF_MEMORY: %v, want ErrDriverRejected", err)
	}
	if errors.Is(err, ErrContextLost) {
		t.Fatalf("OUT_OF_MEMORY matches ErrContextLost: %v", err)
	}
	var de *DriverError
	if !errors.As(err, &de) || de.Call != "BufferData" || de.Code != gl.OUT_OF_MEMORY {
		t.Fatalf("DriverError details lost: %v", err)
	}
	if !strings.Contains(err.Error(), "OUT_OF_MEMORY") {
		t.Fatalf("message lacks code name: %q", err.Error())
	}
}

func TestDriverErrorContextLost(t *testing.T) {
	err := translateError("Draw", gl.CONTEXT_LOST)
	if !errors.Is(err, ErrContextLost) {
		t.Fatalf("CONTEXT_LOST: %v, want ErrContextLost", err)
	}
	if errors.Is(err, ErrDriverRejected) {
		t.Fatalf("CONTEXT_LOST matches ErrDriverRejected: %v", err)
	}
}

func TestIncompatibleDrawError(t *testing.T) {
	err := error(&IncompatibleDrawError{Binding: "pos", Reason: "attribute type mismatch"})
	if !errors.Is(err, ErrIncompatibleDraw) {
		t.Fatalf("IncompatibleDrawError: %v, want ErrIncompatibleDraw", err)
	}
	if msg := err.Error(); !strings.Contains(msg, `"pos"`) {
		t.Fatalf("message lacks binding name: %q", msg)
	}
}

func TestMessageLogDeduplicates(t *testing.T) {
	var l messageLog
	for i := 0; i < 5; i++ {
		l.add(DebugMessage{ID: 42, Message: "buffer usage hint ignored"})
	}
	l.add(DebugMessage{ID: 7, Message: "other"})
	msgs := l.drain()
	if len(msgs) != 2 {
		t.Fatalf("drain returned %d messages, want 2", len(msgs))
	}
	if msgs[0].Count != 5 {
		t.Fatalf("Count = %d, want 5", msgs[0].Count)
	}
	if !strings.Contains(msgs[0].String(), "repeated 5 times") {
		t.Fatalf("String() lacks repeat count: %q", msgs[0].String())
	}
	if !l.empty() {
		t.Fatal("log not empty after drain")
	}
}

func TestMessageLogTakeError(t *testing.T) {
	var l messageLog
	l.add(DebugMessage{Type: gl.DEBUG_TYPE_PERFORMANCE, Severity: gl.DEBUG_SEVERITY_LOW, Message: "slow path"})
	if err := l.takeError("Draw"); err != nil {
		t.Fatalf("performance message treated as error: %v", err)
	}
	l.add(DebugMessage{Type: gl.DEBUG_TYPE_ERROR, Severity: gl.DEBUG_SEVERITY_HIGH, Message: "invalid operation"})
	err := l.takeError("Draw")
	if !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("takeError: %v, want ErrDriverRejected", err)
	}
	if !strings.Contains(err.Error(), "Draw") {
		t.Fatalf("message lacks call name: %q", err.Error())
	}
	// Reported once; the entry must not resurface at a later call.
	if err := l.takeError("Clear"); err != nil {
		t.Fatalf("stale message reported again: %v", err)
	}
	// Repeats of a deduplicated message still report one error each.
	l.add(DebugMessage{Type: gl.DEBUG_TYPE_ERROR, Severity: gl.DEBUG_SEVERITY_HIGH, Message: "invalid operation"})
	l.add(DebugMessage{Type: gl.DEBUG_TYPE_ERROR, Severity: gl.DEBUG_SEVERITY_HIGH, Message: "invalid operation"})
	if err := l.takeError("Draw"); err == nil {
		t.Fatal("first repeat not reported")
	}
	if err := l.takeError("Draw"); err == nil {
		t.Fatal("second repeat not reported")
	}
	if err := l.takeError("Draw"); err != nil {
		t.Fatalf("exhausted log reported: %v", err)
	}
}
