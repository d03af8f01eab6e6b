// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"fmt"

	"github.com/go-gfx/glsafe/gl"
)

// The closed error taxonomy. Every failure surfaced by this package
// matches exactly one of these sentinels under errors.Is.
var (
	// ErrContextConflict reports a thread-affinity violation: a second
	// Context made current while another one is, or an operation on a
	// Context that is not current.
	ErrContextConflict = errors.New("glsafe: context conflict")

	// ErrStaleHandle reports use of a handle whose resource was
	// released, whose owning Context is gone, or that belongs to a
	// different Context.
	ErrStaleHandle = errors.New("glsafe: stale handle")

	// ErrIncompatibleDraw reports a draw request rejected by
	// validation before any native call was issued.
	ErrIncompatibleDraw = errors.New("glsafe: incompatible draw")

	// ErrDriverRejected reports a native call that failed.
	ErrDriverRejected = errors.New("glsafe: driver rejected call")

	// ErrCapabilityUnsupported reports a feature absent from the
	// context's capability table.
	ErrCapabilityUnsupported = errors.New("glsafe: capability unsupported")

	// ErrContextLost reports that the native context was invalidated
	// by the platform. The Context cannot recover; it must be torn
	// down and recreated along with all its resources.
	ErrContextLost = errors.New("glsafe: context lost")
)

// IncompatibleDrawError names the binding a draw request was rejected
// for. It matches ErrIncompatibleDraw under errors.Is.
type IncompatibleDrawError struct {
	// Binding is the attribute, uniform or buffer name at fault.
	Binding string
	Reason  string
}

func (e *IncompatibleDrawError) Error() string {
	if e.Binding == "" {
		return fmt.Sprintf("glsafe: incompatible draw: %s", e.Reason)
	}
	return fmt.Sprintf("glsafe: incompatible draw: %q: %s", e.Binding, e.Reason)
}

func (e *IncompatibleDrawError) Unwrap() error {
	return ErrIncompatibleDraw
}

// DriverError carries the native error code reported for a call. It
// matches ErrDriverRejected under errors.Is, or ErrContextLost when
// the code signals a device reset.
type DriverError struct {
	// Call is the name of the native call that failed.
	Call string
	Code gl.Enum
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("glsafe: %s: %s", e.Call, gl.ErrorName(e.Code))
}

func (e *DriverError) Unwrap() error {
	if e.Code == gl.CONTEXT_LOST {
		return ErrContextLost
	}
	return ErrDriverRejected
}

// translateError wraps a native error code reported for call.
func translateError(call string, code gl.Enum) error {
	return &DriverError{Call: call, Code: code}
}

// DebugMessage is one message delivered by the native debug sink.
type DebugMessage struct {
	Source   gl.Enum
	Type     gl.Enum
	Severity gl.Enum
	ID       uint
	Message  string
	// Count is the number of identical messages collapsed into this
	// one since the last drain.
	Count int
}

func (m DebugMessage) String() string {
	if m.Count > 1 {
		return fmt.Sprintf("[0x%x] %s (repeated %d times)", m.ID, m.Message, m.Count)
	}
	return fmt.Sprintf("[0x%x] %s", m.ID, m.Message)
}

// messageLog accumulates debug-callback payloads, collapsing repeated
// identical messages so a misbehaving draw cannot flood the caller.
type messageLog struct {
	msgs  []DebugMessage
	index map[debugKey]int
	// errs queues error-severity messages for confirm. Each entry is
	// reported exactly once, at the call that triggered it; the
	// deduplicated log above is what DrainDebugMessages returns.
	errs []DebugMessage
}

type debugKey struct {
	id  uint
	msg string
}

func (l *messageLog) add(m DebugMessage) {
	if m.Type == gl.DEBUG_TYPE_ERROR || m.Severity == gl.DEBUG_SEVERITY_HIGH {
		l.errs = append(l.errs, m)
	}
	key := debugKey{id: m.ID, msg: m.Message}
	if i, ok := l.index[key]; ok {
		l.msgs[i].Count++
		return
	}
	if l.index == nil {
		l.index = make(map[debugKey]int)
	}
	m.Count = 1
	l.index[key] = len(l.msgs)
	l.msgs = append(l.msgs, m)
}

func (l *messageLog) drain() []DebugMessage {
	msgs := l.msgs
	l.msgs = nil
	l.index = nil
	return msgs
}

func (l *messageLog) empty() bool {
	return len(l.msgs) == 0
}

// takeError reports and removes the oldest unreported error-severity
// message, or nil. A stale error must never resurface at a later,
// unrelated call.
func (l *messageLog) takeError(call string) error {
	if len(l.errs) == 0 {
		return nil
	}
	m := l.errs[0]
	l.errs = l.errs[1:]
	return fmt.Errorf("%w: %s: %s", ErrDriverRejected, call, m.Message)
}
