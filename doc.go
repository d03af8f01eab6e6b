// SPDX-License-Identifier: Unlicense OR MIT

/*
Package glsafe interposes a safety and efficiency layer between
application code and an OpenGL-style native API. It mirrors the
mutable global state of one native context, ties every resource handle
to the Context that created it, validates draw requests before any
native call, and collapses redundant state changes to nothing.

A Context takes ownership of an already-current native context through
a gl.Functions table:

	ctx, err := glsafe.New(funcs)

Resources are created through the Context and referred to by
generation-tagged value handles. Releasing a resource enqueues its
native deletion; the queue drains at explicit flush points and at
Context teardown, never from a finalizer.

Draw requests are validated in full before any native call: a rejected
request has no side effects and can be corrected and retried. Accepted
requests are diffed against the cached state so that only changed
settings reach the driver, followed by exactly one draw call.

All failures match one of the package's sentinel errors with
errors.Is: ErrContextConflict, ErrStaleHandle, ErrIncompatibleDraw,
ErrDriverRejected, ErrCapabilityUnsupported, ErrContextLost.

A Context is bound to one OS thread while current. This mirrors a hard
native constraint: the package enforces it at run time and fails fast
instead of corrupting driver state.
*/
package glsafe
