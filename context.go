// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gfx/glsafe/gl"
)

// Contexts are bound to one OS thread at a time. The native API has a
// single implicit current context per thread and no way to detect
// misuse, so currency is tracked here and violations fail fast with
// ErrContextConflict instead of corrupting driver state.
var (
	currentMu  sync.Mutex
	currentCtx *Context

	ctxIDs atomic.Uint64
)

// Context owns one native graphics context: its capability table,
// state cache, resource registry and deletion queue. All native calls
// funnel through it.
//
// A Context is not safe for concurrent use. All methods must be called
// from the thread holding the context current; concurrent use fails
// with ErrContextConflict rather than racing on driver state.
type Context struct {
	id    uint64
	funcs gl.Functions
	caps  Caps
	state *stateCache
	reg   *registry

	pending []pendingDelete

	vao gl.VertexArray

	// inUse rejects overlapping calls from a second goroutine.
	inUse atomic.Bool

	debug      messageLog
	debugWired bool
	current    bool
	lost       bool
	destroyed  bool
	opts       options
}

type pendingDelete struct {
	kind  Kind
	index uint32
	id    uint
	sync  gl.Sync
	// rb is the depth renderbuffer deleted along with a framebuffer.
	rb gl.Renderbuffer
	// buf is the uniform staging buffer deleted along with a program.
	buf gl.Buffer
}

type options struct {
	textureUnits   int
	debugOutput    bool
	flushThreshold int
}

// Option configures a Context at creation.
type Option func(*options)

// WithTextureUnits bounds how many texture units the state cache
// tracks. The default is 16, clamped to the driver limit.
func WithTextureUnits(n int) Option {
	return func(o *options) { o.textureUnits = n }
}

// WithDebugOutput disables or enables wiring the native debug
// callback when the driver supports it. Enabled by default.
func WithDebugOutput(enable bool) Option {
	return func(o *options) { o.debugOutput = enable }
}

// WithFlushThreshold sets how many queued deletions accumulate before
// an allocation triggers an implicit flush. Zero disables implicit
// flushing. The default is 64.
func WithFlushThreshold(n int) Option {
	return func(o *options) { o.flushThreshold = n }
}

// New takes ownership of the already-current native context reached
// through f. It queries the capability table, seeds the state cache
// with the documented context defaults and becomes the current
// Context. New fails with ErrContextConflict if another Context is
// already current.
func New(f gl.Functions, opts ...Option) (*Context, error) {
	o := options{
		textureUnits:   16,
		debugOutput:    true,
		flushThreshold: 64,
	}
	for _, opt := range opts {
		opt(&o)
	}
	caps, err := queryCaps(f)
	if err != nil {
		return nil, err
	}
	c := &Context{
		id:    ctxIDs.Add(1),
		funcs: f,
		caps:  caps,
		opts:  o,
	}
	c.reg = newRegistry(c.id)
	units := o.textureUnits
	if caps.MaxTextureUnits > 0 && units > caps.MaxTextureUnits {
		units = caps.MaxTextureUnits
	}
	attribs := caps.MaxVertexAttribs
	if attribs <= 0 || attribs > 32 {
		attribs = 32
	}
	c.state = newStateCache(f, c.confirm, units, attribs)
	if err := c.MakeCurrent(); err != nil {
		return nil, err
	}
	if o.debugOutput && caps.Features.Has(FeatureDebugOutput) {
		f.Enable(gl.DEBUG_OUTPUT)
		f.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		f.DebugMessageCallback(c.onDebugMessage)
		c.debugWired = true
	}
	if caps.Features.Has(FeatureVertexArrays) {
		// Core profiles refuse attribute setup without a bound
		// vertex array.
		c.vao = f.CreateVertexArray()
		if err := c.state.bindVertexArray(c.vao); err != nil {
			c.ReleaseCurrent()
			return nil, err
		}
	}
	logger().Debug("glsafe: context created",
		"id", c.id,
		"api", caps.String(),
		"features", fmt.Sprintf("%b", caps.Features))
	return c, nil
}

// Caps returns the immutable capability table.
func (c *Context) Caps() Caps {
	return c.caps
}

// Lost reports whether the native context was invalidated by the
// platform. A lost Context cannot be recovered, only destroyed.
func (c *Context) Lost() bool {
	return c.lost
}

// MakeCurrent binds the Context to the calling goroutine's OS thread.
// It fails with ErrContextConflict if another Context is current. The
// caller must have made the native context current on this thread
// through the platform layer first.
func (c *Context) MakeCurrent() error {
	if c.destroyed {
		return fmt.Errorf("%w: context destroyed", ErrContextConflict)
	}
	currentMu.Lock()
	defer currentMu.Unlock()
	if currentCtx == c {
		return nil
	}
	if currentCtx != nil {
		return fmt.Errorf("%w: context %d is current", ErrContextConflict, currentCtx.id)
	}
	runtime.LockOSThread()
	currentCtx = c
	c.current = true
	return nil
}

// ReleaseCurrent releases the thread affinity. It is safe to call
// whether or not the Context is current.
func (c *Context) ReleaseCurrent() {
	currentMu.Lock()
	defer currentMu.Unlock()
	if currentCtx != c {
		return
	}
	currentCtx = nil
	c.current = false
	runtime.UnlockOSThread()
}

// check gates every operation that reaches the native API.
func (c *Context) check() error {
	if c.lost {
		return ErrContextLost
	}
	if c.destroyed {
		return fmt.Errorf("%w: context destroyed", ErrContextConflict)
	}
	if !c.current {
		return fmt.Errorf("%w: context %d is not current", ErrContextConflict, c.id)
	}
	return nil
}

// acquire gates every public entry point. A Context serves one call
// at a time; a second goroutine entering while a call is in flight
// fails fast instead of racing on the cache and on driver state.
// Every acquire must be paired with release.
func (c *Context) acquire() error {
	if !c.inUse.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: concurrent use of context %d", ErrContextConflict, c.id)
	}
	if err := c.check(); err != nil {
		c.inUse.Store(false)
		return err
	}
	return nil
}

func (c *Context) release() {
	c.inUse.Store(false)
}

func (c *Context) onDebugMessage(source, gltype gl.Enum, id uint, severity gl.Enum, message string) {
	if severity == gl.DEBUG_SEVERITY_NOTIFICATION {
		return
	}
	c.debug.add(DebugMessage{
		Source:   source,
		Type:     gltype,
		Severity: severity,
		ID:       id,
		Message:  message,
	})
	logger().Warn("glsafe: driver debug message", "id", id, "message", message)
}

// confirm reports any native error signaled for the named call. With
// the debug sink wired the synchronous callback has already fired;
// otherwise the error queue is polled. A reported CONTEXT_LOST marks
// the Context permanently lost.
func (c *Context) confirm(call string) error {
	if c.lost {
		return ErrContextLost
	}
	if c.debugWired {
		if err := c.debug.takeError(call); err != nil {
			// Consume the matching entry from the native queue too.
			c.funcs.GetError()
			return err
		}
		return nil
	}
	code := c.funcs.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	if code == gl.CONTEXT_LOST {
		c.markLost()
	}
	return translateError(call, code)
}

func (c *Context) markLost() {
	if c.lost {
		return
	}
	c.lost = true
	logger().Warn("glsafe: native context lost", "id", c.id)
}

// DrainDebugMessages returns the debug messages accumulated since the
// previous drain, with repeated identical messages collapsed.
func (c *Context) DrainDebugMessages() []DebugMessage {
	return c.debug.drain()
}

// Invalidate forgets the entire state cache. Call it after code
// outside the tracker issued native calls, so every subsequent state
// set reissues its call instead of trusting a stale mirror.
func (c *Context) Invalidate() error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	c.state.invalidateAll()
	return nil
}

// Refresh reads the true native state back into the cache. It is the
// cheaper alternative to Invalidate when foreign code runs often.
func (c *Context) Refresh() error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	c.state.queryAll()
	return c.confirm("Refresh")
}

// Clear fills target's color attachment with the given color. The
// zero Framebuffer clears the surface's default framebuffer.
func (c *Context) Clear(target Framebuffer, r, g, b, a float32) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	var fbo gl.Framebuffer
	if target.Valid() {
		s, err := c.reg.resolve(target.h)
		if err != nil {
			return err
		}
		fbo = gl.Framebuffer{V: s.id}
	}
	if err := c.state.bindFramebuffer(gl.FRAMEBUFFER, fbo); err != nil {
		return err
	}
	if err := c.state.setClearColor(r, g, b, a); err != nil {
		return err
	}
	c.funcs.Clear(gl.COLOR_BUFFER_BIT)
	return c.confirm("Clear")
}

// ClearDepth fills target's depth attachment with d.
func (c *Context) ClearDepth(target Framebuffer, d float32) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	var fbo gl.Framebuffer
	if target.Valid() {
		s, err := c.reg.resolve(target.h)
		if err != nil {
			return err
		}
		fbo = gl.Framebuffer{V: s.id}
	}
	if err := c.state.bindFramebuffer(gl.FRAMEBUFFER, fbo); err != nil {
		return err
	}
	if err := c.state.setClearDepth(d); err != nil {
		return err
	}
	c.funcs.Clear(gl.DEPTH_BUFFER_BIT)
	return c.confirm("Clear")
}

// FlushPendingDeletions drains the deletion queue, issuing one native
// delete per released resource and retiring their registry slots.
// Deletion is deferred to here because deleting a resource still
// referenced by in-flight commands is undefined in the native API.
func (c *Context) FlushPendingDeletions() error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.flushDeletions()
}

func (c *Context) flushDeletions() error {
	var firstErr error
	for _, d := range c.pending {
		var err error
		switch d.kind {
		case KindBuffer:
			err = c.state.deleteBuffer(gl.Buffer{V: d.id})
		case KindTexture:
			err = c.state.deleteTexture(gl.Texture{V: d.id})
		case KindProgram:
			err = c.state.deleteProgram(gl.Program{V: d.id})
			if err == nil && d.buf.Valid() {
				err = c.state.deleteBuffer(d.buf)
			}
		case KindFramebuffer:
			err = c.state.deleteFramebuffer(gl.Framebuffer{V: d.id})
			if err == nil && d.rb.Valid() {
				err = c.state.deleteRenderbuffer(d.rb)
			}
		case KindVertexArray:
			err = c.state.deleteVertexArray(gl.VertexArray{V: d.id})
		case KindSync:
			c.funcs.DeleteSync(d.sync)
			err = c.confirm("DeleteSync")
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
		c.reg.finishRelease(d.index)
	}
	if n := len(c.pending); n > 0 {
		logger().Debug("glsafe: flushed deletions", "id", c.id, "count", n)
	}
	c.pending = c.pending[:0]
	return firstErr
}

// maybeFlush runs an implicit flush when the deletion queue exceeds
// the configured threshold. Called from allocation paths, which are
// well-defined synchronization points.
func (c *Context) maybeFlush() error {
	if c.opts.flushThreshold <= 0 || len(c.pending) < c.opts.flushThreshold {
		return nil
	}
	return c.flushDeletions()
}

// enqueueDelete moves a resource from live to pending-deletion.
func (c *Context) enqueueDelete(h handle) error {
	s, err := c.reg.beginRelease(h)
	if err != nil {
		return err
	}
	c.pending = append(c.pending, pendingDelete{
		kind:  h.kind,
		index: h.index,
		id:    s.id,
		sync:  s.sync,
	})
	return nil
}

// Destroy flushes the deletion queue, deletes the Context's own
// objects and invalidates every outstanding handle. The Context is
// unusable afterwards.
func (c *Context) Destroy() error {
	if c.destroyed {
		return nil
	}
	if !c.inUse.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: concurrent use of context %d", ErrContextConflict, c.id)
	}
	defer c.release()
	var firstErr error
	if !c.lost {
		if err := c.check(); err != nil {
			return err
		}
		firstErr = c.flushDeletions()
		// Native deletion for resources never released by the
		// application.
		for i := range c.reg.slots {
			s := &c.reg.slots[i]
			if !s.live {
				continue
			}
			switch s.kind {
			case KindBuffer:
				c.funcs.DeleteBuffer(gl.Buffer{V: s.id})
			case KindTexture:
				c.funcs.DeleteTexture(gl.Texture{V: s.id})
			case KindProgram:
				c.funcs.DeleteProgram(gl.Program{V: s.id})
			case KindFramebuffer:
				c.funcs.DeleteFramebuffer(gl.Framebuffer{V: s.id})
			case KindVertexArray:
				c.funcs.DeleteVertexArray(gl.VertexArray{V: s.id})
			case KindSync:
				c.funcs.DeleteSync(s.sync)
			}
		}
		if c.vao.Valid() {
			c.funcs.DeleteVertexArray(c.vao)
		}
	}
	c.reg.invalidateAll()
	c.destroyed = true
	c.ReleaseCurrent()
	logger().Debug("glsafe: context destroyed", "id", c.id)
	return firstErr
}

// logger is defined in logger.go; the indirection keeps the call
// sites short.
func logger() *slog.Logger {
	return activeLogger()
}
