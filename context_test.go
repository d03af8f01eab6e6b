// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"gioui.org/shader"

	"github.com/go-gfx/glsafe/gl"
	"github.com/go-gfx/glsafe/gltest"
)

func newTestContext(t *testing.T, f *gltest.Functions, opts ...Option) *Context {
	t.Helper()
	c, err := New(f, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Destroy() })
	return c
}

func testVertSources(inputs []shader.InputLocation, uniforms []shader.UniformLocation, size int) Sources {
	return Sources{
		Name:      "test.vert",
		GLSL100ES: "void main() {}",
		GLSL300ES: "#version 300 es\nvoid main() {}",
		GLSL130:   "#version 130\nvoid main() {}",
		GLSL150:   "#version 150\nvoid main() {}",
		Inputs:    inputs,
		Uniforms: shader.UniformsReflection{
			Locations: uniforms,
			Size:      size,
		},
	}
}

func testFragSources() Sources {
	return Sources{
		Name:      "test.frag",
		GLSL100ES: "void main() {}",
		GLSL300ES: "#version 300 es\nvoid main() {}",
		GLSL130:   "#version 130\nvoid main() {}",
		GLSL150:   "#version 150\nvoid main() {}",
	}
}

// simpleProgram links a program with a single float attribute "x" and
// no uniforms.
func simpleProgram(t *testing.T, c *Context) Program {
	t.Helper()
	vert := testVertSources([]shader.InputLocation{
		{Name: "x", Location: 0, Type: shader.DataTypeFloat, Size: 1},
	}, nil, 0)
	p, err := c.NewProgram(vert, testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	return p
}

func TestSingleCurrentContext(t *testing.T) {
	c1 := newTestContext(t, gltest.New())
	if _, err := New(gltest.New()); !errors.Is(err, ErrContextConflict) {
		t.Fatalf("second New: %v, want ErrContextConflict", err)
	}
	if err := c1.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	c2, err := New(gltest.New())
	if err != nil {
		t.Fatalf("New after Destroy: %v", err)
	}
	c2.Destroy()
}

func TestOperationsRequireCurrency(t *testing.T) {
	c := newTestContext(t, gltest.New())
	c.ReleaseCurrent()
	if _, err := c.NewBuffer(BufferBindingVertices, 16); !errors.Is(err, ErrContextConflict) {
		t.Fatalf("NewBuffer while not current: %v, want ErrContextConflict", err)
	}
	if err := c.MakeCurrent(); err != nil {
		t.Fatalf("MakeCurrent: %v", err)
	}
	if _, err := c.NewBuffer(BufferBindingVertices, 16); err != nil {
		t.Fatalf("NewBuffer after MakeCurrent: %v", err)
	}
}

func TestDestroyedContextRefusesUse(t *testing.T) {
	c := newTestContext(t, gltest.New())
	if err := c.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := c.NewBuffer(BufferBindingVertices, 16); !errors.Is(err, ErrContextConflict) {
		t.Fatalf("NewBuffer after Destroy: %v, want ErrContextConflict", err)
	}
	if err := c.MakeCurrent(); !errors.Is(err, ErrContextConflict) {
		t.Fatalf("MakeCurrent after Destroy: %v, want ErrContextConflict", err)
	}
}

func TestDeferredDeletion(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	b, err := c.NewBuffer(BufferBindingVertices, 16)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if err := c.ReleaseBuffer(b); err != nil {
		t.Fatalf("ReleaseBuffer: %v", err)
	}
	if n := f.Count("DeleteBuffer"); n != 0 {
		t.Fatalf("DeleteBuffer before flush: %d calls, want 0", n)
	}
	// The handle is stale the moment release is requested.
	if err := c.UploadBuffer(b, 0, make([]byte, 4)); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("UploadBuffer after release: %v, want ErrStaleHandle", err)
	}
	if err := c.FlushPendingDeletions(); err != nil {
		t.Fatalf("FlushPendingDeletions: %v", err)
	}
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Fatalf("DeleteBuffer after flush: %d calls, want 1", n)
	}
}

func TestImplicitFlushThreshold(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f, WithFlushThreshold(2))
	for i := 0; i < 2; i++ {
		b, err := c.NewBuffer(BufferBindingVertices, 16)
		if err != nil {
			t.Fatalf("NewBuffer: %v", err)
		}
		if err := c.ReleaseBuffer(b); err != nil {
			t.Fatalf("ReleaseBuffer: %v", err)
		}
	}
	if n := f.Count("DeleteBuffer"); n != 0 {
		t.Fatalf("DeleteBuffer before threshold: %d calls, want 0", n)
	}
	// The next allocation is a synchronization point and drains the
	// queue.
	if _, err := c.NewBuffer(BufferBindingVertices, 16); err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if n := f.Count("DeleteBuffer"); n != 2 {
		t.Fatalf("DeleteBuffer after threshold: %d calls, want 2", n)
	}
}

func TestContextLossIsPermanent(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	b, err := c.NewBuffer(BufferBindingVertices, 16)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	f.InjectError(gl.CONTEXT_LOST)
	if err := c.UploadBuffer(b, 0, make([]byte, 4)); !errors.Is(err, ErrContextLost) {
		t.Fatalf("UploadBuffer on lost context: %v, want ErrContextLost", err)
	}
	if !c.Lost() {
		t.Fatal("Lost() = false after CONTEXT_LOST")
	}
	// Everything fails fast from here, without reaching the driver.
	f.Reset()
	if _, err := c.NewTexture(TextureFormatRGBA8, 4, 4, FilterNearest, FilterNearest); !errors.Is(err, ErrContextLost) {
		t.Fatalf("NewTexture on lost context: %v, want ErrContextLost", err)
	}
	if n := f.MutatingCalls(); n != 0 {
		t.Fatalf("%d native calls on lost context, want 0", n)
	}
}

func TestDestroyDeletesLiveResources(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	if _, err := c.NewBuffer(BufferBindingVertices, 16); err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if _, err := c.NewTexture(TextureFormatRGBA8, 4, 4, FilterNearest, FilterNearest); err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	if err := c.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Fatalf("DeleteBuffer at Destroy: %d calls, want 1", n)
	}
	if n := f.Count("DeleteTexture"); n != 1 {
		t.Fatalf("DeleteTexture at Destroy: %d calls, want 1", n)
	}
}

func TestInvalidateForcesReissue(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	p := simpleProgram(t, c)
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	req := DrawRequest{
		Program: p,
		Vertices: VertexSource{
			Buffer: b,
			Stride: 4,
			Attribs: []VertexAttrib{
				{Name: "x", Type: shader.DataTypeFloat, Size: 1, Offset: 0},
			},
		},
		Topology: TopologyPoints,
		Count:    4,
	}
	if err := c.Draw(req); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	f.Reset()
	if err := c.Draw(req); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if n := f.Count("UseProgram"); n != 0 {
		t.Fatalf("UseProgram on repeated draw: %d calls, want 0", n)
	}
	if err := c.Invalidate(); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := c.Draw(req); err != nil {
		t.Fatalf("Draw after Invalidate: %v", err)
	}
	if n := f.Count("UseProgram"); n != 1 {
		t.Fatalf("UseProgram after Invalidate: %d calls, want 1", n)
	}
}

func TestClearCachesClearColor(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	f.Reset()
	for i := 0; i < 3; i++ {
		if err := c.Clear(Framebuffer{}, 1, 0, 0, 1); err != nil {
			t.Fatalf("Clear: %v", err)
		}
	}
	if n := f.Count("ClearColor"); n != 1 {
		t.Fatalf("ClearColor: %d calls, want 1", n)
	}
	if n := f.Count("Clear"); n != 3 {
		t.Fatalf("Clear: %d calls, want 3", n)
	}
}

func TestRefreshAdoptsForeignState(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	p := simpleProgram(t, c)
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	// Foreign code enables blending behind the tracker's back.
	f.Enable(gl.BLEND)
	if err := c.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	f.Reset()
	err = c.Draw(DrawRequest{
		Program: p,
		Vertices: VertexSource{
			Buffer: b,
			Stride: 4,
			Attribs: []VertexAttrib{
				{Name: "x", Type: shader.DataTypeFloat, Size: 1, Offset: 0},
			},
		},
		Topology: TopologyPoints,
		Count:    4,
	})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// The request wants blending off; after Refresh the cache knows
	// it is on and issues exactly one Disable.
	if n := f.Count("Disable"); n != 1 {
		t.Fatalf("Disable after Refresh: %d calls, want 1", n)
	}
}

func TestDebugSinkReportsErrorOnce(t *testing.T) {
	f := gltest.New()
	f.SetVersion("4.3.0 test driver")
	c := newTestContext(t, f)
	if !c.Caps().Features.Has(FeatureDebugOutput) {
		t.Fatal("no debug output support")
	}
	if n := f.Count("DebugMessageCallback"); n != 1 {
		t.Fatalf("DebugMessageCallback: %d calls, want 1", n)
	}
	f.EmitDebugMessage(gl.DEBUG_TYPE_ERROR, gl.DEBUG_SEVERITY_HIGH, 7, "boom")
	err := c.Clear(Framebuffer{}, 0, 0, 0, 1)
	if !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("Clear after debug error = %v, want ErrDriverRejected", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error %q does not carry the driver message", err)
	}
	// The message surfaced at the call that triggered it; later
	// error-free calls must not see it again.
	if err := c.Clear(Framebuffer{}, 0, 0, 0, 1); err != nil {
		t.Fatalf("error-free Clear after reported error: %v", err)
	}
	f.EmitDebugMessage(gl.DEBUG_TYPE_PERFORMANCE, gl.DEBUG_SEVERITY_MEDIUM, 8, "slow path")
	f.EmitDebugMessage(gl.DEBUG_TYPE_PERFORMANCE, gl.DEBUG_SEVERITY_MEDIUM, 8, "slow path")
	if err := c.Clear(Framebuffer{}, 0, 1, 0, 1); err != nil {
		t.Fatalf("Clear after warnings: %v", err)
	}
	msgs := c.DrainDebugMessages()
	if len(msgs) != 2 {
		t.Fatalf("DrainDebugMessages: %d messages, want 2", len(msgs))
	}
	if msgs[0].Message != "boom" || msgs[0].Count != 1 {
		t.Fatalf("first drained message = %+v", msgs[0])
	}
	if msgs[1].Message != "slow path" || msgs[1].Count != 2 {
		t.Fatalf("second drained message = %+v", msgs[1])
	}
}

func TestConcurrentUseFailsFast(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	// A call in flight on another goroutine holds the guard.
	if !c.inUse.CompareAndSwap(false, true) {
		t.Fatal("context unexpectedly busy")
	}
	if err := c.Clear(Framebuffer{}, 0, 0, 0, 1); !errors.Is(err, ErrContextConflict) {
		t.Fatalf("Clear on busy context = %v, want ErrContextConflict", err)
	}
	c.inUse.Store(false)
	if err := c.Clear(Framebuffer{}, 0, 0, 0, 1); err != nil {
		t.Fatalf("Clear after guard released: %v", err)
	}

	// Overlapping callers either run or fail with ErrContextConflict;
	// nothing races on the cache.
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				err := c.Clear(Framebuffer{}, 0, 0, 0, 1)
				if err != nil && !errors.Is(err, ErrContextConflict) {
					t.Errorf("Clear: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}
