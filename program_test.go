// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"strings"
	"testing"

	"gioui.org/shader"

	"github.com/go-gfx/glsafe/gltest"
)

func uniformVertSources() Sources {
	// Declared out of offset order on purpose; uploads must happen in
	// ascending offset order regardless.
	return testVertSources(
		[]shader.InputLocation{
			{Name: "x", Location: 0, Type: shader.DataTypeFloat, Size: 1},
		},
		[]shader.UniformLocation{
			{Name: "scale", Type: shader.DataTypeFloat, Size: 1, Offset: 8},
			{Name: "offset", Type: shader.DataTypeFloat, Size: 2, Offset: 0},
		},
		12,
	)
}

func uniformDraw(p Program, b Buffer) DrawRequest {
	return DrawRequest{
		Program:  p,
		Vertices: VertexSource{Buffer: b, Stride: 4, Attribs: floatAttribs()},
		Uniforms: map[string]UniformValue{
			"offset": Vec2(1, 2),
			"scale":  Float(3),
		},
		Topology: TopologyPoints,
		Count:    4,
	}
}

func TestUniformBatchPath(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	p, err := c.NewProgram(uniformVertSources(), testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	f.Reset()
	if err := c.Draw(uniformDraw(p, b)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// All uniforms travel as one buffer update.
	if n := f.Count("BufferSubData"); n != 1 {
		t.Fatalf("BufferSubData: %d calls, want 1", n)
	}
	for _, call := range []string{"Uniform1f", "Uniform2f"} {
		if n := f.Count(call); n != 0 {
			t.Fatalf("%s on batch path: %d calls, want 0", call, n)
		}
	}
}

func TestUniformScalarPath(t *testing.T) {
	f := gltest.New()
	f.HasUniformBlock = false
	c := newTestContext(t, f)
	p, err := c.NewProgram(uniformVertSources(), testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	f.Reset()
	if err := c.Draw(uniformDraw(p, b)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if n := f.Count("BufferSubData"); n != 0 {
		t.Fatalf("BufferSubData on scalar path: %d calls, want 0", n)
	}
	if n := f.Count("Uniform2f"); n != 1 {
		t.Fatalf("Uniform2f: %d calls, want 1", n)
	}
	if n := f.Count("Uniform1f"); n != 1 {
		t.Fatalf("Uniform1f: %d calls, want 1", n)
	}
	// Ascending offset order: the vec2 at offset 0 uploads before the
	// float at offset 8, despite the declaration order.
	var i2f, i1f int
	for i, call := range f.Calls() {
		switch call {
		case "Uniform2f":
			i2f = i
		case "Uniform1f":
			i1f = i
		}
	}
	if i2f > i1f {
		t.Fatalf("uniform upload out of offset order: %v", f.Calls())
	}
}

func TestUniformMissingValue(t *testing.T) {
	c := newTestContext(t, gltest.New())
	p, err := c.NewProgram(uniformVertSources(), testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	req := uniformDraw(p, b)
	delete(req.Uniforms, "scale")
	err = c.Draw(req)
	if !errors.Is(err, ErrIncompatibleDraw) {
		t.Fatalf("missing uniform value: %v, want ErrIncompatibleDraw", err)
	}
	var ide *IncompatibleDrawError
	if !errors.As(err, &ide) || ide.Binding != "scale" {
		t.Fatalf("error does not name the uniform: %v", err)
	}
}

func TestUniformDefaults(t *testing.T) {
	c := newTestContext(t, gltest.New())
	p, err := c.NewProgram(uniformVertSources(), testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	if err := c.SetUniformDefault(p, "scale", Float(1)); err != nil {
		t.Fatalf("SetUniformDefault: %v", err)
	}
	req := uniformDraw(p, b)
	delete(req.Uniforms, "scale")
	if err := c.Draw(req); err != nil {
		t.Fatalf("Draw with default: %v", err)
	}
	// A typed default is still typed.
	if err := c.SetUniformDefault(p, "scale", Int(1)); !errors.Is(err, ErrIncompatibleDraw) {
		t.Fatalf("mistyped default: %v, want ErrIncompatibleDraw", err)
	}
	if err := c.SetUniformDefault(p, "ghost", Float(1)); !errors.Is(err, ErrIncompatibleDraw) {
		t.Fatalf("default for unknown uniform: %v, want ErrIncompatibleDraw", err)
	}
}

func TestUniformTypeMismatch(t *testing.T) {
	c := newTestContext(t, gltest.New())
	p, err := c.NewProgram(uniformVertSources(), testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	b, err := c.NewBufferData(BufferBindingVertices, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewBufferData: %v", err)
	}
	req := uniformDraw(p, b)
	req.Uniforms["scale"] = Vec3(1, 2, 3)
	if err := c.Draw(req); !errors.Is(err, ErrIncompatibleDraw) {
		t.Fatalf("mistyped uniform: %v, want ErrIncompatibleDraw", err)
	}
}

func TestProgramCompileFailure(t *testing.T) {
	f := gltest.New()
	f.FailCompile = true
	c := newTestContext(t, f)
	_, err := c.NewProgram(uniformVertSources(), testFragSources())
	if !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("NewProgram with failing compiler: %v, want ErrDriverRejected", err)
	}
}

func TestProgramLinkFailure(t *testing.T) {
	f := gltest.New()
	f.FailLink = true
	c := newTestContext(t, f)
	_, err := c.NewProgram(uniformVertSources(), testFragSources())
	if !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("NewProgram with failing linker: %v, want ErrDriverRejected", err)
	}
}

func TestReleaseProgramDeletesStagingBuffer(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	p, err := c.NewProgram(uniformVertSources(), testFragSources())
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	f.Reset()
	if err := c.ReleaseProgram(p); err != nil {
		t.Fatalf("ReleaseProgram: %v", err)
	}
	if err := c.FlushPendingDeletions(); err != nil {
		t.Fatalf("FlushPendingDeletions: %v", err)
	}
	if n := f.Count("DeleteProgram"); n != 1 {
		t.Fatalf("DeleteProgram: %d calls, want 1", n)
	}
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Fatalf("DeleteBuffer for staging buffer: %d calls, want 1", n)
	}
}

func TestProgramDialectSelection(t *testing.T) {
	cases := []struct {
		version string
		prefix  string
	}{
		{"OpenGL ES 2.0", "void main"},
		{"OpenGL ES 3.0", "#version 300 es"},
		{"3.1.0 test driver", "#version 130"},
		{"4.3.0 test driver", "#version 150"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.version, func(t *testing.T) {
			f := gltest.New()
			f.SetVersion(tc.version)
			c := newTestContext(t, f)
			if _, err := c.NewProgram(testVertSources(nil, nil, 0), testFragSources()); err != nil {
				t.Fatalf("%s: NewProgram: %v", tc.version, err)
			}
			srcs := f.ShaderSources()
			if len(srcs) != 2 {
				t.Fatalf("%s: %d shader sources, want 2", tc.version, len(srcs))
			}
			for _, src := range srcs {
				if !strings.HasPrefix(src, tc.prefix) {
					t.Fatalf("%s: compiled source %q, want prefix %q", tc.version, src, tc.prefix)
				}
			}
		})
	}

	// A stage without the selected dialect is rejected before any
	// native call.
	f := gltest.New()
	c := newTestContext(t, f)
	f.Reset()
	legacy := Sources{Name: "legacy.vert", GLSL100ES: "void main() {}"}
	if _, err := c.NewProgram(legacy, testFragSources()); !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("missing dialect: %v, want ErrCapabilityUnsupported", err)
	}
	if calls := f.MutatingCalls(); calls != 0 {
		t.Fatalf("rejected program issued native calls: %v", calls)
	}
}
