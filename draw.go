// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"image"

	"gioui.org/shader"

	"github.com/go-gfx/glsafe/gl"
)

// Topology is the primitive assembly mode of a draw request.
type Topology uint8

const (
	TopologyPoints Topology = iota
	TopologyLines
	TopologyLineStrip
	TopologyLineLoop
	TopologyTriangles
	TopologyTriangleStrip
	TopologyTriangleFan
	TopologyLinesAdjacency
	TopologyTrianglesAdjacency
)

func (t Topology) glMode() gl.Enum {
	switch t {
	case TopologyPoints:
		return gl.POINTS
	case TopologyLines:
		return gl.LINES
	case TopologyLineStrip:
		return gl.LINE_STRIP
	case TopologyLineLoop:
		return gl.LINE_LOOP
	case TopologyTriangles:
		return gl.TRIANGLES
	case TopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	case TopologyTriangleFan:
		return gl.TRIANGLE_FAN
	case TopologyLinesAdjacency:
		return gl.LINES_ADJACENCY
	case TopologyTrianglesAdjacency:
		return gl.TRIANGLES_ADJACENCY
	default:
		panic("unsupported topology")
	}
}

// needsGeometry reports whether the topology requires geometry shader
// support.
func (t Topology) needsGeometry() bool {
	return t == TopologyLinesAdjacency || t == TopologyTrianglesAdjacency
}

func (t Topology) String() string {
	switch t {
	case TopologyPoints:
		return "points"
	case TopologyLines:
		return "lines"
	case TopologyLineStrip:
		return "line strip"
	case TopologyLineLoop:
		return "line loop"
	case TopologyTriangles:
		return "triangles"
	case TopologyTriangleStrip:
		return "triangle strip"
	case TopologyTriangleFan:
		return "triangle fan"
	case TopologyLinesAdjacency:
		return "lines adjacency"
	case TopologyTrianglesAdjacency:
		return "triangles adjacency"
	default:
		return "unknown"
	}
}

// BlendFactor is one source or destination blend weight.
type BlendFactor uint8

const (
	BlendFactorOne BlendFactor = iota
	BlendFactorZero
	BlendFactorSrcAlpha
	BlendFactorSrcColor
	BlendFactorDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorOneMinusSrcColor
	BlendFactorOneMinusDstColor
	BlendFactorOneMinusDstAlpha
)

func (f BlendFactor) glEnum() gl.Enum {
	switch f {
	case BlendFactorOne:
		return gl.ONE
	case BlendFactorZero:
		return gl.ZERO
	case BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactorSrcColor:
		return gl.SRC_COLOR
	case BlendFactorDstColor:
		return gl.DST_COLOR
	case BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendFactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		panic("unsupported blend factor")
	}
}

// CompareFunc is a depth comparison function.
type CompareFunc uint8

const (
	CompareLess CompareFunc = iota
	CompareNever
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

func (f CompareFunc) glEnum() gl.Enum {
	switch f {
	case CompareLess:
		return gl.LESS
	case CompareNever:
		return gl.NEVER
	case CompareEqual:
		return gl.EQUAL
	case CompareLessEqual:
		return gl.LEQUAL
	case CompareGreater:
		return gl.GREATER
	case CompareNotEqual:
		return gl.NOTEQUAL
	case CompareGreaterEqual:
		return gl.GEQUAL
	case CompareAlways:
		return gl.ALWAYS
	default:
		panic("unsupported compare func")
	}
}

// VertexAttrib describes one attribute as laid out in a vertex buffer.
type VertexAttrib struct {
	// Name must match a program input.
	Name string
	Type shader.DataType
	// Size is the vector width, 1 through 4.
	Size int
	// Offset is the attribute's byte offset within a vertex.
	Offset int
}

// VertexSource is the vertex stream of a draw request.
type VertexSource struct {
	Buffer  Buffer
	Stride  int
	Attribs []VertexAttrib
}

// IndexSource is the optional index stream. A zero Buffer means a
// non-indexed draw.
type IndexSource struct {
	Buffer Buffer
	Type   IndexType
}

// TextureUnit binds one texture to one sampler unit for a draw.
type TextureUnit struct {
	Unit    int
	Texture Texture
}

// BlendDesc is the blend state a draw request wants.
type BlendDesc struct {
	Enable               bool
	SrcFactor, DstFactor BlendFactor
}

// DepthDesc is the depth state a draw request wants. Write only
// applies while Enable is set.
type DepthDesc struct {
	Enable bool
	Write  bool
	Func   CompareFunc
}

// DrawRequest is one self-contained draw: vertex and index sources, a
// program, uniform values, texture bindings, target and fixed
// function state. Requests are ephemeral values consumed by Draw.
type DrawRequest struct {
	Program  Program
	Vertices VertexSource
	Indices  IndexSource
	Uniforms map[string]UniformValue
	Textures []TextureUnit

	// Target is the render target; the zero Framebuffer is the
	// surface's default framebuffer.
	Target Framebuffer
	// Viewport is applied when non-empty.
	Viewport image.Rectangle
	// Scissor enables the scissor test over the given box when
	// non-empty, and disables it otherwise.
	Scissor image.Rectangle

	Blend BlendDesc
	Depth DepthDesc

	Topology Topology
	// First and Count select the vertex or index range.
	First, Count int
	// Instances above 1 requests an instanced draw.
	Instances int
}

// resolvedDraw is the outcome of validation: every handle resolved
// and every value matched, ready for side effects.
type resolvedDraw struct {
	prog     gl.Program
	info     *programInfo
	vbuf     gl.Buffer
	vbufSize int
	ibuf     gl.Buffer
	fbo      gl.Framebuffer
	textures []gl.Texture
	// attribs maps each program input to the supplied attribute.
	attribs []VertexAttrib
	// values is aligned with info.uniforms.
	values []UniformValue
}

// Draw validates and executes one draw request.
//
// Validation is pure: a rejected request has issued zero native calls
// and the caller may fix it and retry. Once emission starts, state
// changes flow through the cache's diffing setters, redundant state
// costs no calls, and the first native failure stops the draw with no
// automatic retry. Uniforms upload in ascending reflection offset
// order on both the batch and the scalar path; this order is a
// behavioral contract.
func (c *Context) Draw(req DrawRequest) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	res, err := c.validate(&req)
	if err != nil {
		return err
	}
	return c.dispatch(&req, res)
}

func (c *Context) validate(req *DrawRequest) (*resolvedDraw, error) {
	res := &resolvedDraw{}

	// Fixed-function enums are validated here so dispatch never sees
	// a value it cannot translate.
	if req.Topology > TopologyTrianglesAdjacency {
		return nil, &IncompatibleDrawError{Reason: fmt.Sprintf("unknown topology %d", req.Topology)}
	}
	if req.Blend.Enable {
		if req.Blend.SrcFactor > BlendFactorOneMinusDstAlpha {
			return nil, &IncompatibleDrawError{Reason: fmt.Sprintf("unknown source blend factor %d", req.Blend.SrcFactor)}
		}
		if req.Blend.DstFactor > BlendFactorOneMinusDstAlpha {
			return nil, &IncompatibleDrawError{Reason: fmt.Sprintf("unknown destination blend factor %d", req.Blend.DstFactor)}
		}
	}
	if req.Depth.Enable && req.Depth.Func > CompareAlways {
		return nil, &IncompatibleDrawError{Reason: fmt.Sprintf("unknown depth compare func %d", req.Depth.Func)}
	}

	ps, err := c.reg.resolve(req.Program.h)
	if err != nil {
		return nil, err
	}
	res.prog = gl.Program{V: ps.id}
	res.info = ps.meta.(*programInfo)

	vs, err := c.reg.resolve(req.Vertices.Buffer.h)
	if err != nil {
		return nil, err
	}
	vmeta := vs.meta.(*bufferMeta)
	if vmeta.binding&BufferBindingVertices == 0 {
		return nil, &IncompatibleDrawError{Reason: "vertex source buffer not created for vertex use"}
	}
	res.vbuf = gl.Buffer{V: vs.id}
	res.vbufSize = vmeta.size

	indexed := req.Indices.Buffer.Valid()
	if indexed {
		is, err := c.reg.resolve(req.Indices.Buffer.h)
		if err != nil {
			return nil, err
		}
		imeta := is.meta.(*bufferMeta)
		if imeta.binding&BufferBindingIndices == 0 {
			return nil, &IncompatibleDrawError{Reason: "index source buffer not created for index use"}
		}
		if req.Indices.Type == IndexUnspecified {
			return nil, &IncompatibleDrawError{Reason: "index source needs an element type"}
		}
		if imeta.index != IndexUnspecified && imeta.index != req.Indices.Type {
			return nil, &IncompatibleDrawError{
				Reason: fmt.Sprintf("index type %s does not fit buffer element type %s",
					req.Indices.Type, imeta.index),
			}
		}
		if req.First < 0 || req.Count < 0 || (req.First+req.Count)*req.Indices.Type.Size() > imeta.size {
			return nil, &IncompatibleDrawError{Reason: "index range exceeds index buffer"}
		}
		res.ibuf = gl.Buffer{V: is.id}
	} else {
		if req.First < 0 || req.Count < 0 {
			return nil, &IncompatibleDrawError{Reason: "negative vertex range"}
		}
		if req.Vertices.Stride > 0 && (req.First+req.Count)*req.Vertices.Stride > vmeta.size {
			return nil, &IncompatibleDrawError{Reason: "vertex range exceeds vertex buffer"}
		}
	}

	if req.Target.Valid() {
		fs, err := c.reg.resolve(req.Target.h)
		if err != nil {
			return nil, err
		}
		res.fbo = gl.Framebuffer{V: fs.id}
	}

	for _, tu := range req.Textures {
		if tu.Unit < 0 || tu.Unit >= len(c.state.texBinds) {
			return nil, fmt.Errorf("%w: texture unit %d out of the %d tracked units",
				ErrCapabilityUnsupported, tu.Unit, len(c.state.texBinds))
		}
		ts, err := c.reg.resolve(tu.Texture.h)
		if err != nil {
			return nil, err
		}
		for len(res.textures) <= tu.Unit {
			res.textures = append(res.textures, gl.Texture{})
		}
		res.textures[tu.Unit] = gl.Texture{V: ts.id}
	}

	// Every program input needs a supplied attribute of a matching or
	// convertible type.
	res.attribs = make([]VertexAttrib, len(res.info.inputs))
	for i, inp := range res.info.inputs {
		attr, ok := findAttrib(req.Vertices.Attribs, inp.Name)
		if !ok {
			return nil, &IncompatibleDrawError{Binding: inp.Name, Reason: "vertex source does not supply attribute"}
		}
		if attr.Size != inp.Size {
			return nil, &IncompatibleDrawError{
				Binding: inp.Name,
				Reason:  fmt.Sprintf("attribute size %d, program wants %d", attr.Size, inp.Size),
			}
		}
		if !attribTypeCompatible(attr.Type, inp.Type) {
			return nil, &IncompatibleDrawError{Binding: inp.Name, Reason: "attribute type mismatch"}
		}
		if inp.Location < 0 || inp.Location >= len(c.state.vertAttribs) {
			return nil, fmt.Errorf("%w: attribute location %d out of the %d tracked slots",
				ErrCapabilityUnsupported, inp.Location, len(c.state.vertAttribs))
		}
		res.attribs[i] = attr
	}

	// Every declared uniform needs a value or a registered default,
	// of the introspected type; unknown names are rejected outright.
	res.values = make([]UniformValue, len(res.info.uniforms))
	for i, u := range res.info.uniforms {
		v, ok := req.Uniforms[u.name]
		if !ok {
			v, ok = res.info.defaults[u.name]
		}
		if !ok {
			return nil, &IncompatibleDrawError{Binding: u.name, Reason: "no uniform value supplied"}
		}
		if !v.matches(u.typ, u.size) {
			return nil, &IncompatibleDrawError{Binding: u.name, Reason: "uniform value type mismatch"}
		}
		res.values[i] = v
	}
	for name := range req.Uniforms {
		if !hasUniform(res.info.uniforms, name) {
			return nil, &IncompatibleDrawError{Binding: name, Reason: "program declares no such uniform"}
		}
	}

	if req.Topology.needsGeometry() && !c.caps.Features.Has(FeatureAdjacencyTopologies) {
		return nil, &IncompatibleDrawError{
			Reason: fmt.Sprintf("topology %s unsupported by this context", req.Topology),
		}
	}
	if req.Instances > 1 && !c.caps.Features.Has(FeatureInstancing) {
		return nil, fmt.Errorf("%w: instanced draws", ErrCapabilityUnsupported)
	}
	return res, nil
}

func findAttrib(attribs []VertexAttrib, name string) (VertexAttrib, bool) {
	for _, a := range attribs {
		if a.Name == name {
			return a, true
		}
	}
	return VertexAttrib{}, false
}

func hasUniform(uniforms []uniformSpec, name string) bool {
	for _, u := range uniforms {
		if u.name == name {
			return true
		}
	}
	return false
}

// attribTypeCompatible reports whether data of type got feeds a
// program input of type want. Integer data feeds float inputs through
// the native conversion in VertexAttribPointer.
func attribTypeCompatible(got, want shader.DataType) bool {
	if got == want {
		return true
	}
	if want == shader.DataTypeFloat {
		return got == shader.DataTypeShort || got == shader.DataTypeInt
	}
	return false
}

func attribGLType(t shader.DataType) gl.Enum {
	switch t {
	case shader.DataTypeFloat:
		return gl.FLOAT
	case shader.DataTypeInt:
		return gl.INT
	case shader.DataTypeShort:
		return gl.SHORT
	default:
		panic("unsupported data type")
	}
}

// dispatch diffs the target state vector against the cache and issues
// the minimal call sequence, then exactly one draw call. Ordering:
// the framebuffer binds before viewport and scissor, and the program
// binds before uniform upload, because the native semantics of the
// latter are defined relative to the bound object.
func (c *Context) dispatch(req *DrawRequest, res *resolvedDraw) error {
	if err := c.state.bindFramebuffer(gl.FRAMEBUFFER, res.fbo); err != nil {
		return err
	}
	if v := req.Viewport; !v.Empty() {
		if err := c.state.setViewport(v.Min.X, v.Min.Y, v.Dx(), v.Dy()); err != nil {
			return err
		}
	}
	if sc := req.Scissor; !sc.Empty() {
		if err := c.state.setEnabled(gl.SCISSOR_TEST, true); err != nil {
			return err
		}
		if err := c.state.setScissor(sc.Min.X, sc.Min.Y, sc.Dx(), sc.Dy()); err != nil {
			return err
		}
	} else if err := c.state.setEnabled(gl.SCISSOR_TEST, false); err != nil {
		return err
	}

	if err := c.state.setEnabled(gl.BLEND, req.Blend.Enable); err != nil {
		return err
	}
	if req.Blend.Enable {
		src, dst := req.Blend.SrcFactor.glEnum(), req.Blend.DstFactor.glEnum()
		if err := c.state.setBlendFuncSeparate(src, dst, src, dst); err != nil {
			return err
		}
	}
	if err := c.state.setEnabled(gl.DEPTH_TEST, req.Depth.Enable); err != nil {
		return err
	}
	if req.Depth.Enable {
		if err := c.state.setDepthMask(req.Depth.Write); err != nil {
			return err
		}
		if err := c.state.setDepthFunc(req.Depth.Func.glEnum()); err != nil {
			return err
		}
	}

	if err := c.state.useProgram(res.prog); err != nil {
		return err
	}

	enabled := make([]bool, len(c.state.vertAttribs))
	for i, inp := range res.info.inputs {
		attr := res.attribs[i]
		enabled[inp.Location] = true
		err := c.state.vertexAttribPointer(res.vbuf, inp.Location, attr.Size,
			attribGLType(attr.Type), false, req.Vertices.Stride, attr.Offset)
		if err != nil {
			return err
		}
	}
	for i, on := range enabled {
		if err := c.state.setVertexAttribEnabled(i, on); err != nil {
			return err
		}
	}

	if res.ibuf.Valid() {
		if err := c.state.bindBuffer(gl.ELEMENT_ARRAY_BUFFER, res.ibuf); err != nil {
			return err
		}
	}
	for unit, tex := range res.textures {
		if !tex.Valid() {
			continue
		}
		if err := c.state.bindTexture(unit, tex); err != nil {
			return err
		}
	}

	if err := c.uploadUniforms(res.prog, res.info, res.values); err != nil {
		return err
	}

	mode := req.Topology.glMode()
	switch {
	case res.ibuf.Valid() && req.Instances > 1:
		byteOff := req.First * req.Indices.Type.Size()
		c.funcs.DrawElementsInstanced(mode, req.Count, req.Indices.Type.glType(), byteOff, req.Instances)
	case res.ibuf.Valid():
		byteOff := req.First * req.Indices.Type.Size()
		c.funcs.DrawElements(mode, req.Count, req.Indices.Type.glType(), byteOff)
	case req.Instances > 1:
		c.funcs.DrawArraysInstanced(mode, req.First, req.Count, req.Instances)
	default:
		c.funcs.DrawArrays(mode, req.First, req.Count)
	}
	return c.confirm("Draw")
}
