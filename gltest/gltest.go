// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest provides an in-process fake gl.Functions for tests.
// It emulates object allocation with identifier reuse, answers state
// queries from an internal mirror, records every call by name and
// supports error injection, so tests can count exactly which native
// calls a code path issued.
package gltest

import (
	"strings"

	"github.com/go-gfx/glsafe/gl"
)

var _ gl.Functions = (*Functions)(nil)

type attrib struct {
	enabled    bool
	buffer     uint
	size       int
	typ        gl.Enum
	normalized bool
	stride     int
	offset     uintptr
}

// Functions is a fake native function table. The zero value is not
// usable; construct with New.
type Functions struct {
	// ReuseIdentifiers makes Create* hand out identifiers of
	// previously deleted objects first, the way real drivers do.
	// Enabled by default.
	ReuseIdentifiers bool
	// HasUniformBlock makes GetUniformBlockIndex resolve the
	// conventional "Block" uniform block.
	HasUniformBlock bool
	// FailCompile and FailLink force shader compilation or program
	// linking to report failure.
	FailCompile bool
	FailLink    bool

	version    string
	vendor     string
	renderer   string
	extensions []string

	calls  []string
	counts map[string]int

	nextID map[string]uint
	freeID map[string][]uint

	errs []gl.Enum

	debugCB func(source, gltype gl.Enum, id uint, severity gl.Enum, message string)

	enabled   map[gl.Enum]bool
	bindings  map[gl.Enum]uint
	bindingsi map[gl.Enum]map[int]uint
	activeTex gl.Enum
	texBinds  map[gl.Enum]uint
	attribs   map[int]*attrib

	viewport   [4]int
	scissor    [4]int
	clearColor [4]float32
	clearDepth float32
	blendFn    [4]gl.Enum
	depthFn    gl.Enum
	depthMask  bool
	stencilFn  [3]int
	stencilOp  [3]gl.Enum
	stencilWr  uint
	cullMode   gl.Enum
	unpack     int

	uniformLocs map[uint]map[string]int
	shaderSrcs  []string
	nextSync    uintptr
	signaled    map[uintptr]bool
}

// New returns a fake reporting an OpenGL ES 3.0 context with no
// extensions and no debug output, so error reporting goes through
// GetError polling.
func New() *Functions {
	return &Functions{
		ReuseIdentifiers: true,
		HasUniformBlock:  true,
		version:          "OpenGL ES 3.0",
		vendor:           "gltest",
		renderer:         "gltest fake",
		counts:           make(map[string]int),
		nextID:           make(map[string]uint),
		freeID:           make(map[string][]uint),
		enabled:          make(map[gl.Enum]bool),
		bindings:         make(map[gl.Enum]uint),
		bindingsi:        make(map[gl.Enum]map[int]uint),
		activeTex:        gl.TEXTURE0,
		texBinds:         make(map[gl.Enum]uint),
		attribs:          make(map[int]*attrib),
		blendFn:          [4]gl.Enum{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO},
		depthFn:          gl.LESS,
		depthMask:        true,
		stencilWr:        ^uint(0),
		cullMode:         gl.BACK,
		clearDepth:       1,
		unpack:           4,
		uniformLocs:      make(map[uint]map[string]int),
		signaled:         make(map[uintptr]bool),
	}
}

// SetVersion overrides the VERSION string, e.g. "OpenGL ES 2.0" or
// "4.3 core".
func (f *Functions) SetVersion(v string) { f.version = v }

// SetExtensions overrides the advertised extension list.
func (f *Functions) SetExtensions(exts ...string) { f.extensions = exts }

// Count reports how many times the named call ran.
func (f *Functions) Count(name string) int { return f.counts[name] }

// Calls returns the full call log in order.
func (f *Functions) Calls() []string { return append([]string(nil), f.calls...) }

// queryCalls are reads with no native side effects; MutatingCalls
// excludes them.
var queryCalls = map[string]bool{
	"CheckFramebufferStatus": true,
	"GetBinding":             true,
	"GetBindingi":            true,
	"GetError":               true,
	"GetFloat":               true,
	"GetFloat4":              true,
	"GetInteger":             true,
	"GetInteger4":            true,
	"GetProgramInfoLog":      true,
	"GetProgrami":            true,
	"GetShaderInfoLog":       true,
	"GetShaderi":             true,
	"GetString":              true,
	"GetUniformBlockIndex":   true,
	"GetUniformLocation":     true,
	"GetVertexAttrib":        true,
	"GetVertexAttribBinding": true,
	"GetVertexAttribPointer": true,
	"IsEnabled":              true,
	"ClientWaitSync":         true,
}

// MutatingCalls reports how many state-changing calls ran.
func (f *Functions) MutatingCalls() int {
	n := 0
	for name, c := range f.counts {
		if !queryCalls[name] {
			n += c
		}
	}
	return n
}

// Reset clears the call log and counters without touching emulated
// state.
func (f *Functions) Reset() {
	f.calls = f.calls[:0]
	f.counts = make(map[string]int)
}

// InjectError queues a code for the next GetError poll.
func (f *Functions) InjectError(code gl.Enum) {
	f.errs = append(f.errs, code)
}

// ShaderSources returns every source string passed to ShaderSource,
// in call order.
func (f *Functions) ShaderSources() []string {
	return f.shaderSrcs
}

// EmitDebugMessage invokes the installed debug callback, if any.
func (f *Functions) EmitDebugMessage(gltype, severity gl.Enum, id uint, message string) {
	if f.debugCB != nil {
		f.debugCB(gl.DEBUG_SOURCE_API, gltype, id, severity, message)
	}
}

// SignalSyncs marks every outstanding fence signaled.
func (f *Functions) SignalSyncs() {
	for s := range f.signaled {
		f.signaled[s] = true
	}
}

func (f *Functions) record(name string) {
	f.calls = append(f.calls, name)
	f.counts[name]++
}

func (f *Functions) create(kind string) uint {
	if f.ReuseIdentifiers {
		if free := f.freeID[kind]; len(free) > 0 {
			id := free[len(free)-1]
			f.freeID[kind] = free[:len(free)-1]
			return id
		}
	}
	f.nextID[kind]++
	return f.nextID[kind]
}

func (f *Functions) destroy(kind string, id uint) {
	if id != 0 {
		f.freeID[kind] = append(f.freeID[kind], id)
	}
}

func (f *Functions) ActiveTexture(t gl.Enum) {
	f.record("ActiveTexture")
	f.activeTex = t
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader")
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.record("BindAttribLocation")
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer")
	f.bindings[bindingQuery(target)] = b.V
}

func bindingQuery(target gl.Enum) gl.Enum {
	switch target {
	case gl.ARRAY_BUFFER:
		return gl.ARRAY_BUFFER_BINDING
	case gl.ELEMENT_ARRAY_BUFFER:
		return gl.ELEMENT_ARRAY_BUFFER_BINDING
	case gl.UNIFORM_BUFFER:
		return gl.UNIFORM_BUFFER_BINDING
	default:
		return target
	}
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.record("BindBufferBase")
	q := bindingQuery(target)
	f.bindings[q] = b.V
	if f.bindingsi[q] == nil {
		f.bindingsi[q] = make(map[int]uint)
	}
	f.bindingsi[q][index] = b.V
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer")
	switch target {
	case gl.FRAMEBUFFER:
		f.bindings[gl.FRAMEBUFFER_BINDING] = fb.V
		f.bindings[gl.READ_FRAMEBUFFER_BINDING] = fb.V
	case gl.DRAW_FRAMEBUFFER:
		f.bindings[gl.FRAMEBUFFER_BINDING] = fb.V
	case gl.READ_FRAMEBUFFER:
		f.bindings[gl.READ_FRAMEBUFFER_BINDING] = fb.V
	}
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.record("BindRenderbuffer")
	f.bindings[gl.RENDERBUFFER_BINDING] = rb.V
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture")
	f.texBinds[f.activeTex] = t.V
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	f.record("BindVertexArray")
	f.bindings[gl.VERTEX_ARRAY_BINDING] = a.V
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate")
	f.blendFn = [4]gl.Enum{srcRGB, dstRGB, srcA, dstA}
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum) {
	f.record("BufferData")
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData")
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus")
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) Clear(mask gl.Enum) {
	f.record("Clear")
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor")
	f.clearColor = [4]float32{red, green, blue, alpha}
}

func (f *Functions) ClearDepthf(d float32) {
	f.record("ClearDepthf")
	f.clearDepth = d
}

func (f *Functions) ClientWaitSync(s gl.Sync, flags gl.Enum, timeoutNanos uint64) gl.Enum {
	f.record("ClientWaitSync")
	if f.signaled[s.V] {
		return gl.ALREADY_SIGNALED
	}
	if timeoutNanos > 0 {
		// A bounded wait on the fake always completes.
		f.signaled[s.V] = true
		return gl.CONDITION_SATISFIED
	}
	return gl.TIMEOUT_EXPIRED
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.record("CompileShader")
}

func (f *Functions) CreateBuffer() gl.Buffer {
	f.record("CreateBuffer")
	return gl.Buffer{V: f.create("buffer")}
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	f.record("CreateFramebuffer")
	return gl.Framebuffer{V: f.create("framebuffer")}
}

func (f *Functions) CreateProgram() gl.Program {
	f.record("CreateProgram")
	return gl.Program{V: f.create("program")}
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	f.record("CreateRenderbuffer")
	return gl.Renderbuffer{V: f.create("renderbuffer")}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	f.record("CreateShader")
	return gl.Shader{V: f.create("shader")}
}

func (f *Functions) CreateTexture() gl.Texture {
	f.record("CreateTexture")
	return gl.Texture{V: f.create("texture")}
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	f.record("CreateVertexArray")
	return gl.VertexArray{V: f.create("vertexarray")}
}

func (f *Functions) CullFace(mode gl.Enum) {
	f.record("CullFace")
	f.cullMode = mode
}

func (f *Functions) DebugMessageCallback(cb func(source, gltype gl.Enum, id uint, severity gl.Enum, message string)) {
	f.record("DebugMessageCallback")
	f.debugCB = cb
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.record("DeleteBuffer")
	f.destroy("buffer", b.V)
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.record("DeleteFramebuffer")
	f.destroy("framebuffer", fb.V)
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.record("DeleteProgram")
	f.destroy("program", p.V)
}

func (f *Functions) DeleteRenderbuffer(rb gl.Renderbuffer) {
	f.record("DeleteRenderbuffer")
	f.destroy("renderbuffer", rb.V)
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.record("DeleteShader")
	f.destroy("shader", s.V)
}

func (f *Functions) DeleteSync(s gl.Sync) {
	f.record("DeleteSync")
	delete(f.signaled, s.V)
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.record("DeleteTexture")
	f.destroy("texture", t.V)
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	f.record("DeleteVertexArray")
	f.destroy("vertexarray", a.V)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	f.record("DepthFunc")
	f.depthFn = fn
}

func (f *Functions) DepthMask(mask bool) {
	f.record("DepthMask")
	f.depthMask = mask
}

func (f *Functions) Disable(cap gl.Enum) {
	f.record("Disable")
	f.enabled[cap] = false
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	f.record("DisableVertexAttribArray")
	f.attrib(int(a)).enabled = false
}

func (f *Functions) attrib(idx int) *attrib {
	a, ok := f.attribs[idx]
	if !ok {
		a = &attrib{}
		f.attribs[idx] = a
	}
	return a
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays")
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.record("DrawArraysInstanced")
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements")
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.record("DrawElementsInstanced")
}

func (f *Functions) Enable(cap gl.Enum) {
	f.record("Enable")
	f.enabled[cap] = true
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray")
	f.attrib(int(a)).enabled = true
}

func (f *Functions) FenceSync(condition, flags gl.Enum) gl.Sync {
	f.record("FenceSync")
	f.nextSync++
	f.signaled[f.nextSync] = false
	return gl.Sync{V: f.nextSync}
}

func (f *Functions) Finish() {
	f.record("Finish")
}

func (f *Functions) Flush() {
	f.record("Flush")
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget gl.Enum, rb gl.Renderbuffer) {
	f.record("FramebufferRenderbuffer")
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D")
}

func (f *Functions) GetBinding(pname gl.Enum) gl.Object {
	f.record("GetBinding")
	if pname == gl.TEXTURE_BINDING_2D {
		return gl.Object{V: f.texBinds[f.activeTex]}
	}
	return gl.Object{V: f.bindings[pname]}
}

func (f *Functions) GetBindingi(pname gl.Enum, idx int) gl.Object {
	f.record("GetBindingi")
	return gl.Object{V: f.bindingsi[pname][idx]}
}

func (f *Functions) GetError() gl.Enum {
	f.record("GetError")
	if len(f.errs) > 0 {
		code := f.errs[0]
		f.errs = f.errs[1:]
		return code
	}
	return gl.NO_ERROR
}

func (f *Functions) GetFloat(pname gl.Enum) float32 {
	f.record("GetFloat")
	if pname == gl.DEPTH_CLEAR_VALUE {
		return f.clearDepth
	}
	return 0
}

func (f *Functions) GetFloat4(pname gl.Enum) [4]float32 {
	f.record("GetFloat4")
	if pname == gl.COLOR_CLEAR_VALUE {
		return f.clearColor
	}
	return [4]float32{}
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.record("GetInteger")
	switch pname {
	case gl.MAX_TEXTURE_SIZE:
		return 4096
	case gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return 32
	case gl.MAX_VERTEX_ATTRIBS:
		return 16
	case gl.MAX_UNIFORM_BLOCK_SIZE:
		return 16384
	case gl.ACTIVE_TEXTURE:
		return int(f.activeTex)
	case gl.BLEND_SRC_RGB:
		return int(f.blendFn[0])
	case gl.BLEND_DST_RGB:
		return int(f.blendFn[1])
	case gl.BLEND_SRC_ALPHA:
		return int(f.blendFn[2])
	case gl.BLEND_DST_ALPHA:
		return int(f.blendFn[3])
	case gl.DEPTH_FUNC:
		return int(f.depthFn)
	case gl.DEPTH_WRITEMASK:
		if f.depthMask {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.STENCIL_FUNC:
		return f.stencilFn[0]
	case gl.STENCIL_REF:
		return f.stencilFn[1]
	case gl.STENCIL_VALUE_MASK:
		return f.stencilFn[2]
	case gl.STENCIL_FAIL:
		return int(f.stencilOp[0])
	case gl.STENCIL_PASS_DEPTH_FAIL:
		return int(f.stencilOp[1])
	case gl.STENCIL_PASS_DEPTH_PASS:
		return int(f.stencilOp[2])
	case gl.STENCIL_WRITEMASK:
		return int(f.stencilWr)
	case gl.CULL_FACE_MODE:
		return int(f.cullMode)
	case gl.UNPACK_ALIGNMENT:
		return f.unpack
	default:
		return 0
	}
}

func (f *Functions) GetInteger4(pname gl.Enum) [4]int {
	f.record("GetInteger4")
	switch pname {
	case gl.VIEWPORT:
		return f.viewport
	case gl.SCISSOR_BOX:
		return f.scissor
	default:
		return [4]int{}
	}
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.record("GetProgramInfoLog")
	return "link failed"
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.record("GetProgrami")
	if pname == gl.LINK_STATUS && f.FailLink {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.record("GetShaderInfoLog")
	return "compile failed"
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.record("GetShaderi")
	if pname == gl.COMPILE_STATUS && f.FailCompile {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.record("GetString")
	switch pname {
	case gl.VERSION:
		return f.version
	case gl.VENDOR:
		return f.vendor
	case gl.RENDERER:
		return f.renderer
	case gl.EXTENSIONS:
		return strings.Join(f.extensions, " ")
	default:
		return ""
	}
}

func (f *Functions) GetUniformBlockIndex(p gl.Program, name string) uint {
	f.record("GetUniformBlockIndex")
	if f.HasUniformBlock && name == "Block" {
		return 0
	}
	return gl.INVALID_INDEX
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation")
	locs, ok := f.uniformLocs[p.V]
	if !ok {
		locs = make(map[string]int)
		f.uniformLocs[p.V] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = len(locs)
		locs[name] = loc
	}
	return gl.Uniform{V: loc}
}

func (f *Functions) GetVertexAttrib(index int, pname gl.Enum) int {
	f.record("GetVertexAttrib")
	a := f.attrib(index)
	switch pname {
	case gl.VERTEX_ATTRIB_ARRAY_ENABLED:
		if a.enabled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.VERTEX_ATTRIB_ARRAY_SIZE:
		return a.size
	case gl.VERTEX_ATTRIB_ARRAY_TYPE:
		return int(a.typ)
	case gl.VERTEX_ATTRIB_ARRAY_NORMALIZED:
		if a.normalized {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.VERTEX_ATTRIB_ARRAY_STRIDE:
		return a.stride
	default:
		return 0
	}
}

func (f *Functions) GetVertexAttribBinding(index int, pname gl.Enum) gl.Object {
	f.record("GetVertexAttribBinding")
	return gl.Object{V: f.attrib(index).buffer}
}

func (f *Functions) GetVertexAttribPointer(index int, pname gl.Enum) uintptr {
	f.record("GetVertexAttribPointer")
	return f.attrib(index).offset
}

func (f *Functions) IsEnabled(cap gl.Enum) bool {
	f.record("IsEnabled")
	return f.enabled[cap]
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.record("LinkProgram")
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei")
	if pname == gl.UNPACK_ALIGNMENT {
		f.unpack = param
	}
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("ReadPixels")
}

func (f *Functions) RenderbufferStorage(target, internalformat gl.Enum, width, height int) {
	f.record("RenderbufferStorage")
}

func (f *Functions) Scissor(x, y, width, height int32) {
	f.record("Scissor")
	f.scissor = [4]int{int(x), int(y), int(width), int(height)}
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource")
	f.shaderSrcs = append(f.shaderSrcs, src)
}

func (f *Functions) StencilFunc(fn gl.Enum, ref int, mask uint) {
	f.record("StencilFunc")
	f.stencilFn = [3]int{int(fn), ref, int(mask)}
}

func (f *Functions) StencilMask(mask uint) {
	f.record("StencilMask")
	f.stencilWr = mask
}

func (f *Functions) StencilOp(sfail, dpfail, dppass gl.Enum) {
	f.record("StencilOp")
	f.stencilOp = [3]gl.Enum{sfail, dpfail, dppass}
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum) {
	f.record("TexImage2D")
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri")
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D")
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.record("Uniform1f")
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.record("Uniform1i")
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.record("Uniform2f")
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.record("Uniform3f")
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.record("Uniform4f")
}

func (f *Functions) UniformBlockBinding(p gl.Program, uniformBlockIndex, uniformBlockBinding uint) {
	f.record("UniformBlockBinding")
}

func (f *Functions) UseProgram(p gl.Program) {
	f.record("UseProgram")
	f.bindings[gl.CURRENT_PROGRAM] = p.V
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer")
	a := f.attrib(int(dst))
	a.buffer = f.bindings[gl.ARRAY_BUFFER_BINDING]
	a.size = size
	a.typ = ty
	a.normalized = normalized
	a.stride = stride
	a.offset = uintptr(offset)
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport")
	f.viewport = [4]int{x, y, width, height}
}
