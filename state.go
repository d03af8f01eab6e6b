// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"github.com/go-gfx/glsafe/gl"
)

// cached is one state cache entry: the last value confirmed to be the
// true native state, or unknown after invalidation.
type cached[T comparable] struct {
	v     T
	known bool
}

func (c *cached[T]) equal(v T) bool {
	return c.known && c.v == v
}

func (c *cached[T]) store(v T) {
	c.v = v
	c.known = true
}

func (c *cached[T]) reset() {
	var zero T
	c.v = zero
	c.known = false
}

type blendState struct {
	srcRGB, dstRGB gl.Enum
	srcA, dstA     gl.Enum
}

type stencilState struct {
	fn   gl.Enum
	ref  int
	mask uint
}

type stencilOpState struct {
	sfail, dpfail, dppass gl.Enum
}

type attribPointer struct {
	obj        gl.Buffer
	size       int
	typ        gl.Enum
	normalized bool
	stride     int
	offset     int
}

type attribState struct {
	enabled cached[bool]
	ptr     cached[attribPointer]
}

// stateCache mirrors every trackable piece of mutable global state the
// native API exposes. Setters compare against the cached value and
// collapse to nothing when the value is already current; otherwise
// they issue exactly one native call and record the value only after
// the call is confirmed, so the cache never silently diverges from the
// true native state, not even when the driver rejects a call.
type stateCache struct {
	f gl.Functions
	// confirm reports any native error signaled for the named call.
	confirm func(call string) error

	prog      cached[gl.Program]
	arrayBuf  cached[gl.Buffer]
	elemBuf   cached[gl.Buffer]
	uniBuf    cached[gl.Buffer]
	uniBufs   [2]cached[gl.Buffer]
	vertArray cached[gl.VertexArray]
	drawFBO   cached[gl.Framebuffer]
	readFBO   cached[gl.Framebuffer]
	renderBuf cached[gl.Renderbuffer]

	activeTex cached[gl.Enum]
	texBinds  []cached[gl.Texture]

	vertAttribs []attribState

	blendOn   cached[bool]
	blendFn   cached[blendState]
	depthOn   cached[bool]
	depthMask cached[bool]
	depthFn   cached[gl.Enum]
	stencilOn cached[bool]
	stencilFn cached[stencilState]
	stencilOp cached[stencilOpState]
	stencilWr cached[uint]
	scissorOn cached[bool]
	scissor   cached[[4]int]
	cullOn    cached[bool]
	cullMode  cached[gl.Enum]
	srgbOn    cached[bool]

	viewport   cached[[4]int]
	clearColor cached[[4]float32]
	clearDepth cached[float32]
	unpack     cached[int]
}

func newStateCache(f gl.Functions, confirm func(string) error, texUnits, vertAttribs int) *stateCache {
	s := &stateCache{
		f:           f,
		confirm:     confirm,
		texBinds:    make([]cached[gl.Texture], texUnits),
		vertAttribs: make([]attribState, vertAttribs),
	}
	s.seedDefaults()
	return s
}

// seedDefaults records the documented initial state of a fresh
// context. Viewport and scissor box are left unknown: their initial
// values depend on the surface the platform attached.
func (s *stateCache) seedDefaults() {
	s.prog.store(gl.Program{})
	s.arrayBuf.store(gl.Buffer{})
	s.elemBuf.store(gl.Buffer{})
	s.uniBuf.store(gl.Buffer{})
	for i := range s.uniBufs {
		s.uniBufs[i].store(gl.Buffer{})
	}
	s.vertArray.store(gl.VertexArray{})
	s.drawFBO.store(gl.Framebuffer{})
	s.readFBO.store(gl.Framebuffer{})
	s.renderBuf.store(gl.Renderbuffer{})
	s.activeTex.store(gl.TEXTURE0)
	for i := range s.texBinds {
		s.texBinds[i].store(gl.Texture{})
	}
	for i := range s.vertAttribs {
		s.vertAttribs[i].enabled.store(false)
		s.vertAttribs[i].ptr.reset()
	}
	s.blendOn.store(false)
	s.blendFn.store(blendState{srcRGB: gl.ONE, dstRGB: gl.ZERO, srcA: gl.ONE, dstA: gl.ZERO})
	s.depthOn.store(false)
	s.depthMask.store(true)
	s.depthFn.store(gl.LESS)
	s.stencilOn.store(false)
	s.stencilFn.store(stencilState{fn: gl.ALWAYS, ref: 0, mask: ^uint(0)})
	s.stencilOp.store(stencilOpState{sfail: gl.KEEP, dpfail: gl.KEEP, dppass: gl.KEEP})
	s.stencilWr.store(^uint(0))
	s.scissorOn.store(false)
	s.scissor.reset()
	s.cullOn.store(false)
	s.cullMode.store(gl.BACK)
	s.srgbOn.store(false)
	s.viewport.reset()
	s.clearColor.store([4]float32{0, 0, 0, 0})
	s.clearDepth.store(1)
	s.unpack.store(4)
}

// invalidateAll forgets every entry. The next set of each setting
// issues a native call regardless of the requested value. Used after
// code outside the tracker touched the context.
func (s *stateCache) invalidateAll() {
	s.prog.reset()
	s.arrayBuf.reset()
	s.elemBuf.reset()
	s.uniBuf.reset()
	for i := range s.uniBufs {
		s.uniBufs[i].reset()
	}
	s.vertArray.reset()
	s.drawFBO.reset()
	s.readFBO.reset()
	s.renderBuf.reset()
	s.activeTex.reset()
	for i := range s.texBinds {
		s.texBinds[i].reset()
	}
	for i := range s.vertAttribs {
		s.vertAttribs[i].enabled.reset()
		s.vertAttribs[i].ptr.reset()
	}
	s.blendOn.reset()
	s.blendFn.reset()
	s.depthOn.reset()
	s.depthMask.reset()
	s.depthFn.reset()
	s.stencilOn.reset()
	s.stencilFn.reset()
	s.stencilOp.reset()
	s.stencilWr.reset()
	s.scissorOn.reset()
	s.scissor.reset()
	s.cullOn.reset()
	s.cullMode.reset()
	s.srgbOn.reset()
	s.viewport.reset()
	s.clearColor.reset()
	s.clearDepth.reset()
	s.unpack.reset()
}

// queryAll reads the true native state back into the cache. The
// cheaper alternative to invalidateAll when the tracker must cooperate
// with foreign code repeatedly.
func (s *stateCache) queryAll() {
	f := s.f
	s.prog.store(gl.Program(f.GetBinding(gl.CURRENT_PROGRAM)))
	s.arrayBuf.store(gl.Buffer(f.GetBinding(gl.ARRAY_BUFFER_BINDING)))
	s.elemBuf.store(gl.Buffer(f.GetBinding(gl.ELEMENT_ARRAY_BUFFER_BINDING)))
	s.uniBuf.store(gl.Buffer(f.GetBinding(gl.UNIFORM_BUFFER_BINDING)))
	for i := range s.uniBufs {
		s.uniBufs[i].store(gl.Buffer(f.GetBindingi(gl.UNIFORM_BUFFER_BINDING, i)))
	}
	s.vertArray.store(gl.VertexArray(f.GetBinding(gl.VERTEX_ARRAY_BINDING)))
	s.drawFBO.store(gl.Framebuffer(f.GetBinding(gl.FRAMEBUFFER_BINDING)))
	s.readFBO.store(gl.Framebuffer(f.GetBinding(gl.READ_FRAMEBUFFER_BINDING)))
	s.renderBuf.store(gl.Renderbuffer(f.GetBinding(gl.RENDERBUFFER_BINDING)))
	active := gl.Enum(f.GetInteger(gl.ACTIVE_TEXTURE))
	for i := range s.texBinds {
		f.ActiveTexture(gl.TEXTURE0 + gl.Enum(i))
		s.texBinds[i].store(gl.Texture(f.GetBinding(gl.TEXTURE_BINDING_2D)))
	}
	f.ActiveTexture(active)
	s.activeTex.store(active)
	for i := range s.vertAttribs {
		a := &s.vertAttribs[i]
		a.enabled.store(f.GetVertexAttrib(i, gl.VERTEX_ATTRIB_ARRAY_ENABLED) != gl.FALSE)
		a.ptr.store(attribPointer{
			obj:        gl.Buffer(f.GetVertexAttribBinding(i, gl.VERTEX_ATTRIB_ARRAY_BUFFER_BINDING)),
			size:       f.GetVertexAttrib(i, gl.VERTEX_ATTRIB_ARRAY_SIZE),
			typ:        gl.Enum(f.GetVertexAttrib(i, gl.VERTEX_ATTRIB_ARRAY_TYPE)),
			normalized: f.GetVertexAttrib(i, gl.VERTEX_ATTRIB_ARRAY_NORMALIZED) != gl.FALSE,
			stride:     f.GetVertexAttrib(i, gl.VERTEX_ATTRIB_ARRAY_STRIDE),
			offset:     int(f.GetVertexAttribPointer(i, gl.VERTEX_ATTRIB_ARRAY_POINTER)),
		})
	}
	s.blendOn.store(f.IsEnabled(gl.BLEND))
	s.blendFn.store(blendState{
		srcRGB: gl.Enum(f.GetInteger(gl.BLEND_SRC_RGB)),
		dstRGB: gl.Enum(f.GetInteger(gl.BLEND_DST_RGB)),
		srcA:   gl.Enum(f.GetInteger(gl.BLEND_SRC_ALPHA)),
		dstA:   gl.Enum(f.GetInteger(gl.BLEND_DST_ALPHA)),
	})
	s.depthOn.store(f.IsEnabled(gl.DEPTH_TEST))
	s.depthMask.store(f.GetInteger(gl.DEPTH_WRITEMASK) != gl.FALSE)
	s.depthFn.store(gl.Enum(f.GetInteger(gl.DEPTH_FUNC)))
	s.stencilOn.store(f.IsEnabled(gl.STENCIL_TEST))
	s.stencilFn.store(stencilState{
		fn:   gl.Enum(f.GetInteger(gl.STENCIL_FUNC)),
		ref:  f.GetInteger(gl.STENCIL_REF),
		mask: uint(f.GetInteger(gl.STENCIL_VALUE_MASK)),
	})
	s.stencilOp.store(stencilOpState{
		sfail:  gl.Enum(f.GetInteger(gl.STENCIL_FAIL)),
		dpfail: gl.Enum(f.GetInteger(gl.STENCIL_PASS_DEPTH_FAIL)),
		dppass: gl.Enum(f.GetInteger(gl.STENCIL_PASS_DEPTH_PASS)),
	})
	s.stencilWr.store(uint(f.GetInteger(gl.STENCIL_WRITEMASK)))
	s.scissorOn.store(f.IsEnabled(gl.SCISSOR_TEST))
	s.scissor.store(f.GetInteger4(gl.SCISSOR_BOX))
	s.cullOn.store(f.IsEnabled(gl.CULL_FACE))
	s.cullMode.store(gl.Enum(f.GetInteger(gl.CULL_FACE_MODE)))
	s.viewport.store(f.GetInteger4(gl.VIEWPORT))
	s.clearColor.store(f.GetFloat4(gl.COLOR_CLEAR_VALUE))
	s.clearDepth.store(f.GetFloat(gl.DEPTH_CLEAR_VALUE))
	s.unpack.store(f.GetInteger(gl.UNPACK_ALIGNMENT))
}

func (s *stateCache) useProgram(p gl.Program) error {
	if s.prog.equal(p) {
		return nil
	}
	s.f.UseProgram(p)
	if err := s.confirm("UseProgram"); err != nil {
		return err
	}
	s.prog.store(p)
	return nil
}

func (s *stateCache) bindBuffer(target gl.Enum, buf gl.Buffer) error {
	var entry *cached[gl.Buffer]
	switch target {
	case gl.ARRAY_BUFFER:
		entry = &s.arrayBuf
	case gl.ELEMENT_ARRAY_BUFFER:
		entry = &s.elemBuf
	case gl.UNIFORM_BUFFER:
		entry = &s.uniBuf
	default:
		panic("unknown buffer target")
	}
	if entry.equal(buf) {
		return nil
	}
	s.f.BindBuffer(target, buf)
	if err := s.confirm("BindBuffer"); err != nil {
		return err
	}
	entry.store(buf)
	return nil
}

func (s *stateCache) bindBufferBase(target gl.Enum, idx int, buf gl.Buffer) error {
	if target != gl.UNIFORM_BUFFER {
		panic("unknown buffer target")
	}
	if s.uniBuf.equal(buf) && s.uniBufs[idx].equal(buf) {
		return nil
	}
	s.f.BindBufferBase(target, idx, buf)
	if err := s.confirm("BindBufferBase"); err != nil {
		return err
	}
	s.uniBuf.store(buf)
	s.uniBufs[idx].store(buf)
	return nil
}

func (s *stateCache) bindFramebuffer(target gl.Enum, fbo gl.Framebuffer) error {
	switch target {
	case gl.FRAMEBUFFER:
		if s.drawFBO.equal(fbo) && s.readFBO.equal(fbo) {
			return nil
		}
	case gl.DRAW_FRAMEBUFFER:
		if s.drawFBO.equal(fbo) {
			return nil
		}
	case gl.READ_FRAMEBUFFER:
		if s.readFBO.equal(fbo) {
			return nil
		}
	default:
		panic("unknown framebuffer target")
	}
	s.f.BindFramebuffer(target, fbo)
	if err := s.confirm("BindFramebuffer"); err != nil {
		return err
	}
	switch target {
	case gl.FRAMEBUFFER:
		s.drawFBO.store(fbo)
		s.readFBO.store(fbo)
	case gl.DRAW_FRAMEBUFFER:
		s.drawFBO.store(fbo)
	case gl.READ_FRAMEBUFFER:
		s.readFBO.store(fbo)
	}
	return nil
}

func (s *stateCache) bindRenderbuffer(rb gl.Renderbuffer) error {
	if s.renderBuf.equal(rb) {
		return nil
	}
	s.f.BindRenderbuffer(gl.RENDERBUFFER, rb)
	if err := s.confirm("BindRenderbuffer"); err != nil {
		return err
	}
	s.renderBuf.store(rb)
	return nil
}

func (s *stateCache) bindVertexArray(a gl.VertexArray) error {
	if s.vertArray.equal(a) {
		return nil
	}
	s.f.BindVertexArray(a)
	if err := s.confirm("BindVertexArray"); err != nil {
		return err
	}
	s.vertArray.store(a)
	return nil
}

func (s *stateCache) setActiveTexture(unit gl.Enum) error {
	if s.activeTex.equal(unit) {
		return nil
	}
	s.f.ActiveTexture(unit)
	if err := s.confirm("ActiveTexture"); err != nil {
		return err
	}
	s.activeTex.store(unit)
	return nil
}

func (s *stateCache) bindTexture(unit int, t gl.Texture) error {
	if err := s.setActiveTexture(gl.TEXTURE0 + gl.Enum(unit)); err != nil {
		return err
	}
	if s.texBinds[unit].equal(t) {
		return nil
	}
	s.f.BindTexture(gl.TEXTURE_2D, t)
	if err := s.confirm("BindTexture"); err != nil {
		return err
	}
	s.texBinds[unit].store(t)
	return nil
}

func (s *stateCache) setEnabled(target gl.Enum, enable bool) error {
	var entry *cached[bool]
	switch target {
	case gl.BLEND:
		entry = &s.blendOn
	case gl.DEPTH_TEST:
		entry = &s.depthOn
	case gl.STENCIL_TEST:
		entry = &s.stencilOn
	case gl.SCISSOR_TEST:
		entry = &s.scissorOn
	case gl.CULL_FACE:
		entry = &s.cullOn
	case gl.FRAMEBUFFER_SRGB:
		entry = &s.srgbOn
	default:
		panic("unknown enable")
	}
	if entry.equal(enable) {
		return nil
	}
	call := "Enable"
	if enable {
		s.f.Enable(target)
	} else {
		call = "Disable"
		s.f.Disable(target)
	}
	if err := s.confirm(call); err != nil {
		return err
	}
	entry.store(enable)
	return nil
}

func (s *stateCache) setBlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) error {
	next := blendState{srcRGB: srcRGB, dstRGB: dstRGB, srcA: srcA, dstA: dstA}
	if s.blendFn.equal(next) {
		return nil
	}
	s.f.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
	if err := s.confirm("BlendFuncSeparate"); err != nil {
		return err
	}
	s.blendFn.store(next)
	return nil
}

func (s *stateCache) setDepthFunc(fn gl.Enum) error {
	if s.depthFn.equal(fn) {
		return nil
	}
	s.f.DepthFunc(fn)
	if err := s.confirm("DepthFunc"); err != nil {
		return err
	}
	s.depthFn.store(fn)
	return nil
}

func (s *stateCache) setDepthMask(mask bool) error {
	if s.depthMask.equal(mask) {
		return nil
	}
	s.f.DepthMask(mask)
	if err := s.confirm("DepthMask"); err != nil {
		return err
	}
	s.depthMask.store(mask)
	return nil
}

func (s *stateCache) setStencilFunc(fn gl.Enum, ref int, mask uint) error {
	next := stencilState{fn: fn, ref: ref, mask: mask}
	if s.stencilFn.equal(next) {
		return nil
	}
	s.f.StencilFunc(fn, ref, mask)
	if err := s.confirm("StencilFunc"); err != nil {
		return err
	}
	s.stencilFn.store(next)
	return nil
}

func (s *stateCache) setStencilOp(sfail, dpfail, dppass gl.Enum) error {
	next := stencilOpState{sfail: sfail, dpfail: dpfail, dppass: dppass}
	if s.stencilOp.equal(next) {
		return nil
	}
	s.f.StencilOp(sfail, dpfail, dppass)
	if err := s.confirm("StencilOp"); err != nil {
		return err
	}
	s.stencilOp.store(next)
	return nil
}

func (s *stateCache) setStencilMask(mask uint) error {
	if s.stencilWr.equal(mask) {
		return nil
	}
	s.f.StencilMask(mask)
	if err := s.confirm("StencilMask"); err != nil {
		return err
	}
	s.stencilWr.store(mask)
	return nil
}

func (s *stateCache) setCullFace(mode gl.Enum) error {
	if s.cullMode.equal(mode) {
		return nil
	}
	s.f.CullFace(mode)
	if err := s.confirm("CullFace"); err != nil {
		return err
	}
	s.cullMode.store(mode)
	return nil
}

func (s *stateCache) setViewport(x, y, width, height int) error {
	next := [4]int{x, y, width, height}
	if s.viewport.equal(next) {
		return nil
	}
	s.f.Viewport(x, y, width, height)
	if err := s.confirm("Viewport"); err != nil {
		return err
	}
	s.viewport.store(next)
	return nil
}

func (s *stateCache) setScissor(x, y, width, height int) error {
	next := [4]int{x, y, width, height}
	if s.scissor.equal(next) {
		return nil
	}
	s.f.Scissor(int32(x), int32(y), int32(width), int32(height))
	if err := s.confirm("Scissor"); err != nil {
		return err
	}
	s.scissor.store(next)
	return nil
}

func (s *stateCache) setClearColor(r, g, b, a float32) error {
	next := [4]float32{r, g, b, a}
	if s.clearColor.equal(next) {
		return nil
	}
	s.f.ClearColor(r, g, b, a)
	if err := s.confirm("ClearColor"); err != nil {
		return err
	}
	s.clearColor.store(next)
	return nil
}

func (s *stateCache) setClearDepth(d float32) error {
	if s.clearDepth.equal(d) {
		return nil
	}
	s.f.ClearDepthf(d)
	if err := s.confirm("ClearDepthf"); err != nil {
		return err
	}
	s.clearDepth.store(d)
	return nil
}

func (s *stateCache) setUnpackAlignment(align int) error {
	if s.unpack.equal(align) {
		return nil
	}
	s.f.PixelStorei(gl.UNPACK_ALIGNMENT, align)
	if err := s.confirm("PixelStorei"); err != nil {
		return err
	}
	s.unpack.store(align)
	return nil
}

func (s *stateCache) setVertexAttribEnabled(idx int, enabled bool) error {
	a := &s.vertAttribs[idx]
	if a.enabled.equal(enabled) {
		return nil
	}
	call := "EnableVertexAttribArray"
	if enabled {
		s.f.EnableVertexAttribArray(gl.Attrib(idx))
	} else {
		call = "DisableVertexAttribArray"
		s.f.DisableVertexAttribArray(gl.Attrib(idx))
	}
	if err := s.confirm(call); err != nil {
		return err
	}
	a.enabled.store(enabled)
	return nil
}

func (s *stateCache) vertexAttribPointer(buf gl.Buffer, idx, size int, typ gl.Enum, normalized bool, stride, offset int) error {
	next := attribPointer{obj: buf, size: size, typ: typ, normalized: normalized, stride: stride, offset: offset}
	a := &s.vertAttribs[idx]
	if a.ptr.equal(next) {
		return nil
	}
	if err := s.bindBuffer(gl.ARRAY_BUFFER, buf); err != nil {
		return err
	}
	s.f.VertexAttribPointer(gl.Attrib(idx), size, typ, normalized, stride, offset)
	if err := s.confirm("VertexAttribPointer"); err != nil {
		return err
	}
	a.ptr.store(next)
	return nil
}

// Deleting a bound object implicitly unbinds it from the current
// context, so the scrubbers below reset any entry referring to the
// deleted object.

func (s *stateCache) deleteBuffer(b gl.Buffer) error {
	s.f.DeleteBuffer(b)
	if s.arrayBuf.equal(b) {
		s.arrayBuf.store(gl.Buffer{})
	}
	if s.elemBuf.equal(b) {
		s.elemBuf.store(gl.Buffer{})
	}
	if s.uniBuf.equal(b) {
		s.uniBuf.store(gl.Buffer{})
	}
	for i := range s.uniBufs {
		if s.uniBufs[i].equal(b) {
			s.uniBufs[i].store(gl.Buffer{})
		}
	}
	for i := range s.vertAttribs {
		a := &s.vertAttribs[i]
		if a.ptr.known && a.ptr.v.obj.Equal(b) {
			a.ptr.reset()
		}
	}
	return s.confirm("DeleteBuffer")
}

func (s *stateCache) deleteTexture(t gl.Texture) error {
	s.f.DeleteTexture(t)
	for i := range s.texBinds {
		if s.texBinds[i].equal(t) {
			s.texBinds[i].store(gl.Texture{})
		}
	}
	return s.confirm("DeleteTexture")
}

func (s *stateCache) deleteProgram(p gl.Program) error {
	s.f.DeleteProgram(p)
	if s.prog.equal(p) {
		s.prog.store(gl.Program{})
	}
	return s.confirm("DeleteProgram")
}

func (s *stateCache) deleteFramebuffer(fbo gl.Framebuffer) error {
	s.f.DeleteFramebuffer(fbo)
	if s.drawFBO.equal(fbo) {
		s.drawFBO.store(gl.Framebuffer{})
	}
	if s.readFBO.equal(fbo) {
		s.readFBO.store(gl.Framebuffer{})
	}
	return s.confirm("DeleteFramebuffer")
}

func (s *stateCache) deleteRenderbuffer(rb gl.Renderbuffer) error {
	s.f.DeleteRenderbuffer(rb)
	if s.renderBuf.equal(rb) {
		s.renderBuf.store(gl.Renderbuffer{})
	}
	return s.confirm("DeleteRenderbuffer")
}

func (s *stateCache) deleteVertexArray(a gl.VertexArray) error {
	s.f.DeleteVertexArray(a)
	if s.vertArray.equal(a) {
		s.vertArray.store(gl.VertexArray{})
	}
	return s.confirm("DeleteVertexArray")
}
