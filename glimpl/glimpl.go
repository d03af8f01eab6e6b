// SPDX-License-Identifier: Unlicense OR MIT

//go:build cgo

// Package glimpl provides the native gl.Functions table backed by the
// platform OpenGL bindings. The caller owns context creation through
// the windowing layer; Load must run after the native context is
// current on the calling thread.
package glimpl

import (
	"strings"
	"unsafe"

	ogl "github.com/go-gl/gl/v4.3-core/gl"

	"github.com/go-gfx/glsafe/gl"
)

// Functions dispatches to the loaded OpenGL function pointers.
type Functions struct {
	debugCB func(source, gltype gl.Enum, id uint, severity gl.Enum, message string)
}

var _ gl.Functions = (*Functions)(nil)

// Load initializes the OpenGL function pointers from the current
// native context and returns the dispatch table.
func Load() (*Functions, error) {
	if err := ogl.Init(); err != nil {
		return nil, err
	}
	return &Functions{}, nil
}

func cstr(s string) *uint8 {
	return ogl.Str(s + "\x00")
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return ogl.Ptr(data)
}

func offPtr(offset int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(offset))
}

func (*Functions) ActiveTexture(t gl.Enum) {
	ogl.ActiveTexture(uint32(t))
}

func (*Functions) AttachShader(p gl.Program, s gl.Shader) {
	ogl.AttachShader(uint32(p.V), uint32(s.V))
}

func (*Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	ogl.BindAttribLocation(uint32(p.V), uint32(a), cstr(name))
}

func (*Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	ogl.BindBuffer(uint32(target), uint32(b.V))
}

func (*Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	ogl.BindBufferBase(uint32(target), uint32(index), uint32(b.V))
}

func (*Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	ogl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (*Functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	ogl.BindRenderbuffer(uint32(target), uint32(rb.V))
}

func (*Functions) BindTexture(target gl.Enum, t gl.Texture) {
	ogl.BindTexture(uint32(target), uint32(t.V))
}

func (*Functions) BindVertexArray(a gl.VertexArray) {
	ogl.BindVertexArray(uint32(a.V))
}

func (*Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	ogl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (*Functions) BufferData(target gl.Enum, size int, usage gl.Enum) {
	ogl.BufferData(uint32(target), size, nil, uint32(usage))
}

func (*Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	ogl.BufferSubData(uint32(target), offset, len(src), ptr(src))
}

func (*Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(ogl.CheckFramebufferStatus(uint32(target)))
}

func (*Functions) Clear(mask gl.Enum) {
	ogl.Clear(uint32(mask))
}

func (*Functions) ClearColor(red, green, blue, alpha float32) {
	ogl.ClearColor(red, green, blue, alpha)
}

func (*Functions) ClearDepthf(d float32) {
	ogl.ClearDepthf(d)
}

func (*Functions) ClientWaitSync(s gl.Sync, flags gl.Enum, timeoutNanos uint64) gl.Enum {
	return gl.Enum(ogl.ClientWaitSync(s.V, uint32(flags), timeoutNanos))
}

func (*Functions) CompileShader(s gl.Shader) {
	ogl.CompileShader(uint32(s.V))
}

func (*Functions) CreateBuffer() gl.Buffer {
	var id uint32
	ogl.GenBuffers(1, &id)
	return gl.Buffer{V: uint(id)}
}

func (*Functions) CreateFramebuffer() gl.Framebuffer {
	var id uint32
	ogl.GenFramebuffers(1, &id)
	return gl.Framebuffer{V: uint(id)}
}

func (*Functions) CreateProgram() gl.Program {
	return gl.Program{V: uint(ogl.CreateProgram())}
}

func (*Functions) CreateRenderbuffer() gl.Renderbuffer {
	var id uint32
	ogl.GenRenderbuffers(1, &id)
	return gl.Renderbuffer{V: uint(id)}
}

func (*Functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: uint(ogl.CreateShader(uint32(ty)))}
}

func (*Functions) CreateTexture() gl.Texture {
	var id uint32
	ogl.GenTextures(1, &id)
	return gl.Texture{V: uint(id)}
}

func (*Functions) CreateVertexArray() gl.VertexArray {
	var id uint32
	ogl.GenVertexArrays(1, &id)
	return gl.VertexArray{V: uint(id)}
}

func (*Functions) CullFace(mode gl.Enum) {
	ogl.CullFace(uint32(mode))
}

func (f *Functions) DebugMessageCallback(cb func(source, gltype gl.Enum, id uint, severity gl.Enum, message string)) {
	f.debugCB = cb
	if cb == nil {
		ogl.DebugMessageCallback(nil, nil)
		return
	}
	ogl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		f.debugCB(gl.Enum(source), gl.Enum(gltype), uint(id), gl.Enum(severity), message)
	}, nil)
}

func (*Functions) DeleteBuffer(b gl.Buffer) {
	id := uint32(b.V)
	ogl.DeleteBuffers(1, &id)
}

func (*Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	id := uint32(fb.V)
	ogl.DeleteFramebuffers(1, &id)
}

func (*Functions) DeleteProgram(p gl.Program) {
	ogl.DeleteProgram(uint32(p.V))
}

func (*Functions) DeleteRenderbuffer(rb gl.Renderbuffer) {
	id := uint32(rb.V)
	ogl.DeleteRenderbuffers(1, &id)
}

func (*Functions) DeleteShader(s gl.Shader) {
	ogl.DeleteShader(uint32(s.V))
}

func (*Functions) DeleteSync(s gl.Sync) {
	ogl.DeleteSync(s.V)
}

func (*Functions) DeleteTexture(t gl.Texture) {
	id := uint32(t.V)
	ogl.DeleteTextures(1, &id)
}

func (*Functions) DeleteVertexArray(a gl.VertexArray) {
	id := uint32(a.V)
	ogl.DeleteVertexArrays(1, &id)
}

func (*Functions) DepthFunc(fn gl.Enum) {
	ogl.DepthFunc(uint32(fn))
}

func (*Functions) DepthMask(mask bool) {
	ogl.DepthMask(mask)
}

func (*Functions) Disable(cap gl.Enum) {
	ogl.Disable(uint32(cap))
}

func (*Functions) DisableVertexAttribArray(a gl.Attrib) {
	ogl.DisableVertexAttribArray(uint32(a))
}

func (*Functions) DrawArrays(mode gl.Enum, first, count int) {
	ogl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (*Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	ogl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (*Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	ogl.DrawElements(uint32(mode), int32(count), uint32(ty), offPtr(offset))
}

func (*Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	ogl.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), offPtr(offset), int32(instances))
}

func (*Functions) Enable(cap gl.Enum) {
	ogl.Enable(uint32(cap))
}

func (*Functions) EnableVertexAttribArray(a gl.Attrib) {
	ogl.EnableVertexAttribArray(uint32(a))
}

func (*Functions) FenceSync(condition, flags gl.Enum) gl.Sync {
	return gl.Sync{V: ogl.FenceSync(uint32(condition), uint32(flags))}
}

func (*Functions) Finish() {
	ogl.Finish()
}

func (*Functions) Flush() {
	ogl.Flush()
}

func (*Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget gl.Enum, rb gl.Renderbuffer) {
	ogl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbuffertarget), uint32(rb.V))
}

func (*Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	ogl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) GetBinding(pname gl.Enum) gl.Object {
	return gl.Object{V: uint(f.GetInteger(pname))}
}

func (*Functions) GetBindingi(pname gl.Enum, idx int) gl.Object {
	var v int32
	ogl.GetIntegeri_v(uint32(pname), uint32(idx), &v)
	return gl.Object{V: uint(v)}
}

func (*Functions) GetError() gl.Enum {
	return gl.Enum(ogl.GetError())
}

func (*Functions) GetFloat(pname gl.Enum) float32 {
	var v float32
	ogl.GetFloatv(uint32(pname), &v)
	return v
}

func (*Functions) GetFloat4(pname gl.Enum) [4]float32 {
	var v [4]float32
	ogl.GetFloatv(uint32(pname), &v[0])
	return v
}

func (*Functions) GetInteger(pname gl.Enum) int {
	var v int32
	ogl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (*Functions) GetInteger4(pname gl.Enum) [4]int {
	var v [4]int32
	ogl.GetIntegerv(uint32(pname), &v[0])
	return [4]int{int(v[0]), int(v[1]), int(v[2]), int(v[3])}
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	n := f.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := strings.Repeat("\x00", n+1)
	ogl.GetProgramInfoLog(uint32(p.V), int32(n), nil, ogl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (*Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	ogl.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	n := f.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := strings.Repeat("\x00", n+1)
	ogl.GetShaderInfoLog(uint32(s.V), int32(n), nil, ogl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (*Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	ogl.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetString(pname gl.Enum) string {
	// Core profiles removed the aggregate extension string; rebuild
	// it from the indexed query.
	if pname == gl.EXTENSIONS {
		n := f.GetInteger(gl.NUM_EXTENSIONS)
		exts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			exts = append(exts, ogl.GoStr(ogl.GetStringi(uint32(gl.EXTENSIONS), uint32(i))))
		}
		return strings.Join(exts, " ")
	}
	return ogl.GoStr(ogl.GetString(uint32(pname)))
}

func (*Functions) GetUniformBlockIndex(p gl.Program, name string) uint {
	return uint(ogl.GetUniformBlockIndex(uint32(p.V), cstr(name)))
}

func (*Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{V: int(ogl.GetUniformLocation(uint32(p.V), cstr(name)))}
}

func (*Functions) GetVertexAttrib(index int, pname gl.Enum) int {
	var v int32
	ogl.GetVertexAttribiv(uint32(index), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetVertexAttribBinding(index int, pname gl.Enum) gl.Object {
	return gl.Object{V: uint(f.GetVertexAttrib(index, pname))}
}

func (*Functions) GetVertexAttribPointer(index int, pname gl.Enum) uintptr {
	var p unsafe.Pointer
	ogl.GetVertexAttribPointerv(uint32(index), uint32(pname), &p)
	return uintptr(p)
}

func (*Functions) IsEnabled(cap gl.Enum) bool {
	return ogl.IsEnabled(uint32(cap))
}

func (*Functions) LinkProgram(p gl.Program) {
	ogl.LinkProgram(uint32(p.V))
}

func (*Functions) PixelStorei(pname gl.Enum, param int) {
	ogl.PixelStorei(uint32(pname), int32(param))
}

func (*Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	ogl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (*Functions) RenderbufferStorage(target, internalformat gl.Enum, width, height int) {
	ogl.RenderbufferStorage(uint32(target), uint32(internalformat), int32(width), int32(height))
}

func (*Functions) Scissor(x, y, width, height int32) {
	ogl.Scissor(x, y, width, height)
}

func (*Functions) ShaderSource(s gl.Shader, src string) {
	csrc, free := ogl.Strs(src + "\x00")
	defer free()
	ogl.ShaderSource(uint32(s.V), 1, csrc, nil)
}

func (*Functions) StencilFunc(fn gl.Enum, ref int, mask uint) {
	ogl.StencilFunc(uint32(fn), int32(ref), uint32(mask))
}

func (*Functions) StencilMask(mask uint) {
	ogl.StencilMask(uint32(mask))
}

func (*Functions) StencilOp(sfail, dpfail, dppass gl.Enum) {
	ogl.StencilOp(uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (*Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum) {
	ogl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), nil)
}

func (*Functions) TexParameteri(target, pname gl.Enum, param int) {
	ogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (*Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	ogl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (*Functions) Uniform1f(dst gl.Uniform, v float32) {
	ogl.Uniform1f(int32(dst.V), v)
}

func (*Functions) Uniform1i(dst gl.Uniform, v int) {
	ogl.Uniform1i(int32(dst.V), int32(v))
}

func (*Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	ogl.Uniform2f(int32(dst.V), v0, v1)
}

func (*Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	ogl.Uniform3f(int32(dst.V), v0, v1, v2)
}

func (*Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	ogl.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (*Functions) UniformBlockBinding(p gl.Program, uniformBlockIndex, uniformBlockBinding uint) {
	ogl.UniformBlockBinding(uint32(p.V), uint32(uniformBlockIndex), uint32(uniformBlockBinding))
}

func (*Functions) UseProgram(p gl.Program) {
	ogl.UseProgram(uint32(p.V))
}

func (*Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	ogl.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), offPtr(offset))
}

func (*Functions) Viewport(x, y, width, height int) {
	ogl.Viewport(int32(x), int32(y), int32(width), int32(height))
}
