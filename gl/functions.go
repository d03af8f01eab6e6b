// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the native function-pointer table. Every call the
// tracker issues goes through it; no other path to the driver exists.
//
// Implementations are not safe for concurrent use. The tracker
// serializes access through context currency, so implementations may
// assume single-threaded calls.
type Functions interface {
	ActiveTexture(t Enum)
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindRenderbuffer(target Enum, rb Renderbuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BufferData(target Enum, size int, usage Enum)
	BufferSubData(target Enum, offset int, src []byte)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	ClientWaitSync(s Sync, flags Enum, timeoutNanos uint64) Enum
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateRenderbuffer() Renderbuffer
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	CullFace(mode Enum)
	DebugMessageCallback(cb func(source, gltype Enum, id uint, severity Enum, message string))
	DeleteBuffer(b Buffer)
	DeleteFramebuffer(fb Framebuffer)
	DeleteProgram(p Program)
	DeleteRenderbuffer(rb Renderbuffer)
	DeleteShader(s Shader)
	DeleteSync(s Sync)
	DeleteTexture(t Texture)
	DeleteVertexArray(a VertexArray)
	DepthFunc(fn Enum)
	DepthMask(mask bool)
	Disable(cap Enum)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	FenceSync(condition, flags Enum) Sync
	Finish()
	Flush()
	FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, rb Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	GetBinding(pname Enum) Object
	GetBindingi(pname Enum, idx int) Object
	GetError() Enum
	GetFloat(pname Enum) float32
	GetFloat4(pname Enum) [4]float32
	GetInteger(pname Enum) int
	GetInteger4(pname Enum) [4]int
	GetProgramInfoLog(p Program) string
	GetProgrami(p Program, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetShaderi(s Shader, pname Enum) int
	GetString(pname Enum) string
	GetUniformBlockIndex(p Program, name string) uint
	GetUniformLocation(p Program, name string) Uniform
	GetVertexAttrib(index int, pname Enum) int
	GetVertexAttribBinding(index int, pname Enum) Object
	GetVertexAttribPointer(index int, pname Enum) uintptr
	IsEnabled(cap Enum) bool
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	RenderbufferStorage(target, internalformat Enum, width, height int)
	Scissor(x, y, width, height int32)
	ShaderSource(s Shader, src string)
	StencilFunc(fn Enum, ref int, mask uint)
	StencilMask(mask uint)
	StencilOp(sfail, dpfail, dppass Enum)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte)
	Uniform1f(dst Uniform, v float32)
	Uniform1i(dst Uniform, v int)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	UniformBlockBinding(p Program, uniformBlockIndex uint, uniformBlockBinding uint)
	UseProgram(p Program)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
