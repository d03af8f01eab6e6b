// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"time"

	"github.com/go-gfx/glsafe/gl"
)

// The typed handles below are lightweight value references. They may
// be copied and shared freely; all mutation funnels through the owning
// Context, and a handle used against another Context, or after its
// release, fails with ErrStaleHandle.

// Buffer is a handle to a native data buffer.
type Buffer struct{ h handle }

// Texture is a handle to a native 2D texture.
type Texture struct{ h handle }

// Program is a handle to a linked native program.
type Program struct{ h handle }

// Framebuffer is a handle to a render target. The zero Framebuffer
// denotes the default framebuffer of the surface.
type Framebuffer struct{ h handle }

// VertexArray is a handle to a native vertex array object.
type VertexArray struct{ h handle }

// Sync is a handle to a fence inserted in the command stream. It is
// polled or waited on explicitly; nothing in this package blocks on
// it implicitly.
type Sync struct{ h handle }

func (b Buffer) Valid() bool      { return b.h.valid() }
func (t Texture) Valid() bool     { return t.h.valid() }
func (p Program) Valid() bool     { return p.h.valid() }
func (f Framebuffer) Valid() bool { return f.h.valid() }
func (a VertexArray) Valid() bool { return a.h.valid() }
func (s Sync) Valid() bool        { return s.h.valid() }

// BufferBinding is the set of bind points a buffer may be used at.
type BufferBinding uint8

const (
	BufferBindingIndices BufferBinding = 1 << iota
	BufferBindingVertices
	BufferBindingUniforms
)

func firstBufferType(typ BufferBinding) gl.Enum {
	switch {
	case typ&BufferBindingIndices != 0:
		return gl.ELEMENT_ARRAY_BUFFER
	case typ&BufferBindingVertices != 0:
		return gl.ARRAY_BUFFER
	case typ&BufferBindingUniforms != 0:
		return gl.UNIFORM_BUFFER
	default:
		panic("unsupported buffer type")
	}
}

// IndexType is the element width of an index buffer.
type IndexType uint8

const (
	IndexUnspecified IndexType = iota
	IndexUint16
	IndexUint32
)

func (t IndexType) glType() gl.Enum {
	switch t {
	case IndexUint16:
		return gl.UNSIGNED_SHORT
	case IndexUint32:
		return gl.UNSIGNED_INT
	default:
		panic("unspecified index type")
	}
}

// Size returns the element width in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		return 0
	}
}

func (t IndexType) String() string {
	switch t {
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	default:
		return "unspecified"
	}
}

type bufferMeta struct {
	binding BufferBinding
	size    int
	index   IndexType
}

// TextureFormat selects the texel layout of a texture.
type TextureFormat uint8

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatSRGBA
)

// TextureFilter selects min/mag filtering.
type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

func (f TextureFilter) glParam() int {
	switch f {
	case FilterNearest:
		return gl.NEAREST
	case FilterLinear:
		return gl.LINEAR
	default:
		panic("unsupported texture filter")
	}
}

// textureTriple holds the type settings for a TexImage2D call.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
}

type textureMeta struct {
	width, height int
	format        TextureFormat
	triple        textureTriple
}

type framebufferMeta struct {
	depthBuf gl.Renderbuffer
	hasDepth bool
}

// NewBuffer creates an uninitialized buffer of the given size.
func (c *Context) NewBuffer(binding BufferBinding, size int) (Buffer, error) {
	if err := c.acquire(); err != nil {
		return Buffer{}, err
	}
	defer c.release()
	return c.newBuffer(binding, size)
}

func (c *Context) newBuffer(binding BufferBinding, size int) (Buffer, error) {
	if err := c.maybeFlush(); err != nil {
		return Buffer{}, err
	}
	obj := c.funcs.CreateBuffer()
	target := firstBufferType(binding)
	if err := c.state.bindBuffer(target, obj); err != nil {
		c.funcs.DeleteBuffer(obj)
		return Buffer{}, err
	}
	c.funcs.BufferData(target, size, gl.DYNAMIC_DRAW)
	if err := c.confirm("BufferData"); err != nil {
		c.state.deleteBuffer(obj)
		return Buffer{}, err
	}
	h := c.reg.register(KindBuffer, obj.V, &bufferMeta{binding: binding, size: size})
	return Buffer{h: h}, nil
}

// NewBufferData creates a buffer initialized with data.
func (c *Context) NewBufferData(binding BufferBinding, data []byte) (Buffer, error) {
	if err := c.acquire(); err != nil {
		return Buffer{}, err
	}
	defer c.release()
	return c.newBufferData(binding, data)
}

func (c *Context) newBufferData(binding BufferBinding, data []byte) (Buffer, error) {
	b, err := c.newBuffer(binding, len(data))
	if err != nil {
		return Buffer{}, err
	}
	if err := c.uploadBuffer(b, 0, data); err != nil {
		c.enqueueDelete(b.h)
		return Buffer{}, err
	}
	return b, nil
}

// NewIndexBuffer creates an index buffer with a declared element
// type. Draw requests using the buffer must declare the same type.
func (c *Context) NewIndexBuffer(typ IndexType, data []byte) (Buffer, error) {
	if typ == IndexUnspecified {
		return Buffer{}, fmt.Errorf("%w: index buffer needs an element type", ErrIncompatibleDraw)
	}
	if err := c.acquire(); err != nil {
		return Buffer{}, err
	}
	defer c.release()
	b, err := c.newBufferData(BufferBindingIndices, data)
	if err != nil {
		return Buffer{}, err
	}
	s, _ := c.reg.resolve(b.h)
	s.meta.(*bufferMeta).index = typ
	return b, nil
}

// UploadBuffer replaces size bytes at offset.
func (c *Context) UploadBuffer(b Buffer, offset int, data []byte) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.uploadBuffer(b, offset, data)
}

func (c *Context) uploadBuffer(b Buffer, offset int, data []byte) error {
	s, err := c.reg.resolve(b.h)
	if err != nil {
		return err
	}
	meta := s.meta.(*bufferMeta)
	if offset < 0 || offset+len(data) > meta.size {
		return fmt.Errorf("%w: buffer upload of %d bytes at %d overflows size %d",
			ErrDriverRejected, len(data), offset, meta.size)
	}
	target := firstBufferType(meta.binding)
	if err := c.state.bindBuffer(target, gl.Buffer{V: s.id}); err != nil {
		return err
	}
	c.funcs.BufferSubData(target, offset, data)
	return c.confirm("BufferSubData")
}

// ReleaseBuffer enqueues the buffer for deletion. The handle is stale
// immediately; the native delete happens at the next flush.
func (c *Context) ReleaseBuffer(b Buffer) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.enqueueDelete(b.h)
}

// NewTexture creates an uninitialized 2D texture.
func (c *Context) NewTexture(format TextureFormat, width, height int, minFilter, magFilter TextureFilter) (Texture, error) {
	if err := c.acquire(); err != nil {
		return Texture{}, err
	}
	defer c.release()
	if err := c.maybeFlush(); err != nil {
		return Texture{}, err
	}
	if width > c.caps.MaxTextureSize || height > c.caps.MaxTextureSize {
		return Texture{}, fmt.Errorf("%w: texture %dx%d exceeds limit %d",
			ErrCapabilityUnsupported, width, height, c.caps.MaxTextureSize)
	}
	var triple textureTriple
	switch format {
	case TextureFormatRGBA8:
		triple = textureTriple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}
	case TextureFormatSRGBA:
		if !c.caps.Features.Has(FeatureSRGB) {
			return Texture{}, fmt.Errorf("%w: sRGB textures", ErrCapabilityUnsupported)
		}
		triple = textureTriple{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE}
	default:
		return Texture{}, fmt.Errorf("%w: texture format %d", ErrCapabilityUnsupported, format)
	}
	obj := c.funcs.CreateTexture()
	if err := c.state.bindTexture(0, obj); err != nil {
		c.funcs.DeleteTexture(obj)
		return Texture{}, err
	}
	c.funcs.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter.glParam())
	c.funcs.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter.glParam())
	c.funcs.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	c.funcs.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	c.funcs.TexImage2D(gl.TEXTURE_2D, 0, triple.internalFormat, width, height, triple.format, triple.typ)
	if err := c.confirm("TexImage2D"); err != nil {
		c.state.deleteTexture(obj)
		return Texture{}, err
	}
	h := c.reg.register(KindTexture, obj.V, &textureMeta{
		width: width, height: height, format: format, triple: triple,
	})
	return Texture{h: h}, nil
}

// UploadTexturePixels replaces a region with raw texels in the
// texture's format, tightly packed.
func (c *Context) UploadTexturePixels(t Texture, x, y, width, height int, pixels []byte) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.uploadTexturePixels(t, x, y, width, height, pixels)
}

func (c *Context) uploadTexturePixels(t Texture, x, y, width, height int, pixels []byte) error {
	s, err := c.reg.resolve(t.h)
	if err != nil {
		return err
	}
	meta := s.meta.(*textureMeta)
	if min := width * height * 4; len(pixels) < min {
		return fmt.Errorf("%w: texture upload needs %d bytes, got %d", ErrDriverRejected, min, len(pixels))
	}
	if err := c.state.setUnpackAlignment(4); err != nil {
		return err
	}
	if err := c.state.bindTexture(0, gl.Texture{V: s.id}); err != nil {
		return err
	}
	c.funcs.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, width, height, meta.triple.format, meta.triple.typ, pixels)
	return c.confirm("TexSubImage2D")
}

// ReleaseTexture enqueues the texture for deletion.
func (c *Context) ReleaseTexture(t Texture) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.enqueueDelete(t.h)
}

// NewFramebuffer creates a framebuffer rendering into tex, with an
// optional depth attachment of at least depthBits.
func (c *Context) NewFramebuffer(tex Texture, depthBits int) (Framebuffer, error) {
	if err := c.acquire(); err != nil {
		return Framebuffer{}, err
	}
	defer c.release()
	if err := c.maybeFlush(); err != nil {
		return Framebuffer{}, err
	}
	ts, err := c.reg.resolve(tex.h)
	if err != nil {
		return Framebuffer{}, err
	}
	tmeta := ts.meta.(*textureMeta)
	fb := c.funcs.CreateFramebuffer()
	meta := &framebufferMeta{}
	cleanup := func() {
		c.state.deleteFramebuffer(fb)
		if meta.hasDepth {
			c.state.deleteRenderbuffer(meta.depthBuf)
		}
	}
	if err := c.state.bindFramebuffer(gl.FRAMEBUFFER, fb); err != nil {
		c.funcs.DeleteFramebuffer(fb)
		return Framebuffer{}, err
	}
	c.funcs.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, gl.Texture{V: ts.id}, 0)
	if err := c.confirm("FramebufferTexture2D"); err != nil {
		cleanup()
		return Framebuffer{}, err
	}
	if depthBits > 0 {
		size := gl.Enum(gl.DEPTH_COMPONENT16)
		switch {
		case depthBits > 24:
			size = gl.DEPTH_COMPONENT32F
		case depthBits > 16:
			size = gl.DEPTH_COMPONENT24
		}
		depthBuf := c.funcs.CreateRenderbuffer()
		if err := c.state.bindRenderbuffer(depthBuf); err != nil {
			cleanup()
			return Framebuffer{}, err
		}
		c.funcs.RenderbufferStorage(gl.RENDERBUFFER, size, tmeta.width, tmeta.height)
		c.funcs.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, depthBuf)
		meta.depthBuf = depthBuf
		meta.hasDepth = true
		if err := c.confirm("FramebufferRenderbuffer"); err != nil {
			cleanup()
			return Framebuffer{}, err
		}
	}
	if st := c.funcs.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		cleanup()
		return Framebuffer{}, fmt.Errorf("%w: incomplete framebuffer, status 0x%x", ErrDriverRejected, uint(st))
	}
	h := c.reg.register(KindFramebuffer, fb.V, meta)
	return Framebuffer{h: h}, nil
}

// ReleaseFramebuffer enqueues the framebuffer for deletion. Its depth
// renderbuffer, if any, is deleted with it.
func (c *Context) ReleaseFramebuffer(f Framebuffer) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	s, err := c.reg.beginRelease(f.h)
	if err != nil {
		return err
	}
	meta := s.meta.(*framebufferMeta)
	d := pendingDelete{kind: KindFramebuffer, index: f.h.index, id: s.id}
	if meta.hasDepth {
		d.rb = meta.depthBuf
		meta.hasDepth = false
	}
	c.pending = append(c.pending, d)
	return nil
}

// NewVertexArray creates a vertex array object.
func (c *Context) NewVertexArray() (VertexArray, error) {
	if err := c.acquire(); err != nil {
		return VertexArray{}, err
	}
	defer c.release()
	if !c.caps.Features.Has(FeatureVertexArrays) {
		return VertexArray{}, fmt.Errorf("%w: vertex array objects", ErrCapabilityUnsupported)
	}
	if err := c.maybeFlush(); err != nil {
		return VertexArray{}, err
	}
	obj := c.funcs.CreateVertexArray()
	if err := c.confirm("CreateVertexArray"); err != nil {
		return VertexArray{}, err
	}
	h := c.reg.register(KindVertexArray, obj.V, nil)
	return VertexArray{h: h}, nil
}

// ReleaseVertexArray enqueues the vertex array for deletion.
func (c *Context) ReleaseVertexArray(a VertexArray) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.enqueueDelete(a.h)
}

// Fence inserts a fence in the command stream and returns its handle.
func (c *Context) Fence() (Sync, error) {
	if err := c.acquire(); err != nil {
		return Sync{}, err
	}
	defer c.release()
	if !c.caps.Features.Has(FeatureFenceSync) {
		return Sync{}, fmt.Errorf("%w: fence sync", ErrCapabilityUnsupported)
	}
	obj := c.funcs.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if !obj.Valid() {
		return Sync{}, c.confirm("FenceSync")
	}
	h := c.reg.registerSync(obj)
	return Sync{h: h}, nil
}

// PollSync reports whether the fence has signaled, without waiting.
func (c *Context) PollSync(s Sync) (bool, error) {
	return c.waitSync(s, 0, 0)
}

// WaitSync waits for the fence to signal, up to timeout. It reports
// whether the fence signaled within the bound.
func (c *Context) WaitSync(s Sync, timeout time.Duration) (bool, error) {
	return c.waitSync(s, gl.SYNC_FLUSH_COMMANDS_BIT, uint64(timeout.Nanoseconds()))
}

func (c *Context) waitSync(s Sync, flags gl.Enum, timeoutNanos uint64) (bool, error) {
	if err := c.acquire(); err != nil {
		return false, err
	}
	defer c.release()
	slot, err := c.reg.resolve(s.h)
	if err != nil {
		return false, err
	}
	switch st := c.funcs.ClientWaitSync(slot.sync, flags, timeoutNanos); st {
	case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
		return true, nil
	case gl.TIMEOUT_EXPIRED:
		return false, nil
	default:
		return false, translateError("ClientWaitSync", c.funcs.GetError())
	}
}

// ReleaseSync enqueues the fence for deletion.
func (c *Context) ReleaseSync(s Sync) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return c.enqueueDelete(s.h)
}
