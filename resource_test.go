// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/go-gfx/glsafe/gltest"
)

func TestBufferUploadBounds(t *testing.T) {
	c := newTestContext(t, gltest.New())
	b, err := c.NewBuffer(BufferBindingVertices, 8)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if err := c.UploadBuffer(b, 4, make([]byte, 4)); err != nil {
		t.Fatalf("in-bounds upload: %v", err)
	}
	if err := c.UploadBuffer(b, 4, make([]byte, 8)); !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("overflowing upload: %v, want ErrDriverRejected", err)
	}
	if err := c.UploadBuffer(b, -1, make([]byte, 4)); !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("negative offset: %v, want ErrDriverRejected", err)
	}
}

func TestIndexBufferNeedsElementType(t *testing.T) {
	c := newTestContext(t, gltest.New())
	if _, err := c.NewIndexBuffer(IndexUnspecified, make([]byte, 8)); !errors.Is(err, ErrIncompatibleDraw) {
		t.Fatalf("NewIndexBuffer without type: %v, want ErrIncompatibleDraw", err)
	}
}

func TestTextureLimit(t *testing.T) {
	c := newTestContext(t, gltest.New())
	_, err := c.NewTexture(TextureFormatRGBA8, 5000, 1, FilterNearest, FilterNearest)
	if !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("oversized texture: %v, want ErrCapabilityUnsupported", err)
	}
}

func TestTextureSRGBGate(t *testing.T) {
	// The default fake reports no sRGB support.
	c := newTestContext(t, gltest.New())
	_, err := c.NewTexture(TextureFormatSRGBA, 4, 4, FilterNearest, FilterNearest)
	if !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("sRGB texture without support: %v, want ErrCapabilityUnsupported", err)
	}

	c.Destroy()
	f := gltest.New()
	f.SetVersion("3.3.0 test driver")
	c2 := newTestContext(t, f)
	if _, err := c2.NewTexture(TextureFormatSRGBA, 4, 4, FilterNearest, FilterNearest); err != nil {
		t.Fatalf("sRGB texture with support: %v", err)
	}
}

func TestTextureUploadPixels(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	tex, err := c.NewTexture(TextureFormatRGBA8, 8, 8, FilterNearest, FilterNearest)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	if err := c.UploadTexturePixels(tex, 0, 0, 4, 4, make([]byte, 4*4*4)); err != nil {
		t.Fatalf("UploadTexturePixels: %v", err)
	}
	if n := f.Count("TexSubImage2D"); n != 1 {
		t.Fatalf("TexSubImage2D: %d calls, want 1", n)
	}
	err = c.UploadTexturePixels(tex, 0, 0, 4, 4, make([]byte, 8))
	if !errors.Is(err, ErrDriverRejected) {
		t.Fatalf("short pixel upload: %v, want ErrDriverRejected", err)
	}
}

func TestUploadImage(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	tex, err := c.NewTexture(TextureFormatRGBA8, 8, 8, FilterNearest, FilterNearest)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	// A non-RGBA image is converted before upload.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	if err := c.UploadImage(tex, image.Pt(2, 2), img); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if n := f.Count("TexSubImage2D"); n != 1 {
		t.Fatalf("TexSubImage2D: %d calls, want 1", n)
	}
}

func TestVertexArrayGate(t *testing.T) {
	f := gltest.New()
	f.SetVersion("OpenGL ES 2.0")
	c := newTestContext(t, f)
	if _, err := c.NewVertexArray(); !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("NewVertexArray without support: %v, want ErrCapabilityUnsupported", err)
	}
}

func TestFenceLifecycle(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	s, err := c.Fence()
	if err != nil {
		t.Fatalf("Fence: %v", err)
	}
	done, err := c.PollSync(s)
	if err != nil {
		t.Fatalf("PollSync: %v", err)
	}
	if done {
		t.Fatal("fence signaled immediately")
	}
	f.SignalSyncs()
	if done, err = c.PollSync(s); err != nil || !done {
		t.Fatalf("PollSync after signal: %v %v, want true", done, err)
	}
	if done, err = c.WaitSync(s, time.Millisecond); err != nil || !done {
		t.Fatalf("WaitSync: %v %v, want true", done, err)
	}
	if err := c.ReleaseSync(s); err != nil {
		t.Fatalf("ReleaseSync: %v", err)
	}
	if err := c.FlushPendingDeletions(); err != nil {
		t.Fatalf("FlushPendingDeletions: %v", err)
	}
	if n := f.Count("DeleteSync"); n != 1 {
		t.Fatalf("DeleteSync: %d calls, want 1", n)
	}
	if _, err := c.PollSync(s); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("PollSync on released fence: %v, want ErrStaleHandle", err)
	}
}

func TestFenceUnsupported(t *testing.T) {
	f := gltest.New()
	f.SetVersion("OpenGL ES 2.0")
	c := newTestContext(t, f)
	if _, err := c.Fence(); !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("Fence without support: %v, want ErrCapabilityUnsupported", err)
	}
}
