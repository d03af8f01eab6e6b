// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"testing"

	"github.com/go-gfx/glsafe/gltest"
)

func TestRegistryGenerationIsolation(t *testing.T) {
	r := newRegistry(1)
	h1 := r.register(KindBuffer, 7, nil)
	if _, err := r.resolve(h1); err != nil {
		t.Fatalf("resolve live handle: %v", err)
	}
	if _, err := r.beginRelease(h1); err != nil {
		t.Fatalf("beginRelease: %v", err)
	}
	if _, err := r.resolve(h1); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("resolve pending handle: %v, want ErrStaleHandle", err)
	}
	r.finishRelease(h1.index)

	// The slot and even the native identifier get recycled; the old
	// handle must still fail.
	h2 := r.register(KindBuffer, 7, nil)
	if h2.index != h1.index {
		t.Fatalf("slot not recycled: index %d, want %d", h2.index, h1.index)
	}
	if h2.gen == h1.gen {
		t.Fatal("generation not bumped on recycle")
	}
	if _, err := r.resolve(h1); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("resolve stale handle: %v, want ErrStaleHandle", err)
	}
	if _, err := r.resolve(h2); err != nil {
		t.Fatalf("resolve recycled handle: %v", err)
	}
}

func TestRegistryForeignContext(t *testing.T) {
	r1 := newRegistry(1)
	r2 := newRegistry(2)
	h := r1.register(KindTexture, 3, nil)
	if _, err := r2.resolve(h); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("resolve foreign handle: %v, want ErrStaleHandle", err)
	}
}

func TestRegistryZeroHandle(t *testing.T) {
	r := newRegistry(1)
	if _, err := r.resolve(handle{}); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("resolve zero handle: %v, want ErrStaleHandle", err)
	}
}

func TestRegistryInvalidateAll(t *testing.T) {
	r := newRegistry(1)
	h1 := r.register(KindBuffer, 1, nil)
	h2 := r.register(KindTexture, 2, nil)
	if n := r.liveCount(); n != 2 {
		t.Fatalf("liveCount = %d, want 2", n)
	}
	r.invalidateAll()
	if n := r.liveCount(); n != 0 {
		t.Fatalf("liveCount after invalidateAll = %d, want 0", n)
	}
	for _, h := range []handle{h1, h2} {
		if _, err := r.resolve(h); !errors.Is(err, ErrStaleHandle) {
			t.Fatalf("resolve after invalidateAll: %v, want ErrStaleHandle", err)
		}
	}
}

// TestNativeIdentifierReuse exercises the scenario the generation tag
// exists for: the driver hands a new resource the identifier of a
// previously deleted one, and a stale handle must not alias it.
func TestNativeIdentifierReuse(t *testing.T) {
	f := gltest.New()
	c := newTestContext(t, f)
	b1, err := c.NewBuffer(BufferBindingVertices, 16)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if err := c.ReleaseBuffer(b1); err != nil {
		t.Fatalf("ReleaseBuffer: %v", err)
	}
	if err := c.FlushPendingDeletions(); err != nil {
		t.Fatalf("FlushPendingDeletions: %v", err)
	}
	b2, err := c.NewBuffer(BufferBindingVertices, 16)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if err := c.UploadBuffer(b2, 0, make([]byte, 8)); err != nil {
		t.Fatalf("UploadBuffer to live buffer: %v", err)
	}
	if err := c.UploadBuffer(b1, 0, make([]byte, 8)); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("UploadBuffer through stale handle: %v, want ErrStaleHandle", err)
	}
}

func TestHandleFromOtherContext(t *testing.T) {
	f1 := gltest.New()
	c1 := newTestContext(t, f1)
	b, err := c1.NewBuffer(BufferBindingVertices, 16)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if err := c1.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	c2 := newTestContext(t, gltest.New())
	if err := c2.UploadBuffer(b, 0, make([]byte, 8)); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("UploadBuffer with foreign handle: %v, want ErrStaleHandle", err)
	}
}
