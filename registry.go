// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"

	"github.com/go-gfx/glsafe/gl"
)

// Kind identifies the resource type behind a handle.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBuffer
	KindTexture
	KindProgram
	KindFramebuffer
	KindVertexArray
	KindSync
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindProgram:
		return "program"
	case KindFramebuffer:
		return "framebuffer"
	case KindVertexArray:
		return "vertex array"
	case KindSync:
		return "sync"
	default:
		return "invalid"
	}
}

// handle is the front-end reference to a registry slot. It is a plain
// value; copies are cheap and freely shareable. The generation field
// distinguishes reuse of a slot across release/allocate cycles, and
// the context id pins the handle to its owning Context.
type handle struct {
	index uint32
	gen   uint32
	kind  Kind
	ctx   uint64
}

func (h handle) valid() bool {
	return h.kind != KindInvalid
}

// slot is one registry entry. The native identifier values the driver
// hands out are recycled after deletion, so a slot's generation is the
// only trustworthy identity for front-end references.
type slot struct {
	id      uint
	sync    gl.Sync
	kind    Kind
	gen     uint32
	live    bool
	pending bool
	meta    any
}

// registry maps generation-tagged handles to native identifiers. It is
// exclusively owned by one Context and inherits its affinity rules; it
// does no locking of its own.
type registry struct {
	ctxID uint64
	slots []slot
	free  []uint32
}

func newRegistry(ctxID uint64) *registry {
	return &registry{ctxID: ctxID}
}

func (r *registry) register(kind Kind, id uint, meta any) handle {
	idx := r.alloc()
	s := &r.slots[idx]
	s.id = id
	s.kind = kind
	s.live = true
	s.pending = false
	s.meta = meta
	return handle{index: idx, gen: s.gen, kind: kind, ctx: r.ctxID}
}

func (r *registry) registerSync(sync gl.Sync) handle {
	idx := r.alloc()
	s := &r.slots[idx]
	s.sync = sync
	s.kind = KindSync
	s.live = true
	s.pending = false
	return handle{index: idx, gen: s.gen, kind: KindSync, ctx: r.ctxID}
}

func (r *registry) alloc() uint32 {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		return idx
	}
	r.slots = append(r.slots, slot{})
	return uint32(len(r.slots) - 1)
}

// resolve returns the slot for h, or ErrStaleHandle when the handle no
// longer refers to a live resource: released, generation mismatch
// after slot reuse, kind mismatch, or a foreign owning Context.
func (r *registry) resolve(h handle) (*slot, error) {
	if !h.valid() {
		return nil, fmt.Errorf("%w: zero handle", ErrStaleHandle)
	}
	if h.ctx != r.ctxID {
		return nil, fmt.Errorf("%w: %s handle from foreign context", ErrStaleHandle, h.kind)
	}
	if int(h.index) >= len(r.slots) {
		return nil, fmt.Errorf("%w: %s handle out of range", ErrStaleHandle, h.kind)
	}
	s := &r.slots[h.index]
	if !s.live || s.pending || s.gen != h.gen || s.kind != h.kind {
		return nil, fmt.Errorf("%w: %s released", ErrStaleHandle, h.kind)
	}
	return s, nil
}

// beginRelease marks the slot pending deletion. Resolves racing with
// the release fail from this point on; the native delete is issued
// later, when the owning Context flushes its deletion queue.
func (r *registry) beginRelease(h handle) (*slot, error) {
	s, err := r.resolve(h)
	if err != nil {
		return nil, err
	}
	s.pending = true
	return s, nil
}

// finishRelease retires the slot after its native deletion was issued.
// The generation bump invalidates any handle still referring to the
// slot, even if the driver immediately recycles the native identifier
// for a new resource.
func (r *registry) finishRelease(index uint32) {
	s := &r.slots[index]
	s.gen++
	s.live = false
	s.pending = false
	s.id = 0
	s.sync = gl.Sync{}
	s.meta = nil
	r.free = append(r.free, index)
}

// invalidateAll retires every live slot. Used at Context teardown,
// after which all outstanding handles fail to resolve.
func (r *registry) invalidateAll() {
	for i := range r.slots {
		s := &r.slots[i]
		if s.live || s.pending {
			r.finishRelease(uint32(i))
		}
	}
}

// liveCount reports the number of resolvable slots.
func (r *registry) liveCount() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].live && !r.slots[i].pending {
			n++
		}
	}
	return n
}
