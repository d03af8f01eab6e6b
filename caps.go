// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/go-gfx/glsafe/gl"
)

// Features is a bit set of optional capabilities resolved once at
// Context creation.
type Features uint

const (
	// FeatureUniformBuffers marks support for uniform buffer objects;
	// with it, uniforms belonging to one block upload as a single
	// buffer update instead of per-scalar calls.
	FeatureUniformBuffers Features = 1 << iota
	// FeatureVertexArrays marks vertex array object support.
	FeatureVertexArrays
	// FeatureInstancing marks instanced draw call support.
	FeatureInstancing
	// FeatureFenceSync marks fence sync object support.
	FeatureFenceSync
	// FeatureDebugOutput marks KHR_debug style message callbacks.
	FeatureDebugOutput
	// FeatureSRGB marks sRGB framebuffer support.
	FeatureSRGB
	// FeatureAdjacencyTopologies marks the geometry-shader dependent
	// primitive topologies (lines/triangles adjacency).
	FeatureAdjacencyTopologies
)

func (f Features) Has(feats Features) bool {
	return f&feats == feats
}

// Caps is the immutable per-Context capability table: API version,
// extension set and limits, queried from the driver exactly once.
type Caps struct {
	Version  [2]int
	ES       bool
	Vendor   string
	Renderer string

	Features Features

	MaxTextureSize      int
	MaxTextureUnits     int
	MaxVertexAttribs    int
	MaxUniformBlockSize int

	exts []string
}

// HasExtension reports whether the driver advertised the extension.
func (c *Caps) HasExtension(ext string) bool {
	_, ok := slices.BinarySearch(c.exts, ext)
	return ok
}

// Extensions returns the sorted extension list.
func (c *Caps) Extensions() []string {
	return slices.Clone(c.exts)
}

func (c *Caps) String() string {
	api := "OpenGL"
	if c.ES {
		api = "OpenGL ES"
	}
	return fmt.Sprintf("%s %d.%d (%s, %s)", api, c.Version[0], c.Version[1], c.Vendor, c.Renderer)
}

func (c *Caps) atLeast(major, minor int) bool {
	return c.Version[0] > major || (c.Version[0] == major && c.Version[1] >= minor)
}

// queryCaps populates the capability table from the live driver. It is
// the only place limit and extension queries happen.
func queryCaps(f gl.Functions) (Caps, error) {
	ver, es, err := gl.ParseVersion(f.GetString(gl.VERSION))
	if err != nil {
		return Caps{}, err
	}
	c := Caps{
		Version:  ver,
		ES:       es,
		Vendor:   f.GetString(gl.VENDOR),
		Renderer: f.GetString(gl.RENDERER),

		MaxTextureSize:   f.GetInteger(gl.MAX_TEXTURE_SIZE),
		MaxTextureUnits:  f.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
		MaxVertexAttribs: f.GetInteger(gl.MAX_VERTEX_ATTRIBS),
	}
	for _, e := range strings.Fields(f.GetString(gl.EXTENSIONS)) {
		c.exts = append(c.exts, e)
	}
	slices.Sort(c.exts)
	c.exts = slices.Compact(c.exts)

	gl3 := !es && c.atLeast(3, 0)
	gles3 := es && c.atLeast(3, 0)
	switch {
	case gles3, !es && c.atLeast(3, 1):
		c.Features |= FeatureUniformBuffers
	}
	if gl3 || gles3 || c.HasExtension("GL_OES_vertex_array_object") || c.HasExtension("GL_ARB_vertex_array_object") {
		c.Features |= FeatureVertexArrays
	}
	if gles3 || (!es && c.atLeast(3, 3)) || c.HasExtension("GL_ARB_instanced_arrays") {
		c.Features |= FeatureInstancing
	}
	if gles3 || (!es && c.atLeast(3, 2)) || c.HasExtension("GL_ARB_sync") {
		c.Features |= FeatureFenceSync
	}
	if (es && c.atLeast(3, 2)) || (!es && c.atLeast(4, 3)) || c.HasExtension("GL_KHR_debug") {
		c.Features |= FeatureDebugOutput
	}
	if gl3 || c.HasExtension("GL_EXT_sRGB") {
		c.Features |= FeatureSRGB
	}
	if (!es && c.atLeast(3, 2)) || c.HasExtension("GL_EXT_geometry_shader") {
		c.Features |= FeatureAdjacencyTopologies
	}
	if c.Features.Has(FeatureUniformBuffers) {
		c.MaxUniformBlockSize = f.GetInteger(gl.MAX_UNIFORM_BLOCK_SIZE)
	}
	return c, nil
}
