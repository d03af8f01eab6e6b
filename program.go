// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"encoding/binary"
	"fmt"
	"math"

	"gioui.org/shader"
	"golang.org/x/exp/slices"

	"github.com/go-gfx/glsafe/gl"
)

// UniformValue is one typed uniform value supplied with a draw
// request. Construct values with Float, Vec2, Vec3, Vec4 or Int; the
// validator matches them against the program's introspected types.
type UniformValue struct {
	typ  shader.DataType
	size int
	f    [4]float32
	i    int32
}

func Float(v float32) UniformValue {
	return UniformValue{typ: shader.DataTypeFloat, size: 1, f: [4]float32{v}}
}

func Vec2(x, y float32) UniformValue {
	return UniformValue{typ: shader.DataTypeFloat, size: 2, f: [4]float32{x, y}}
}

func Vec3(x, y, z float32) UniformValue {
	return UniformValue{typ: shader.DataTypeFloat, size: 3, f: [4]float32{x, y, z}}
}

func Vec4(x, y, z, w float32) UniformValue {
	return UniformValue{typ: shader.DataTypeFloat, size: 4, f: [4]float32{x, y, z, w}}
}

func Int(v int32) UniformValue {
	return UniformValue{typ: shader.DataTypeInt, size: 1, i: v}
}

func (v UniformValue) matches(typ shader.DataType, size int) bool {
	return v.typ == typ && v.size == size
}

// uniformSpec is one introspected uniform, with its native location
// resolved once at program creation.
type uniformSpec struct {
	name   string
	typ    shader.DataType
	size   int
	offset int
	loc    gl.Uniform
}

// programInfo is the registry metadata for a program: the reflection
// the validator checks every draw request against.
type programInfo struct {
	inputs      []shader.InputLocation
	uniforms    []uniformSpec
	uniformSize int
	defaults    map[string]UniformValue

	// Uniform block batch upload state. When the context supports
	// uniform buffers and the program declares the conventional
	// "Block" uniform block, all uniforms upload as one buffer
	// update; otherwise each uploads through its scalar call.
	ubo     gl.Buffer
	uboData []byte
}

func (p *programInfo) batched() bool {
	return p.ubo.Valid()
}

// Sources is one shader stage: its source text per GLSL dialect plus
// the reflection metadata produced by the external shader tool chain.
// The dialect matching the context's capability table is selected at
// program creation; dialects the stage does not provide are left
// empty.
type Sources struct {
	Name      string
	GLSL100ES string
	GLSL300ES string
	GLSL130   string
	GLSL150   string
	Uniforms  shader.UniformsReflection
	Inputs    []shader.InputLocation
	Textures  []shader.TextureBinding
}

// NewProgram compiles and links a program from shader sources and
// records their reflection for draw validation. Source text is opaque
// here; only the reflection is interpreted.
func (c *Context) NewProgram(vert, frag Sources) (Program, error) {
	if err := c.acquire(); err != nil {
		return Program{}, err
	}
	defer c.release()
	if err := c.maybeFlush(); err != nil {
		return Program{}, err
	}
	maxLoc := -1
	for _, inp := range vert.Inputs {
		if inp.Location > maxLoc {
			maxLoc = inp.Location
		}
	}
	attr := make([]string, maxLoc+1)
	for _, inp := range vert.Inputs {
		attr[inp.Location] = inp.Name
	}
	vsrc, fsrc := c.selectSource(vert), c.selectSource(frag)
	if vsrc == "" || fsrc == "" {
		return Program{}, fmt.Errorf("%w: no shader source for %s", ErrCapabilityUnsupported, c.caps.String())
	}
	obj, err := gl.CreateProgram(c.funcs, vsrc, fsrc, attr)
	if err != nil {
		return Program{}, fmt.Errorf("%w: %s: %v", ErrDriverRejected, vert.Name, err)
	}
	info := &programInfo{
		inputs:      vert.Inputs,
		uniformSize: vert.Uniforms.Size + frag.Uniforms.Size,
	}
	if err := c.state.useProgram(obj); err != nil {
		c.state.deleteProgram(obj)
		return Program{}, err
	}
	// Sampler uniforms bind to their units once; units do not change
	// after linking.
	texs := make([]shader.TextureBinding, 0, len(vert.Textures)+len(frag.Textures))
	texs = append(texs, vert.Textures...)
	texs = append(texs, frag.Textures...)
	for _, tex := range texs {
		if u := c.funcs.GetUniformLocation(obj, tex.Name); u.Valid() {
			c.funcs.Uniform1i(u, tex.Binding)
		}
	}
	for _, stage := range []Sources{vert, frag} {
		for _, loc := range stage.Uniforms.Locations {
			info.uniforms = append(info.uniforms, uniformSpec{
				name:   loc.Name,
				typ:    loc.Type,
				size:   loc.Size,
				offset: loc.Offset,
			})
		}
	}
	// Uploads happen in ascending offset order; keep the reflection
	// in that order so both paths agree.
	slices.SortFunc(info.uniforms, func(a, b uniformSpec) int {
		return a.offset - b.offset
	})
	if err := c.setupUniformPath(obj, info); err != nil {
		c.state.deleteProgram(obj)
		return Program{}, err
	}
	h := c.reg.register(KindProgram, obj.V, info)
	return Program{h: h}, nil
}

func (c *Context) selectSource(src Sources) string {
	if c.caps.Version[0] >= 3 {
		switch {
		case c.caps.ES:
			return src.GLSL300ES
		case c.caps.atLeast(3, 2):
			return src.GLSL150
		default:
			return src.GLSL130
		}
	}
	return src.GLSL100ES
}

// setupUniformPath decides once per program between the uniform block
// batch path and per-scalar uploads.
func (c *Context) setupUniformPath(obj gl.Program, info *programInfo) error {
	if c.caps.Features.Has(FeatureUniformBuffers) && info.uniformSize > 0 {
		if idx := c.funcs.GetUniformBlockIndex(obj, "Block"); idx != gl.INVALID_INDEX {
			c.funcs.UniformBlockBinding(obj, idx, 0)
			ubo := c.funcs.CreateBuffer()
			if err := c.state.bindBuffer(gl.UNIFORM_BUFFER, ubo); err != nil {
				c.funcs.DeleteBuffer(ubo)
				return err
			}
			c.funcs.BufferData(gl.UNIFORM_BUFFER, info.uniformSize, gl.DYNAMIC_DRAW)
			if err := c.confirm("BufferData"); err != nil {
				c.state.deleteBuffer(ubo)
				return err
			}
			info.ubo = ubo
			info.uboData = make([]byte, info.uniformSize)
			return nil
		}
	}
	for i := range info.uniforms {
		u := &info.uniforms[i]
		loc := c.funcs.GetUniformLocation(obj, u.name)
		if !loc.Valid() {
			// Linkers drop unreferenced uniforms; treat them as
			// optional rather than failing program creation.
			logger().Debug("glsafe: uniform optimized out", "program", obj.V, "name", u.name)
		}
		u.loc = loc
	}
	return nil
}

// SetUniformDefault registers an explicit default for a program
// uniform. Draw requests may then omit the uniform; requests that
// supply it override the default for that draw.
func (c *Context) SetUniformDefault(p Program, name string, v UniformValue) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	s, err := c.reg.resolve(p.h)
	if err != nil {
		return err
	}
	info := s.meta.(*programInfo)
	for _, u := range info.uniforms {
		if u.name != name {
			continue
		}
		if !v.matches(u.typ, u.size) {
			return &IncompatibleDrawError{Binding: name, Reason: "default value type mismatch"}
		}
		if info.defaults == nil {
			info.defaults = make(map[string]UniformValue)
		}
		info.defaults[name] = v
		return nil
	}
	return &IncompatibleDrawError{Binding: name, Reason: "no such uniform"}
}

// uploadUniforms issues the minimal upload for the resolved values.
// Values arrive keyed by reflection index, in ascending offset order.
func (c *Context) uploadUniforms(obj gl.Program, info *programInfo, values []UniformValue) error {
	if info.batched() {
		data := info.uboData
		for i, u := range info.uniforms {
			v := values[i]
			off := u.offset
			if v.typ == shader.DataTypeInt {
				binary.LittleEndian.PutUint32(data[off:], uint32(v.i))
				continue
			}
			for j := 0; j < v.size; j++ {
				binary.LittleEndian.PutUint32(data[off+4*j:], math.Float32bits(v.f[j]))
			}
		}
		if err := c.state.bindBuffer(gl.UNIFORM_BUFFER, info.ubo); err != nil {
			return err
		}
		c.funcs.BufferSubData(gl.UNIFORM_BUFFER, 0, data)
		if err := c.confirm("BufferSubData"); err != nil {
			return err
		}
		return c.state.bindBufferBase(gl.UNIFORM_BUFFER, 0, info.ubo)
	}
	for i, u := range info.uniforms {
		if !u.loc.Valid() {
			continue
		}
		v := values[i]
		switch {
		case v.typ == shader.DataTypeInt && v.size == 1:
			c.funcs.Uniform1i(u.loc, int(v.i))
		case v.typ == shader.DataTypeFloat && v.size == 1:
			c.funcs.Uniform1f(u.loc, v.f[0])
		case v.typ == shader.DataTypeFloat && v.size == 2:
			c.funcs.Uniform2f(u.loc, v.f[0], v.f[1])
		case v.typ == shader.DataTypeFloat && v.size == 3:
			c.funcs.Uniform3f(u.loc, v.f[0], v.f[1], v.f[2])
		case v.typ == shader.DataTypeFloat && v.size == 4:
			c.funcs.Uniform4f(u.loc, v.f[0], v.f[1], v.f[2], v.f[3])
		default:
			return &IncompatibleDrawError{Binding: u.name, Reason: "unsupported uniform shape"}
		}
		if err := c.confirm("Uniform"); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseProgram enqueues the program for deletion, along with its
// uniform staging buffer.
func (c *Context) ReleaseProgram(p Program) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	s, err := c.reg.beginRelease(p.h)
	if err != nil {
		return err
	}
	info := s.meta.(*programInfo)
	d := pendingDelete{kind: KindProgram, index: p.h.index, id: s.id}
	if info.batched() {
		d.buf = info.ubo
	}
	c.pending = append(c.pending, d)
	return nil
}
