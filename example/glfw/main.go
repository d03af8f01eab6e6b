// SPDX-License-Identifier: Unlicense OR MIT

//go:build cgo

// Command glfw renders a spinning triangle through a tracked context
// in a GLFW window.
package main

import (
	"encoding/binary"
	"image"
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"

	"gioui.org/shader"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-gfx/glsafe"
	"github.com/go-gfx/glsafe/glimpl"
)

const vertSrc = `#version 150
in vec2 pos;
uniform float angle;
void main() {
	mat2 rot = mat2(cos(angle), -sin(angle), sin(angle), cos(angle));
	gl_Position = vec4(rot * pos, 0.0, 1.0);
}
`

const fragSrc = `#version 150
uniform vec4 tint;
out vec4 color;
void main() {
	color = tint;
}
`

func triangleVert() glsafe.Sources {
	return glsafe.Sources{
		Name:    "triangle.vert",
		GLSL150: vertSrc,
		Inputs: []shader.InputLocation{
			{Name: "pos", Location: 0, Type: shader.DataTypeFloat, Size: 2},
		},
		Uniforms: shader.UniformsReflection{
			Locations: []shader.UniformLocation{
				{Name: "angle", Type: shader.DataTypeFloat, Size: 1, Offset: 0},
			},
			Size: 4,
		},
	}
}

func triangleFrag() glsafe.Sources {
	return glsafe.Sources{
		Name:    "triangle.frag",
		GLSL150: fragSrc,
		Uniforms: shader.UniformsReflection{
			Locations: []shader.UniformLocation{
				{Name: "tint", Type: shader.DataTypeFloat, Size: 4, Offset: 4},
			},
			Size: 16,
		},
	}
}

func f32Bytes(values ...float32) []byte {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

func main() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	glsafe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(800, 600, "glsafe triangle", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	window.MakeContextCurrent()

	funcs, err := glimpl.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx, err := glsafe.New(funcs)
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Destroy()
	log.Printf("context: %s", ctx.Caps().String())

	verts, err := ctx.NewBufferData(glsafe.BufferBindingVertices, f32Bytes(
		0, 0.6,
		-0.6, -0.4,
		0.6, -0.4,
	))
	if err != nil {
		log.Fatal(err)
	}
	prog, err := ctx.NewProgram(triangleVert(), triangleFrag())
	if err != nil {
		log.Fatal(err)
	}
	if err := ctx.SetUniformDefault(prog, "tint", glsafe.Vec4(0.9, 0.4, 0.1, 1)); err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()
		width, height := window.GetFramebufferSize()
		if err := ctx.Clear(glsafe.Framebuffer{}, 0.1, 0.1, 0.12, 1); err != nil {
			log.Fatal(err)
		}
		err := ctx.Draw(glsafe.DrawRequest{
			Program: prog,
			Vertices: glsafe.VertexSource{
				Buffer: verts,
				Stride: 8,
				Attribs: []glsafe.VertexAttrib{
					{Name: "pos", Type: shader.DataTypeFloat, Size: 2, Offset: 0},
				},
			},
			Uniforms: map[string]glsafe.UniformValue{
				"angle": glsafe.Float(float32(time.Since(start).Seconds())),
			},
			Viewport: image.Rect(0, 0, width, height),
			Blend: glsafe.BlendDesc{
				Enable:    true,
				SrcFactor: glsafe.BlendFactorSrcAlpha,
				DstFactor: glsafe.BlendFactorOneMinusSrcAlpha,
			},
			Topology: glsafe.TopologyTriangles,
			Count:    3,
		})
		if err != nil {
			log.Fatal(err)
		}
		window.SwapBuffers()
	}
}
