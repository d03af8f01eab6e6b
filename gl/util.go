// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// ParseVersion parses the VERSION string into a major/minor pair and
// reports whether the context is OpenGL ES.
func ParseVersion(glVer string) ([2]int, bool, error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1.
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("gl: failed to parse version %q", glVer)
}

// ErrorName returns the symbolic name for a GetError code.
func ErrorName(e Enum) string {
	switch e {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case CONTEXT_LOST:
		return "CONTEXT_LOST"
	default:
		return fmt.Sprintf("0x%x", uint(e))
	}
}

// CreateProgram compiles and links a program from vertex and fragment
// sources, binding the given attribute names to their slice indices.
func CreateProgram(f Functions, vsrc, fsrc string, attribs []string) (Program, error) {
	vs, err := createShader(f, VERTEX_SHADER, vsrc)
	if err != nil {
		return Program{}, err
	}
	defer f.DeleteShader(vs)
	fs, err := createShader(f, FRAGMENT_SHADER, fsrc)
	if err != nil {
		return Program{}, err
	}
	defer f.DeleteShader(fs)
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("gl: CreateProgram failed")
	}
	f.AttachShader(prog, vs)
	f.AttachShader(prog, fs)
	for ind, name := range attribs {
		f.BindAttribLocation(prog, Attrib(ind), name)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == FALSE {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return Program{}, fmt.Errorf("gl: program link failed: %s", strings.TrimSpace(log))
	}
	return prog, nil
}

func createShader(f Functions, typ Enum, src string) (Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("gl: CreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == FALSE {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		return Shader{}, fmt.Errorf("gl: shader compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}
