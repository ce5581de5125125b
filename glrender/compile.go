package glrender

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

func getInfoLog(thing uint32, ivFunc func(thing, pname uint32, params *int32), logFunc func(thing uint32, bufSize int32, length *int32, infoLog *uint8)) error {
	var l int32
	ivFunc(thing, gl.INFO_LOG_LENGTH, &l)
	if l <= 0 {
		return errors.New("no info log")
	}

	log := strings.Repeat("\x00", int(l+1))
	logFunc(thing, l, nil, gl.Str(log))
	return errors.New(strings.TrimRight(log, "\x00\r\n"))
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	cstring, free := gl.Strs(source + "\x00")
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		err := getInfoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader failed to compile: %w", err)
	}

	return shader, nil
}

func linkProgram(vert, frag string) (uint32, error) {
	vertexShader, err := compileShader(vert, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(frag, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		err := getInfoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %w", err)
	}

	return program, nil
}
