package glrender

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/stewi1014/gldither/shader"
)

type boundTexture struct {
	name string
	unit int32
	id   uint32
}

type contextUniform struct {
	name, key string
}

type propUniform struct {
	name, key string
}

// program is one compiled descriptor and the GL objects it owns.
type program struct {
	runtime *Runtime

	id       uint32
	vao      uint32
	buffers  []uint32
	count    int32
	uniforms *uniformCache

	textures []boundTexture
	contexts []contextUniform
	props    []propUniform

	deleted bool
}

func (p *program) draw(params shader.Params) error {
	if p.deleted {
		return fmt.Errorf("program %d was replaced", p.id)
	}

	gl.UseProgram(p.id)

	for _, c := range p.contexts {
		switch c.key {
		case "time":
			p.uniforms.setFloat(c.name, float32(p.runtime.clock()))
		default:
			return fmt.Errorf("uniform %s: unknown context %q", c.name, c.key)
		}
	}

	for _, prop := range p.props {
		if err := p.uniforms.set(prop.name, params[prop.key]); err != nil {
			return err
		}
	}

	for _, t := range p.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(t.unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
	}

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, p.count)
	gl.BindVertexArray(0)
	return nil
}

func (p *program) delete() {
	if p.deleted {
		return
	}
	p.deleted = true

	for _, t := range p.textures {
		gl.DeleteTextures(1, &t.id)
	}
	if len(p.buffers) > 0 {
		gl.DeleteBuffers(int32(len(p.buffers)), &p.buffers[0])
	}
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.id)
}
