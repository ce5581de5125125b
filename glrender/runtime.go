// Package glrender runs assembled shader programs on OpenGL ES.
package glrender

import (
	"fmt"
	"image"
	"log/slog"
	"sort"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/shader"
)

// Runtime compiles shader descriptors against the current GL context. It
// must only be used from the goroutine owning that context.
type Runtime struct {
	clock  func() float64
	logger *slog.Logger

	width, height int
	current       *program
}

// New initialises GL function pointers for the current context. clock
// supplies the seconds reported through shader.Context("time").
func New(clock func() float64, logger *slog.Logger) (*Runtime, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("OpenGL context", slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	return &Runtime{
		clock:  clock,
		logger: logger,
	}, nil
}

// Compile builds desc into a program. Once it succeeds the previously
// compiled program is deleted.
func (r *Runtime) Compile(desc shader.Descriptor) (shader.DrawFunc, error) {
	p, err := r.build(desc)
	if err != nil {
		return nil, err
	}

	if r.current != nil {
		r.current.delete()
	}
	r.current = p
	return p.draw, nil
}

// Clear fills the framebuffer with color.
func (r *Runtime) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Viewport resizes the drawing area to the framebuffer size.
func (r *Runtime) Viewport(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadPixels copies the framebuffer into an image, top row first.
func (r *Runtime) ReadPixels() *image.NRGBA {
	w, h := r.width, r.height
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}

	buf := make([]uint8, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))

	// GL rows start at the bottom
	stride := w * 4
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], buf[(h-1-y)*stride:(h-y)*stride])
	}
	return img
}

// Release deletes the current program.
func (r *Runtime) Release() {
	if r.current != nil {
		r.current.delete()
		r.current = nil
	}
}

func (r *Runtime) build(desc shader.Descriptor) (*program, error) {
	id, err := linkProgram(desc.Vert, desc.Frag)
	if err != nil {
		return nil, err
	}

	p := &program{
		runtime:  r,
		id:       id,
		count:    int32(desc.Count),
		uniforms: newUniformCache(id),
	}
	gl.UseProgram(id)

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	for name, verts := range desc.Attributes {
		loc := gl.GetAttribLocation(id, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}

		data := make([]float32, 0, len(verts)*2)
		for _, v := range verts {
			data = append(data, v[0], v[1])
		}

		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), 2, gl.FLOAT, false, 2*4, 0)
		p.buffers = append(p.buffers, vbo)
	}
	gl.BindVertexArray(0)

	names := make([]string, 0, len(desc.Uniforms))
	for name := range desc.Uniforms {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch src := desc.Uniforms[name].(type) {
		case shader.Texture:
			unit := int32(len(p.textures))
			p.textures = append(p.textures, boundTexture{
				name: name,
				unit: unit,
				id:   uploadTexture(src),
			})
			p.uniforms.setInt(name, unit)
		case shader.Constant:
			if err := p.uniforms.set(name, []float32(src)); err != nil {
				p.delete()
				return nil, err
			}
		case shader.Context:
			p.contexts = append(p.contexts, contextUniform{name: name, key: string(src)})
		case shader.Prop:
			p.props = append(p.props, propUniform{name: name, key: string(src)})
		default:
			p.delete()
			return nil, fmt.Errorf("uniform %s: unsupported source %T", name, src)
		}
	}

	return p, nil
}
