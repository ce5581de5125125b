package glrender

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/shader"
)

// uniformCache caches uniform locations of one program. The program must be
// in use when setting values.
type uniformCache struct {
	program   uint32
	locations map[string]int32
}

func newUniformCache(program uint32) *uniformCache {
	return &uniformCache{
		program:   program,
		locations: make(map[string]int32),
	}
}

func (c *uniformCache) location(name string) int32 {
	if loc, ok := c.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(c.program, gl.Str(name+"\x00"))
	c.locations[name] = loc
	return loc
}

func (c *uniformCache) setFloat(name string, f float32) {
	if loc := c.location(name); loc != -1 {
		gl.Uniform1f(loc, f)
	}
}

func (c *uniformCache) setInt(name string, i int32) {
	if loc := c.location(name); loc != -1 {
		gl.Uniform1i(loc, i)
	}
}

// set uploads a marshalled parameter. Nil values and uniforms the compiler
// optimised out are skipped.
func (c *uniformCache) set(name string, v any) error {
	loc := c.location(name)
	if loc == -1 || v == nil {
		return nil
	}

	switch v := v.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case mgl32.Vec2:
		gl.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case []float32:
		switch len(v) {
		case 1:
			gl.Uniform1f(loc, v[0])
		case 2:
			gl.Uniform2f(loc, v[0], v[1])
		case 3:
			gl.Uniform3f(loc, v[0], v[1], v[2])
		case 4:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		default:
			return fmt.Errorf("uniform %s: %d components", name, len(v))
		}
	default:
		return fmt.Errorf("uniform %s: unsupported value %T", name, v)
	}
	return nil
}

func uploadTexture(t shader.Texture) uint32 {
	format := uint32(gl.LUMINANCE)
	if t.Format == shader.RGB {
		format = gl.RGB
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, int32(format),
		int32(t.Width), int32(t.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(t.Data),
	)
	return id
}
