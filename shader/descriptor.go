// Package shader assembles the dithering fragment program around a user
// fragment and describes it for a GPU runtime.
package shader

import "github.com/go-gl/mathgl/mgl32"

// Source supplies a uniform's value at draw time.
type Source interface {
	isSource()
}

// Context is a value the runtime provides per frame, such as "time".
type Context string

// Prop pulls the named entry from the draw parameters.
type Prop string

// Constant is a fixed vector uploaded as is.
type Constant []float32

// TextureFormat is the texel layout of a Texture.
type TextureFormat int

const (
	Luminance TextureFormat = iota
	RGB
)

// Channels is the number of bytes per texel.
func (f TextureFormat) Channels() int {
	if f == RGB {
		return 3
	}
	return 1
}

// Texture is a nearest-filtered, edge-clamped texture built from raw bytes.
// Rows are stored first to last, row 0 at texture coordinate t = 0.
type Texture struct {
	Width, Height int
	Format        TextureFormat
	Data          []uint8
}

func (Context) isSource()  {}
func (Prop) isSource()     {}
func (Constant) isSource() {}
func (Texture) isSource()  {}

// Params are the per-draw values read by Prop sources. Values are float32,
// []float32 or nil.
type Params map[string]any

// Float reads a scalar parameter, 0 when absent or not a scalar.
func (p Params) Float(name string) float32 {
	f, _ := p[name].(float32)
	return f
}

// Vec reads a vector parameter into a Vec4, missing components are 0.
func (p Params) Vec(name string) mgl32.Vec4 {
	var out mgl32.Vec4
	s, _ := p[name].([]float32)
	copy(out[:], s)
	return out
}

// DrawFunc draws one frame of a compiled program.
type DrawFunc func(params Params) error

// Descriptor describes a complete program for a runtime to compile.
type Descriptor struct {
	Frag       string
	Vert       string
	Attributes map[string][]mgl32.Vec2
	Uniforms   map[string]Source
	Count      int
}
