package programs

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/palette"
	"github.com/stewi1014/gldither/shader"
)

type Params = shader.Params

// Frame is everything besides the program that decides a rendered image.
type Frame struct {
	Coefficients palette.Coefficients
	GridSize     float32
	Time         float32
	Params       Params
}

// GetImage renders p the way the assembled fragment shader would on a
// width x height canvas.
func (p *Program) GetImage(frame Frame, width, height int) (image.Image, error) {
	if p.GetValue == nil {
		return nil, ErrNoCPUImplementation
	}

	return &programImage{
		frame:     frame,
		bounds:    image.Rect(0, 0, width, height),
		valueFunc: p.GetValue,
	}, nil
}

type programImage struct {
	frame     Frame
	bounds    image.Rectangle
	valueFunc ValueFunc
}

// GetPixel shades the clip space position uv.
func (i *programImage) GetPixel(uv mgl32.Vec2) mgl32.Vec3 {
	size := i.frame.GridSize
	x := floor(uv[0] * size)
	y := floor(-uv[1] * size)
	t := i.frame.Time * shader.TimeScale

	col := int(mod(uv[0]*shader.BayerScale, shader.BayerSize))
	row := int(mod(uv[1]*shader.BayerScale, shader.BayerSize))
	bayer := palette.BayerOffset(col, row)

	value := fract(i.valueFunc(i.frame.Params, x, y, t) + bayer)
	return i.frame.Coefficients.Eval(value)
}

func (i *programImage) At(x, y int) color.Color {
	w, h := float32(i.bounds.Dx()), float32(i.bounds.Dy())

	// pixel centres, flipped so row 0 is the top of clip space
	uv := mgl32.Vec2{
		2*(float32(x-i.bounds.Min.X)+0.5)/w - 1,
		1 - 2*(float32(y-i.bounds.Min.Y)+0.5)/h,
	}

	c := i.GetPixel(uv)
	return color.NRGBA{
		R: toByte(c[0]),
		G: toByte(c[1]),
		B: toByte(c[2]),
		A: 0xff,
	}
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}

func (i *programImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (i *programImage) Opaque() bool {
	return true
}

func floor(f float32) float32 {
	return float32(math.Floor(float64(f)))
}

func fract(f float32) float32 {
	return f - floor(f)
}

// mod is GLSL's mod, which takes the sign of the divisor.
func mod(x, y float32) float32 {
	return x - y*floor(x/y)
}

func toByte(c float32) uint8 {
	c = mgl32.Clamp(c, 0, 1)
	return uint8(c*255 + 0.5)
}
