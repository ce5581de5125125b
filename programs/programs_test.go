package programs

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stewi1014/gldither/palette"
	"github.com/stewi1014/gldither/uniform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, paletteIndex int, gridSize, time float32) Frame {
	coeffs, err := palette.Get(paletteIndex)
	require.NoError(t, err)
	return Frame{Coefficients: coeffs, GridSize: gridSize, Time: time, Params: Params{}}
}

func render(t *testing.T, p Program, f Frame, w, h int) *image.NRGBA {
	img, err := p.GetImage(f, w, h)
	require.NoError(t, err)
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func TestSeedProgram(t *testing.T) {
	require.Greater(t, NumPrograms(), 0)
	p := GetProgram(0)
	assert.Equal(t, "product", p.Name)
	assert.Equal(t, "float getValue(float x, float y, float t){ return x*y; }", p.Fragment)
	assert.Empty(t, uniform.Introspect(p.Fragment))
}

func TestRegisteredFragmentsDeclareUniforms(t *testing.T) {
	ripple, ok := Lookup("ripple")
	require.True(t, ok)
	assert.Equal(t, []uniform.Descriptor{{Type: uniform.Float, Name: "speed"}}, uniform.Introspect(ripple.Fragment))

	weave, ok := Lookup("weave")
	require.True(t, ok)
	assert.Equal(t, []uniform.Descriptor{{Type: uniform.Vec3, Name: "weights"}}, uniform.Introspect(weave.Fragment))

	assert.Error(t, NewProgram(Program{Name: "product"}))
	assert.Equal(t, NumPrograms(), len(Names()))
}

func TestNoCPUImplementation(t *testing.T) {
	p := Program{Name: "edited", Fragment: "float getValue(float x, float y, float t){ return t; }"}
	_, err := p.GetImage(Frame{}, 4, 4)
	assert.ErrorIs(t, err, ErrNoCPUImplementation)
}

func TestRenderIsDeterministic(t *testing.T) {
	p, ok := Lookup("ripple")
	require.True(t, ok)
	f := frame(t, 2, 32, 1.25)
	f.Params["speed"] = float32(0.7)

	encode := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, render(t, p, f, 64, 48)))
		return buf.Bytes()
	}
	assert.Equal(t, encode(), encode())
}

func TestRenderUsesOnlyPaletteBands(t *testing.T) {
	f := frame(t, 0, 16, 0)
	img := render(t, GetProgram(0), f, 64, 64)

	bands := make(map[color.NRGBA]bool)
	for i := 0; i < palette.Steps; i++ {
		c := f.Coefficients.Eval(float32(i) / palette.Steps)
		bands[color.NRGBA{toByte(c[0]), toByte(c[1]), toByte(c[2]), 0xff}] = true
	}

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			assert.True(t, bands[img.NRGBAAt(x, y)], "pixel %d,%d", x, y)
		}
	}
}

func TestProductSeedIsMonotone(t *testing.T) {
	// x and y are whole grid cells, so x*y is whole and only the dither
	// offset, smaller than one band, survives fract
	f := frame(t, 0, 128, 3)
	img := render(t, GetProgram(0), f, 32, 32)

	c := f.Coefficients.Eval(0)
	want := color.NRGBA{toByte(c[0]), toByte(c[1]), toByte(c[2]), 0xff}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			require.Equal(t, want, img.NRGBAAt(x, y))
		}
	}
}

func TestGridSizePixelates(t *testing.T) {
	p, ok := Lookup("ripple")
	require.True(t, ok)

	coarse := render(t, p, frame(t, 1, 16, 0), 64, 64)
	fine := render(t, p, frame(t, 1, 512, 0), 64, 64)
	assert.NotEqual(t, coarse.Pix, fine.Pix)
}

func TestGLSLHelpers(t *testing.T) {
	assert.Equal(t, float32(3), mod(-1, 4))
	assert.Equal(t, float32(1), mod(5, 4))
	assert.InDelta(t, 0.25, fract(-0.75), 1e-6)
	assert.Equal(t, uint8(0), toByte(-1))
	assert.Equal(t, uint8(255), toByte(2))
}
