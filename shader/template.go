package shader

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/palette"
)

// Constants shared by the template and CPU renditions of it.
const (
	TimeScale  = 3
	BayerScale = 256
	BayerSize  = 4
)

// Names of the uniforms the template itself declares.
const (
	TimeUniform       = "time"
	PaletteUniform    = "palette"
	BayerUniform      = "bayer"
	ResolutionUniform = "resolution"
)

var CoefficientUniforms = [4]string{"coeffsA", "coeffsB", "coeffsC", "coeffsD"}

const fragmentHeader = `precision mediump float;

#define PI 3.1415926538
#define BAYER_SIZE 4.0
#define SIZE resolution

varying vec2 uv;
uniform float time;
uniform sampler2D palette; // 16 colours, unused
uniform sampler2D bayer; // 4x4 bayer matrix
uniform float resolution;
uniform vec3 coeffsA;
uniform vec3 coeffsB;
uniform vec3 coeffsC;
uniform vec3 coeffsD;

`

const fragmentFooter = `

vec3 pal(in float t, in vec3 a, in vec3 b, in vec3 c, in vec3 d) {
  t = floor(t * 8.0) / 8.0;
  return a + b * cos(6.28318 * (c * t + d));
}

void main () {
  float x = floor(uv.x * SIZE);
  float y = floor(-uv.y * SIZE);
  float t = time * 3.;

  float bayerValue = texture2D(bayer, vec2(
    mod(uv.x * 256., BAYER_SIZE) / BAYER_SIZE,
    mod(uv.y * 256., BAYER_SIZE) / BAYER_SIZE
  )).r;

  float value = fract(getValue(x, y, t) + bayerValue);
  gl_FragColor = vec4(pal(value, coeffsA, coeffsB, coeffsC, coeffsD), 1.0);
}
`

// VertexShader draws a full screen quad, passing clip space position as uv.
const VertexShader = `precision mediump float;
attribute vec2 position;
varying vec2 uv;
void main () {
  uv = position;
  gl_Position = vec4(position, 0, 1);
}
`

// Quad is two triangles covering clip space.
var Quad = []mgl32.Vec2{
	{-1, -1},
	{-1, 1},
	{1, 1},
	{-1, -1},
	{1, 1},
	{1, -1},
}

// FragmentShader wraps a user fragment defining
// float getValue(float x, float y, float t) into the full program.
func FragmentShader(fragment string) string {
	var b strings.Builder
	b.Grow(len(fragmentHeader) + len(fragment) + len(fragmentFooter))
	b.WriteString(fragmentHeader)
	b.WriteString(fragment)
	b.WriteString(fragmentFooter)
	return b.String()
}

// Assemble builds the program descriptor for fragment. names are the
// uniforms the fragment declares; each is read from the draw parameters.
func Assemble(fragment string, coeffs palette.Coefficients, names []string) Descriptor {
	uniforms := make(map[string]Source, len(names)+8)
	for _, name := range names {
		uniforms[name] = Prop(name)
	}

	uniforms[TimeUniform] = Context("time")
	uniforms[PaletteUniform] = Texture{
		Width:  len(palette.Cosmic),
		Height: 1,
		Format: RGB,
		Data:   palette.CosmicBytes(),
	}
	uniforms[BayerUniform] = Texture{
		Width:  4,
		Height: 4,
		Format: Luminance,
		Data:   palette.BayerBytes(),
	}
	for i, vec := range coeffs.Vectors() {
		uniforms[CoefficientUniforms[i]] = Constant{vec[0], vec[1], vec[2]}
	}
	uniforms[ResolutionUniform] = Prop(ResolutionUniform)

	return Descriptor{
		Frag: FragmentShader(fragment),
		Vert: VertexShader,
		Attributes: map[string][]mgl32.Vec2{
			"position": Quad,
		},
		Uniforms: uniforms,
		Count:    len(Quad),
	}
}
