package uniform

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospectEmpty(t *testing.T) {
	assert.Empty(t, Introspect(""))
	assert.Empty(t, Introspect("float getValue(float x, float y, float t){ return x*y; }"))
}

func TestIntrospectOrderAndTypes(t *testing.T) {
	src := `
uniform float speed;
uniform  vec3	tint;
uniform vec2 offset;
uniform vec4 colour;
uniform mat4 ignored;
uniform sampler2D tex;
float getValue(float x, float y, float t){ return x*speed; }
`
	assert.Equal(t, []Descriptor{
		{Float, "speed"},
		{Vec3, "tint"},
		{Vec2, "offset"},
		{Vec4, "colour"},
	}, Introspect(src))
}

func TestIntrospectDuplicateKeepsFirstType(t *testing.T) {
	src := "uniform vec2 a;\nuniform float b;\nuniform float a;\n"
	assert.Equal(t, []Descriptor{{Vec2, "a"}, {Float, "b"}}, Introspect(src))
}

func TestIntrospectIdentifiers(t *testing.T) {
	descs := Introspect("uniform float _x1; uniform float 9bad; uniform floatx nope;")
	assert.Equal(t, []string{"_x1"}, Names(descs))
}

func TestIntrospectDoesNotSkipComments(t *testing.T) {
	descs := Introspect("// uniform float hidden;\n/* uniform vec2 also; */")
	assert.Equal(t, []string{"hidden", "also"}, Names(descs))
}

func TestZeroValues(t *testing.T) {
	for _, typ := range []Type{Float, Vec2, Vec3, Vec4} {
		v := Zero(typ)
		assert.Equal(t, typ, v.Type())
		m, err := v.Marshal()
		require.NoError(t, err)
		if typ == Float {
			assert.Equal(t, float32(0), m)
		} else {
			assert.Equal(t, make([]float32, typ.Arity()), m)
		}
	}
}

func TestMarshalArityAndOrder(t *testing.T) {
	cases := []struct {
		value Value
		want  any
	}{
		{NewFloat(1.5), float32(1.5)},
		{NewVec2(mgl32.Vec2{1, 2}), []float32{1, 2}},
		{NewVec3(mgl32.Vec3{0.5, 0, 1}), []float32{0.5, 0, 1}},
		{NewVec4(mgl32.Vec4{1, 2, 3, 4}), []float32{1, 2, 3, 4}},
	}
	for _, c := range cases {
		got, err := c.value.Marshal()
		require.NoError(t, err)
		assert.Equal(t, c.want, got, c.value.String())
	}
}

func TestMarshalAnomaly(t *testing.T) {
	_, err := Value{}.Marshal()
	assert.True(t, errors.Is(err, ErrMarshallingAnomaly))
}

func TestSetComponent(t *testing.T) {
	v := Zero(Vec3)
	v.SetComponent(0, 0.5)
	v.SetComponent(2, 1)
	v.SetComponent(3, 9)
	m, err := v.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0, 1}, m)
	assert.Equal(t, []string{"x", "y", "z"}, v.Axes())
	assert.Equal(t, []string{"r", "g", "b", "a"}, Zero(Vec4).Axes())
}
