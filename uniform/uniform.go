// Package uniform discovers the uniforms a shader fragment declares and holds
// their typed values.
package uniform

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMarshallingAnomaly is returned when a value does not carry one of the
// recognised variants.
var ErrMarshallingAnomaly = errors.New("uniform value has no recognised variant")

// Type is a declared uniform type.
type Type int

const (
	Invalid Type = iota
	Float
	Vec2
	Vec3
	Vec4
)

// ParseType maps a GLSL type keyword to a Type.
func ParseType(keyword string) (Type, bool) {
	switch keyword {
	case "float":
		return Float, true
	case "vec2":
		return Vec2, true
	case "vec3":
		return Vec3, true
	case "vec4":
		return Vec4, true
	}
	return Invalid, false
}

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Arity is the number of components of the type, 0 for Invalid.
func (t Type) Arity() int {
	switch t {
	case Float:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	}
	return 0
}

// Descriptor is one uniform declaration found in a fragment.
type Descriptor struct {
	Type Type
	Name string
}

// Value is a uniform holder tagged with its declared type. Components are
// stored in position order.
type Value struct {
	typ Type
	v   mgl32.Vec4
}

func NewFloat(f float32) Value {
	return Value{typ: Float, v: mgl32.Vec4{f}}
}

func NewVec2(v mgl32.Vec2) Value {
	return Value{typ: Vec2, v: mgl32.Vec4{v[0], v[1]}}
}

func NewVec3(v mgl32.Vec3) Value {
	return Value{typ: Vec3, v: v.Vec4(0)}
}

func NewVec4(v mgl32.Vec4) Value {
	return Value{typ: Vec4, v: v}
}

// Zero returns the zero value of t.
func Zero(t Type) Value {
	return Value{typ: t}
}

func (v Value) Type() Type { return v.typ }

func (v Value) Len() int { return v.typ.Arity() }

// Component returns component i in position order.
func (v Value) Component(i int) float32 {
	return v.v[i]
}

// SetComponent overwrites component i. Indices past the arity are ignored.
func (v *Value) SetComponent(i int, f float32) {
	if i < 0 || i >= v.Len() {
		return
	}
	v.v[i] = f
}

// Axes returns the display name of each component.
func (v Value) Axes() []string {
	switch v.typ {
	case Float:
		return []string{""}
	case Vec2:
		return []string{"x", "y"}
	case Vec3:
		return []string{"x", "y", "z"}
	case Vec4:
		return []string{"r", "g", "b", "a"}
	}
	return nil
}

// Marshal converts v into a draw parameter: float32 for Float, and a slice of
// exactly the declared arity for vectors.
func (v Value) Marshal() (any, error) {
	switch v.typ {
	case Float:
		return v.v[0], nil
	case Vec2, Vec3, Vec4:
		out := make([]float32, v.Len())
		copy(out, v.v[:])
		return out, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrMarshallingAnomaly, v.typ)
}

func (v Value) String() string {
	switch v.typ {
	case Float:
		return fmt.Sprintf("%g", v.v[0])
	case Vec2, Vec3, Vec4:
		return fmt.Sprintf("%s%v", v.typ, v.v[:v.Len()])
	}
	return "invalid"
}
