package programs

import (
	_ "embed"
	"math"
)

//go:embed shaders/ripple.glsl
var rippleFragment string

func init() {
	NewProgram(Program{
		Name:     "ripple",
		Fragment: rippleFragment,
		GetValue: func(params Params, x, y, t float32) float32 {
			speed := params.Float("speed")
			r := math.Sqrt(float64(x*x + y*y))
			return float32(math.Sin(r*0.25-float64(t*speed))) * 0.5
		},
	})
}
