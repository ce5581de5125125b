package programs

import _ "embed"

//go:embed shaders/weave.glsl
var weaveFragment string

func init() {
	NewProgram(Program{
		Name:     "weave",
		Fragment: weaveFragment,
		GetValue: func(params Params, x, y, t float32) float32 {
			w := params.Vec("weights")
			return (x*w[0]+y*w[1])*0.05 + t*w[2]
		},
	})
}
