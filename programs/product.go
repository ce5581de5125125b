package programs

import _ "embed"

//go:embed shaders/product.glsl
var productFragment string

func init() {
	NewProgram(Program{
		Name:     "product",
		Fragment: productFragment,
		GetValue: func(params Params, x, y, t float32) float32 {
			return x * y
		},
	})
}
