package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldither/shader"
)

// Runtime compiles program descriptors and owns their GPU resources. A
// runtime may release the resources of a draw function once a later Compile
// succeeds.
type Runtime interface {
	Compile(desc shader.Descriptor) (shader.DrawFunc, error)
	Clear(color mgl32.Vec4)
}
