// Package programs registers the built-in getValue fragments and renders
// them on the CPU.
package programs

import (
	_ "embed"
	"errors"
)

var ErrNoCPUImplementation = errors.New("program does not have a CPU implementation")

var programs []Program

// ValueFunc mirrors a fragment's getValue on the CPU. params holds the
// fragment's own uniforms.
type ValueFunc func(params Params, x, y, t float32) float32

// Program is a named fragment defining float getValue(float x, float y, float t).
type Program struct {
	Name     string
	Fragment string
	GetValue ValueFunc
}

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// Lookup finds a program by name.
func Lookup(name string) (Program, bool) {
	for _, p := range programs {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

func NewProgram(p Program) error {
	if _, ok := Lookup(p.Name); ok {
		return errors.New("program " + p.Name + " already registered")
	}
	programs = append(programs, p)
	return nil
}
