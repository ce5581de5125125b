// Package palette holds the cosine palette catalog and the constant lookup
// tables bound to the dithering shader.
package palette

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Steps is the number of bands the palette quantizes its input to.
const Steps = 8

// Catalog lists the selectable palettes as [[a b c] [a b c] [a b c] [a b c]]
// literals for A, B, C and D in that order.
var Catalog = []string{
	"[[0.938 0.328 0.718] [0.659 0.438 0.328] [0.388 0.388 0.296] [2.538 2.478 0.168]]",
	"[[0.500 0.500 0.500] [0.500 0.500 0.500] [1.000 1.000 1.000] [0.000 0.333 0.667]]",
	"[[0.875 0.588 0.296] [0.631 0.257 0.647] [1.408 0.773 1.364] [4.417 3.357 2.216]]",
	"[[0.500 0.500 0.500] [0.500 0.500 0.500] [1.000 1.000 1.000] [0.000 0.100 0.200]]",
	"[[0.500 0.500 0.500] [0.500 0.500 0.500] [1.000 1.000 0.500] [0.800 0.900 0.300]]",
	"[[0.500 0.500 0.500] [0.500 0.500 0.500] [2.000 1.000 0.000] [0.500 0.200 0.250]]",
	"[[0.800 0.500 0.400] [0.200 0.400 0.200] [2.000 1.000 1.000] [0.000 0.250 0.250]]",
}

var tokenPattern = regexp.MustCompile(`\d+\.\d+`)

// Coefficients parameterize pal(t) = A + B*cos(2π(C*t + D)).
type Coefficients struct {
	A, B, C, D mgl32.Vec3
}

// Vectors returns A, B, C and D in order.
func (c Coefficients) Vectors() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{c.A, c.B, c.C, c.D}
}

// Eval evaluates the palette the way the fragment shader does, with t
// quantized down to one of Steps bands first.
func (c Coefficients) Eval(t float32) mgl32.Vec3 {
	t = float32(math.Floor(float64(t*Steps))) / Steps

	var out mgl32.Vec3
	for i := range out {
		phase := 2 * math.Pi * float64(c.C[i]*t+c.D[i])
		out[i] = c.A[i] + c.B[i]*float32(math.Cos(phase))
	}
	return out
}

// ParseError is returned when a palette literal holds fewer than twelve
// numeric tokens, or when one of the twelve does not fit a float32.
type ParseError struct {
	Input  string
	Tokens int
	// Err is the conversion failure of a token, nil for a short literal.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("palette %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("palette %q: found %d numeric tokens, need 12", e.Input, e.Tokens)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Tokens returns every "digits.digits" run in s, in order of appearance.
func Tokens(s string) []string {
	return tokenPattern.FindAllString(s, -1)
}

// ParseCoefficients reads four 3-vectors from a palette literal. Tokens past
// the twelfth are ignored.
func ParseCoefficients(s string) (Coefficients, error) {
	tokens := Tokens(s)
	if len(tokens) < 12 {
		return Coefficients{}, &ParseError{Input: s, Tokens: len(tokens)}
	}

	var vecs [4]mgl32.Vec3
	for i, tok := range tokens[:12] {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return Coefficients{}, &ParseError{Input: s, Tokens: len(tokens), Err: err}
		}
		vecs[i/3][i%3] = float32(f)
	}

	return Coefficients{A: vecs[0], B: vecs[1], C: vecs[2], D: vecs[3]}, nil
}

// Get parses catalog entry i.
func Get(i int) (Coefficients, error) {
	if i < 0 || i >= len(Catalog) {
		return Coefficients{}, fmt.Errorf("palette index %d out of range [0, %d)", i, len(Catalog))
	}
	return ParseCoefficients(Catalog[i])
}

// Labels names each catalog entry for selection widgets.
func Labels() []string {
	labels := make([]string, len(Catalog))
	for i := range Catalog {
		labels[i] = fmt.Sprintf("palette %d", i)
	}
	return labels
}
