package palette

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogParses(t *testing.T) {
	for i, entry := range Catalog {
		c, err := ParseCoefficients(entry)
		require.NoError(t, err, "catalog entry %d", i)
		assert.Len(t, c.Vectors(), 4)
	}
}

func TestGetKnownEntries(t *testing.T) {
	c, err := Get(0)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0.938, 0.328, 0.718}, c.A)

	c, err = Get(2)
	require.NoError(t, err)
	assert.Equal(t, Coefficients{
		A: mgl32.Vec3{0.875, 0.588, 0.296},
		B: mgl32.Vec3{0.631, 0.257, 0.647},
		C: mgl32.Vec3{1.408, 0.773, 1.364},
		D: mgl32.Vec3{4.417, 3.357, 2.216},
	}, c)
}

func TestGetOutOfRange(t *testing.T) {
	_, err := Get(-1)
	assert.Error(t, err)
	_, err = Get(len(Catalog))
	assert.Error(t, err)
}

func TestParseTooFewTokens(t *testing.T) {
	_, err := ParseCoefficients("[[0.1 0.2 0.3] [0.4 0.5 0.6] [0.7 0.8 0.9] [1.0 1.1]]")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 11, perr.Tokens)
}

func TestParseOutOfRangeToken(t *testing.T) {
	huge := strings.Repeat("9", 60) + ".0"
	_, err := ParseCoefficients("[[" + huge + " 0.1 0.1] [0.1 0.1 0.1] [0.1 0.1 0.1] [0.1 0.1 0.1]]")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 12, perr.Tokens)
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestParseIgnoresSignsAndExtraTokens(t *testing.T) {
	c, err := ParseCoefficients("[[0.1 -0.2 0.3] [0.4 0.5 0.6] [0.7 0.8 0.9] [1.0 1.1 1.2] [9.9]]")
	require.NoError(t, err)
	// the minus sign is not part of the token
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, c.A)
	assert.Equal(t, mgl32.Vec3{1.0, 1.1, 1.2}, c.D)

	_, err = ParseCoefficients("[[1 2 3] [4 5 6] [7 8 9] [1 2 3]]")
	assert.Error(t, err, "integers without a decimal point are not tokens")
}

func TestTokensRoundTrip(t *testing.T) {
	for _, entry := range Catalog {
		c, err := ParseCoefficients(entry)
		require.NoError(t, err)

		tokens := Tokens(entry)
		require.Len(t, tokens, 12)
		vecs := c.Vectors()
		for i, tok := range tokens {
			want, err := strconv.ParseFloat(tok, 32)
			require.NoError(t, err)
			assert.Equal(t, float32(want), vecs[i/3][i%3])
		}
	}
}

func TestEvalQuantizes(t *testing.T) {
	c, err := Get(1)
	require.NoError(t, err)

	// every t inside one band maps to the same colour
	assert.Equal(t, c.Eval(0.25), c.Eval(0.3))
	assert.Equal(t, c.Eval(0), c.Eval(0.124))
	assert.NotEqual(t, c.Eval(0.124), c.Eval(0.125))

	// pal(0) = A + B*cos(2πD)
	got := c.Eval(0)
	assert.InDelta(t, 1.0, got[0], 1e-5)
}

func TestLUTs(t *testing.T) {
	bayer := BayerBytes()
	assert.Equal(t, []uint8{0, 8, 2, 10, 12, 4, 14, 6, 3, 11, 1, 9, 15, 7, 13, 5}, bayer)
	assert.Len(t, CosmicBytes(), 48)
	assert.Equal(t, float32(15)/255, BayerOffset(0, 3))
	assert.Equal(t, float32(8)/255, BayerOffset(5, 4), "coordinates wrap")
	assert.Len(t, Labels(), len(Catalog))
}
