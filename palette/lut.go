package palette

// Bayer4 is the 4x4 ordered dither threshold map, row major.
var Bayer4 = [4][4]uint8{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Cosmic is the built-in 16 colour table. The current shader binds it but
// does not sample it.
var Cosmic = [16][3]uint8{
	{0x1a, 0x1c, 0x2c},
	{0x5d, 0x27, 0x5d},
	{0xb1, 0x3e, 0x53},
	{0xef, 0x7d, 0x57},
	{0xff, 0xcd, 0x75},
	{0xa7, 0xf0, 0x70},
	{0x38, 0xb7, 0x64},
	{0x25, 0x71, 0x79},
	{0x29, 0x36, 0x6f},
	{0x3b, 0x5d, 0xc9},
	{0x41, 0xa6, 0xf6},
	{0x73, 0xef, 0xf7},
	{0xf4, 0xf4, 0xf4},
	{0x94, 0xb0, 0xc2},
	{0x56, 0x6c, 0x86},
	{0x33, 0x3c, 0x57},
}

// BayerBytes flattens Bayer4 into single channel texel data.
func BayerBytes() []uint8 {
	data := make([]uint8, 0, 16)
	for _, row := range Bayer4 {
		data = append(data, row[:]...)
	}
	return data
}

// CosmicBytes flattens Cosmic into RGB texel data.
func CosmicBytes() []uint8 {
	data := make([]uint8, 0, 48)
	for _, c := range Cosmic {
		data = append(data, c[:]...)
	}
	return data
}

// BayerOffset is the dither offset the shader reads for texel (col, row): the
// raw byte as a normalized sampler value.
func BayerOffset(col, row int) float32 {
	return float32(Bayer4[row&3][col&3]) / 255
}
