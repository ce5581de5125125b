package pipeline

// Bounds of Settings.Resolution.
const (
	MinResolution     = 4
	MaxResolution     = 9
	DefaultResolution = 7
)

// Settings are the user's render choices.
type Settings struct {
	// Palette is an index into palette.Catalog.
	Palette int
	// Resolution is the log2 of the pixel grid size.
	Resolution int
}

func DefaultSettings() Settings {
	return Settings{Palette: 0, Resolution: DefaultResolution}
}

// GridSize is the side of the pixel grid, 2^Resolution.
func (s Settings) GridSize() float32 {
	return float32(int(1) << ClampResolution(s.Resolution))
}

// ClampResolution limits level to [MinResolution, MaxResolution].
func ClampResolution(level int) int {
	if level < MinResolution {
		return MinResolution
	}
	if level > MaxResolution {
		return MaxResolution
	}
	return level
}
