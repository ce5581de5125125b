// Package config loads the application settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/stewi1014/gldither/palette"
	"github.com/stewi1014/gldither/pipeline"
	"github.com/stewi1014/gldither/programs"
)

type Config struct {
	// Palette is the initial index into the palette catalog.
	Palette int `toml:"palette"`
	// Resolution is the initial log2 pixel grid size.
	Resolution int `toml:"resolution"`
	// Program names the built-in fragment the editor starts with.
	Program string `toml:"program"`
	// Watch, when set, is a fragment file used instead of the editor window.
	Watch string `toml:"watch"`

	Window struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"window"`

	Save struct {
		Size int    `toml:"size"`
		Dir  string `toml:"dir"`
	} `toml:"save"`

	Debug bool `toml:"debug"`
}

func Default() Config {
	var c Config
	c.Palette = 0
	c.Resolution = pipeline.DefaultResolution
	c.Program = "product"
	c.Window.Width = 800
	c.Window.Height = 800
	c.Save.Size = 1024
	c.Save.Dir = "."
	return c
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}

	if err := toml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Palette < 0 || c.Palette >= len(palette.Catalog) {
		errs = append(errs, fmt.Errorf("palette %d out of range [0, %d)", c.Palette, len(palette.Catalog)))
	}
	if c.Resolution < pipeline.MinResolution || c.Resolution > pipeline.MaxResolution {
		errs = append(errs, fmt.Errorf("resolution %d out of range [%d, %d]", c.Resolution, pipeline.MinResolution, pipeline.MaxResolution))
	}
	if _, ok := programs.Lookup(c.Program); !ok {
		errs = append(errs, fmt.Errorf("unknown program %q", c.Program))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Save.Size <= 0 {
		errs = append(errs, fmt.Errorf("save size %d", c.Save.Size))
	}
	return errors.Join(errs...)
}

// Settings returns the pipeline settings the config starts with.
func (c Config) Settings() pipeline.Settings {
	return pipeline.Settings{
		Palette:    c.Palette,
		Resolution: c.Resolution,
	}
}
