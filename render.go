package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stewi1014/gldither/config"
	"github.com/stewi1014/gldither/palette"
	"github.com/stewi1014/gldither/pipeline"
	"github.com/stewi1014/gldither/programs"
	"github.com/stewi1014/gldither/uniform"
)

type renderOptions struct {
	output string
	size   int
	time   float32
	sets   []string
}

// newRenderCommand renders a built-in program on the CPU without opening a
// window.
func newRenderCommand(configPath *string, overrides *config.Config) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a built-in program to a PNG without a GL context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath, *overrides)
			if err != nil {
				return err
			}
			setupLogging(cfg.Debug)
			return renderProgram(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "output `file` (default: timestamped name in the save directory)")
	flags.IntVar(&opts.size, "size", 0, "image width and height in pixels (default: the save size)")
	flags.Float32Var(&opts.time, "time", 0, "seconds since start")
	flags.StringArrayVar(&opts.sets, "set", nil, "set a uniform, as `name=v1,v2,...`")
	return cmd
}

func renderProgram(cmd *cobra.Command, cfg config.Config, opts renderOptions) error {
	prog, ok := programs.Lookup(cfg.Program)
	if !ok {
		return fmt.Errorf("unknown program %q", cfg.Program)
	}

	coeffs, err := palette.Get(cfg.Palette)
	if err != nil {
		return err
	}

	params, err := renderParams(prog.Fragment, opts.sets)
	if err != nil {
		return err
	}

	size := opts.size
	if size <= 0 {
		size = cfg.Save.Size
	}

	settings := pipeline.Settings{Palette: cfg.Palette, Resolution: cfg.Resolution}
	img, err := prog.GetImage(programs.Frame{
		Coefficients: coeffs,
		GridSize:     settings.GridSize(),
		Time:         opts.time,
		Params:       params,
	}, size, size)
	if err != nil {
		return err
	}

	buff := BufferImage(img)
	if err := buff.Buffer(cmd.Context()); err != nil {
		return err
	}

	name := opts.output
	if name == "" {
		name, err = saveFrame(SaveOptions{Dir: cfg.Save.Dir}, buff.NRGBA(), time.Now())
	} else {
		err = writePNG(name, buff.NRGBA())
	}
	if err != nil {
		return err
	}

	slog.Info("rendered", "program", prog.Name, "file", name)
	return nil
}

// renderParams zeroes every uniform the fragment declares, then applies
// sets in order.
func renderParams(fragment string, sets []string) (programs.Params, error) {
	values := make(map[string]uniform.Value)
	for _, d := range uniform.Introspect(fragment) {
		values[d.Name] = uniform.Zero(d.Type)
	}

	for _, set := range sets {
		name, list, ok := strings.Cut(set, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected name=value", set)
		}
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("--set %q: program has no uniform %q", set, name)
		}

		fields := strings.Split(list, ",")
		if len(fields) != v.Len() {
			return nil, fmt.Errorf("--set %q: %s takes %d components, got %d", set, v.Type(), v.Len(), len(fields))
		}
		for i, field := range fields {
			f, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, fmt.Errorf("--set %q: %w", set, err)
			}
			v.SetComponent(i, float32(f))
		}
		values[name] = v
	}

	params := make(programs.Params, len(values))
	for name, v := range values {
		m, err := v.Marshal()
		if err != nil {
			return nil, fmt.Errorf("uniform %s: %w", name, err)
		}
		params[name] = m
	}
	return params, nil
}
