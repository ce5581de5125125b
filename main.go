package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/spf13/cobra"
	"github.com/stewi1014/gldither/config"
	"github.com/stewi1014/gldither/pipeline"
)

const appID = "com.github.stewi1014.gldither"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	overrides := config.Default()

	cmd := &cobra.Command{
		Use:          "gldither",
		Short:        "Live-code dithered, palette quantized fragment shaders",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath, overrides)
			if err != nil {
				return err
			}
			setupLogging(cfg.Debug)
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "gldither.toml", "config `file`")
	flags.IntVarP(&overrides.Palette, "palette", "p", overrides.Palette, "palette catalog index")
	flags.IntVarP(&overrides.Resolution, "resolution", "r", overrides.Resolution, "log2 of the pixel grid size")
	flags.StringVar(&overrides.Program, "program", overrides.Program, "built-in `name` of the starting fragment")
	flags.BoolVar(&overrides.Debug, "debug", overrides.Debug, "debug logging")
	cmd.Flags().StringVarP(&overrides.Watch, "watch", "w", "", "edit the fragment in `file` instead of the editor window")
	cmd.Flags().IntVar(&overrides.Save.Size, "save-size", overrides.Save.Size, "longest side of saved images in pixels")

	cmd.AddCommand(newRenderCommand(&configPath, &overrides))
	return cmd
}

// loadConfig reads the config file and applies any flags set explicitly.
func loadConfig(cmd *cobra.Command, path string, overrides config.Config) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("palette") {
		cfg.Palette = overrides.Palette
	}
	if flags.Changed("resolution") {
		cfg.Resolution = overrides.Resolution
	}
	if flags.Changed("program") {
		cfg.Program = overrides.Program
	}
	if flags.Changed("debug") {
		cfg.Debug = overrides.Debug
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.Watch = overrides.Watch
	}
	if flags.Lookup("save-size") != nil && flags.Changed("save-size") {
		cfg.Save.Size = overrides.Save.Size
	}

	return cfg, cfg.Validate()
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	pipeline.SetLogger(logger)
}

func run(ctx context.Context, cfg config.Config) error {
	mainContext, mainQuit := context.WithCancelCause(ctx)

	go func() {
		mainQuit(gtkMain(mainContext, cfg))
	}()

	<-mainContext.Done()
	if err := context.Cause(mainContext); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func gtkMain(ctx context.Context, cfg config.Config) error {
	runtime.LockOSThread()

	gtk.Init(nil)
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	app, err := gtk.ApplicationNew(appID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		defer CatchPanicToContext(appQuit)
		if err := activate(appContext, app, cfg, appQuit); err != nil {
			appQuit(err)
		}
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()
	app.Run(nil)
	return context.Cause(appContext)
}
