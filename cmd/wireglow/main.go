// Command wireglow shows a field of wireframe cuboids through a bloom
// filter, with a panel to tune the glow.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"wireglow/app"
	"wireglow/assets"
	"wireglow/config"
	"wireglow/internal/opengl"
	"wireglow/internal/platform"
)

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	if err := run(); err != nil {
		slog.Error("wireglow stopped", "error", err)
		os.Exit(1)
	}
}

// surface joins the window, which knows the drawable size, with the
// renderer, which owns the viewport.
type surface struct {
	*platform.Window
	r *opengl.Renderer
}

func (s surface) BufferSize() (int, int)  { return s.r.BufferSize() }
func (s surface) SetBufferSize(w, h int) { s.r.SetBufferSize(w, h) }
func (s surface) Present()               { s.SwapBuffers() }

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag)
		if err != nil {
			return cfg, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cuboids":
			cfg.Scene.Cuboids = *cuboidsFlag
		case "width":
			cfg.Window.Width = *widthFlag
		case "height":
			cfg.Window.Height = *heightFlag
		}
	})
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	wc := platform.DefaultWindowConfig()
	wc.Width, wc.Height = cfg.Window.Width, cfg.Window.Height
	wc.Title = cfg.Window.Title
	wc.VSync = cfg.Window.VSync
	win, err := platform.NewWindow(wc)
	if err != nil {
		return err
	}
	defer win.Destroy()

	var opts opengl.Options
	if cfg.CustomShader {
		opts.LineVertexSource = assets.TestVert
		opts.LineFragmentSource = assets.TestFrag
	}
	fw, fh := win.ClientSize()
	r, err := opengl.NewRenderer(fw, fh, opts)
	if err != nil {
		return err
	}
	defer r.Destroy()

	a := app.New(cfg, surface{Window: win, r: r}, r)
	a.HUD = r
	if err := a.Setup(); err != nil {
		return err
	}
	win.OnMouseButton(a.MouseButton)
	win.OnCursorMove(a.CursorMoved)
	win.OnScroll(a.Scrolled)

	loop, err := a.NewLoop(app.NewClock(win.Now), win)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("running", "width", fw, "height", fh)
	err = loop.Run(ctx)
	slog.Info("exiting", "frames", loop.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
