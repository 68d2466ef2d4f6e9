// Package app wires the scene, the post-processing chain and the control
// panel together and drives them frame by frame.
package app

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"wireglow/config"
	"wireglow/core"
	"wireglow/gui"
	"wireglow/math"
	"wireglow/postfx"
	"wireglow/scene"
)

var (
	ErrNoCamera = errors.New("app: no camera, call AddCamera first")
	ErrNoEffect = errors.New("app: no bloom pass, call AddEffect first")
)

const (
	CameraFOV  = 45
	CameraNear = 0.1
	CameraFar  = 100
	FogColor   = 0x000000
	PanelTitle = "bloomParams"
)

var CameraPosition = math.NewVec3(0, 0, -10)

// Surface is the drawable the frames end up on.
type Surface interface {
	// ClientSize is the current drawable size in pixels.
	ClientSize() (width, height int)
	// BufferSize is the size last applied with SetBufferSize.
	BufferSize() (width, height int)
	SetBufferSize(width, height int)
	Present()
}

// PanelDrawer draws the control panel over the finished frame.
type PanelDrawer interface {
	DrawPanel(p *gui.Panel) error
}

// App holds every long-lived object of the program.
type App struct {
	Config  config.Config
	Surface Surface
	Device  postfx.Device
	HUD     PanelDrawer
	Rand    scene.Rand

	Scene    *scene.Scene
	Camera   *scene.PerspectiveCamera
	Controls *scene.OrbitControls
	Template *scene.Node
	Composer *postfx.Composer
	Bloom    *postfx.BloomPass
	Panel    *gui.Panel
}

// New is the first setup step: it creates the empty scene for a surface
// and device that are already live.
func New(cfg config.Config, surface Surface, device postfx.Device) *App {
	return &App{
		Config:  cfg,
		Surface: surface,
		Device:  device,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Scene:   scene.NewScene(),
	}
}

// Setup runs the remaining setup steps in order.
func (a *App) Setup() error {
	a.AddCamera()
	a.AddObjects()
	if err := a.AddEffect(); err != nil {
		return err
	}
	return a.AddGUI()
}

// AddCamera creates the perspective camera with the surface's aspect ratio
// and the orbit controls around the origin.
func (a *App) AddCamera() {
	w, h := a.Surface.ClientSize()
	cam := scene.NewPerspectiveCamera(CameraFOV, float32(a.Config.Window.Width)/float32(a.Config.Window.Height), CameraNear, CameraFar)
	cam.SetAspect(float32(w), float32(h))
	cam.UpdateProjectionMatrix()
	cam.SetPosition(CameraPosition)
	cam.LookAt(math.Vec3Zero)

	controls := scene.NewOrbitControls(cam)
	controls.EnableZoom = false
	controls.Update()

	a.Camera = cam
	a.Controls = controls
}

// AddObjects adds the fog and the randomized cuboid outlines.
func (a *App) AddObjects() {
	a.Scene.Fog = scene.NewFog(core.ColorHex(FogColor), a.Config.Scene.FogNear, a.Config.Scene.FogFar)

	material := scene.NewLineMaterial(core.ColorHex(scene.CuboidLineColor))
	a.Template = scene.NewCuboidOutline(material)
	added := scene.PopulateCuboids(a.Scene.Root, a.Template, a.Config.Scene.Cuboids, a.Rand)
	slog.Info("scene populated", "cuboids", len(added))
}

// AddEffect builds the render and bloom passes and sizes the chain to the
// surface.
func (a *App) AddEffect() error {
	if a.Camera == nil {
		return ErrNoCamera
	}
	a.Composer = postfx.NewComposer(a.Device)
	a.Composer.AddPass(postfx.NewRenderPass(a.Scene, a.Camera))
	a.Bloom = postfx.NewBloomPass(a.Config.Bloom.Params())
	a.Composer.AddPass(a.Bloom)

	w, h := a.Surface.ClientSize()
	if err := a.Composer.SetSize(w, h); err != nil {
		return err
	}
	p := a.Bloom.Params
	slog.Info("bloom enabled", "strength", p.Strength, "threshold", p.Threshold, "radius", p.Radius, "exposure", p.Exposure)
	return nil
}

// AddGUI binds the panel sliders to the bloom pass parameters.
func (a *App) AddGUI() error {
	if a.Bloom == nil {
		return ErrNoEffect
	}
	a.Panel = gui.NewPanel(gui.DefaultWidth)
	f := a.Panel.AddFolder(PanelTitle)
	f.AddSlider("Strength", &a.Bloom.Params.Strength, postfx.StrengthRange.Min, postfx.StrengthRange.Max)
	f.AddSlider("Threshold", &a.Bloom.Params.Threshold, postfx.ThresholdRange.Min, postfx.ThresholdRange.Max)
	f.AddSlider("Radius", &a.Bloom.Params.Radius, postfx.RadiusRange.Min, postfx.RadiusRange.Max)
	a.Panel.Changed.AddListener(func(_ context.Context, c gui.SliderChange) {
		slog.Debug("slider changed", "folder", c.Folder, "name", c.Name, "value", c.Value)
	}, "log")

	w, _ := a.Surface.ClientSize()
	a.Panel.Layout(float32(w))
	return nil
}

// MouseButton routes a primary button event to the panel first and to the
// orbit controls when the panel did not take it.
func (a *App) MouseButton(x, y float32, pressed bool) {
	if a.Panel != nil && a.Panel.MouseButton(x, y, pressed) {
		return
	}
	if a.Controls == nil {
		return
	}
	if pressed {
		a.Controls.PointerDown(x, y)
	} else {
		a.Controls.PointerUp()
	}
}

func (a *App) CursorMoved(x, y float32) {
	if a.Panel != nil && a.Panel.CursorMoved(x, y) {
		return
	}
	if a.Controls == nil {
		return
	}
	_, h := a.Surface.ClientSize()
	a.Controls.PointerMove(x, y, float32(h))
}

func (a *App) Scrolled(yoff float32) {
	if a.Controls != nil {
		a.Controls.Scroll(yoff)
	}
}
