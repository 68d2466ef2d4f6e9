package postfx

import (
	"wireglow/scene"
)

// RenderPass draws a scene through a camera into the HDR target.
type RenderPass struct {
	Scene   *scene.Scene
	Camera  *scene.PerspectiveCamera
	Disable bool
}

func NewRenderPass(s *scene.Scene, camera *scene.PerspectiveCamera) *RenderPass {
	return &RenderPass{Scene: s, Camera: camera}
}

func (p *RenderPass) Name() string  { return "render" }
func (p *RenderPass) Enabled() bool { return !p.Disable }

func (p *RenderPass) SetSize(width, height int) {}

func (p *RenderPass) Render(dev Device, toScreen bool) error {
	if err := dev.RenderScene(p.Scene, p.Camera); err != nil {
		return err
	}
	if toScreen {
		return dev.Blit()
	}
	return nil
}
