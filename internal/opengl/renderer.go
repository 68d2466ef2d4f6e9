package opengl

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/chewxy/math32"
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"wireglow/core"
	"wireglow/gui"
	"wireglow/math"
	"wireglow/postfx"
	"wireglow/scene"
)

// gpuLine holds the OpenGL buffer objects for an uploaded line geometry.
type gpuLine struct {
	VAO   uint32
	VBO   uint32
	Count int32
}

// lineProgram is a compiled line shader and its uniform locations. The
// built-in program and the custom one share the same interface.
type lineProgram struct {
	prog         uint32
	mvpLoc       int32
	modelViewLoc int32
	colorLoc     int32
	fogColorLoc  int32
	fogNearLoc   int32
	fogFarLoc    int32
	timeLoc      int32
}

// Options selects the line shader. Empty sources use the built-in one.
type Options struct {
	LineVertexSource   string
	LineFragmentSource string
}

// Renderer is the OpenGL backend. It implements postfx.Device and the
// buffer half of the render surface.
type Renderer struct {
	line lineProgram
	post *PostProcessFBO
	hud  *HUD

	bufferW int32
	bufferH int32

	exposure float32
	time     float32

	Stats     scene.CullStats
	lastStats scene.CullStats

	lines map[*scene.LineGeometry]*gpuLine
}

// ── Shaders ───────────────────────────────────────────────────────────────────

const lineVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 mvp;
uniform mat4 modelView;

out float viewDepth;

void main() {
    viewDepth   = -(modelView * vec4(inPosition, 1.0)).z;
    gl_Position = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

// lineFragSrc: flat colour faded into the fog colour between fogNear and fogFar.
const lineFragSrc = `
#version 410 core
in  float viewDepth;
out vec4  outColor;

uniform vec3  lineColor;
uniform vec3  fogColor;
uniform float fogNear;
uniform float fogFar;

void main() {
    float fog = smoothstep(fogNear, fogFar, viewDepth);
    outColor = vec4(mix(lineColor, fogColor, fog), 1.0);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL and allocates the HDR targets for a
// width×height framebuffer. Must be called after the GLFW window context
// is made current.
func NewRenderer(width, height int, opts Options) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	vert, frag := lineVertSrc, lineFragSrc
	if opts.LineVertexSource != "" && opts.LineFragmentSource != "" {
		vert, frag = opts.LineVertexSource, opts.LineFragmentSource
		slog.Info("using custom line shader")
	}
	line, err := newLineProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r := &Renderer{
		line:     line,
		exposure: 1,
		lines:    make(map[*scene.LineGeometry]*gpuLine),
	}

	r.post, err = NewPostProcessFBO(max(width, 1), max(height, 1))
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("post-process: %w", err)
	}
	r.hud, err = NewHUD()
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("hud: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	r.SetBufferSize(width, height)
	return r, nil
}

func newLineProgram(vert, frag string) (lineProgram, error) {
	prog, err := newProgram(vert, frag)
	if err != nil {
		return lineProgram{}, err
	}
	return lineProgram{
		prog:         prog,
		mvpLoc:       uniform(prog, "mvp"),
		modelViewLoc: uniform(prog, "modelView"),
		colorLoc:     uniform(prog, "lineColor"),
		fogColorLoc:  uniform(prog, "fogColor"),
		fogNearLoc:   uniform(prog, "fogNear"),
		fogFarLoc:    uniform(prog, "fogFar"),
		timeLoc:      uniform(prog, "uTime"),
	}, nil
}

// ── Surface ───────────────────────────────────────────────────────────────────

// BufferSize is the size last applied to the GL viewport.
func (r *Renderer) BufferSize() (int, int) {
	return int(r.bufferW), int(r.bufferH)
}

// SetBufferSize resizes the default framebuffer viewport; unchanged sizes
// are ignored.
func (r *Renderer) SetBufferSize(width, height int) {
	if int32(width) == r.bufferW && int32(height) == r.bufferH {
		return
	}
	r.bufferW = int32(width)
	r.bufferH = int32(height)
	gl.Viewport(0, 0, r.bufferW, r.bufferH)
}

// ── postfx.Device ─────────────────────────────────────────────────────────────

// SetSize reallocates the HDR and bloom targets.
func (r *Renderer) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.post.Resize(width, height); err != nil {
		return fmt.Errorf("resize post-process targets to %dx%d: %w", width, height, err)
	}
	return nil
}

func (r *Renderer) BeginFrame(dt float32) {
	r.time += dt
}

// RenderScene draws the lines s.VisibleLines keeps into the HDR target.
func (r *Renderer) RenderScene(s *scene.Scene, camera *scene.PerspectiveCamera) error {
	if r.post.FBO == 0 {
		return fmt.Errorf("render scene: HDR target missing")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.post.FBO)
	gl.Viewport(0, 0, r.post.Width, r.post.Height)
	bg := linear(s.Background)
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	lp := &r.line
	gl.UseProgram(lp.prog)
	fogColor, fogNear, fogFar := core.ColorBlack, camera.Far*2, camera.Far*4
	if s.Fog != nil {
		fogColor, fogNear, fogFar = s.Fog.Color, s.Fog.Near, s.Fog.Far
	}
	fc := linear(fogColor)
	gl.Uniform3f(lp.fogColorLoc, fc.R, fc.G, fc.B)
	gl.Uniform1f(lp.fogNearLoc, fogNear)
	gl.Uniform1f(lp.fogFarLoc, fogFar)
	if lp.timeLoc >= 0 {
		gl.Uniform1f(lp.timeLoc, r.time)
	}

	view := camera.ViewMatrix()
	proj := camera.ProjectionMatrix()
	lines, stats := s.VisibleLines(camera)
	for _, n := range lines {
		r.drawLine(n, view, proj)
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	r.Stats = stats
	if stats != r.lastStats {
		slog.Debug("culling", "entities", stats.Entities, "culled", stats.Culled,
			"fogged", stats.Fogged, "lines", stats.Lines)
		r.lastStats = stats
	}
	return nil
}

func (r *Renderer) drawLine(n *scene.Node, view, proj math.Mat4) {
	gpu := r.upload(n.Geometry)
	model := n.GetWorldMatrix()
	modelView := view.Mul4(model)
	mvp := proj.Mul4(modelView)
	c := linear(n.Material.Color)

	gl.UniformMatrix4fv(r.line.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.line.modelViewLoc, 1, false, &modelView[0])
	gl.Uniform3f(r.line.colorLoc, c.R, c.G, c.B)
	gl.BindVertexArray(gpu.VAO)
	gl.DrawArrays(gl.LINE_STRIP, 0, gpu.Count)
}

// upload returns the GPU copy of g, creating it on first use. Geometry is
// immutable, so clones that share it share one buffer.
func (r *Renderer) upload(g *scene.LineGeometry) *gpuLine {
	if gpu, ok := r.lines[g]; ok {
		return gpu
	}
	data := make([]float32, 0, len(g.Vertices)*3)
	for _, v := range g.Vertices {
		data = append(data, v.X, v.Y, v.Z)
	}

	gpu := &gpuLine{Count: int32(len(g.Vertices))}
	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.lines[g] = gpu
	return gpu
}

// Bloom runs the bloom chain over the HDR target.
func (r *Renderer) Bloom(params postfx.BloomParams, toScreen bool) error {
	r.exposure = params.Exposure
	r.post.Bloom(params, toScreen)
	return glError("bloom")
}

// Blit tone maps the HDR target to the screen with the last known exposure.
func (r *Renderer) Blit() error {
	r.post.Blit(r.exposure)
	return glError("blit")
}

// DrawPanel draws the control panel over the default framebuffer.
func (r *Renderer) DrawPanel(p *gui.Panel) error {
	r.hud.Draw(p, r.bufferW, r.bufferH)
	return glError("panel")
}

// ── Cleanup ───────────────────────────────────────────────────────────────────

// Destroy releases GPU resources in reverse creation order.
func (r *Renderer) Destroy() {
	for g, gpu := range r.lines {
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteVertexArrays(1, &gpu.VAO)
		delete(r.lines, g)
	}
	if r.hud != nil {
		r.hud.Destroy()
		r.hud = nil
	}
	if r.post != nil {
		r.post.Destroy()
		r.post = nil
	}
	if r.line.prog != 0 {
		gl.DeleteProgram(r.line.prog)
		r.line.prog = 0
	}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%X", op, code)
	}
	return nil
}

// linear converts an sRGB colour to linear space, since the tone-map pass
// applies gamma at the end.
func linear(c core.Color) core.Color {
	return core.Color{
		R: math32.Pow(c.R, 2.2),
		G: math32.Pow(c.G, 2.2),
		B: math32.Pow(c.B, 2.2),
		A: c.A,
	}
}
