// Package platform owns the GLFW window and its OpenGL context. Everything
// here must run on the main OS thread.
package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Title  string

	onButton func(x, y float32, pressed bool)
	onCursor func(x, y float32)
	onScroll func(yoff float32)
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     800,
		Height:    600,
		Title:     "wireglow",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow opens a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{Handle: handle, Title: config.Title}

	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || w.onButton == nil || action == glfw.Repeat {
			return
		}
		x, y := w.CursorPos()
		w.onButton(x, y, action == glfw.Press)
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, _, _ float64) {
		if w.onCursor != nil {
			w.onCursor(w.CursorPos())
		}
	})
	handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})
	handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	return w, nil
}

// ClientSize is the framebuffer size in pixels, which differs from the
// window size on HiDPI displays.
func (w *Window) ClientSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// CursorPos returns the cursor in framebuffer pixels.
func (w *Window) CursorPos() (float32, float32) {
	x, y := w.Handle.GetCursorPos()
	sx, sy := w.contentScale()
	return float32(x) * sx, float32(y) * sy
}

func (w *Window) contentScale() (float32, float32) {
	ww, wh := w.Handle.GetSize()
	fw, fh := w.Handle.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return 1, 1
	}
	return float32(fw) / float32(ww), float32(fh) / float32(wh)
}

// OnMouseButton registers the left button handler.
func (w *Window) OnMouseButton(fn func(x, y float32, pressed bool)) { w.onButton = fn }
func (w *Window) OnCursorMove(fn func(x, y float32))                 { w.onCursor = fn }
func (w *Window) OnScroll(fn func(yoff float32))                     { w.onScroll = fn }

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// idleWait bounds how long an idle frame sleeps waiting for events.
const idleWait = 0.1

// Next processes pending events, which runs the input callbacks, and
// reports whether the window is still open. Pacing comes from the swap
// interval; an idle frame swaps nothing, so it waits for events instead.
func (w *Window) Next(ctx context.Context, idle bool) bool {
	if idle {
		glfw.WaitEventsTimeout(idleWait)
	} else {
		glfw.PollEvents()
	}
	return ctx.Err() == nil && !w.Handle.ShouldClose()
}

// Now returns the seconds since GLFW was initialised.
func (w *Window) Now() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
