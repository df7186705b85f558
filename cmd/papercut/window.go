package main

import (
	"log"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/render"
)

// surfaceRenderer defers GPU renderer creation until the window has a
// device. Frames before that are skipped.
type surfaceRenderer struct {
	gpu           *render.GPURenderer
	width, height int
}

func (s *surfaceRenderer) Resize(width, height int) error {
	s.width, s.height = width, height
	if s.gpu != nil {
		return s.gpu.Resize(width, height)
	}
	return nil
}

func (s *surfaceRenderer) Render(frame *papercut.FrameBuffer) error {
	if s.gpu == nil {
		return papercut.ErrFrameSkipped
	}
	return s.gpu.Render(frame)
}

// runWindow opens a window and drives the engine from its draw callback.
func runWindow(title string, width, height int, game papercut.Game, opts ...papercut.Option) error {
	surface := &surfaceRenderer{}
	opts = append(opts, papercut.WithViewport(width, height))
	eng, err := papercut.NewEngine(game, surface, opts...)
	if err != nil {
		return err
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(title).
		WithSize(width, height).
		WithContinuousRender(false))

	var animToken *gogpu.AnimationToken
	paused, stopped := false, false

	app.OnDraw(func(dc *gogpu.Context) {
		if stopped {
			return
		}
		if animToken == nil && !paused {
			animToken = app.StartAnimation()
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if surface.gpu == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			r, err := render.NewGPURenderer(provider, render.DefaultGPURendererConfig())
			if err != nil {
				log.Fatalf("papercut: create GPU renderer: %v", err)
			}
			surface.gpu = r
			if err := r.Resize(w, h); err != nil {
				log.Printf("papercut: resize: %v", err)
			}
		}
		if cw, ch := eng.Camera().Size(); cw != w || ch != h {
			if err := eng.OnResize(w, h); err != nil {
				log.Printf("papercut: resize: %v", err)
				return
			}
		}

		sv := dc.SurfaceView()
		if sv == nil {
			return
		}
		if err := surface.gpu.SetSurface(sv, w, h); err != nil {
			log.Printf("papercut: surface: %v", err)
			return
		}
		cont, err := eng.Frame(time.Now())
		if err != nil {
			log.Printf("papercut: frame: %v", err)
		}
		if !cont {
			stopped = true
			if animToken != nil {
				animToken.Stop()
				animToken = nil
			}
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		paused = !paused
		if paused && animToken != nil {
			animToken.Stop()
			animToken = nil
		} else if !paused {
			animToken = app.StartAnimation()
		}
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		if surface.gpu != nil {
			surface.gpu.Destroy()
		}
	})

	return app.Run()
}
