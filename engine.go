package papercut

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"
)

// FrameRenderer presents assembled frames. It is implemented by the render
// package's software and GPU renderers.
type FrameRenderer interface {
	// Resize is called with the viewport size before the first frame and on
	// every resize.
	Resize(width, height int) error

	// Render uploads and draws one frame. Returning ErrFrameSkipped drops
	// the frame without failing.
	Render(frame *FrameBuffer) error
}

// Game is the application driven by an Engine.
type Game interface {
	// Init runs once, after the viewport size is known.
	Init(e *Engine) error

	// FixedUpdate advances the game by dt. Returning false stops the engine.
	FixedUpdate(e *Engine, dt time.Duration) bool

	// Drawables yields the (transform, shape) pairs to draw, in draw order.
	Drawables() iter.Seq2[*Transform, Drawable]
}

// Engine ties a Game to the clock, the camera, the scene assembler and a
// FrameRenderer. It is not safe for concurrent use; call every method from
// the thread that owns the platform loop.
type Engine struct {
	config   Config
	log      *slog.Logger
	game     Game
	renderer FrameRenderer

	camera    *Camera
	clock     *Clock
	tess      *Tessellator
	assembler *Assembler

	initialized bool
	stopped     bool
}

// NewEngine creates an engine for game presenting through renderer.
func NewEngine(game Game, renderer FrameRenderer, opts ...Option) (*Engine, error) {
	if game == nil {
		return nil, ErrNilGame
	}
	if renderer == nil {
		return nil, ErrNilRenderer
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 60
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	cam, err := NewCamera(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	tess := NewTessellator(cfg.Tolerance)
	tess.SetStrokeStyle(cfg.Stroke)
	tess.SetCacheSize(cfg.MeshCacheSize)

	ac := DefaultAssemblerConfig()
	ac.AutoUpdate = cfg.AutoUpdate
	ac.ClearColor = cfg.ClearColor

	return &Engine{
		config:    cfg,
		log:       log,
		game:      game,
		renderer:  renderer,
		camera:    cam,
		clock:     NewClock(cfg.FixedStep, cfg.MaxFrameTime),
		tess:      tess,
		assembler: NewAssembler(tess, ac),
	}, nil
}

// Camera returns the engine's camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Clock returns the simulation clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Tessellator returns the tessellator shapes should be updated with.
func (e *Engine) Tessellator() *Tessellator { return e.tess }

// Assembler returns the scene assembler.
func (e *Engine) Assembler() *Assembler { return e.assembler }

// Config returns the settings the engine was created with.
func (e *Engine) Config() Config { return e.config }

// Init sizes the renderer and initializes the game. Frame calls it on
// first use; calling it again has no effect.
func (e *Engine) Init() error {
	if e.initialized {
		return nil
	}
	w, h := e.camera.Size()
	if err := e.renderer.Resize(w, h); err != nil {
		return fmt.Errorf("papercut: renderer resize: %w", err)
	}
	if err := e.game.Init(e); err != nil {
		return fmt.Errorf("papercut: game init: %w", err)
	}
	e.initialized = true
	e.log.Info("papercut: engine initialized", "width", w, "height", h)
	return nil
}

// OnResize updates the camera projection and the renderer for a new
// viewport size.
func (e *Engine) OnResize(width, height int) error {
	if err := e.camera.Resize(width, height); err != nil {
		return err
	}
	if err := e.renderer.Resize(width, height); err != nil {
		return fmt.Errorf("papercut: renderer resize: %w", err)
	}
	e.log.Debug("papercut: resized", "width", width, "height", height)
	return nil
}

// OnFixedUpdate runs one game update. It returns false once the game has
// asked to stop.
func (e *Engine) OnFixedUpdate(dt time.Duration) bool {
	if e.stopped {
		return false
	}
	if !e.game.FixedUpdate(e, dt) {
		e.stopped = true
	}
	return !e.stopped
}

// BuildFrame assembles pairs into a frame as seen through cam.
func (e *Engine) BuildFrame(pairs iter.Seq2[*Transform, Drawable], cam *Camera) (*FrameBuffer, error) {
	return e.assembler.BuildFrame(pairs, cam)
}

// Frame handles one platform frame at time now: it runs the fixed updates
// that are due, assembles the game's drawables and hands the result to the
// renderer. It returns false once the game asked to stop.
//
// A frame that exceeds the vertex capacity is dropped and the error
// returned; the engine keeps running. A renderer returning ErrFrameSkipped
// is not an error.
func (e *Engine) Frame(now time.Time) (bool, error) {
	if err := e.Init(); err != nil {
		return false, err
	}
	if e.stopped {
		return false, nil
	}

	if _, cont := e.clock.Tick(now, e.OnFixedUpdate); !cont {
		e.log.Info("papercut: game requested stop")
		return false, nil
	}

	frame, err := e.BuildFrame(e.game.Drawables(), e.camera)
	if err != nil {
		e.log.Warn("papercut: frame dropped", "err", err)
		return true, err
	}

	if err := e.renderer.Render(frame); err != nil {
		if errors.Is(err, ErrFrameSkipped) {
			e.log.Debug("papercut: frame skipped", "err", err)
			return true, nil
		}
		return true, fmt.Errorf("papercut: render: %w", err)
	}

	if fps, ok := e.clock.CountFrame(now); ok {
		e.log.Debug("papercut: frame rate", "fps", fps,
			"vertices", len(frame.Vertices), "indices", len(frame.Indices))
	}
	return true, nil
}

// Run drives Frame from a ticker every FrameInterval until the game stops,
// ctx is canceled, or the renderer fails. Dropped frames do not stop Run.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cont, err := e.Frame(e.config.Now())
			if err != nil && !errors.Is(err, ErrCapacityExceeded) {
				return err
			}
			if !cont {
				return nil
			}
		}
	}
}
