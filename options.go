package papercut

import (
	"log/slog"
	"time"
)

// Config holds the engine settings. All values are fixed at construction.
type Config struct {
	// Width and Height are the initial viewport size. Default: 800x600
	Width, Height int

	// Tolerance is the curve tessellation tolerance. Default: 0.02
	Tolerance float64

	// FixedStep is the simulation update step. Default: 1/60 s
	FixedStep time.Duration

	// MaxFrameTime caps the wall time accumulated per frame. Default: 1/40 s
	MaxFrameTime time.Duration

	// FrameInterval is the presentation period used by Run. Default: 1/60 s
	FrameInterval time.Duration

	// ClearColor is the frame background. Default: White
	ClearColor Color

	// Stroke sets outline caps and joins. Default: DefaultStrokeStyle()
	Stroke StrokeStyle

	// MeshCacheSize is the number of distinct shape meshes kept by the
	// tessellator. Zero or less disables the cache. Default: 256
	MeshCacheSize int

	// AutoUpdate re-tessellates stale shapes during assembly. Default: false
	AutoUpdate bool

	// Now is the time source for Run. Default: time.Now
	Now func() time.Time

	// Logger overrides the package logger for this engine.
	Logger *slog.Logger
}

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		Tolerance:     DefaultTolerance,
		FixedStep:     DefaultFixedStep,
		MaxFrameTime:  DefaultMaxFrameTime,
		FrameInterval: time.Second / 60,
		ClearColor:    White,
		Stroke:        DefaultStrokeStyle(),
		MeshCacheSize: DefaultMeshCacheSize,
		Now:           time.Now,
	}
}

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := papercut.NewEngine(game, renderer,
//	    papercut.WithViewport(1280, 720),
//	    papercut.WithFixedStep(time.Second/120),
//	)
type Option func(*Config)

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) Option {
	return func(c *Config) {
		c.Width, c.Height = width, height
	}
}

// WithTolerance sets the curve tessellation tolerance.
func WithTolerance(tolerance float64) Option {
	return func(c *Config) {
		c.Tolerance = tolerance
	}
}

// WithFixedStep sets the simulation update step.
func WithFixedStep(step time.Duration) Option {
	return func(c *Config) {
		c.FixedStep = step
	}
}

// WithMaxFrameTime sets the cap on wall time accumulated per frame.
func WithMaxFrameTime(d time.Duration) Option {
	return func(c *Config) {
		c.MaxFrameTime = d
	}
}

// WithFrameInterval sets the presentation period used by Run.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Config) {
		c.FrameInterval = d
	}
}

// WithClearColor sets the frame background color.
func WithClearColor(color Color) Option {
	return func(c *Config) {
		c.ClearColor = color
	}
}

// WithStrokeStyle sets outline caps and joins.
func WithStrokeStyle(s StrokeStyle) Option {
	return func(c *Config) {
		c.Stroke = s
	}
}

// WithMeshCacheSize sets how many distinct shape meshes the tessellator
// keeps. Zero or less disables the cache.
func WithMeshCacheSize(n int) Option {
	return func(c *Config) {
		c.MeshCacheSize = n
	}
}

// WithAutoUpdate makes the engine re-tessellate shapes whose parameters
// changed since their last Update.
func WithAutoUpdate(enabled bool) Option {
	return func(c *Config) {
		c.AutoUpdate = enabled
	}
}

// WithTimeSource replaces time.Now in Run, mostly for tests.
func WithTimeSource(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithLogger sets the logger used by this engine instead of Logger().
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
