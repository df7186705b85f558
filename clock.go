package papercut

import "time"

// Default clock settings.
const (
	DefaultFixedStep    = time.Second / 60
	DefaultMaxFrameTime = time.Second / 40
)

// Clock runs game updates at a fixed rate while frames are presented at
// whatever rate the platform delivers them.
//
// Each Tick measures the wall time since the previous Tick, caps it at the
// maximum frame time and adds it to an accumulator. While the accumulator
// holds at least one step, one update runs and a step is subtracted. The
// cap bounds the catch-up after a stall: no Tick runs more than
// max(1, ⌊maxFrame/step⌋) updates.
type Clock struct {
	step     time.Duration
	maxFrame time.Duration

	accumulator time.Duration
	last        time.Time
	started     bool

	frames      int
	windowStart time.Time
	fps         float64
}

// NewClock returns a clock with the given fixed step and frame-time cap.
// Non-positive values select DefaultFixedStep and DefaultMaxFrameTime.
func NewClock(step, maxFrame time.Duration) *Clock {
	if step <= 0 {
		step = DefaultFixedStep
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrameTime
	}
	return &Clock{step: step, maxFrame: maxFrame}
}

// Step returns the fixed update step.
func (c *Clock) Step() time.Duration {
	return c.step
}

// MaxFrameTime returns the elapsed-time cap.
func (c *Clock) MaxFrameTime() time.Duration {
	return c.maxFrame
}

// Accumulated returns the simulated time not yet consumed by an update.
// It is below Step after a Tick that ran all its updates. When an update
// asks to stop, the steps it left unrun stay accumulated, up to
// max(MaxFrameTime, Step).
func (c *Clock) Accumulated() time.Duration {
	return c.accumulator
}

// Alpha returns how far the present moment lies between the last update
// and the next, for interpolating rendered state. It is in [0, 1) unless
// the last Tick was stopped early.
func (c *Clock) Alpha() float64 {
	return float64(c.accumulator) / float64(c.step)
}

// Tick advances the clock to now and calls update once per fixed step that
// fits into the accumulated time. It returns the number of updates run and
// false if an update asked to stop. The first Tick only records the start
// time. A clock going backwards counts as no elapsed time.
func (c *Clock) Tick(now time.Time, update func(dt time.Duration) bool) (steps int, cont bool) {
	if !c.started {
		c.started = true
		c.last = now
		c.windowStart = now
		return 0, true
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > c.maxFrame {
		elapsed = c.maxFrame
	}

	c.accumulator += elapsed
	if limit := max(c.maxFrame, c.step); c.accumulator > limit {
		c.accumulator = limit
	}

	for c.accumulator >= c.step {
		c.accumulator -= c.step
		steps++
		if !update(c.step) {
			return steps, false
		}
	}
	return steps, true
}

// CountFrame records a presented frame. Once per second of wall time it
// returns the frame rate over that second and true.
func (c *Clock) CountFrame(now time.Time) (fps float64, ok bool) {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.frames++
	window := now.Sub(c.windowStart)
	if window < time.Second {
		return c.fps, false
	}
	c.fps = float64(c.frames) / window.Seconds()
	c.frames = 0
	c.windowStart = now
	return c.fps, true
}

// FPS returns the frame rate measured over the last full second.
func (c *Clock) FPS() float64 {
	return c.fps
}
