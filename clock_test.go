package papercut

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func countingUpdate(n *int) func(time.Duration) bool {
	return func(time.Duration) bool {
		*n++
		return true
	}
}

func TestNewClockDefaults(t *testing.T) {
	c := NewClock(0, -1)
	if c.Step() != DefaultFixedStep {
		t.Errorf("Step() = %v, want %v", c.Step(), DefaultFixedStep)
	}
	if c.MaxFrameTime() != 25*time.Millisecond {
		t.Errorf("MaxFrameTime() = %v, want 25ms", c.MaxFrameTime())
	}
}

func TestClockFirstTickRunsNothing(t *testing.T) {
	c := NewClock(10*time.Millisecond, 25*time.Millisecond)
	var n int
	steps, cont := c.Tick(epoch, countingUpdate(&n))
	if steps != 0 || n != 0 || !cont {
		t.Errorf("first Tick = (%d, %v), updates %d; want (0, true), 0", steps, cont, n)
	}
}

func TestClockStepsPerTick(t *testing.T) {
	tests := []struct {
		name    string
		step    time.Duration
		cap     time.Duration
		elapsed []time.Duration
		steps   []int
	}{
		{
			name:    "exact steps",
			step:    10 * time.Millisecond,
			cap:     25 * time.Millisecond,
			elapsed: []time.Duration{10 * time.Millisecond, 20 * time.Millisecond},
			steps:   []int{1, 2},
		},
		{
			name:    "remainder carries over",
			step:    10 * time.Millisecond,
			cap:     25 * time.Millisecond,
			elapsed: []time.Duration{7 * time.Millisecond, 7 * time.Millisecond, 7 * time.Millisecond},
			steps:   []int{0, 1, 1},
		},
		{
			name:    "stall is capped",
			step:    10 * time.Millisecond,
			cap:     25 * time.Millisecond,
			elapsed: []time.Duration{time.Second, 5 * time.Millisecond},
			steps:   []int{2, 1},
		},
		{
			name:    "step longer than cap",
			step:    50 * time.Millisecond,
			cap:     25 * time.Millisecond,
			elapsed: []time.Duration{time.Second, time.Second, time.Second},
			steps:   []int{0, 1, 0},
		},
		{
			name:    "clock going backwards",
			step:    10 * time.Millisecond,
			cap:     25 * time.Millisecond,
			elapsed: []time.Duration{-time.Second, 10 * time.Millisecond},
			steps:   []int{0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(tt.step, tt.cap)
			now := epoch
			c.Tick(now, countingUpdate(new(int)))
			for i, d := range tt.elapsed {
				now = now.Add(d)
				var n int
				steps, cont := c.Tick(now, countingUpdate(&n))
				if !cont {
					t.Fatalf("tick %d: cont = false", i)
				}
				if steps != tt.steps[i] || n != tt.steps[i] {
					t.Errorf("tick %d: steps = %d (updates %d), want %d", i, steps, n, tt.steps[i])
				}
				if acc := c.Accumulated(); acc < 0 || acc >= tt.step {
					t.Errorf("tick %d: accumulator %v outside [0, %v)", i, acc, tt.step)
				}
			}
		})
	}
}

func TestClockCapBoundsCatchUp(t *testing.T) {
	// 1/100 s steps with a 1/40 s cap: at most two updates per frame.
	step := 10 * time.Millisecond
	c := NewClock(step, time.Second/40)
	now := epoch
	c.Tick(now, countingUpdate(new(int)))

	gaps := []time.Duration{
		9 * time.Millisecond, 250 * time.Millisecond, 24 * time.Millisecond,
		26 * time.Millisecond, 3 * time.Second, 19 * time.Millisecond,
	}
	for _, gap := range gaps {
		now = now.Add(gap)
		steps, _ := c.Tick(now, countingUpdate(new(int)))
		if steps > 2 {
			t.Errorf("after %v gap: %d updates, want at most 2", gap, steps)
		}
		if c.Accumulated() < 0 {
			t.Errorf("after %v gap: negative accumulator %v", gap, c.Accumulated())
		}
	}

	// A long stall leaves a 5ms remainder: 25ms capped, two 10ms steps.
	c = NewClock(step, time.Second/40)
	c.Tick(epoch, countingUpdate(new(int)))
	steps, _ := c.Tick(epoch.Add(time.Minute), countingUpdate(new(int)))
	if steps != 2 || c.Accumulated() != 5*time.Millisecond {
		t.Errorf("stall: steps %d remainder %v, want 2 and 5ms", steps, c.Accumulated())
	}
	if a := c.Alpha(); a != 0.5 {
		t.Errorf("Alpha() = %g, want 0.5", a)
	}
}

func TestClockUpdateRequestsStop(t *testing.T) {
	c := NewClock(10*time.Millisecond, 25*time.Millisecond)
	c.Tick(epoch, nil)
	calls := 0
	steps, cont := c.Tick(epoch.Add(25*time.Millisecond), func(time.Duration) bool {
		calls++
		return false
	})
	if cont || steps != 1 || calls != 1 {
		t.Errorf("Tick = (%d, %v) with %d calls, want (1, false) with 1 call", steps, cont, calls)
	}

	// The step left unrun stays accumulated and runs on the next Tick.
	if got := c.Accumulated(); got != 15*time.Millisecond {
		t.Errorf("Accumulated() = %v after stop, want 15ms", got)
	}
	if a := c.Alpha(); a < 1 {
		t.Errorf("Alpha() = %g after stop, want at least 1", a)
	}
	calls = 0
	steps, cont = c.Tick(epoch.Add(25*time.Millisecond), countingUpdate(&calls))
	if !cont || steps != 1 || calls != 1 {
		t.Errorf("next Tick = (%d, %v) with %d calls, want (1, true) with 1 call", steps, cont, calls)
	}
	if got := c.Accumulated(); got != 5*time.Millisecond {
		t.Errorf("Accumulated() = %v, want 5ms", got)
	}
}

func TestClockUpdateReceivesFixedStep(t *testing.T) {
	c := NewClock(16*time.Millisecond, 25*time.Millisecond)
	c.Tick(epoch, nil)
	c.Tick(epoch.Add(20*time.Millisecond), func(dt time.Duration) bool {
		if dt != 16*time.Millisecond {
			t.Errorf("dt = %v, want 16ms", dt)
		}
		return true
	})
}

func TestClockCountFrame(t *testing.T) {
	c := NewClock(0, 0)
	now := epoch
	c.Tick(now, nil)
	var (
		fps float64
		ok  bool
	)
	for i := 0; i < 25; i++ {
		now = now.Add(40 * time.Millisecond)
		fps, ok = c.CountFrame(now)
		if ok && i < 24 {
			t.Fatalf("frame %d: reported fps before a full second", i)
		}
	}
	if !ok {
		t.Fatal("no fps reported after one second")
	}
	if fps != 25 {
		t.Errorf("fps = %g, want 25", fps)
	}
	if c.FPS() != fps {
		t.Errorf("FPS() = %g, want %g", c.FPS(), fps)
	}
}
