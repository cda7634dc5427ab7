package game

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/towerdemo/pkg/config"
)

// fakeNow 可手动推进的时间源
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockTick(t *testing.T) {
	src := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClock(0.25, 1)
	c.SetNowFunc(src.now)

	if dt := c.Tick(); dt != 0 {
		t.Errorf("first tick should be 0, got %v", dt)
	}

	src.advance(100 * time.Millisecond)
	if dt := c.Tick(); math.Abs(dt-0.1) > 1e-9 {
		t.Errorf("expected 0.1, got %v", dt)
	}

	// 长帧被截断到 MaxDelta
	src.advance(3 * time.Second)
	if dt := c.Tick(); dt != 0.25 {
		t.Errorf("hitch should clamp to 0.25, got %v", dt)
	}

	if math.Abs(c.Elapsed()-0.35) > 1e-9 {
		t.Errorf("Elapsed: got %v, want 0.35", c.Elapsed())
	}
	if c.Ticks() != 3 {
		t.Errorf("Ticks: got %d, want 3", c.Ticks())
	}
}

func TestClockStep(t *testing.T) {
	tests := []struct {
		name   string
		scale  float64
		paused bool
		raw    float64
		want   float64
	}{
		{"normal", 1, false, 0.016, 0.016},
		{"double speed", 2, false, 0.05, 0.1},
		{"scaled past max", 8, false, 0.1, 0.25},
		{"paused", 1, true, 0.1, 0},
		{"frozen", 0, false, 0.1, 0},
		{"negative raw", 1, false, -0.1, 0},
		{"NaN raw", 1, false, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(0.25, tt.scale)
			c.SetPaused(tt.paused)
			if got := c.Step(tt.raw); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Step(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// TestClockUncapped MaxDelta 为 0 时长帧原样传给模拟
func TestClockUncapped(t *testing.T) {
	src := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClock(0, 1)
	c.SetNowFunc(src.now)
	if c.MaxDelta() != 0 {
		t.Fatalf("MaxDelta: got %v, want 0", c.MaxDelta())
	}

	c.Tick()
	src.advance(3 * time.Second)
	if dt := c.Tick(); dt != 3 {
		t.Errorf("uncapped hitch: got %v, want 3", dt)
	}
}

func TestClockTimeScaleBounds(t *testing.T) {
	c := NewClock(-1, 1)
	if c.MaxDelta() != config.DefaultMaxDelta {
		t.Errorf("MaxDelta: got %v, want default", c.MaxDelta())
	}
	if NewClock(math.NaN(), 1).MaxDelta() != config.DefaultMaxDelta {
		t.Error("NaN MaxDelta should fall back to the default")
	}

	for i := 0; i < 10; i++ {
		c.SpeedUp()
	}
	if c.TimeScale() != config.MaxTimeScale {
		t.Errorf("SpeedUp should stop at MaxTimeScale, got %v", c.TimeScale())
	}

	for i := 0; i < 20; i++ {
		c.SlowDown()
	}
	if c.TimeScale() != config.MinTimeScale {
		t.Errorf("SlowDown should stop at MinTimeScale, got %v", c.TimeScale())
	}

	c.SetTimeScale(-3)
	if c.TimeScale() != 1 {
		t.Errorf("invalid scale should fall back to 1, got %v", c.TimeScale())
	}

	c.SetTimeScale(0)
	c.SpeedUp()
	if c.TimeScale() != config.MinTimeScale {
		t.Errorf("SpeedUp from frozen should resume at MinTimeScale, got %v", c.TimeScale())
	}
}

func TestClockTogglePause(t *testing.T) {
	c := NewClock(0.25, 1)
	c.TogglePause()
	if !c.Paused() {
		t.Fatal("clock should be paused")
	}
	if dt := c.Step(0.1); dt != 0 {
		t.Errorf("paused clock should return 0, got %v", dt)
	}
	c.TogglePause()
	if dt := c.Step(0.1); dt != 0.1 {
		t.Errorf("resumed clock should return 0.1, got %v", dt)
	}

	c.ResetElapsed()
	if c.Elapsed() != 0 || c.Ticks() != 0 {
		t.Error("ResetElapsed should clear counters")
	}
}
