package window

import (
	"math"
	"time"
)

// FPS averaging window.
const (
	fpsSamples     = 30
	fpsAverageTime = 500 * time.Millisecond
	fpsStep        = fpsAverageTime / fpsSamples
)

// Timer splits each frame into update and draw phases, pads it to a target
// frame time and keeps a running FPS average.
type Timer struct {
	now   func() time.Duration
	sleep func(time.Duration)

	previous time.Duration
	update   time.Duration
	draw     time.Duration
	frame    time.Duration
	target   time.Duration

	history  [fpsSamples]float64
	index    int
	average  float64
	lastFPS  time.Duration
	sampling bool
}

// NewTimer creates a timer driven by the wall clock.
func NewTimer() *Timer {
	start := time.Now()
	return newTimer(func() time.Duration { return time.Since(start) }, time.Sleep)
}

func newTimer(now func() time.Duration, sleep func(time.Duration)) *Timer {
	return &Timer{now: now, sleep: sleep, previous: now()}
}

// SetTargetFPS caps the frame rate. Values below 1 remove the cap.
func (t *Timer) SetTargetFPS(fps int) {
	if fps < 1 {
		t.target = 0
		return
	}
	t.target = time.Second / time.Duration(fps)
}

// Target returns the target frame time, 0 when uncapped.
func (t *Timer) Target() time.Duration { return t.target }

// BeginFrame closes the update phase. Call it once per frame after polling events.
func (t *Timer) BeginFrame() {
	current := t.now()
	t.update = current - t.previous
	t.previous = current
}

// EndFrame closes the draw phase and sleeps off what is left of the target.
func (t *Timer) EndFrame() {
	current := t.now()
	t.draw = current - t.previous
	t.previous = current
	t.frame = t.update + t.draw

	if t.frame < t.target {
		t.sleep(t.target - t.frame)
		current = t.now()
		t.frame += current - t.previous
		t.previous = current
	}
	t.sample()
}

// FrameTime returns the duration of the last frame including the wait.
func (t *Timer) FrameTime() time.Duration { return t.frame }

// Delta returns FrameTime in seconds.
func (t *Timer) Delta() float32 { return float32(t.frame.Seconds()) }

// FPS returns the frame rate averaged over the last half second.
func (t *Timer) FPS() int {
	if t.average <= 0 {
		return 0
	}
	return int(math.Round(1 / t.average))
}

// sample pushes the last frame time into the ring at most once per fpsStep.
func (t *Timer) sample() {
	if t.frame <= 0 {
		return
	}
	current := t.now()
	if t.sampling && current-t.lastFPS <= fpsStep {
		return
	}
	t.sampling = true
	t.lastFPS = current
	t.index = (t.index + 1) % fpsSamples
	t.average -= t.history[t.index]
	t.history[t.index] = t.frame.Seconds() / fpsSamples
	t.average += t.history[t.index]
}
