package jyu

import (
	"time"
)

// MaxTimeStep caps the step handed to layers so a long frame, e.g. a window
// drag, does not produce a huge simulation jump.
const MaxTimeStep float32 = 0.0333

// Time is the frame clock. Step is what layers receive as dt.
type Time struct {
	Elapsed   float64
	FrameTime float32
	Step      float32
	Frame     uint64

	clock func() float64
}

func newTime(clock func() float64) *Time {
	t := &Time{}
	t.SetClock(clock)
	return t
}

// SetClock switches the time source and restarts frame timing from it.
func (t *Time) SetClock(clock func() float64) {
	t.clock = clock
	t.Elapsed = clock()
}

func (t *Time) Now() float64 {
	return t.clock()
}

// Tick ends a frame: FrameTime is the time since the previous tick and Step
// is FrameTime clamped to MaxTimeStep.
func (t *Time) Tick() {
	now := t.clock()
	t.FrameTime = float32(now - t.Elapsed)
	t.Step = min(t.FrameTime, MaxTimeStep)
	t.Elapsed = now
	t.Frame++
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) error {
	start := time.Now()
	cmd.AddResources(
		newTime(func() float64 { return time.Since(start).Seconds() }),
		&FrameStats{},
	)
	app.UseSystem(System(timeSystem).InStage(Finale))
	return nil
}

func timeSystem(t *Time, stats *FrameStats) {
	t.Tick()
	stats.Update(t.FrameTime)
}

const frameStatsWindow = 30

// FrameStats tracks the average frame time over the last 30 frames and the
// number of frames rendered in the last full second.
type FrameStats struct {
	samples [frameStatsWindow]float64
	next    int
	avgMS   float64
	frames  int
	accumMS float64
	fps     float64
}

func (s *FrameStats) Update(frameTime float32) {
	ms := float64(frameTime) * 1000

	s.samples[s.next] = ms
	s.next = (s.next + 1) % frameStatsWindow
	if s.next == 0 {
		var sum float64
		for _, v := range s.samples {
			sum += v
		}
		s.avgMS = sum / frameStatsWindow
	}

	s.frames++
	s.accumMS += ms
	if s.accumMS >= 1000 {
		s.fps = float64(s.frames)
		s.frames = 0
		s.accumMS -= 1000
	}
}

// AverageFrameMS is refreshed every 30 frames.
func (s *FrameStats) AverageFrameMS() float64 {
	return s.avgMS
}

func (s *FrameStats) FPS() float64 {
	return s.fps
}
