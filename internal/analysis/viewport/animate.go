package viewport

import (
	"math"
	"sync"
	"time"
)

// FrameScheduler abstracts the frame-tick primitive driving animated domain
// transitions. Schedule invokes fn repeatedly with the current time until fn
// returns false or the returned cancel function is called. Implementations
// must not invoke fn synchronously from Schedule and must tolerate cancel
// being called more than once.
type FrameScheduler interface {
	Schedule(fn func(now time.Time) bool) (cancel func())
}

// TickerScheduler drives frames off a wall-clock ticker.
type TickerScheduler struct {
	Interval time.Duration
}

// Schedule runs fn on every tick in its own goroutine until fn returns false
// or cancel is invoked.
func (t TickerScheduler) Schedule(fn func(now time.Time) bool) (cancel func()) {
	interval := t.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond // ~60fps
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				if !fn(now) {
					return
				}
			}
		}
	}()
	return func() {
		once.Do(func() { close(done) })
	}
}

// animation interpolates between two domains over a fixed duration using an
// ease-out cubic curve, rounding indices to integers at each tick.
type animation struct {
	from, to Domain
	start    time.Time
	duration time.Duration
}

func newAnimation(from, to Domain, start time.Time, duration time.Duration) *animation {
	return &animation{from: from, to: to, start: start, duration: duration}
}

// at returns the interpolated domain for the given instant and whether the
// animation has finished.
func (a *animation) at(now time.Time) (Domain, bool) {
	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		return a.to, true
	}
	if t < 0 {
		t = 0
	}
	e := easeOutCubic(t)
	return Domain{
		Start: lerpIndex(a.from.Start, a.to.Start, e),
		End:   lerpIndex(a.from.End, a.to.End, e),
	}, false
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func lerpIndex(from, to int, t float64) int {
	return int(math.Round(float64(from) + (float64(to)-float64(from))*t))
}
