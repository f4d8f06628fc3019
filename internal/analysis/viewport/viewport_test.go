package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lromero74/metrics-core/internal/domain"
)

// manualScheduler collects the scheduled frame callback so tests can drive
// animation ticks deterministically.
type manualScheduler struct {
	fn        func(now time.Time) bool
	cancelled int
}

func (m *manualScheduler) Schedule(fn func(now time.Time) bool) (cancel func()) {
	m.fn = fn
	return func() { m.cancelled++ }
}

func (m *manualScheduler) tick(now time.Time) bool {
	if m.fn == nil {
		return false
	}
	return m.fn(now)
}

func hourlySamples(n int) []domain.Sample {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Sample, n)
	for i := range out {
		out[i] = domain.Sample{Timestamp: base.Add(time.Duration(i) * time.Hour), Value: float64(i)}
	}
	return out
}

func TestInitializeOneShot(t *testing.T) {
	m := NewManager(Config{}, nil)
	require.False(t, m.Initialized())

	calc := func(length int) *Domain { return &Domain{Start: length - 10, End: length - 1} }
	assert.True(t, m.Initialize(calc, 100))
	assert.True(t, m.Initialized())
	require.NotNil(t, m.Target())
	assert.Equal(t, Domain{Start: 90, End: 99}, *m.Target())

	// Second call must not reapply.
	assert.False(t, m.Initialize(func(int) *Domain { return &Domain{Start: 0, End: 5} }, 100))
	assert.Equal(t, Domain{Start: 90, End: 99}, *m.Target())
}

func TestInitializeZeroLength(t *testing.T) {
	m := NewManager(Config{}, nil)
	assert.False(t, m.Initialize(nil, 0))
	assert.False(t, m.Initialized())
}

func TestZoomInShrinks25Percent(t *testing.T) {
	m := NewManager(Config{}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 0, End: 99} }, 100)

	m.ZoomIn(100)
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, 75, got.Width())
}

func TestZoomInHonorsMinWidth(t *testing.T) {
	m := NewManager(Config{MinWidth: 10}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 40, End: 51} }, 100)

	m.ZoomIn(100) // 12 -> 9, clamped to 10
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Width())

	m.ZoomIn(100) // already at the floor
	assert.Equal(t, 10, m.Target().Width())
}

func TestZoomInFromFullRange(t *testing.T) {
	m := NewManager(Config{}, nil)
	m.Initialize(nil, 100) // nil target = full range

	m.ZoomIn(100)
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, 75, got.Width())
}

func TestZoomOutCollapsesToFull(t *testing.T) {
	m := NewManager(Config{}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 10, End: 39} }, 100)

	for i := 0; i < 10 && m.Target() != nil; i++ {
		m.ZoomOut(100)
	}
	assert.Nil(t, m.Target(), "repeated zoom out must collapse to the full range")

	// Zooming out at full range is a no-op.
	m.ZoomOut(100)
	assert.Nil(t, m.Target())
}

func TestZoomOutGrows33Percent(t *testing.T) {
	m := NewManager(Config{}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 30, End: 59} }, 200)

	m.ZoomOut(200)
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, 40, got.Width())
}

func TestApplyBrushRescalesAndSnapsPreset(t *testing.T) {
	m := NewManager(Config{}, nil)
	samples := hourlySamples(100)
	m.Initialize(nil, len(samples))

	// Rendered series is 50 candles for 100 raw samples; brush [10,20] maps to
	// raw [20,40], a 20h span that snaps to the 24h preset.
	preset, ok := m.ApplyBrush(Domain{Start: 10, End: 20}, 50, samples)
	assert.True(t, ok)
	assert.Equal(t, 24.0, preset)

	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, Domain{Start: 20, End: 40}, *got)
}

func TestApplyBrushPresetFeedbackGuard(t *testing.T) {
	m := NewManager(Config{}, nil)
	samples := hourlySamples(100)
	m.Initialize(nil, len(samples))

	preset, ok := m.ApplyBrush(Domain{Start: 0, End: 22}, 100, samples)
	assert.True(t, ok)
	assert.Equal(t, 24.0, preset)

	// Same preset again: reported but flagged unchanged.
	preset, ok = m.ApplyBrush(Domain{Start: 50, End: 75}, 100, samples)
	assert.False(t, ok)
	assert.Equal(t, 24.0, preset)

	// A genuinely different span flips the guard.
	preset, ok = m.ApplyBrush(Domain{Start: 0, End: 70}, 100, samples)
	assert.True(t, ok)
	assert.Equal(t, 72.0, preset)
}

func TestApplyBrushDegenerateInput(t *testing.T) {
	m := NewManager(Config{}, nil)
	_, ok := m.ApplyBrush(Domain{Start: 0, End: 5}, 10, nil)
	assert.False(t, ok)
	_, ok = m.ApplyBrush(Domain{Start: 0, End: 5}, 0, hourlySamples(10))
	assert.False(t, ok)
}

func TestOnNewDataAutoFollow(t *testing.T) {
	m := NewManager(Config{FollowSlack: 2}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 70, End: 99} }, 100)

	// Viewing the live edge: window shifts with the new samples.
	m.OnNewData(105)
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, Domain{Start: 75, End: 104}, *got)
}

func TestOnNewDataWithinSlack(t *testing.T) {
	m := NewManager(Config{FollowSlack: 2}, nil)
	// End 97 is 2 away from the last index 99: still counts as live.
	m.Initialize(func(int) *Domain { return &Domain{Start: 68, End: 97} }, 100)

	m.OnNewData(110)
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, Domain{Start: 78, End: 107}, *got)
}

func TestOnNewDataHistoricalViewStaysPut(t *testing.T) {
	m := NewManager(Config{FollowSlack: 2}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 10, End: 40} }, 100)

	m.OnNewData(120)
	got := m.Target()
	require.NotNil(t, got)
	assert.Equal(t, Domain{Start: 10, End: 40}, *got)
}

func TestOnNewDataFullRangeStaysFull(t *testing.T) {
	m := NewManager(Config{}, nil)
	m.Initialize(nil, 100)
	m.OnNewData(150)
	assert.Nil(t, m.Target())
}

func TestResetCollapsesDomain(t *testing.T) {
	m := NewManager(Config{}, nil)
	m.Initialize(func(int) *Domain { return &Domain{Start: 5, End: 25} }, 100)
	m.Reset()
	assert.Nil(t, m.Target())
	assert.Nil(t, m.Displayed())
}

func TestAnimatedTransition(t *testing.T) {
	sched := &manualScheduler{}
	m := NewManager(Config{SnapThreshold: 2, AnimateDuration: 100 * time.Millisecond}, sched)
	m.Initialize(func(int) *Domain { return &Domain{Start: 0, End: 30} }, 100)

	m.ZoomIn(100) // jump larger than the snap threshold
	require.NotNil(t, sched.fn, "large transitions must schedule frames")

	target := m.Target()
	require.NotNil(t, target)

	// Before the animation ticks the displayed domain is still the old one.
	assert.Equal(t, Domain{Start: 0, End: 30}, *m.Displayed())

	start := time.Now()
	assert.True(t, sched.tick(start.Add(50*time.Millisecond)))
	mid := m.Displayed()
	require.NotNil(t, mid)
	assert.NotEqual(t, Domain{Start: 0, End: 30}, *mid)

	// Past the duration the displayed domain lands exactly on target.
	assert.False(t, sched.tick(start.Add(time.Second)))
	assert.Equal(t, *target, *m.Displayed())
}

func TestSnapWithinThreshold(t *testing.T) {
	sched := &manualScheduler{}
	m := NewManager(Config{SnapThreshold: 5}, sched)
	m.Initialize(func(int) *Domain { return &Domain{Start: 80, End: 99} }, 100)

	m.OnNewData(102) // live-edge follow shifts both edges by 2, within the threshold
	assert.Nil(t, sched.fn, "small moves must not animate")
	assert.Equal(t, Domain{Start: 82, End: 101}, *m.Displayed())
}

func TestNewTargetCancelsInFlightAnimation(t *testing.T) {
	sched := &manualScheduler{}
	m := NewManager(Config{SnapThreshold: 2, AnimateDuration: time.Second}, sched)
	m.Initialize(func(int) *Domain { return &Domain{Start: 0, End: 50} }, 200)

	m.ZoomIn(200)
	require.NotNil(t, sched.fn)

	m.ZoomIn(200)
	assert.Equal(t, 1, sched.cancelled, "retargeting must cancel the running animation")
}

func TestLookbackDomain(t *testing.T) {
	samples := hourlySamples(100) // spans 99h

	d := LookbackDomain(samples, 24)
	require.NotNil(t, d)
	assert.Equal(t, Domain{Start: 75, End: 99}, *d)

	// Lookback covering everything collapses to nil.
	assert.Nil(t, LookbackDomain(samples, 200))
	assert.Nil(t, LookbackDomain(samples, 0))
	assert.Nil(t, LookbackDomain(samples[:1], 24))
}

func TestClosestPreset(t *testing.T) {
	presets := DefaultLookbackPresets
	assert.Equal(t, 1.0, closestPreset(0.5, presets))
	assert.Equal(t, 6.0, closestPreset(7, presets))
	assert.Equal(t, 168.0, closestPreset(500, presets))
	assert.Equal(t, 24.0, closestPreset(20, presets))
}

func TestEaseOutCubicShape(t *testing.T) {
	assert.Equal(t, 0.0, easeOutCubic(0))
	assert.Equal(t, 1.0, easeOutCubic(1))
	assert.Greater(t, easeOutCubic(0.5), 0.5, "ease-out front-loads progress")
}
