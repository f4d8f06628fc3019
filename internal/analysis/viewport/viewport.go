// Package viewport holds the visible index range of a rendered series and the
// state machine driving zoom, pan, brush and auto-follow behavior. The
// canonical domain is always expressed in raw-sample index space; a nil domain
// means "show everything".
package viewport

import (
	"math"
	"sync"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
)

// Domain is an inclusive index range into the currently displayed series.
type Domain struct {
	Start int
	End   int
}

// Width returns the number of visible indices.
func (d Domain) Width() int { return d.End - d.Start + 1 }

// DefaultLookbackPresets are the selectable lookback windows, in hours.
var DefaultLookbackPresets = []float64{1, 3, 6, 12, 24, 72, 168}

// Config tunes the manager. Zero values fall back to the defaults below.
type Config struct {
	MinWidth        int           // smallest zoomable width, default 10
	FollowSlack     int           // distance from the live edge that still counts as "viewing now", default 2
	SnapThreshold   int           // edge delta at or below which transitions apply without animation, default 2
	AnimateDuration time.Duration // eased transition length, default 300ms
	LookbackPresets []float64     // preset lookback windows in hours
}

// DefaultConfig returns the dashboard defaults.
func DefaultConfig() Config {
	return Config{
		MinWidth:        10,
		FollowSlack:     2,
		SnapThreshold:   2,
		AnimateDuration: 300 * time.Millisecond,
		LookbackPresets: DefaultLookbackPresets,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinWidth <= 0 {
		c.MinWidth = d.MinWidth
	}
	if c.FollowSlack <= 0 {
		c.FollowSlack = d.FollowSlack
	}
	if c.SnapThreshold <= 0 {
		c.SnapThreshold = d.SnapThreshold
	}
	if c.AnimateDuration <= 0 {
		c.AnimateDuration = d.AnimateDuration
	}
	if len(c.LookbackPresets) == 0 {
		c.LookbackPresets = d.LookbackPresets
	}
	return c
}

// Manager is the only stateful component of the analytics core. It owns the
// target domain, the displayed (possibly mid-animation) domain, and the
// monotonic initialization flag. All methods are safe for use from the single
// compute goroutine alongside scheduler-driven animation ticks.
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	sched       FrameScheduler
	target      *Domain // canonical raw-index domain, nil = full range
	displayed   *Domain // what the renderer currently draws
	initialized bool
	prevLength  int
	lastPreset  float64
	anim        *animation
	cancelAnim  func()
}

// NewManager creates a manager. A nil scheduler disables animation: every
// transition applies immediately.
func NewManager(cfg Config, sched FrameScheduler) *Manager {
	return &Manager{cfg: cfg.withDefaults(), sched: sched}
}

// Initialize applies the caller-supplied initial domain calculator exactly
// once. Subsequent calls are no-ops, reporting whether this call took effect.
func (m *Manager) Initialize(calc func(length int) *Domain, length int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized || length <= 0 {
		return false
	}
	m.initialized = true
	m.prevLength = length
	if calc != nil {
		m.target = normalize(calc(length), length)
	}
	m.displayed = copyDomain(m.target)
	return true
}

// Initialized reports whether the one-shot initialization has happened.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Target returns a copy of the canonical target domain, nil meaning full range.
func (m *Manager) Target() *Domain {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyDomain(m.target)
}

// Displayed returns a copy of the domain the renderer should currently draw.
func (m *Manager) Displayed() *Domain {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyDomain(m.displayed)
}

// Reset collapses the domain back to the full range.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setTarget(nil)
}

// ZoomIn shrinks the visible range by 25%, recentered on the same midpoint and
// clamped to the configured minimum width.
func (m *Manager) ZoomIn(length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if length <= 0 {
		return
	}
	cur := m.effectiveDomain(length)
	next := shrinkDomain(cur, m.cfg.MinWidth, length)
	m.setTarget(&next)
}

// ZoomOut grows the visible range by 33%, recentered. Reaching the full series
// length collapses the domain to nil.
func (m *Manager) ZoomOut(length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if length <= 0 || m.target == nil {
		return
	}
	cur := m.effectiveDomain(length)
	next, full := growDomain(cur, length)
	if full {
		m.setTarget(nil)
		return
	}
	m.setTarget(&next)
}

// ApplyBrush accepts a manual drag expressed in the currently-rendered series'
// index space. For aggregated display modes the indices are rescaled into raw
// sample index space via the rawLength/renderedLength ratio (a uniform-width
// approximation). The resulting visible time span is matched to the closest
// preset lookback window; the preset is returned with ok=false when it did not
// change, guarding the caller's preset selector against feedback loops.
func (m *Manager) ApplyBrush(d Domain, renderedLength int, samples []domain.Sample) (presetHours float64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rawLength := len(samples)
	if rawLength < 2 || renderedLength <= 0 {
		return 0, false
	}

	start, end := d.Start, d.End
	if renderedLength != rawLength {
		ratio := float64(rawLength) / float64(renderedLength)
		start = int(float64(start) * ratio)
		end = int(float64(end) * ratio)
	}
	target := normalize(&Domain{Start: start, End: end}, rawLength)
	m.setTarget(target)

	span := samples[target.End].Timestamp.Sub(samples[target.Start].Timestamp).Hours()
	preset := closestPreset(span, m.cfg.LookbackPresets)
	if preset == m.lastPreset {
		return preset, false
	}
	m.lastPreset = preset
	return preset, true
}

// OnNewData shifts the window forward when the user was viewing the live edge
// (endIndex within FollowSlack of the previous length), so the visible window
// keeps ending at the newest sample.
func (m *Manager) OnNewData(newLength int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.prevLength
	m.prevLength = newLength
	if m.target == nil || prev <= 0 || newLength <= prev {
		return
	}
	if m.target.End < prev-1-m.cfg.FollowSlack {
		return
	}
	delta := newLength - prev
	next := clampDomain(m.target.Start+delta, m.target.Width(), newLength)
	m.setTarget(&next)
}

// effectiveDomain resolves nil to the explicit full range.
func (m *Manager) effectiveDomain(length int) Domain {
	if m.target == nil {
		return Domain{Start: 0, End: length - 1}
	}
	return *m.target
}

// setTarget installs a new target domain, cancelling any in-flight animation.
// Edge moves within SnapThreshold apply immediately; larger jumps animate.
// Callers must hold m.mu.
func (m *Manager) setTarget(target *Domain) {
	if m.cancelAnim != nil {
		m.cancelAnim()
		m.cancelAnim = nil
		m.anim = nil
	}
	m.target = copyDomain(target)

	from := m.displayed
	if m.sched == nil || from == nil || target == nil ||
		maxEdgeDelta(*from, *target) <= m.cfg.SnapThreshold {
		m.displayed = copyDomain(target)
		return
	}

	m.anim = newAnimation(*from, *target, time.Now(), m.cfg.AnimateDuration)
	m.cancelAnim = m.sched.Schedule(m.step)
}

// step advances the in-flight animation by one tick. It reports whether more
// ticks are needed.
func (m *Manager) step(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.anim == nil {
		return false
	}
	d, done := m.anim.at(now)
	m.displayed = &d
	if done {
		m.anim = nil
		m.cancelAnim = nil
		return false
	}
	return true
}

// shrinkDomain removes 25% of the width, recentered, honoring minWidth.
func shrinkDomain(d Domain, minWidth, length int) Domain {
	newWidth := int(math.Ceil(float64(d.Width()) * 0.75))
	if newWidth < minWidth {
		newWidth = minWidth
	}
	mid := (d.Start + d.End) / 2
	return clampDomain(mid-newWidth/2, newWidth, length)
}

// growDomain adds 33% of the width, recentered, reporting whether the result
// covers the whole series.
func growDomain(d Domain, length int) (Domain, bool) {
	newWidth := int(math.Ceil(float64(d.Width()) * 4.0 / 3.0))
	if newWidth >= length {
		return Domain{}, true
	}
	mid := (d.Start + d.End) / 2
	return clampDomain(mid-newWidth/2, newWidth, length), false
}

// clampDomain fits a window of the given width inside [0, length−1], shifting
// rather than shrinking when it overruns an edge.
func clampDomain(start, width, length int) Domain {
	if width > length {
		width = length
	}
	if width < 2 {
		width = 2
	}
	if start < 0 {
		start = 0
	}
	if start+width > length {
		start = length - width
	}
	if start < 0 {
		start = 0
	}
	return Domain{Start: start, End: start + width - 1}
}

// normalize clamps an arbitrary domain into [0, length−1] with Start < End.
func normalize(d *Domain, length int) *Domain {
	if d == nil {
		return nil
	}
	start, end := d.Start, d.End
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > length-1 {
		end = length - 1
	}
	if end <= start {
		if end == length-1 {
			start = end - 1
		} else {
			end = start + 1
		}
	}
	return &Domain{Start: start, End: end}
}

// LookbackDomain builds the initial domain covering the trailing `hours` of
// the sample series, or nil when the lookback spans everything.
func LookbackDomain(samples []domain.Sample, hours float64) *Domain {
	if len(samples) < 2 || hours <= 0 {
		return nil
	}
	cutoff := samples[len(samples)-1].Timestamp.Add(-time.Duration(hours * float64(time.Hour)))
	for i, s := range samples {
		if !s.Timestamp.Before(cutoff) {
			if i == 0 {
				return nil
			}
			return normalize(&Domain{Start: i, End: len(samples) - 1}, len(samples))
		}
	}
	return nil
}

func closestPreset(hours float64, presets []float64) float64 {
	best := presets[0]
	bestDist := math.Abs(hours - best)
	for _, p := range presets[1:] {
		if d := math.Abs(hours - p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func copyDomain(d *Domain) *Domain {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func maxEdgeDelta(a, b Domain) int {
	ds := a.Start - b.Start
	if ds < 0 {
		ds = -ds
	}
	de := a.End - b.End
	if de < 0 {
		de = -de
	}
	if ds > de {
		return ds
	}
	return de
}
