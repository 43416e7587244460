// Package state provides thread-safe state management for a viewing
// session.
package state

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/logging"
)

// EventType represents the type of sky event.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
)

// Event is a solar-system body crossing the horizon between two
// consecutive sky builds.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"` // sky instant, not wall clock
	Body      string    `json:"body"`
	AzDeg     float64   `json:"az_deg"`
}

// Manager holds the session's instant, observer and view direction, and
// lazily rebuilds the ObservedSky when any of them change.
type Manager struct {
	mu sync.RWMutex

	// Inputs
	catalogue *celestial.StarCatalogue
	when      time.Time
	where     astro.Geographic
	center    astro.Horizontal
	fovDeg    float64

	// Derived/cached data
	sky           *celestial.ObservedSky
	dirty         bool
	lastError     error
	buildDuration time.Duration

	// Bodies above the horizon at the previous build, for event detection
	prevUp   map[string]bool
	prevWhen time.Time

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	log *slog.Logger

	// newSky builds the ObservedSky; replaced in tests.
	newSky func(time.Time, astro.Geographic, astro.StereographicProjection, *celestial.StarCatalogue) (*celestial.ObservedSky, error)
}

// Config holds configuration for the state manager.
type Config struct {
	Observer  astro.Geographic
	Center    astro.Horizontal
	FOVDeg    float64
	MaxEvents int
	Log       *slog.Logger
}

// DefaultConfig returns an observer in Lausanne looking south.
func DefaultConfig() Config {
	where, _ := astro.GeographicOfDeg(6.57, 46.52)
	center, _ := astro.HorizontalOfDeg(180, 15)
	return Config{
		Observer:  where,
		Center:    center,
		FOVDeg:    100,
		MaxEvents: 50,
	}
}

// NewManager creates a session over catalogue starting at when.
func NewManager(cfg Config, catalogue *celestial.StarCatalogue, when time.Time) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	fov := cfg.FOVDeg
	if fov <= 0 {
		fov = 100
	}
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		catalogue: catalogue,
		when:      when,
		where:     cfg.Observer,
		center:    cfg.Center,
		fovDeg:    fov,
		dirty:     true,
		prevUp:    make(map[string]bool),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		log:       log,
		newSky:    celestial.NewObservedSky,
	}
}

// SetTime moves the session to t.
func (m *Manager) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.when = t
	m.dirty = true
}

// Advance moves the session forward by d (backward when negative).
func (m *Manager) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.when = m.when.Add(d)
	m.dirty = true
}

// SetObserver moves the observer and clears the event log, since events
// seen from the old location no longer apply.
func (m *Manager) SetObserver(g astro.Geographic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.where = g
	m.prevUp = make(map[string]bool)
	m.events = make([]Event, 0, m.maxEvents)
	m.eventWriteAt = 0
	m.dirty = true
}

// SetCenter points the view at h.
func (m *Manager) SetCenter(h astro.Horizontal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = h
	m.dirty = true
}

// Pan turns the view by the given offsets in degrees. Azimuth wraps and
// altitude is clipped to [-90°, 90°].
func (m *Manager) Pan(dAzDeg, dAltDeg float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	az := astro.NormalizePositive(m.center.Az() + astro.OfDeg(dAzDeg))
	alt := altRange.Clip(m.center.Alt() + astro.OfDeg(dAltDeg))
	if h, err := astro.HorizontalOf(az, alt); err == nil {
		m.center = h
		m.dirty = true
	}
}

var altRange, _ = astro.NewClosedInterval(-math.Pi/2, math.Pi/2)

// SetFOV sets the field of view in degrees, clipped to [10°, 180°].
func (m *Manager) SetFOV(deg float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fovDeg = fovRange.Clip(deg)
}

var fovRange, _ = astro.NewClosedInterval(10, 180)

func (m *Manager) Time() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.when
}

func (m *Manager) Observer() astro.Geographic {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.where
}

func (m *Manager) Center() astro.Horizontal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center
}

func (m *Manager) FOV() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fovDeg
}

// Catalogue returns the session's star catalogue.
func (m *Manager) Catalogue() *celestial.StarCatalogue {
	return m.catalogue
}

// Sky returns the observed sky for the current inputs, rebuilding it only
// when an input changed since the last call.
func (m *Manager) Sky() (*celestial.ObservedSky, error) {
	m.mu.RLock()
	if !m.dirty {
		sky, err := m.sky, m.lastError
		m.mu.RUnlock()
		return sky, err
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirty {
		m.rebuild()
	}
	return m.sky, m.lastError
}

// rebuild must be called with the write lock held.
func (m *Manager) rebuild() {
	start := time.Now()
	sky, err := m.newSky(m.when, m.where, astro.NewStereographicProjection(m.center), m.catalogue)
	m.buildDuration = time.Since(start)
	m.lastError = err
	m.dirty = false
	if err != nil {
		m.sky = nil
		m.log.Error("sky.build_failed", "when", m.when, "err", err)
		return
	}
	m.detectEvents(sky)
	m.sky = sky
	m.log.Debug("sky.built", "when", m.when, "duration", m.buildDuration)
}

// detectEvents compares which solar-system bodies are up against the
// previous build and logs horizon crossings. Only forward steps in time
// produce events; the visibility state is still recorded after a backward
// step so the next forward step compares against it.
func (m *Manager) detectEvents(sky *celestial.ObservedSky) {
	bodies := []celestial.CelestialObject{sky.Sun(), sky.Moon()}
	for _, p := range sky.Planets() {
		bodies = append(bodies, p)
	}

	record := len(m.prevUp) > 0 && sky.When().After(m.prevWhen)
	up := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		h, ok := sky.HorizontalOf(b)
		if !ok {
			continue
		}
		isUp := h.Alt() > astro.HorizonAltitude
		up[b.Name()] = isUp

		if !record {
			continue
		}
		wasUp, seen := m.prevUp[b.Name()]
		switch {
		case !seen:
		case isUp && !wasUp:
			m.addEvent(Event{Type: EventRise, Timestamp: sky.When(), Body: b.Name(), AzDeg: h.AzDeg()})
		case !isUp && wasUp:
			m.addEvent(Event{Type: EventSet, Timestamp: sky.When(), Body: b.Name(), AzDeg: h.AzDeg()})
		}
	}
	m.prevUp = up
	m.prevWhen = sky.When()
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sky           *celestial.ObservedSky
	When          time.Time
	Where         astro.Geographic
	Center        astro.Horizontal
	FOVDeg        float64
	LastError     error
	BuildDuration time.Duration
	Events        []Event
}

// Snapshot returns a consistent snapshot of current state, rebuilding the
// sky first if needed.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty {
		m.rebuild()
	}
	return Snapshot{
		Sky:           m.sky,
		When:          m.when,
		Where:         m.where,
		Center:        m.center,
		FOVDeg:        m.fovDeg,
		LastError:     m.lastError,
		BuildDuration: m.buildDuration,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
