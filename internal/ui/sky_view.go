package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/state"
)

const (
	// Terminal cells are about twice as tall as they are wide.
	cellAspect = 0.5

	// Radius, in cells, searched around the cursor.
	cursorRadius = 3.0

	// Solar system glyphs
	glyphSun    = '☼'
	glyphPlanet = '●'
	glyphCursor = '+'

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	// Star colors
	colorStarBright  = "255" // bright white
	colorStarMedium  = "250" // medium gray
	colorStarDim     = "244" // dim gray
	colorStarVeryDim = "240" // very dim gray

	colorBackground = "236"
	colorHorizon    = "60" // muted purple
	colorCardinal   = "252"
	colorAsterism   = "238"
	colorSun        = "220"
	colorMoon       = "230"
	colorLabel      = "#d0c8ff"
	colorSelected   = "229" // bright gold
)

// Moon glyphs from new to full.
var moonGlyphs = []rune{'○', '☽', '◐', '◑', '●'}

var planetColors = map[string]lipgloss.Color{
	"Mercury": "247",
	"Venus":   "230",
	"Mars":    "203",
	"Jupiter": "222",
	"Saturn":  "186",
	"Uranus":  "123",
	"Neptune": "69",
}

// LabelMode controls which objects get a name next to their glyph.
type LabelMode int

const (
	LabelNone        LabelMode = iota // No labels
	LabelSolarSystem                  // Sun, Moon and planets
	LabelAll                          // Solar system and bright stars
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelSolarSystem:
		return "solar system"
	default:
		return "all"
	}
}

// SkyViewModel renders an ObservedSky through its stereographic
// projection.
type SkyViewModel struct {
	width  int
	height int

	sky    *celestial.ObservedSky
	fovDeg float64

	// Cursor offset from the canvas center, in cells
	cursorX int
	cursorY int

	labelMode     LabelMode
	showAsterisms bool
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		fovDeg:        100,
		labelMode:     LabelSolarSystem,
		showAsterisms: true,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new state snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	if snapshot.Sky != nil {
		m.sky = snapshot.Sky
	}
	if snapshot.FOVDeg > 0 {
		m.fovDeg = snapshot.FOVDeg
	}
	return m
}

// MoveCursor moves the cursor by the given number of cells, keeping it on
// the canvas.
func (m SkyViewModel) MoveCursor(dx, dy int) SkyViewModel {
	w, h := m.canvasSize()
	m.cursorX = clampInt(m.cursorX+dx, -w/2, (w-1)/2)
	m.cursorY = clampInt(m.cursorY+dy, -h/2, (h-1)/2)
	return m
}

// ResetCursor puts the cursor back on the canvas center.
func (m SkyViewModel) ResetCursor() SkyViewModel {
	m.cursorX, m.cursorY = 0, 0
	return m
}

// CursorHorizontal returns the sky direction under the cursor.
func (m SkyViewModel) CursorHorizontal() (astro.Horizontal, bool) {
	if m.sky == nil {
		return astro.Horizontal{}, false
	}
	return m.sky.Projection().InverseApply(m.cursorPoint()), true
}

// Selected returns the object nearest the cursor.
func (m SkyViewModel) Selected() (celestial.CelestialObject, bool) {
	if m.sky == nil {
		return nil, false
	}
	return m.sky.ObjectClosestTo(m.cursorPoint(), cursorRadius/m.scale())
}

func (m SkyViewModel) cycleLabelMode() SkyViewModel {
	m.labelMode = (m.labelMode + 1) % 3
	return m
}

func (m SkyViewModel) toggleAsterisms() SkyViewModel {
	m.showAsterisms = !m.showAsterisms
	return m
}

// canvasSize reserves lines for the header and status.
func (m SkyViewModel) canvasSize() (int, int) {
	return m.width, m.height - 4
}

// scale returns horizontal cells per projection-plane unit so that the
// field of view spans the canvas width.
func (m SkyViewModel) scale() float64 {
	w, _ := m.canvasSize()
	var p astro.StereographicProjection
	return float64(w) / p.ApplyToAngle(astro.OfDeg(m.fovDeg))
}

// viewRadius returns the angular distance from the projection center to a
// canvas corner. Nothing farther away can land on screen.
func (m SkyViewModel) viewRadius() float64 {
	w, h := m.canvasSize()
	rho := math.Hypot(float64(w)/2, float64(h)/2/cellAspect) / m.scale()
	return 2 * math.Atan(rho)
}

// toScreen converts a plane point to a canvas cell.
func (m SkyViewModel) toScreen(p astro.Cartesian) (int, int, bool) {
	x, y := p.X(), p.Y()
	if math.IsInf(x, 0) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	w, h := m.canvasSize()
	s := m.scale()
	sx := int(math.Round(float64(w/2) + x*s))
	sy := int(math.Round(float64(h/2) - y*s*cellAspect))
	return sx, sy, sx >= 0 && sx < w && sy >= 0 && sy < h
}

// toPlane converts a canvas cell to a plane point.
func (m SkyViewModel) toPlane(sx, sy int) astro.Cartesian {
	w, h := m.canvasSize()
	s := m.scale()
	return astro.CartesianOf(
		float64(sx-w/2)/s,
		-float64(sy-h/2)/(s*cellAspect),
	)
}

func (m SkyViewModel) cursorPoint() astro.Cartesian {
	w, h := m.canvasSize()
	return m.toPlane(w/2+m.cursorX, h/2+m.cursorY)
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	return m, nil
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	if m.sky == nil {
		return "No sky computed"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))               // muted purple
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	center := m.sky.Projection().Center()
	labels := accentStyle.Render("Labels: " + m.labelMode.String())
	asterisms := dimStyle.Render("Asterisms: off")
	if m.showAsterisms {
		asterisms = accentStyle.Render("Asterisms: on")
	}
	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° Alt:%.0f° FOV:%.0f°", center.AzDeg(), center.AltDeg(), m.fovDeg))

	return fmt.Sprintf("%s | %s | %s | %s", titleStyle.Render("Sky View"), labels, asterisms, compass)
}

func (m SkyViewModel) renderStatus() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSelected))

	obj, ok := m.Selected()
	if !ok {
		if h, ok := m.CursorHorizontal(); ok {
			return dimStyle.Render(fmt.Sprintf("    cursor Az:%.1f° Alt:%.1f° (%s)",
				h.AzDeg(), h.AltDeg(), h.AzOctantName("N", "E", "S", "W")))
		}
		return ""
	}

	h, _ := m.sky.HorizontalOf(obj)
	line := fmt.Sprintf(">>> %s | %s | Az:%.1f° (%s) Alt:%.1f° | mag %.2f",
		obj.Info(),
		obj.Kind(),
		h.AzDeg(),
		h.AzOctantName("N", "E", "S", "W"),
		h.AltDeg(),
		obj.Magnitude(),
	)
	switch o := obj.(type) {
	case celestial.Planet:
		line += fmt.Sprintf(" | %.2f AU", o.DistanceAU())
	case celestial.Star:
		line += fmt.Sprintf(" | %d K", o.ColorTemperature())
	}
	if h.Alt() <= astro.HorizonAltitude {
		line += " | below horizon"
	}
	return accentStyle.Render(line)
}

// canvas is a grid of glyphs with per-cell colors.
type canvas struct {
	w, h   int
	runes  [][]rune
	colors [][]lipgloss.Color
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), colors: make([][]lipgloss.Color, h)}
	for y := 0; y < h; y++ {
		c.runes[y] = make([]rune, w)
		c.colors[y] = make([]lipgloss.Color, w)
		for x := 0; x < w; x++ {
			c.runes[y][x] = ' '
			c.colors[y][x] = colorBackground
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, color lipgloss.Color) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.runes[y][x] = r
		c.colors[y][x] = color
	}
}

func (c *canvas) empty(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h && c.runes[y][x] == ' '
}

// text writes s starting at (x, y) over empty cells only.
func (c *canvas) text(x, y int, s string, color lipgloss.Color) {
	for i, r := range []rune(s) {
		if c.empty(x+i, y) {
			c.set(x+i, y, r, color)
		}
	}
}

// line draws a Bresenham segment between two cells onto empty cells.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, color lipgloss.Color) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if c.empty(x0, y0) {
			c.set(x0, y0, r, color)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// String renders runs of equal color with a single style.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.colors[y][x] == c.colors[y][start] {
				continue
			}
			style := lipgloss.NewStyle().Foreground(c.colors[y][start])
			b.WriteString(style.Render(string(c.runes[y][start:x])))
			start = x
		}
		if y < c.h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

type labelPos struct {
	x, y int
	name string
}

func (m SkyViewModel) renderSkyCanvas() string {
	w, h := m.canvasSize()
	c := newCanvas(w, h)
	proj := m.sky.Projection()

	m.drawHorizon(c, proj)
	if m.showAsterisms {
		m.drawAsterisms(c)
	}

	center, radius := proj.Center(), m.viewRadius()
	var labels []labelPos
	m.sky.Objects(func(obj celestial.CelestialObject, hor astro.Horizontal, p astro.Cartesian) {
		if hor.Alt() <= astro.HorizonAltitude || hor.AngularDistanceTo(center) > radius {
			return
		}
		x, y, ok := m.toScreen(p)
		if !ok {
			return
		}
		glyph, color, label := m.objectGlyph(obj)
		c.set(x, y, glyph, color)
		if label {
			labels = append(labels, labelPos{x: x, y: y, name: obj.Name()})
		}
	})

	// Labels go on after every glyph so they never hide an object.
	for _, l := range labels {
		c.text(l.x+2, l.y, l.name, colorLabel)
	}

	// Cursor
	cx, cy := w/2+m.cursorX, h/2+m.cursorY
	if obj, ok := m.Selected(); ok {
		if p, ok := m.sky.PointOf(obj); ok {
			if x, y, ok := m.toScreen(p); ok {
				c.colors[y][x] = colorSelected
			}
		}
	}
	if c.empty(cx, cy) {
		c.set(cx, cy, glyphCursor, colorSelected)
	}

	return c.String()
}

// drawHorizon rasterizes the circle the 0° parallel projects to and marks
// the compass points. A horizon through the antipode projects to a line.
func (m SkyViewModel) drawHorizon(c *canvas, proj astro.StereographicProjection) {
	const lineRadius = 1e5 // cells

	horizon, _ := astro.HorizontalOf(0, astro.HorizonAltitude)
	cy := proj.CircleCenterForParallel(horizon).Y()
	r := math.Abs(proj.CircleRadiusForParallel(horizon))
	s := m.scale()

	if math.IsInf(r, 0) || r*s > lineRadius {
		below, _ := astro.HorizontalOf(proj.Center().Az(), astro.HorizonAltitude)
		if _, y, ok := m.toScreen(astro.CartesianOf(0, proj.Apply(below).Y())); ok {
			for x := 0; x < c.w; x++ {
				c.set(x, y, '─', colorHorizon)
			}
		}
	} else {
		// One pass per axis so steep and flat arcs are both gap free.
		for sx := 0; sx < c.w; sx++ {
			x := m.toPlane(sx, 0).X()
			if d := r*r - x*x; d >= 0 {
				m.plotHorizon(c, x, cy+math.Sqrt(d))
				m.plotHorizon(c, x, cy-math.Sqrt(d))
			}
		}
		for sy := 0; sy < c.h; sy++ {
			y := m.toPlane(0, sy).Y()
			if d := r*r - (y-cy)*(y-cy); d >= 0 {
				m.plotHorizon(c, math.Sqrt(d), y)
				m.plotHorizon(c, -math.Sqrt(d), y)
			}
		}
	}

	for i, name := range []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"} {
		hor, err := astro.HorizontalOfDeg(float64(i)*45, 0)
		if err != nil {
			continue
		}
		if x, y, ok := m.toScreen(proj.Apply(hor)); ok {
			for j, r := range name {
				c.set(x+j, y, r, colorCardinal)
			}
		}
	}
}

func (m SkyViewModel) plotHorizon(c *canvas, x, y float64) {
	if sx, sy, ok := m.toScreen(astro.CartesianOf(x, y)); ok {
		c.set(sx, sy, '─', colorHorizon)
	}
}

// drawAsterisms joins consecutive member stars that are above the horizon.
func (m SkyViewModel) drawAsterisms(c *canvas) {
	stars := m.sky.Stars()
	positions := m.sky.StarPositions()
	up := make([]bool, len(stars))
	for i, s := range stars {
		hor, ok := m.sky.HorizontalOf(s)
		up[i] = ok && hor.Alt() > astro.HorizonAltitude
	}

	for a := range m.sky.Asterisms() {
		indices := m.sky.AsterismIndices(a)
		for k := 1; k < len(indices); k++ {
			i, j := indices[k-1], indices[k]
			if !up[i] || !up[j] {
				continue
			}
			x0, y0, ok0 := m.toScreen(astro.CartesianOf(positions[2*i], positions[2*i+1]))
			x1, y1, ok1 := m.toScreen(astro.CartesianOf(positions[2*j], positions[2*j+1]))
			if !ok0 || !ok1 {
				continue
			}
			c.line(x0, y0, x1, y1, '·', colorAsterism)
		}
	}
}

// objectGlyph returns the glyph, color and whether obj gets a label.
func (m SkyViewModel) objectGlyph(obj celestial.CelestialObject) (rune, lipgloss.Color, bool) {
	solar := m.labelMode != LabelNone
	switch o := obj.(type) {
	case celestial.Sun:
		return glyphSun, colorSun, solar
	case celestial.Moon:
		return moonGlyph(o.Phase()), colorMoon, solar
	case celestial.Planet:
		color, ok := planetColors[o.Name()]
		if !ok {
			color = colorLabel
		}
		return glyphPlanet, color, solar
	default:
		glyph, color := starGlyph(obj.Magnitude())
		return glyph, color, m.labelMode == LabelAll && obj.Magnitude() < 1.5 && obj.Name() != ""
	}
}

// moonGlyph picks a glyph for the illuminated fraction.
func moonGlyph(phase float64) rune {
	i := int(math.Round(phase * float64(len(moonGlyphs)-1)))
	return moonGlyphs[clampInt(i, 0, len(moonGlyphs)-1)]
}

// starGlyph returns the appropriate glyph and color for a star based on its magnitude.
// Brighter stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
