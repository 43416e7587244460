// Package export turns an ObservedSky into JSON and plain-text reports.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/soniakeys/meeus/v3/julian"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
)

// SnapshotExport is the JSON-serializable representation of an observed sky.
type SnapshotExport struct {
	Timestamp  time.Time        `json:"timestamp"`
	JulianDate float64          `json:"julian_date"`
	Observer   ObserverExport   `json:"observer"`
	Center     HorizontalExport `json:"center"`
	Sun        BodyExport       `json:"sun"`
	Moon       BodyExport       `json:"moon"`
	Planets    []BodyExport     `json:"planets"`
	Stars      []BodyExport     `json:"stars"`
	Asterisms  []AsterismExport `json:"asterisms"`
}

// ObserverExport is the observer's geographic position in degrees.
type ObserverExport struct {
	LonDeg float64 `json:"lon_deg"`
	LatDeg float64 `json:"lat_deg"`
}

// HorizontalExport is a horizontal position in degrees.
type HorizontalExport struct {
	AzDeg  float64 `json:"az_deg"`
	AltDeg float64 `json:"alt_deg"`
}

// BodyExport is a JSON-friendly celestial object with its derived positions.
type BodyExport struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Info           string   `json:"info"`
	ID             int      `json:"id,omitempty"`
	RAHours        float64  `json:"ra_hours"`
	DecDeg         float64  `json:"dec_deg"`
	AzDeg          float64  `json:"az_deg"`
	AltDeg         float64  `json:"alt_deg"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	Magnitude      float64  `json:"magnitude"`
	AngularSizeDeg float64  `json:"angular_size_deg"`
	Phase          *float64 `json:"phase,omitempty"`
	DistanceAU     float64  `json:"distance_au,omitempty"`
	TemperatureK   int      `json:"temperature_k,omitempty"`
}

// AsterismExport lists an asterism's members as indices into Stars.
type AsterismExport struct {
	Name    string `json:"name"`
	Indices []int  `json:"indices"`
}

// ExportSky converts an ObservedSky to an exportable format.
func ExportSky(sky *celestial.ObservedSky) *SnapshotExport {
	if sky == nil {
		return &SnapshotExport{}
	}

	center := sky.Projection().Center()
	export := &SnapshotExport{
		Timestamp:  sky.When().UTC(),
		JulianDate: julian.TimeToJD(sky.When()),
		Observer:   ObserverExport{LonDeg: sky.Where().LonDeg(), LatDeg: sky.Where().LatDeg()},
		Center:     HorizontalExport{AzDeg: center.AzDeg(), AltDeg: center.AltDeg()},
	}

	sky.Objects(func(obj celestial.CelestialObject, h astro.Horizontal, p astro.Cartesian) {
		b := exportBody(obj, h, p)
		switch obj.Kind() {
		case celestial.KindSun:
			export.Sun = b
		case celestial.KindMoon:
			export.Moon = b
		case celestial.KindPlanet:
			export.Planets = append(export.Planets, b)
		case celestial.KindStar:
			export.Stars = append(export.Stars, b)
		}
	})

	for i, a := range sky.Asterisms() {
		export.Asterisms = append(export.Asterisms, AsterismExport{
			Name:    a.Name(),
			Indices: sky.AsterismIndices(i),
		})
	}
	return export
}

func exportBody(obj celestial.CelestialObject, h astro.Horizontal, p astro.Cartesian) BodyExport {
	eq := obj.Equatorial()
	b := BodyExport{
		Name:           obj.Name(),
		Kind:           obj.Kind().String(),
		Info:           obj.Info(),
		RAHours:        eq.RAHr(),
		DecDeg:         eq.DecDeg(),
		AzDeg:          h.AzDeg(),
		AltDeg:         h.AltDeg(),
		X:              finite(p.X()),
		Y:              finite(p.Y()),
		Magnitude:      obj.Magnitude(),
		AngularSizeDeg: astro.ToDeg(obj.AngularSize()),
	}
	switch o := obj.(type) {
	case celestial.Moon:
		phase := o.Phase()
		b.Phase = &phase
	case celestial.Planet:
		b.DistanceAU = o.DistanceAU()
	case celestial.Star:
		b.ID = o.ID()
		b.TemperatureK = o.ColorTemperature()
	}
	return b
}

// finite maps the projection's infinite antipode onto the largest float so
// the value survives JSON encoding.
func finite(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	case math.IsNaN(v):
		return 0
	}
	return v
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name      string
	Kind      string
	RA        string
	Dec       string
	Az        float64
	Alt       float64
	Direction string
	Magnitude float64
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// GenerateSummaryRows creates rows for the Sun, the Moon, the planets and
// the brightest stars above the horizon, at most maxStars of them.
func GenerateSummaryRows(sky *celestial.ObservedSky, maxStars int) []SummaryRow {
	if sky == nil {
		return nil
	}

	var rows, stars []SummaryRow
	sky.Objects(func(obj celestial.CelestialObject, h astro.Horizontal, _ astro.Cartesian) {
		r := summaryRow(obj, h)
		if obj.Kind() != celestial.KindStar {
			rows = append(rows, r)
			return
		}
		if h.Alt() > astro.HorizonAltitude {
			stars = append(stars, r)
		}
	})

	sort.SliceStable(stars, func(i, j int) bool {
		return stars[i].Magnitude < stars[j].Magnitude
	})
	if len(stars) > maxStars {
		stars = stars[:max(maxStars, 0)]
	}
	return append(rows, stars...)
}

func summaryRow(obj celestial.CelestialObject, h astro.Horizontal) SummaryRow {
	eq := obj.Equatorial()
	return SummaryRow{
		Name:      obj.Info(),
		Kind:      obj.Kind().String(),
		RA:        FormatHours(eq.RAHr()),
		Dec:       FormatDegrees(eq.DecDeg()),
		Az:        h.AzDeg(),
		Alt:       h.AltDeg(),
		Direction: h.AzOctantName("N", "E", "S", "W"),
		Magnitude: obj.Magnitude(),
	}
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, sky *celestial.ObservedSky, maxStars int) {
	if sky == nil {
		fmt.Fprintln(w, "No sky")
		return
	}
	rows := GenerateSummaryRows(sky, maxStars)

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Sky @ %s from %s",
		sky.When().UTC().Format(time.RFC3339), sky.Where())))
	fmt.Fprintln(w, strings.Repeat("─", 78))

	// Header
	fmt.Fprintf(w, "%-16s %-6s %-10s %-10s %7s %7s %-3s %6s\n",
		"Name", "Kind", "RA", "Dec", "Az", "Alt", "Dir", "Mag")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	// Rows
	up := 0
	for _, r := range rows {
		if r.Alt > 0 {
			up++
		}
		fmt.Fprintf(w, "%-16s %-6s %-10s %-10s %6.1f° %6.1f° %-3s %6.2f\n",
			truncateStr(r.Name, 16),
			r.Kind,
			r.RA,
			r.Dec,
			r.Az,
			r.Alt,
			r.Direction,
			r.Magnitude,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d objects, %d above the horizon\n", len(rows), up)
}

// FormatHours renders hours as 06h45m09s.
func FormatHours(h float64) string {
	total := int(math.Round(h * 3600))
	return fmt.Sprintf("%02dh%02dm%02ds", total/3600%24, total/60%60, total%60)
}

// FormatDegrees renders signed degrees as -16°42'58".
func FormatDegrees(d float64) string {
	sign := "+"
	if d < 0 {
		sign = "-"
	}
	total := int(math.Round(math.Abs(d) * 3600))
	return fmt.Sprintf("%s%02d°%02d'%02d\"", sign, total/3600, total/60%60, total%60)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
