package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// WindowExport is a JSON-friendly rise/transit/set window.
type WindowExport struct {
	Body          string     `json:"body"`
	Rise          *time.Time `json:"rise,omitempty"`
	Transit       *time.Time `json:"transit,omitempty"`
	Set           *time.Time `json:"set,omitempty"`
	MaxAltDeg     float64    `json:"max_alt_deg"`
	AlwaysVisible bool       `json:"always_visible"`
	NeverVisible  bool       `json:"never_visible"`
}

// ExportWindow converts a visibility window for body.
func ExportWindow(body string, w astro.VisibilityWindow) WindowExport {
	return WindowExport{
		Body:          body,
		Rise:          optionalTime(w.Rise),
		Transit:       optionalTime(w.Transit),
		Set:           optionalTime(w.Set),
		MaxAltDeg:     astro.ToDeg(w.MaxAltitude),
		AlwaysVisible: w.AlwaysVisible,
		NeverVisible:  w.NeverVisible,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// WriteJSON writes the window as JSON to the given writer.
func (e WindowExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
