// Package catalog ingests star and asterism records into a
// celestial.StarCatalogue and ships the default bright-star catalogue.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/logging"
)

// LoadStats counts what a loader did with its input.
type LoadStats struct {
	Rows     int // records read, header excluded
	Accepted int
	Skipped  int // malformed or out of domain
	Dropped  int // asterisms with unresolved members
}

// HygLoader reads star records in the HYG database CSV layout. Columns are
// located by header name; only a position is required. RA is read from
// "rarad" (radians) when present, else "ra" (hours); Dec from "decrad"
// (radians), else "dec" (degrees).
type HygLoader struct {
	log   *slog.Logger
	stats LoadStats
}

// NewHygLoader returns a loader that logs skipped rows at debug level.
func NewHygLoader(log *slog.Logger) *HygLoader {
	if log == nil {
		log = logging.Discard()
	}
	return &HygLoader{log: log}
}

// Stats returns the counts of the last Load.
func (l *HygLoader) Stats() LoadStats { return l.stats }

type hygColumns map[string]int

func (c hygColumns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (c hygColumns) has(name string) bool {
	_, ok := c[name]
	return ok
}

// Load implements celestial.Loader.
func (l *HygLoader) Load(r io.Reader, b *celestial.Builder) error {
	l.stats = LoadStats{}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("read star header: empty input")
		}
		return fmt.Errorf("read star header: %w", err)
	}
	cols := make(hygColumns, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if !(cols.has("rarad") || cols.has("ra")) || !(cols.has("decrad") || cols.has("dec")) {
		return fmt.Errorf("read star header: no position columns in %v", header)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			l.stats.Rows++
			l.stats.Skipped++
			l.log.Debug("catalog.star.skipped", "line", perr.Line, "err", perr.Err)
			continue
		}
		if err != nil {
			return fmt.Errorf("read star catalogue: %w", err)
		}

		l.stats.Rows++
		star, err := parseStar(cols, rec)
		if err != nil {
			l.stats.Skipped++
			line, _ := cr.FieldPos(0)
			l.log.Debug("catalog.star.skipped", "line", line, "err", err)
			continue
		}
		b.AddStar(star)
		l.stats.Accepted++
	}

	l.log.Info("catalog.stars.loaded", "accepted", l.stats.Accepted, "skipped", l.stats.Skipped)
	return nil
}

func parseStar(cols hygColumns, rec []string) (celestial.Star, error) {
	ra, err := position(cols, rec, "rarad", "ra", astro.OfHr)
	if err != nil {
		return celestial.Star{}, err
	}
	dec, err := position(cols, rec, "decrad", "dec", astro.OfDeg)
	if err != nil {
		return celestial.Star{}, err
	}
	eq, err := astro.EquatorialOf(astro.NormalizePositive(ra), dec)
	if err != nil {
		return celestial.Star{}, err
	}

	id, err := optionalInt(cols.get(rec, "hip"))
	if err != nil {
		return celestial.Star{}, fmt.Errorf("hip: %w", err)
	}
	mag, err := optionalFloat(cols.get(rec, "mag"))
	if err != nil {
		return celestial.Star{}, fmt.Errorf("mag: %w", err)
	}
	ci, err := optionalFloat(cols.get(rec, "ci"))
	if err != nil {
		return celestial.Star{}, fmt.Errorf("ci: %w", err)
	}

	return celestial.NewStar(id, starName(cols, rec), eq, mag, ci)
}

// position reads the radian column when present, else converts the
// fallback column.
func position(cols hygColumns, rec []string, radCol, col string, toRad func(float64) float64) (float64, error) {
	if v := cols.get(rec, radCol); v != "" {
		return strconv.ParseFloat(v, 64)
	}
	v := cols.get(rec, col)
	if v == "" {
		return 0, fmt.Errorf("missing %s", col)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return toRad(f), nil
}

func starName(cols hygColumns, rec []string) string {
	if proper := cols.get(rec, "proper"); proper != "" {
		return proper
	}
	bayer := cols.get(rec, "bayer")
	if bayer == "" {
		bayer = "?"
	}
	return bayer + " " + cols.get(rec, "con")
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func optionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
