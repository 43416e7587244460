package catalog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/logging"
)

// AsterismLoader reads one asterism per line: an optional "Name:" prefix
// followed by comma-separated Hipparcos ids. Blank lines and lines
// starting with '#' are ignored. An asterism citing an id that no loaded
// star carries is dropped.
type AsterismLoader struct {
	log   *slog.Logger
	stats LoadStats
}

// NewAsterismLoader returns a loader that logs dropped lines at debug level.
func NewAsterismLoader(log *slog.Logger) *AsterismLoader {
	if log == nil {
		log = logging.Discard()
	}
	return &AsterismLoader{log: log}
}

// Stats returns the counts of the last Load.
func (l *AsterismLoader) Stats() LoadStats { return l.stats }

// Load implements celestial.Loader. Stars must already be in b.
func (l *AsterismLoader) Load(r io.Reader, b *celestial.Builder) error {
	l.stats = LoadStats{}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l.stats.Rows++

		name := fmt.Sprintf("Asterism %d", l.stats.Rows)
		if before, after, ok := strings.Cut(line, ":"); ok {
			name, line = strings.TrimSpace(before), after
		}

		ids, err := parseIDs(line)
		if err != nil {
			l.stats.Skipped++
			l.log.Debug("catalog.asterism.skipped", "line", lineNo, "err", err)
			continue
		}

		stars := make([]celestial.Star, 0, len(ids))
		for _, id := range ids {
			s, ok := b.StarByID(id)
			if !ok {
				break
			}
			stars = append(stars, s)
		}
		if len(stars) != len(ids) {
			l.stats.Dropped++
			l.log.Debug("catalog.asterism.dropped", "line", lineNo, "name", name)
			continue
		}

		a, err := celestial.NewAsterism(name, stars)
		if err != nil {
			l.stats.Skipped++
			continue
		}
		b.AddAsterism(a)
		l.stats.Accepted++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read asterisms: %w", err)
	}

	l.log.Info("catalog.asterisms.loaded", "accepted", l.stats.Accepted, "dropped", l.stats.Dropped)
	return nil
}

func parseIDs(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", f, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
