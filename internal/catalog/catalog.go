package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/logging"
)

var (
	//go:embed data/bright_stars.csv
	brightStars []byte

	//go:embed data/asterisms.txt
	defaultAsterisms []byte
)

// Default returns the embedded catalogue of bright stars and asterisms.
func Default() (*celestial.StarCatalogue, error) {
	return Load(bytes.NewReader(brightStars), bytes.NewReader(defaultAsterisms), logging.Discard())
}

// Load builds a catalogue from a HYG CSV stream and an optional asterism
// stream.
func Load(stars, asterisms io.Reader, log *slog.Logger) (*celestial.StarCatalogue, error) {
	b := celestial.NewBuilder()
	if err := b.LoadFrom(stars, NewHygLoader(log)); err != nil {
		return nil, err
	}
	if asterisms != nil {
		if err := b.LoadFrom(asterisms, NewAsterismLoader(log)); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// LoadFiles builds a catalogue from files. An empty path selects the
// embedded data for that part.
func LoadFiles(starsPath, asterismsPath string, log *slog.Logger) (*celestial.StarCatalogue, error) {
	stars := io.Reader(bytes.NewReader(brightStars))
	if starsPath != "" {
		f, err := os.Open(starsPath)
		if err != nil {
			return nil, fmt.Errorf("open star catalogue: %w", err)
		}
		defer f.Close()
		stars = f
	}

	asterisms := io.Reader(bytes.NewReader(defaultAsterisms))
	if asterismsPath != "" {
		f, err := os.Open(asterismsPath)
		if err != nil {
			return nil, fmt.Errorf("open asterisms: %w", err)
		}
		defer f.Close()
		asterisms = f
	}

	return Load(stars, asterisms, log)
}
