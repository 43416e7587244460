package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/export"
	"github.com/litescript/ls-planetarium/internal/logging"
)

// Defaults apply to requests that omit the observer or view parameters.
type Defaults struct {
	Where  astro.Geographic
	Center astro.Horizontal
}

// Handler handles HTTP requests for sky snapshots.
type Handler struct {
	catalogue *celestial.StarCatalogue
	defaults  Defaults
	now       func() time.Time
	log       *slog.Logger
}

// NewHandler creates a new HTTP handler over catalogue.
func NewHandler(catalogue *celestial.StarCatalogue, defaults Defaults, log *slog.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{
		catalogue: catalogue,
		defaults:  defaults,
		now:       time.Now,
		log:       log,
	}
}

const (
	defaultClosestMax  = 0.1
	defaultSummaryRows = 20
	visibilitySpan     = 24 * time.Hour
	visibilityStep     = 10 * time.Minute
)

// GetSky handles GET /v1/sky.
func (h *Handler) GetSky(c *gin.Context) {
	sky, ok := h.sky(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, export.ExportSky(sky))
}

// GetSummary handles GET /v1/sky/summary, a plain-text table.
func (h *Handler) GetSummary(c *gin.Context) {
	sky, ok := h.sky(c)
	if !ok {
		return
	}
	rows, err := optionalFloat(c, "stars", defaultSummaryRows)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	export.WriteSummaryTable(c.Writer, sky, int(rows))
}

// ClosestResponse is the response for a nearest-object query.
type ClosestResponse struct {
	Found  bool    `json:"found"`
	Name   string  `json:"name,omitempty"`
	Kind   string  `json:"kind,omitempty"`
	Info   string  `json:"info,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	AzDeg  float64 `json:"az_deg,omitempty"`
	AltDeg float64 `json:"alt_deg,omitempty"`
}

// GetClosest handles GET /v1/sky/closest.
func (h *Handler) GetClosest(c *gin.Context) {
	x, err := requiredFloat(c, "x")
	if err != nil {
		badRequest(c, err)
		return
	}
	y, err := requiredFloat(c, "y")
	if err != nil {
		badRequest(c, err)
		return
	}
	maxDist, err := optionalFloat(c, "max", defaultClosestMax)
	if err != nil {
		badRequest(c, err)
		return
	}

	sky, ok := h.sky(c)
	if !ok {
		return
	}

	obj, found := sky.ObjectClosestTo(astro.CartesianOf(x, y), maxDist)
	if !found {
		c.JSON(http.StatusOK, ClosestResponse{})
		return
	}
	p, _ := sky.PointOf(obj)
	hor, _ := sky.HorizontalOf(obj)
	c.JSON(http.StatusOK, ClosestResponse{
		Found:  true,
		Name:   obj.Name(),
		Kind:   obj.Kind().String(),
		Info:   obj.Info(),
		X:      p.X(),
		Y:      p.Y(),
		AzDeg:  hor.AzDeg(),
		AltDeg: hor.AltDeg(),
	})
}

// GetVisibility handles GET /v1/visibility for the Sun, the Moon, a planet
// or a named catalogue star over one UTC day.
func (h *Handler) GetVisibility(c *gin.Context) {
	body := c.Query("body")
	if body == "" {
		badRequest(c, errors.New("body parameter is required"))
		return
	}

	day := h.now().UTC().Truncate(24 * time.Hour)
	if s := c.Query("date"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid date (expected YYYY-MM-DD): %w", err))
			return
		}
		day = d
	}

	where, err := h.where(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	f, err := celestial.LookupBody(body, h.catalogue)
	if err != nil {
		h.fail(c, err)
		return
	}
	samples, err := celestial.Sample(f, day, visibilitySpan, visibilityStep)
	if err != nil {
		h.fail(c, err)
		return
	}
	w, err := astro.RiseSet(where, samples)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, export.ExportWindow(body, w))
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	stars := 0
	if h.catalogue != nil {
		stars = h.catalogue.StarCount()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
		"stars":  stars,
	})
}

// sky builds the observed sky for the request, writing the error response
// itself on failure.
func (h *Handler) sky(c *gin.Context) (*celestial.ObservedSky, bool) {
	when := h.now()
	if s := c.Query("time"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid time (expected RFC3339): %w", err))
			return nil, false
		}
		when = t
	}
	where, err := h.where(c)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	center, err := h.center(c)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}

	sky, err := celestial.NewObservedSky(when, where, astro.NewStereographicProjection(center), h.catalogue)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return sky, true
}

func (h *Handler) where(c *gin.Context) (astro.Geographic, error) {
	lat, err := optionalFloat(c, "lat", h.defaults.Where.LatDeg())
	if err != nil {
		return astro.Geographic{}, err
	}
	lon, err := optionalFloat(c, "lon", h.defaults.Where.LonDeg())
	if err != nil {
		return astro.Geographic{}, err
	}
	return astro.GeographicOfDeg(lon, lat)
}

func (h *Handler) center(c *gin.Context) (astro.Horizontal, error) {
	az, err := optionalFloat(c, "az", h.defaults.Center.AzDeg())
	if err != nil {
		return astro.Horizontal{}, err
	}
	alt, err := optionalFloat(c, "alt", h.defaults.Center.AltDeg())
	if err != nil {
		return astro.Horizontal{}, err
	}
	return astro.HorizontalOfDeg(az, alt)
}

// fail maps domain errors to 400 and everything else to 500.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, astro.ErrValidation) || errors.Is(err, celestial.ErrUnsupported) || errors.Is(err, astro.ErrInsufficientSamples) {
		badRequest(c, err)
		return
	}
	h.log.Error("api.request_failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func requiredFloat(c *gin.Context, key string) (float64, error) {
	s := c.Query(key)
	if s == "" {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func optionalFloat(c *gin.Context, key string, def float64) (float64, error) {
	if c.Query(key) == "" {
		return def, nil
	}
	return requiredFloat(c, key)
}
