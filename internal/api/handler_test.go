package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-planetarium/internal/astro"
	"github.com/litescript/ls-planetarium/internal/celestial"
	"github.com/litescript/ls-planetarium/internal/export"
)

const skyTime = "2024-01-15T06:00:00Z"

func init() {
	gin.SetMode(gin.TestMode)
}

func testCatalogue(t *testing.T) *celestial.StarCatalogue {
	t.Helper()
	eq, err := astro.EquatorialOf(astro.OfHr(6.7525), astro.OfDeg(-16.7161))
	if err != nil {
		t.Fatal(err)
	}
	sirius, err := celestial.NewStar(32349, "Sirius", eq, -1.44, 0.009)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := celestial.NewStarCatalogue([]celestial.Star{sirius}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func testDefaults() Defaults {
	where, _ := astro.GeographicOfDeg(6.57, 46.52)
	center, _ := astro.HorizontalOfDeg(180, 15)
	return Defaults{Where: where, Center: center}
}

func testRouter(t *testing.T, origins ...string) (*gin.Engine, *Handler) {
	t.Helper()
	h := NewHandler(testCatalogue(t), testDefaults(), nil)
	h.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }
	return SetupRouter(h, origins), h
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := testRouter(t)
	w := get(t, router, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	decode(t, w, &body)
	if body["status"] != "ok" || body["stars"] != float64(1) {
		t.Errorf("body = %v", body)
	}
}

func TestGetSky(t *testing.T) {
	router, _ := testRouter(t)
	w := get(t, router, "/v1/sky?time="+skyTime+"&lat=-35.4&lon=148.98&az=90&alt=30")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var snap export.SnapshotExport
	decode(t, w, &snap)

	if !snap.Timestamp.Equal(time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)) {
		t.Errorf("Timestamp = %v", snap.Timestamp)
	}
	if math.Abs(snap.Observer.LatDeg+35.4) > 1e-9 {
		t.Errorf("Observer = %+v", snap.Observer)
	}
	if math.Abs(snap.Center.AzDeg-90) > 1e-9 || math.Abs(snap.Center.AltDeg-30) > 1e-9 {
		t.Errorf("Center = %+v", snap.Center)
	}
	if len(snap.Planets) != 7 || len(snap.Stars) != 1 {
		t.Errorf("planets = %d, stars = %d", len(snap.Planets), len(snap.Stars))
	}
}

func TestGetSky_Defaults(t *testing.T) {
	router, _ := testRouter(t)
	w := get(t, router, "/v1/sky")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var snap export.SnapshotExport
	decode(t, w, &snap)
	if !snap.Timestamp.Equal(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Timestamp = %v, want handler clock", snap.Timestamp)
	}
	if math.Abs(snap.Observer.LonDeg-6.57) > 1e-9 {
		t.Errorf("Observer = %+v, want default", snap.Observer)
	}
}

func TestGetSky_BadRequests(t *testing.T) {
	router, _ := testRouter(t)

	tests := []struct {
		name   string
		target string
	}{
		{"bad time", "/v1/sky?time=yesterday"},
		{"latitude out of range", "/v1/sky?lat=95"},
		{"longitude out of range", "/v1/sky?lon=180"},
		{"unparsable altitude", "/v1/sky?alt=high"},
		{"altitude out of range", "/v1/sky?alt=-91"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.target)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var body map[string]string
			decode(t, w, &body)
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestGetClosest(t *testing.T) {
	router, h := testRouter(t)

	when, _ := time.Parse(time.RFC3339, skyTime)
	sky, err := celestial.NewObservedSky(when, h.defaults.Where, astro.NewStereographicProjection(h.defaults.Center), h.catalogue)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := sky.PointOf(sky.Stars()[0])

	target := "/v1/sky/closest?time=" + skyTime +
		"&x=" + formatFloat(p.X()) + "&y=" + formatFloat(p.Y()) + "&max=0.001"
	w := get(t, router, target)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp ClosestResponse
	decode(t, w, &resp)
	if !resp.Found || resp.Name != "Sirius" || resp.Kind != "star" {
		t.Errorf("response = %+v, want Sirius", resp)
	}

	w = get(t, router, "/v1/sky/closest?time="+skyTime+"&x=1000&y=1000&max=0.01")
	resp = ClosestResponse{}
	decode(t, w, &resp)
	if resp.Found {
		t.Errorf("response = %+v, want nothing found", resp)
	}

	if w := get(t, router, "/v1/sky/closest?y=0"); w.Code != http.StatusBadRequest {
		t.Errorf("missing x status = %d, want 400", w.Code)
	}
}

func formatFloat(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestGetVisibility(t *testing.T) {
	router, _ := testRouter(t)

	w := get(t, router, "/v1/visibility?body=sun&date=2024-03-20&lat=46.52&lon=6.57")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var win export.WindowExport
	decode(t, w, &win)
	if win.Rise == nil || win.Set == nil {
		t.Fatalf("window = %+v, want rise and set", win)
	}
	if d := win.Set.Sub(*win.Rise); d < 11*time.Hour+30*time.Minute || d > 12*time.Hour+30*time.Minute {
		t.Errorf("equinox day length = %v", d)
	}

	w = get(t, router, "/v1/visibility?body=Sirius&date=2024-01-15")
	if w.Code != http.StatusOK {
		t.Fatalf("star status = %d, body %s", w.Code, w.Body.String())
	}
	win = export.WindowExport{}
	decode(t, w, &win)
	if win.Transit == nil || win.MaxAltDeg < 20 || win.MaxAltDeg > 30 {
		t.Errorf("Sirius window = %+v, want transit near 26.8°", win)
	}
}

func TestGetVisibility_BadRequests(t *testing.T) {
	router, _ := testRouter(t)

	for _, target := range []string{
		"/v1/visibility",
		"/v1/visibility?body=earth",
		"/v1/visibility?body=pluto",
		"/v1/visibility?body=sun&date=15/01/2024",
		"/v1/visibility?body=sun&lat=-100",
	} {
		if w := get(t, router, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, w.Code)
		}
	}
}

func TestGetSummary(t *testing.T) {
	router, _ := testRouter(t)
	w := get(t, router, "/v1/sky/summary?time="+skyTime)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Total:") {
		t.Errorf("summary body = %q", w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"all origins", nil, "http://sky.example", "*"},
		{"allowed origin", []string{"http://sky.example"}, "http://sky.example", "http://sky.example"},
		{"other origin", []string{"http://sky.example"}, "http://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := testRouter(t, tt.origins...)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tt.origin)
			router.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}
