package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vincentspereira/weatherdeck/internal/geo"
	"github.com/vincentspereira/weatherdeck/internal/session"
	"github.com/vincentspereira/weatherdeck/internal/store"
	"github.com/vincentspereira/weatherdeck/internal/util"
	"github.com/vincentspereira/weatherdeck/internal/weather"
)

var apiTestNow = time.Date(2025, time.June, 12, 14, 23, 0, 0, time.UTC)

func newTestApp() *fiber.App {
	resolver := geo.NewResolver(0, rand.New(rand.NewSource(3)))
	synth := weather.NewSynthesizer(util.FixedClock{T: apiTestNow}, rand.New(rand.NewSource(3)), 9)
	factory := func() *session.Session {
		return session.New(resolver, synth, util.FixedClock{T: apiTestNow}, "New York")
	}
	sessions := store.NewSessionStore(factory, 100, time.Hour)

	app := fiber.New()
	RegisterRoutes(app, sessions)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, sessionID string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeSnapshot(t *testing.T, resp *http.Response) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestSubmitCityValidation(t *testing.T) {
	app := newTestApp()

	// Missing city should return 400.
	resp := postJSON(t, app, "/api/v1/location", "", fiber.Map{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude should also return 400.
	resp = postJSON(t, app, "/api/v1/location/geolocate", "", fiber.Map{"latitude": 123.0, "longitude": 10.0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSubmitCityFlow(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/location", "", fiber.Map{"city": "Paris"})
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	sessionID := resp.Header.Get(sessionHeader)
	if sessionID == "" {
		t.Fatal("expected session id header")
	}

	snap := decodeSnapshot(t, resp)
	if snap.State != session.StateReady {
		t.Fatalf("expected ready, got %s", snap.State)
	}
	if snap.Location == nil || snap.Location.Timezone != "Europe/Paris" {
		t.Errorf("unexpected location %+v", snap.Location)
	}

	// The same session id must return the same dataset.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	req.Header.Set(sessionHeader, sessionID)
	getResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	snap = decodeSnapshot(t, getResp)
	if snap.State != session.StateReady || snap.Location.DisplayName != "Paris" {
		t.Errorf("session did not persist across requests: %s / %+v", snap.State, snap.Location)
	}
}

func TestSubmitUnknownCityReportsNotFound(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/location", "", fiber.Map{"city": "Unknown"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("not-found is session state, not a transport error; got %d", resp.StatusCode)
	}
	snap := decodeSnapshot(t, resp)
	if snap.State != session.StateNotFound {
		t.Errorf("expected not_found, got %s", snap.State)
	}
}

func TestDisambiguationFlow(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/location", "", fiber.Map{"city": "London"})
	sessionID := resp.Header.Get(sessionHeader)
	snap := decodeSnapshot(t, resp)
	if snap.State != session.StateDisambiguating || len(snap.Candidates) != 3 {
		t.Fatalf("expected 3-way disambiguation, got %s with %d candidates", snap.State, len(snap.Candidates))
	}

	// Out-of-range pick conflicts with the current state.
	resp = postJSON(t, app, "/api/v1/location/candidate", sessionID, fiber.Map{"index": 9})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for bad index, got %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/api/v1/location/candidate", sessionID, fiber.Map{"index": 0})
	snap = decodeSnapshot(t, resp)
	if snap.State != session.StateReady {
		t.Fatalf("expected ready after pick, got %s", snap.State)
	}
	if snap.Location.Timezone != "Europe/London" {
		t.Errorf("expected Europe/London, got %q", snap.Location.Timezone)
	}
}

func TestHourlyWindowEndpoint(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/location", "", fiber.Map{"city": "Paris"})
	sessionID := resp.Header.Get(sessionHeader)
	snap := decodeSnapshot(t, resp)
	if len(snap.Daily) < 2 {
		t.Fatalf("expected daily entries, got %d", len(snap.Daily))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?date="+snap.Daily[1].Date.String(), nil)
	req.Header.Set(sessionHeader, sessionID)
	hourResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if hourResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", hourResp.StatusCode)
	}

	var payload struct {
		Date  weather.CivilDate      `json:"date"`
		Hours []weather.HourlyRecord `json:"hours"`
	}
	if err := json.NewDecoder(hourResp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode hours: %v", err)
	}
	if len(payload.Hours) != 24 {
		t.Errorf("expected 24 hours for a future day, got %d", len(payload.Hours))
	}

	// Malformed date.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?date=12-06-2025", nil)
	req.Header.Set(sessionHeader, sessionID)
	badResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if badResp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %d", badResp.StatusCode)
	}
}

func TestHourlyWindowWithoutDataset(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?date=2025-06-13", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 when no dataset is active, got %d", resp.StatusCode)
	}
}
