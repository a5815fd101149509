package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/health"
	"dlmdash/internal/models"
)

type fakeOrigin struct {
	hubs     []models.Hub
	nodes    []models.Node
	vehicles []models.Vehicle
	sessions []models.ChargingSession
	events   []models.DLMEvent

	// hub id -> conflict detail returned on DELETE
	deleteHubConflicts map[string]string

	qrPNG []byte
}

func writeList[T any](w http.ResponseWriter, items []T) {
	_ = json.NewEncoder(w).Encode(models.ListResponse[T]{
		Items: items,
		Total: len(items),
		Limit: len(items),
	})
}

func (f *fakeOrigin) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Health{Status: "healthy"})
	})
	mux.HandleFunc("GET /hubs", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, f.hubs)
	})
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, f.nodes)
	})
	mux.HandleFunc("GET /vehicles", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, f.vehicles)
	})
	mux.HandleFunc("GET /sessions", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, f.sessions)
	})
	mux.HandleFunc("GET /dlm/events", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, f.events)
	})
	mux.HandleFunc("DELETE /hubs/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if detail, ok := f.deleteHubConflicts[id]; ok {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /qr/node/{id}", func(w http.ResponseWriter, r *http.Request) {
		if f.qrPNG == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(f.qrPNG)
	})
	return mux
}

// newDashboard spins up the fake origin plus the dashboard on top of it and
// returns a cookie-aware client so flash messages survive the redirect.
func newDashboard(t *testing.T, f *fakeOrigin) (string, *http.Client) {
	t.Helper()

	origin := httptest.NewServer(f.handler())
	t.Cleanup(origin.Close)

	api := brainapi.New(origin.URL, 2*time.Second, zap.NewNop())
	monitor := health.NewMonitor(api, time.Minute, zap.NewNop())

	router := NewRouter(Deps{
		API:           api,
		Health:        monitor,
		Logger:        zap.NewNop(),
		SessionSecret: "test-secret",
		PageLimit:     100,
	})
	dash := httptest.NewServer(router)
	t.Cleanup(dash.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return dash.URL, &http.Client{Jar: jar}
}

func getBody(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHubsPageRendersRows(t *testing.T) {
	lastSeen := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	base, client := newDashboard(t, &fakeOrigin{
		hubs: []models.Hub{
			{HubID: "H1", MaxGridCapacityKW: 50, IsActive: true, LastSeen: &lastSeen},
			{HubID: "H2", MaxGridCapacityKW: 30},
		},
	})

	body := getBody(t, client, base+"/hubs")

	assert.Contains(t, body, "H1")
	assert.Contains(t, body, "H2")
	assert.Contains(t, body, "50.0")
	assert.Contains(t, body, "badge-success")
	assert.Contains(t, body, "2026-02-14 09:30")
	assert.NotContains(t, body, "No hubs found")
}

func TestHubsPageEmptyState(t *testing.T) {
	base, client := newDashboard(t, &fakeOrigin{})

	body := getBody(t, client, base+"/hubs")

	assert.Contains(t, body, "No hubs found")
	// Headers stay in place even with zero rows.
	assert.Contains(t, body, "Hub ID")
	assert.Contains(t, body, "Capacity (kW)")
}

func TestDashboardAggregates(t *testing.T) {
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base, client := newDashboard(t, &fakeOrigin{
		hubs: []models.Hub{
			{HubID: "H1", IsActive: true},
			{HubID: "H2"},
		},
		nodes: []models.Node{
			{NodeID: "N1", HubID: "H1"},
			{NodeID: "N2", HubID: "H1", IsMaintenance: true},
		},
		sessions: []models.ChargingSession{
			{ChargingSessionID: 1, NodeID: "N1", StartTime: end.Add(-time.Hour), TotalEnergyKWh: 12.5},
			{ChargingSessionID: 2, NodeID: "N2", StartTime: end.Add(-2 * time.Hour), EndTime: &end, TotalEnergyKWh: 9.0},
		},
	})

	body := getBody(t, client, base+"/")

	assert.Contains(t, body, "1 available")
	assert.Contains(t, body, "1 active")
	assert.Contains(t, body, "21.5")
	assert.Contains(t, body, "Sum over recent sessions only")
}

func TestDeleteHubConflictShowsServerMessageAndKeepsList(t *testing.T) {
	detail := "Cannot delete hub H1: 2 nodes still attached"
	base, client := newDashboard(t, &fakeOrigin{
		hubs: []models.Hub{
			{HubID: "H1", MaxGridCapacityKW: 50, IsActive: true},
			{HubID: "H2", MaxGridCapacityKW: 30, IsActive: true},
		},
		deleteHubConflicts: map[string]string{"H1": detail},
	})

	resp, err := client.PostForm(base+"/hubs/H1/delete", url.Values{})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Redirect was followed back to the list page with the flash set.
	assert.Contains(t, string(body), detail)
	// The list is re-fetched from the origin, so nothing was removed.
	assert.Contains(t, string(body), "H1")
	assert.Contains(t, string(body), "H2")
}

func TestDeleteHubSuccessFlash(t *testing.T) {
	base, client := newDashboard(t, &fakeOrigin{
		hubs: []models.Hub{{HubID: "H1", MaxGridCapacityKW: 50}},
	})

	resp, err := client.PostForm(base+"/hubs/H1/delete", url.Values{})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "Hub H1 deleted")
}

func TestSessionsPageResolvesReferences(t *testing.T) {
	manufacturer, model := "Tesla", "Model 3"
	v1 := "V1"
	ghost := "V-ghost"
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(95 * time.Minute)

	base, client := newDashboard(t, &fakeOrigin{
		nodes: []models.Node{{NodeID: "N1", HubID: "H1", MaxPowerKW: 22}},
		vehicles: []models.Vehicle{
			{VehicleID: "V1", Manufacturer: &manufacturer, Model: &model},
		},
		sessions: []models.ChargingSession{
			{ChargingSessionID: 1, NodeID: "N1", VehicleID: &v1, StartTime: start},
			{ChargingSessionID: 2, NodeID: "N-gone", VehicleID: &ghost, StartTime: start, EndTime: &end},
		},
	})

	body := getBody(t, client, base+"/sessions")

	assert.Contains(t, body, "Tesla Model 3")
	assert.Contains(t, body, "Unknown")
	assert.Contains(t, body, ">active<")
	assert.Contains(t, body, ">completed<")
	assert.Contains(t, body, "1h 35m")
}

func TestSessionRowsLookup(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	v1 := "V1"
	missing := "V9"
	rows := buildSessionRows(
		[]models.ChargingSession{
			{ChargingSessionID: 1, NodeID: "N1", VehicleID: &v1, StartTime: now.Add(-30 * time.Minute)},
			{ChargingSessionID: 2, NodeID: "N9", VehicleID: &missing, StartTime: now.Add(-time.Hour)},
			{ChargingSessionID: 3, NodeID: "N1", StartTime: now.Add(-time.Hour)},
		},
		[]models.Node{{NodeID: "N1"}},
		[]models.Vehicle{{VehicleID: "V1"}},
		now,
	)

	require.Len(t, rows, 3)
	assert.Equal(t, "N1", rows[0].NodeLabel)
	assert.Equal(t, "V1", rows[0].VehicleLabel)
	assert.Equal(t, "30m", rows[0].DurationText)

	assert.Equal(t, "Unknown", rows[1].NodeLabel)
	assert.Equal(t, "Unknown", rows[1].VehicleLabel)

	// No vehicle reference at all also renders the placeholder.
	assert.Equal(t, "Unknown", rows[2].VehicleLabel)
}

func TestDLMEventsPage(t *testing.T) {
	base, client := newDashboard(t, &fakeOrigin{
		hubs: []models.Hub{{HubID: "H1"}},
		events: []models.DLMEvent{
			{
				DLMEventID: 1, HubID: "H1", NodeID: "N1",
				TriggerReason:   models.TriggerGridOverload,
				TotalGridLoadKW: 48, OriginalLimitKW: 22, NewLimitKW: 11,
				Timestamp: time.Date(2026, 3, 1, 7, 45, 0, 0, time.UTC),
			},
		},
	})

	body := getBody(t, client, base+"/dlm-events")

	assert.Contains(t, body, "GRID_OVERLOAD")
	assert.Contains(t, body, "-11.0")
	assert.Contains(t, body, "2026-03-01 07:45")
}

func TestQRDownload(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	base, client := newDashboard(t, &fakeOrigin{
		nodes: []models.Node{{NodeID: "N1", HubID: "H1"}},
		qrPNG: png,
	})

	resp, err := client.Get(base + "/qr-codes/N1/download")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "qr-code-N1.png")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, png, data)
}

func TestQRDownloadPropagatesStatus(t *testing.T) {
	base, client := newDashboard(t, &fakeOrigin{
		nodes: []models.Node{{NodeID: "N1", HubID: "H1"}},
	})

	resp, err := client.Get(base + "/qr-codes/N9/download")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQRPageEmbedsDataURL(t *testing.T) {
	base, client := newDashboard(t, &fakeOrigin{
		nodes: []models.Node{{NodeID: "N1", HubID: "H1", MaxPowerKW: 22}},
		qrPNG: []byte{0x89, 'P', 'N', 'G'},
	})

	body := getBody(t, client, base+"/qr-codes")

	assert.Contains(t, body, "data:image/png;base64,")
	assert.Contains(t, body, "/qr-codes/N1/download")
}

func TestFetchFailureRendersTransientError(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "database unavailable"})
	}))
	t.Cleanup(origin.Close)

	api := brainapi.New(origin.URL, 2*time.Second, zap.NewNop())
	monitor := health.NewMonitor(api, time.Minute, zap.NewNop())
	router := NewRouter(Deps{API: api, Health: monitor, Logger: zap.NewNop(), SessionSecret: "s", PageLimit: 100})
	dash := httptest.NewServer(router)
	t.Cleanup(dash.Close)

	resp, err := http.Get(dash.URL + "/vehicles")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Failed to load data")
	assert.Contains(t, string(body), "database unavailable")
	assert.True(t, strings.Contains(string(body), "No vehicles found"))
}
