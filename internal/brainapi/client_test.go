package brainapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dlmdash/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, zap.NewNop()), srv
}

func TestListNodesSerializesFilter(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(models.ListResponse[models.Node]{})
	}))

	_, err := client.ListNodes(context.Background(), NodeFilter{
		Limit:      Int(10),
		HubID:      "H1",
		ActiveOnly: Bool(true),
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "hub_id=H1")
	assert.Contains(t, gotQuery, "limit=10")
	assert.Contains(t, gotQuery, "active_only=true")
	assert.NotContains(t, gotQuery, "skip")
	assert.NotContains(t, gotQuery, "status")
	assert.NotContains(t, gotQuery, "undefined")
}

func TestListHubsEmptyFilterSendsNoQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(models.ListResponse[models.Hub]{})
	}))

	_, err := client.ListHubs(context.Background(), HubFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestGetHubNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Hub H9 not found"})
	}))

	_, err := client.GetHub(context.Background(), "H9")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Hub H9 not found", err.Error())
}

func TestDeleteHubConflictSurfacesDetailVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/hubs/H1", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Cannot delete hub H1: 3 nodes still attached"})
	}))

	err := client.DeleteHub(context.Background(), "H1")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, "Cannot delete hub H1: 3 nodes still attached", err.Error())
}

func TestDeleteNoContentSucceeds(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.DeleteVehicle(context.Background(), "V1"))
}

func TestEmptyBodyDecodesToZeroValue(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Health{}, h)
}

func TestErrorWithoutDetailFallsBackToStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetNode(context.Background(), "N1")
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(srv.URL, time.Second, zap.NewNop())
	srv.Close()

	_, err := client.ListVehicles(context.Background(), VehicleFilter{})
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.True(t, strings.HasPrefix(err.Error(), "network error:"))
	assert.False(t, IsNotFound(err))
}

func TestCreateHubSendsCreateShapeOnly(t *testing.T) {
	var body map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(models.Hub{HubID: "H1", MaxGridCapacityKW: 50})
	}))

	hub, err := client.CreateHub(context.Background(), models.HubCreate{
		HubID:             "H1",
		MaxGridCapacityKW: 50,
		IPAddress:         "10.0.0.5",
		FirmwareVersion:   "1.2.0",
	})
	require.NoError(t, err)
	assert.Equal(t, "H1", hub.HubID)

	assert.Equal(t, "H1", body["hub_id"])
	assert.NotContains(t, body, "last_seen")
	assert.NotContains(t, body, "lat")
	assert.NotContains(t, body, "is_active")
}

func TestUpdateNodePatchesOnlyMutatedFields(t *testing.T) {
	var raw []byte
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		raw, _ = json.Marshal(decodeBody(t, r))
		_ = json.NewEncoder(w).Encode(models.Node{NodeID: "N1", HubID: "H1", IsMaintenance: true})
	}))

	maintenance := true
	_, err := client.UpdateNode(context.Background(), "N1", models.NodeUpdate{IsMaintenance: &maintenance})
	require.NoError(t, err)

	assert.JSONEq(t, `{"is_maintenance":true}`, string(raw))
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestNodeQRCode(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/qr/node/N1", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))

	img, err := client.NodeQRCode(context.Background(), "N1")
	require.NoError(t, err)
	assert.Equal(t, png, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasPrefix(img.DataURL(), "data:image/png;base64,"))
}

func TestNodeQRCodeErrorUsesStatusText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	_, err := client.NodeQRCode(context.Background(), "N9")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), http.StatusText(http.StatusNotFound))
}

func TestEndToEndSessionLifecycle(t *testing.T) {
	// Create hub -> node -> vehicle -> session, then close the session and
	// check the derived status flips and duration is the literal difference.
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	var sessionEnd *time.Time

	mux := http.NewServeMux()
	mux.HandleFunc("POST /hubs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Hub{HubID: "H1", MaxGridCapacityKW: 50, IsActive: true})
	})
	mux.HandleFunc("POST /nodes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Node{NodeID: "N1", HubID: "H1", MaxPowerKW: 22})
	})
	mux.HandleFunc("POST /vehicles", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Vehicle{VehicleID: "V1", RegisteredAt: start})
	})
	mux.HandleFunc("POST /sessions", func(w http.ResponseWriter, r *http.Request) {
		v := "V1"
		_ = json.NewEncoder(w).Encode(models.ChargingSession{ChargingSessionID: 7, NodeID: "N1", VehicleID: &v, StartTime: start})
	})
	mux.HandleFunc("PATCH /sessions/7", func(w http.ResponseWriter, r *http.Request) {
		var upd models.ChargingSessionUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upd))
		sessionEnd = upd.EndTime
		v := "V1"
		_ = json.NewEncoder(w).Encode(models.ChargingSession{
			ChargingSessionID: 7, NodeID: "N1", VehicleID: &v,
			StartTime: start, EndTime: upd.EndTime, TotalEnergyKWh: 14.2,
		})
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	_, err := client.CreateHub(ctx, models.HubCreate{HubID: "H1", MaxGridCapacityKW: 50, IPAddress: "10.0.0.1", FirmwareVersion: "1.0"})
	require.NoError(t, err)
	_, err = client.CreateNode(ctx, models.NodeCreate{NodeID: "N1", HubID: "H1"})
	require.NoError(t, err)
	_, err = client.CreateVehicle(ctx, models.VehicleCreate{VehicleID: "V1"})
	require.NoError(t, err)

	vehicleID := "V1"
	created, err := client.CreateSession(ctx, models.ChargingSessionCreate{NodeID: "N1", VehicleID: &vehicleID})
	require.NoError(t, err)
	assert.Nil(t, created.EndTime)
	assert.Equal(t, "active", created.Status())

	end := start.Add(95 * time.Minute)
	updated, err := client.UpdateSession(ctx, created.ChargingSessionID, models.ChargingSessionUpdate{EndTime: &end})
	require.NoError(t, err)
	require.NotNil(t, sessionEnd)
	assert.Equal(t, "completed", updated.Status())
	assert.Equal(t, 95*time.Minute, updated.Duration(end.Add(time.Hour)))
}
