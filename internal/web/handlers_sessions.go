package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

// sessionRow resolves weak node/vehicle references for display. A reference
// that does not appear in the most recent page of the referenced resource
// renders "Unknown" rather than failing.
type sessionRow struct {
	models.ChargingSession
	NodeLabel    string
	VehicleLabel string
	DurationText string
}

func buildSessionRows(sessions []models.ChargingSession, nodes []models.Node, vehicles []models.Vehicle, now time.Time) []sessionRow {
	nodeByID := make(map[string]models.Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.NodeID] = n
	}
	vehicleByID := make(map[string]models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.VehicleID] = v
	}

	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		row := sessionRow{
			ChargingSession: s,
			NodeLabel:       "Unknown",
			VehicleLabel:    "Unknown",
			DurationText:    formatDuration(s.Duration(now)),
		}
		if n, ok := nodeByID[s.NodeID]; ok {
			row.NodeLabel = n.NodeID
		}
		if s.VehicleID != nil {
			if v, ok := vehicleByID[*s.VehicleID]; ok {
				row.VehicleLabel = v.DisplayName()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (h *Handlers) handleSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := brainapi.SessionFilter{
		Limit:     brainapi.Int(h.pageLimit),
		NodeID:    q.Get("node_id"),
		VehicleID: q.Get("vehicle_id"),
		Status:    q.Get("status"),
	}

	var (
		sessions models.ListResponse[models.ChargingSession]
		nodes    models.ListResponse[models.Node]
		vehicles models.ListResponse[models.Vehicle]
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		sessions, err = h.api.ListSessions(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		nodes, err = h.api.ListNodes(ctx, brainapi.NodeFilter{Limit: brainapi.Int(h.pageLimit)})
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = h.api.ListVehicles(ctx, brainapi.VehicleFilter{Limit: brainapi.Int(h.pageLimit)})
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderFetchError(w, r, "sessions.html", "sessions", err)
		return
	}

	h.render(w, r, "sessions.html", map[string]interface{}{
		"Page":         "sessions",
		"Title":        "Charging Sessions",
		"Rows":         buildSessionRows(sessions.Items, nodes.Items, vehicles.Items, time.Now().UTC()),
		"Total":        sessions.Total,
		"Nodes":        nodes.Items,
		"Vehicles":     vehicles.Items,
		"FilterNode":   filter.NodeID,
		"FilterVeh":    filter.VehicleID,
		"FilterStatus": filter.Status,
	})
}

func (h *Handlers) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	nodeID := formString(r, "node_id")
	if nodeID == "" {
		h.addFlash(w, r, "error", errors.New("node_id is required").Error())
		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
		return
	}

	payload := models.ChargingSessionCreate{
		NodeID:    nodeID,
		VehicleID: optFormString(r, "vehicle_id"),
	}

	if _, err := h.api.CreateSession(r.Context(), payload); err != nil {
		h.addFlash(w, r, "error", "Failed to start session: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Session started on node "+nodeID)
	}
	http.Redirect(w, r, "/sessions", http.StatusSeeOther)
}

// handleSessionEnd closes a session by patching end_time to now, optionally
// with final energy figures.
func (h *Handlers) handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		h.addFlash(w, r, "error", "invalid session id")
		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
		return
	}

	now := time.Now().UTC()
	payload := models.ChargingSessionUpdate{EndTime: &now}
	if payload.TotalEnergyKWh, err = optFormFloat(r, "total_energy_kwh"); err != nil {
		h.addFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
		return
	}
	if payload.AvgPowerKW, err = optFormFloat(r, "avg_power_kw"); err != nil {
		h.addFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
		return
	}

	if _, err := h.api.UpdateSession(r.Context(), sessionID, payload); err != nil {
		h.addFlash(w, r, "error", "Failed to end session: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Session ended")
	}
	http.Redirect(w, r, "/sessions", http.StatusSeeOther)
}

func (h *Handlers) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		h.addFlash(w, r, "error", "invalid session id")
		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteSession(r.Context(), sessionID); err != nil {
		h.addFlash(w, r, "error", err.Error())
	} else {
		h.addFlash(w, r, "success", "Session deleted")
	}
	http.Redirect(w, r, "/sessions", http.StatusSeeOther)
}
