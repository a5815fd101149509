package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

const (
	recentSessionLimit = 10
	recentDisplayCount = 5
)

// dashboardStats aggregates the fetched pages by reduction. TotalEnergyKWh is
// a sum over the most recent session page only, not a server-side total; the
// template labels it accordingly.
type dashboardStats struct {
	TotalHubs      int
	ActiveHubs     int
	TotalNodes     int
	AvailableNodes int
	TotalVehicles  int
	ActiveSessions int
	OccupiedNodes  int
	TotalEnergyKWh float64
}

func buildDashboardStats(
	hubs models.ListResponse[models.Hub],
	nodes models.ListResponse[models.Node],
	vehicles models.ListResponse[models.Vehicle],
	sessions models.ListResponse[models.ChargingSession],
) dashboardStats {
	stats := dashboardStats{
		TotalHubs:     hubs.Total,
		TotalNodes:    nodes.Total,
		TotalVehicles: vehicles.Total,
	}
	for _, hub := range hubs.Items {
		if hub.IsActive {
			stats.ActiveHubs++
		}
	}
	for _, node := range nodes.Items {
		if !node.IsMaintenance {
			stats.AvailableNodes++
		}
	}
	for _, s := range sessions.Items {
		if s.Active() {
			stats.ActiveSessions++
		}
		stats.TotalEnergyKWh += s.TotalEnergyKWh
	}
	stats.OccupiedNodes = stats.ActiveSessions
	return stats
}

func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		hubs     models.ListResponse[models.Hub]
		nodes    models.ListResponse[models.Node]
		vehicles models.ListResponse[models.Vehicle]
		sessions models.ListResponse[models.ChargingSession]
		events   models.ListResponse[models.DLMEvent]
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		hubs, err = h.api.ListHubs(ctx, brainapi.HubFilter{Limit: brainapi.Int(h.pageLimit)})
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
	g.Go(func() error {
		var err error
		sessions, err = h.api.ListSessions(ctx, brainapi.SessionFilter{Limit: brainapi.Int(recentSessionLimit)})
		return err
	})
	g.Go(func() error {
		var err error
		events, err = h.api.ListDLMEvents(ctx, brainapi.DLMEventFilter{Limit: brainapi.Int(recentDisplayCount)})
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderFetchError(w, r, "dashboard.html", "dashboard", err)
		return
	}

	recent := sessions.Items
	if len(recent) > recentDisplayCount {
		recent = recent[:recentDisplayCount]
	}

	h.render(w, r, "dashboard.html", map[string]interface{}{
		"Page":           "dashboard",
		"Title":          "Dashboard",
		"Stats":          buildDashboardStats(hubs, nodes, vehicles, sessions),
		"RecentSessions": recent,
		"RecentEvents":   events.Items,
	})
}
