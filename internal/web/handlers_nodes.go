package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

func (h *Handlers) handleNodes(w http.ResponseWriter, r *http.Request) {
	hubID := r.URL.Query().Get("hub_id")
	activeOnly := r.URL.Query().Get("active_only") == "true"

	filter := brainapi.NodeFilter{Limit: brainapi.Int(h.pageLimit), HubID: hubID}
	if activeOnly {
		filter.ActiveOnly = brainapi.Bool(true)
	}

	var (
		nodes models.ListResponse[models.Node]
		hubs  models.ListResponse[models.Hub]
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		nodes, err = h.api.ListNodes(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		hubs, err = h.api.ListHubs(ctx, brainapi.HubFilter{Limit: brainapi.Int(h.pageLimit)})
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderFetchError(w, r, "nodes.html", "nodes", err)
		return
	}

	h.render(w, r, "nodes.html", map[string]interface{}{
		"Page":       "nodes",
		"Title":      "Charging Nodes",
		"Nodes":      nodes.Items,
		"Total":      nodes.Total,
		"Hubs":       hubs.Items,
		"HubID":      hubID,
		"ActiveOnly": activeOnly,
	})
}

func (h *Handlers) handleNodeCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := nodeCreateFromForm(r)
	if err != nil {
		h.addFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/nodes", http.StatusSeeOther)
		return
	}

	if _, err := h.api.CreateNode(r.Context(), payload); err != nil {
		h.addFlash(w, r, "error", "Failed to create node: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Node "+payload.NodeID+" created")
	}
	http.Redirect(w, r, "/nodes", http.StatusSeeOther)
}

func (h *Handlers) handleNodeUpdate(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	var payload models.NodeUpdate
	var err error
	if payload.MaxPowerKW, err = optFormFloat(r, "max_power_kw"); err != nil {
		h.addFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/nodes", http.StatusSeeOther)
		return
	}
	payload.IsMaintenance = optFormBool(r, "is_maintenance")

	if _, err := h.api.UpdateNode(r.Context(), nodeID, payload); err != nil {
		h.addFlash(w, r, "error", "Failed to update node: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Node "+nodeID+" updated")
	}
	http.Redirect(w, r, "/nodes", http.StatusSeeOther)
}

func (h *Handlers) handleNodeDelete(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	if err := h.api.DeleteNode(r.Context(), nodeID); err != nil {
		h.addFlash(w, r, "error", err.Error())
	} else {
		h.addFlash(w, r, "success", "Node "+nodeID+" deleted")
	}
	http.Redirect(w, r, "/nodes", http.StatusSeeOther)
}

func nodeCreateFromForm(r *http.Request) (models.NodeCreate, error) {
	var p models.NodeCreate

	p.NodeID = formString(r, "node_id")
	if p.NodeID == "" {
		return p, errors.New("node_id is required")
	}
	p.HubID = formString(r, "hub_id")
	if p.HubID == "" {
		return p, errors.New("hub_id is required")
	}

	var err error
	if p.MaxPowerKW, err = optFormFloat(r, "max_power_kw"); err != nil {
		return p, err
	}
	p.IsMaintenance = optFormBool(r, "is_maintenance")
	return p, nil
}
