package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

func (h *Handlers) handleHubs(w http.ResponseWriter, r *http.Request) {
	filter := brainapi.HubFilter{Limit: brainapi.Int(h.pageLimit)}
	activeOnly := r.URL.Query().Get("active_only") == "true"
	if activeOnly {
		filter.ActiveOnly = brainapi.Bool(true)
	}

	resp, err := h.api.ListHubs(r.Context(), filter)
	if err != nil {
		h.renderFetchError(w, r, "hubs.html", "hubs", err)
		return
	}

	h.render(w, r, "hubs.html", map[string]interface{}{
		"Page":       "hubs",
		"Title":      "Hubs",
		"Hubs":       resp.Items,
		"Total":      resp.Total,
		"ActiveOnly": activeOnly,
	})
}

func (h *Handlers) handleHubCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := hubCreateFromForm(r)
	if err != nil {
		h.addFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/hubs", http.StatusSeeOther)
		return
	}

	if _, err := h.api.CreateHub(r.Context(), payload); err != nil {
		h.addFlash(w, r, "error", "Failed to create hub: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Hub "+payload.HubID+" created")
	}
	http.Redirect(w, r, "/hubs", http.StatusSeeOther)
}

func (h *Handlers) handleHubUpdate(w http.ResponseWriter, r *http.Request) {
	hubID := chi.URLParam(r, "hubID")

	payload, err := hubUpdateFromForm(r)
	if err != nil {
		h.addFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/hubs", http.StatusSeeOther)
		return
	}

	if _, err := h.api.UpdateHub(r.Context(), hubID, payload); err != nil {
		h.addFlash(w, r, "error", "Failed to update hub: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Hub "+hubID+" updated")
	}
	http.Redirect(w, r, "/hubs", http.StatusSeeOther)
}

// handleHubDelete surfaces the server's rejection detail verbatim; the list
// shown after redirect is a fresh fetch, so a rejected delete leaves it
// untouched.
func (h *Handlers) handleHubDelete(w http.ResponseWriter, r *http.Request) {
	hubID := chi.URLParam(r, "hubID")

	if err := h.api.DeleteHub(r.Context(), hubID); err != nil {
		h.addFlash(w, r, "error", err.Error())
	} else {
		h.addFlash(w, r, "success", "Hub "+hubID+" deleted")
	}
	http.Redirect(w, r, "/hubs", http.StatusSeeOther)
}

func hubCreateFromForm(r *http.Request) (models.HubCreate, error) {
	var p models.HubCreate

	p.HubID = formString(r, "hub_id")
	if p.HubID == "" {
		return p, errors.New("hub_id is required")
	}

	capacity, err := formFloat(r, "max_grid_capacity_kw")
	if err != nil {
		return p, err
	}
	p.MaxGridCapacityKW = capacity

	if p.Lat, err = optFormFloat(r, "lat"); err != nil {
		return p, err
	}
	if p.Lon, err = optFormFloat(r, "lon"); err != nil {
		return p, err
	}
	if p.Alt, err = optFormFloat(r, "alt"); err != nil {
		return p, err
	}

	p.IsActive = optFormBool(r, "is_active")
	p.IPAddress = formString(r, "ip_address")
	p.FirmwareVersion = formString(r, "firmware_version")
	return p, nil
}

func hubUpdateFromForm(r *http.Request) (models.HubUpdate, error) {
	var p models.HubUpdate
	var err error

	if p.Lat, err = optFormFloat(r, "lat"); err != nil {
		return p, err
	}
	if p.Lon, err = optFormFloat(r, "lon"); err != nil {
		return p, err
	}
	if p.Alt, err = optFormFloat(r, "alt"); err != nil {
		return p, err
	}
	if p.MaxGridCapacityKW, err = optFormFloat(r, "max_grid_capacity_kw"); err != nil {
		return p, err
	}

	p.IsActive = optFormBool(r, "is_active")
	p.IPAddress = optFormString(r, "ip_address")
	p.FirmwareVersion = optFormString(r, "firmware_version")
	return p, nil
}
