package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

func (h *Handlers) handleVehicles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.api.ListVehicles(r.Context(), brainapi.VehicleFilter{Limit: brainapi.Int(h.pageLimit)})
	if err != nil {
		h.renderFetchError(w, r, "vehicles.html", "vehicles", err)
		return
	}

	h.render(w, r, "vehicles.html", map[string]interface{}{
		"Page":     "vehicles",
		"Title":    "Vehicles",
		"Vehicles": resp.Items,
		"Total":    resp.Total,
	})
}

func (h *Handlers) handleVehicleCreate(w http.ResponseWriter, r *http.Request) {
	vehicleID := formString(r, "vehicle_id")
	if vehicleID == "" {
		h.addFlash(w, r, "error", errors.New("vehicle_id is required").Error())
		http.Redirect(w, r, "/vehicles", http.StatusSeeOther)
		return
	}

	payload := models.VehicleCreate{
		VehicleID:    vehicleID,
		Manufacturer: optFormString(r, "manufacturer"),
		Model:        optFormString(r, "model"),
		DriverID:     optFormString(r, "driver_id"),
	}

	if _, err := h.api.CreateVehicle(r.Context(), payload); err != nil {
		h.addFlash(w, r, "error", "Failed to create vehicle: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Vehicle "+vehicleID+" created")
	}
	http.Redirect(w, r, "/vehicles", http.StatusSeeOther)
}

func (h *Handlers) handleVehicleUpdate(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")

	payload := models.VehicleUpdate{
		Manufacturer: optFormString(r, "manufacturer"),
		Model:        optFormString(r, "model"),
		DriverID:     optFormString(r, "driver_id"),
	}

	if _, err := h.api.UpdateVehicle(r.Context(), vehicleID, payload); err != nil {
		h.addFlash(w, r, "error", "Failed to update vehicle: "+err.Error())
	} else {
		h.addFlash(w, r, "success", "Vehicle "+vehicleID+" updated")
	}
	http.Redirect(w, r, "/vehicles", http.StatusSeeOther)
}

func (h *Handlers) handleVehicleDelete(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")

	if err := h.api.DeleteVehicle(r.Context(), vehicleID); err != nil {
		h.addFlash(w, r, "error", err.Error())
	} else {
		h.addFlash(w, r, "success", "Vehicle "+vehicleID+" deleted")
	}
	http.Redirect(w, r, "/vehicles", http.StatusSeeOther)
}
