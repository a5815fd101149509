package models

import (
	"strings"
	"time"
)

// Vehicle is an independent entity referenced by charging sessions.
type Vehicle struct {
	VehicleID    string    `json:"vehicle_id"`
	Manufacturer *string   `json:"manufacturer,omitempty"`
	Model        *string   `json:"model,omitempty"`
	DriverID     *string   `json:"driver_id,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// DisplayName joins manufacturer and model, falling back to the vehicle id.
func (v Vehicle) DisplayName() string {
	parts := make([]string, 0, 2)
	if v.Manufacturer != nil && *v.Manufacturer != "" {
		parts = append(parts, *v.Manufacturer)
	}
	if v.Model != nil && *v.Model != "" {
		parts = append(parts, *v.Model)
	}
	if len(parts) == 0 {
		return v.VehicleID
	}
	return strings.Join(parts, " ")
}

// VehicleCreate is the POST /vehicles payload.
type VehicleCreate struct {
	VehicleID    string  `json:"vehicle_id"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Model        *string `json:"model,omitempty"`
	DriverID     *string `json:"driver_id,omitempty"`
}

// VehicleUpdate is the PATCH /vehicles/{id} payload.
type VehicleUpdate struct {
	Manufacturer *string `json:"manufacturer,omitempty"`
	Model        *string `json:"model,omitempty"`
	DriverID     *string `json:"driver_id,omitempty"`
}
