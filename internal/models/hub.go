package models

import "time"

// Hub is a physical charging site with a shared grid-capacity limit.
type Hub struct {
	HubID             string     `json:"hub_id"`
	Lat               *float64   `json:"lat,omitempty"`
	Lon               *float64   `json:"lon,omitempty"`
	Alt               *float64   `json:"alt,omitempty"`
	MaxGridCapacityKW float64    `json:"max_grid_capacity_kw"`
	IsActive          bool       `json:"is_active"`
	LastSeen          *time.Time `json:"last_seen,omitempty"`
}

// Status returns the badge label for a hub row.
func (h Hub) Status() string {
	if h.IsActive {
		return "active"
	}
	return "inactive"
}

// HubCreate is the POST /hubs payload. hub_id is immutable after creation.
type HubCreate struct {
	HubID             string   `json:"hub_id"`
	Lat               *float64 `json:"lat,omitempty"`
	Lon               *float64 `json:"lon,omitempty"`
	Alt               *float64 `json:"alt,omitempty"`
	MaxGridCapacityKW float64  `json:"max_grid_capacity_kw"`
	IsActive          *bool    `json:"is_active,omitempty"`
	IPAddress         string   `json:"ip_address"`
	FirmwareVersion   string   `json:"firmware_version"`
}

// HubUpdate is the PATCH /hubs/{id} payload; nil fields are left untouched.
type HubUpdate struct {
	Lat               *float64 `json:"lat,omitempty"`
	Lon               *float64 `json:"lon,omitempty"`
	Alt               *float64 `json:"alt,omitempty"`
	MaxGridCapacityKW *float64 `json:"max_grid_capacity_kw,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
	IPAddress         *string  `json:"ip_address,omitempty"`
	FirmwareVersion   *string  `json:"firmware_version,omitempty"`
}
