package models

import "time"

// ChargingSession binds a vehicle to a node over a time interval.
// end_time stays null while the session is ongoing.
type ChargingSession struct {
	ChargingSessionID int64      `json:"charging_session_id"`
	NodeID            string     `json:"node_id"`
	VehicleID         *string    `json:"vehicle_id,omitempty"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	TotalEnergyKWh    float64    `json:"total_energy_kwh"`
	AvgPowerKW        float64    `json:"avg_power_kw"`
}

// Active reports whether the session is still open.
func (s ChargingSession) Active() bool {
	return s.EndTime == nil
}

// Status returns the badge label for a session row.
func (s ChargingSession) Status() string {
	if s.Active() {
		return "active"
	}
	return "completed"
}

// Duration is the literal end-start difference, or elapsed time so far for an
// open session measured against now.
func (s ChargingSession) Duration(now time.Time) time.Duration {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	if end.Before(s.StartTime) {
		return 0
	}
	return end.Sub(s.StartTime)
}

// ChargingSessionCreate is the POST /sessions payload; start_time and the id
// are server-assigned.
type ChargingSessionCreate struct {
	NodeID    string  `json:"node_id"`
	VehicleID *string `json:"vehicle_id,omitempty"`
}

// ChargingSessionUpdate is the PATCH /sessions/{id} payload. Setting end_time
// closes the session.
type ChargingSessionUpdate struct {
	VehicleID      *string    `json:"vehicle_id,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	TotalEnergyKWh *float64   `json:"total_energy_kwh,omitempty"`
	AvgPowerKW     *float64   `json:"avg_power_kw,omitempty"`
}
