package models

import "time"

// DLM trigger reasons produced by the load-management engine.
const (
	TriggerGridOverload  = "GRID_OVERLOAD"
	TriggerPriorityShift = "PRIORITY_SHIFT"
	TriggerSchedule      = "SCHEDULE"
	TriggerManual        = "MANUAL"
	TriggerEmergency     = "EMERGENCY"
	TriggerRebalance     = "REBALANCE"
)

// TriggerReasons lists the known reasons in display order.
var TriggerReasons = []string{
	TriggerGridOverload,
	TriggerPriorityShift,
	TriggerSchedule,
	TriggerManual,
	TriggerEmergency,
	TriggerRebalance,
}

// DLMEvent is a power-limit adjustment recorded by the external DLM engine.
// Read-only from the dashboard's perspective.
type DLMEvent struct {
	DLMEventID                 int64     `json:"dlm_event_id"`
	HubID                      string    `json:"hub_id"`
	NodeID                     string    `json:"node_id"`
	TriggerReason              string    `json:"trigger_reason"`
	TotalGridLoadKW            float64   `json:"total_grid_load_kw"`
	OriginalLimitKW            float64   `json:"original_limit_kw"`
	NewLimitKW                 float64   `json:"new_limit_kw"`
	Timestamp                  time.Time `json:"timestamp"`
	AvailableCapacityAtTrigger *float64  `json:"available_capacity_at_trigger,omitempty"`
}

// LimitChangeKW is the signed limit delta (positive = increase).
func (e DLMEvent) LimitChangeKW() float64 {
	return e.NewLimitKW - e.OriginalLimitKW
}
