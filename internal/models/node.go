package models

// Node is an individual charging point belonging to one hub.
type Node struct {
	NodeID        string  `json:"node_id"`
	HubID         string  `json:"hub_id"`
	MaxPowerKW    float64 `json:"max_power_kw"`
	IsMaintenance bool    `json:"is_maintenance"`
}

// Status returns the badge label for a node row.
func (n Node) Status() string {
	if n.IsMaintenance {
		return "maintenance"
	}
	return "available"
}

// NodeCreate is the POST /nodes payload.
type NodeCreate struct {
	NodeID        string   `json:"node_id"`
	HubID         string   `json:"hub_id"`
	MaxPowerKW    *float64 `json:"max_power_kw,omitempty"`
	IsMaintenance *bool    `json:"is_maintenance,omitempty"`
}

// NodeUpdate is the PATCH /nodes/{id} payload.
type NodeUpdate struct {
	MaxPowerKW    *float64 `json:"max_power_kw,omitempty"`
	IsMaintenance *bool    `json:"is_maintenance,omitempty"`
}
