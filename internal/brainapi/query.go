package brainapi

import (
	"net/url"
	"strconv"
)

// Filter structs mirror the query parameters each list endpoint accepts.
// Nil or empty fields are omitted from the query string entirely.

// HubFilter narrows ListHubs.
type HubFilter struct {
	Skip       *int
	Limit      *int
	ActiveOnly *bool
}

func (f HubFilter) values() url.Values {
	v := url.Values{}
	addInt(v, "skip", f.Skip)
	addInt(v, "limit", f.Limit)
	addBool(v, "active_only", f.ActiveOnly)
	return v
}

// NodeFilter narrows ListNodes.
type NodeFilter struct {
	Skip       *int
	Limit      *int
	HubID      string
	Status     string
	ActiveOnly *bool
}

func (f NodeFilter) values() url.Values {
	v := url.Values{}
	addInt(v, "skip", f.Skip)
	addInt(v, "limit", f.Limit)
	addString(v, "hub_id", f.HubID)
	addString(v, "status", f.Status)
	addBool(v, "active_only", f.ActiveOnly)
	return v
}

// VehicleFilter narrows ListVehicles.
type VehicleFilter struct {
	Skip  *int
	Limit *int
}

func (f VehicleFilter) values() url.Values {
	v := url.Values{}
	addInt(v, "skip", f.Skip)
	addInt(v, "limit", f.Limit)
	return v
}

// SessionFilter narrows ListSessions.
type SessionFilter struct {
	Skip      *int
	Limit     *int
	NodeID    string
	VehicleID string
	Status    string
}

func (f SessionFilter) values() url.Values {
	v := url.Values{}
	addInt(v, "skip", f.Skip)
	addInt(v, "limit", f.Limit)
	addString(v, "node_id", f.NodeID)
	addString(v, "vehicle_id", f.VehicleID)
	addString(v, "status", f.Status)
	return v
}

// DLMEventFilter narrows ListDLMEvents.
type DLMEventFilter struct {
	Skip      *int
	Limit     *int
	HubID     string
	EventType string
}

func (f DLMEventFilter) values() url.Values {
	v := url.Values{}
	addInt(v, "skip", f.Skip)
	addInt(v, "limit", f.Limit)
	addString(v, "hub_id", f.HubID)
	addString(v, "event_type", f.EventType)
	return v
}

func addInt(v url.Values, key string, p *int) {
	if p != nil {
		v.Set(key, strconv.Itoa(*p))
	}
}

func addBool(v url.Values, key string, p *bool) {
	if p != nil {
		v.Set(key, strconv.FormatBool(*p))
	}
}

func addString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

// Int returns a pointer for optional filter fields.
func Int(v int) *int { return &v }

// Bool returns a pointer for optional filter fields.
func Bool(v bool) *bool { return &v }
