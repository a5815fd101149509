package brainapi

import (
	"context"
	"net/http"
	"net/url"

	"dlmdash/internal/models"
)

// ListVehicles fetches a page of registered vehicles.
func (c *Client) ListVehicles(ctx context.Context, filter VehicleFilter) (models.ListResponse[models.Vehicle], error) {
	return getJSON[models.ListResponse[models.Vehicle]](ctx, c, "/vehicles", filter.values())
}

// GetVehicle fetches one vehicle by id.
func (c *Client) GetVehicle(ctx context.Context, vehicleID string) (models.Vehicle, error) {
	return getJSON[models.Vehicle](ctx, c, "/vehicles/"+url.PathEscape(vehicleID), nil)
}

// CreateVehicle registers a new vehicle.
func (c *Client) CreateVehicle(ctx context.Context, payload models.VehicleCreate) (models.Vehicle, error) {
	return postJSON[models.Vehicle](ctx, c, "/vehicles", payload)
}

// UpdateVehicle applies a partial update.
func (c *Client) UpdateVehicle(ctx context.Context, vehicleID string, payload models.VehicleUpdate) (models.Vehicle, error) {
	return patchJSON[models.Vehicle](ctx, c, "/vehicles/"+url.PathEscape(vehicleID), payload)
}

// DeleteVehicle removes a vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, vehicleID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(vehicleID), nil, nil)
	return err
}
