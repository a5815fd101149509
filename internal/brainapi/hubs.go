package brainapi

import (
	"context"
	"net/http"
	"net/url"

	"dlmdash/internal/models"
)

// ListHubs fetches a page of hubs.
func (c *Client) ListHubs(ctx context.Context, filter HubFilter) (models.ListResponse[models.Hub], error) {
	return getJSON[models.ListResponse[models.Hub]](ctx, c, "/hubs", filter.values())
}

// GetHub fetches one hub by id.
func (c *Client) GetHub(ctx context.Context, hubID string) (models.Hub, error) {
	return getJSON[models.Hub](ctx, c, "/hubs/"+url.PathEscape(hubID), nil)
}

// CreateHub registers a new hub and returns the populated entity.
func (c *Client) CreateHub(ctx context.Context, payload models.HubCreate) (models.Hub, error) {
	return postJSON[models.Hub](ctx, c, "/hubs", payload)
}

// UpdateHub applies a partial update.
func (c *Client) UpdateHub(ctx context.Context, hubID string, payload models.HubUpdate) (models.Hub, error) {
	return patchJSON[models.Hub](ctx, c, "/hubs/"+url.PathEscape(hubID), payload)
}

// DeleteHub removes a hub. The server rejects hubs with dependent nodes; the
// rejection detail is surfaced verbatim.
func (c *Client) DeleteHub(ctx context.Context, hubID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/hubs/"+url.PathEscape(hubID), nil, nil)
	return err
}
