package brainapi

import (
	"context"
	"net/http"
	"net/url"

	"dlmdash/internal/models"
)

// ListNodes fetches a page of charging nodes.
func (c *Client) ListNodes(ctx context.Context, filter NodeFilter) (models.ListResponse[models.Node], error) {
	return getJSON[models.ListResponse[models.Node]](ctx, c, "/nodes", filter.values())
}

// GetNode fetches one node by id.
func (c *Client) GetNode(ctx context.Context, nodeID string) (models.Node, error) {
	return getJSON[models.Node](ctx, c, "/nodes/"+url.PathEscape(nodeID), nil)
}

// CreateNode registers a new node under a hub.
func (c *Client) CreateNode(ctx context.Context, payload models.NodeCreate) (models.Node, error) {
	return postJSON[models.Node](ctx, c, "/nodes", payload)
}

// UpdateNode applies a partial update.
func (c *Client) UpdateNode(ctx context.Context, nodeID string, payload models.NodeUpdate) (models.Node, error) {
	return patchJSON[models.Node](ctx, c, "/nodes/"+url.PathEscape(nodeID), payload)
}

// DeleteNode removes a node.
func (c *Client) DeleteNode(ctx context.Context, nodeID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/nodes/"+url.PathEscape(nodeID), nil, nil)
	return err
}
