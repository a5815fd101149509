package brainapi

import (
	"context"

	"dlmdash/internal/models"
)

// Health fetches the API health report.
func (c *Client) Health(ctx context.Context) (models.Health, error) {
	return getJSON[models.Health](ctx, c, "/health", nil)
}
