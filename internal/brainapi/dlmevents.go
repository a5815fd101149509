package brainapi

import (
	"context"

	"dlmdash/internal/models"
)

// ListDLMEvents fetches a page of load-management events. The event log is
// read-only; events are produced exclusively by the external DLM engine.
func (c *Client) ListDLMEvents(ctx context.Context, filter DLMEventFilter) (models.ListResponse[models.DLMEvent], error) {
	return getJSON[models.ListResponse[models.DLMEvent]](ctx, c, "/dlm/events", filter.values())
}
