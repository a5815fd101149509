package brainapi

import (
	"context"
	"net/http"
	"strconv"

	"dlmdash/internal/models"
)

// ListSessions fetches a page of charging sessions.
func (c *Client) ListSessions(ctx context.Context, filter SessionFilter) (models.ListResponse[models.ChargingSession], error) {
	return getJSON[models.ListResponse[models.ChargingSession]](ctx, c, "/sessions", filter.values())
}

// GetSession fetches one session by id.
func (c *Client) GetSession(ctx context.Context, sessionID int64) (models.ChargingSession, error) {
	return getJSON[models.ChargingSession](ctx, c, "/sessions/"+strconv.FormatInt(sessionID, 10), nil)
}

// CreateSession starts a charging session on a node.
func (c *Client) CreateSession(ctx context.Context, payload models.ChargingSessionCreate) (models.ChargingSession, error) {
	return postJSON[models.ChargingSession](ctx, c, "/sessions", payload)
}

// UpdateSession applies a partial update; setting end_time closes the session.
func (c *Client) UpdateSession(ctx context.Context, sessionID int64, payload models.ChargingSessionUpdate) (models.ChargingSession, error) {
	return patchJSON[models.ChargingSession](ctx, c, "/sessions/"+strconv.FormatInt(sessionID, 10), payload)
}

// DeleteSession removes a session record.
func (c *Client) DeleteSession(ctx context.Context, sessionID int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/sessions/"+strconv.FormatInt(sessionID, 10), nil, nil)
	return err
}
