package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

// handleDLMEvents renders the read-only load-management event log.
func (h *Handlers) handleDLMEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := brainapi.DLMEventFilter{
		Limit:     brainapi.Int(h.pageLimit),
		HubID:     q.Get("hub_id"),
		EventType: q.Get("event_type"),
	}

	var (
		events models.ListResponse[models.DLMEvent]
		hubs   models.ListResponse[models.Hub]
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		events, err = h.api.ListDLMEvents(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		hubs, err = h.api.ListHubs(ctx, brainapi.HubFilter{Limit: brainapi.Int(h.pageLimit)})
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderFetchError(w, r, "dlm_events.html", "dlm-events", err)
		return
	}

	h.render(w, r, "dlm_events.html", map[string]interface{}{
		"Page":            "dlm-events",
		"Title":           "DLM Events",
		"Events":          events.Items,
		"Total":           events.Total,
		"Hubs":            hubs.Items,
		"TriggerReasons":  models.TriggerReasons,
		"FilterHub":       filter.HubID,
		"FilterEventType": filter.EventType,
	})
}
