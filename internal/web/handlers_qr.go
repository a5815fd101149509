package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/models"
)

func (h *Handlers) handleQRCodes(w http.ResponseWriter, r *http.Request) {
	var (
		nodes models.ListResponse[models.Node]
		hubs  models.ListResponse[models.Hub]
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		nodes, err = h.api.ListNodes(ctx, brainapi.NodeFilter{Limit: brainapi.Int(h.pageLimit)})
		return err
	})
	g.Go(func() error {
		var err error
		hubs, err = h.api.ListHubs(ctx, brainapi.HubFilter{Limit: brainapi.Int(h.pageLimit)})
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderFetchError(w, r, "qr_codes.html", "qr-codes", err)
		return
	}

	selected := r.URL.Query().Get("node_id")
	if selected == "" && len(nodes.Items) > 0 {
		selected = nodes.Items[0].NodeID
	}

	data := map[string]interface{}{
		"Page":     "qr-codes",
		"Title":    "QR Codes",
		"Nodes":    nodes.Items,
		"Hubs":     hubs.Items,
		"Selected": selected,
	}

	for _, n := range nodes.Items {
		if n.NodeID == selected {
			data["SelectedNode"] = n
			break
		}
	}

	if selected != "" {
		img, err := h.nodeQR(r.Context(), selected)
		if err != nil {
			data["Flashes"] = []flashMessage{{Kind: "error", Text: err.Error()}}
		} else {
			// data: URIs are outside html/template's safe URL schemes.
			data["QRDataURL"] = template.URL(img.DataURL())
		}
	}

	h.render(w, r, "qr_codes.html", data)
}

func (h *Handlers) handleQRDownload(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	img, err := h.nodeQR(r.Context(), nodeID)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *brainapi.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "qr-code-"+nodeID+".png"))
	_, _ = w.Write(img.Data)
}

// nodeQR serves QR images from a short-lived in-process cache; the origin
// regenerates them on demand, so expiry just forces a re-fetch.
func (h *Handlers) nodeQR(ctx context.Context, nodeID string) (brainapi.QRImage, error) {
	if cached, ok := h.qrCache.Get(nodeID); ok {
		if img, ok := cached.(brainapi.QRImage); ok {
			return img, nil
		}
	}

	img, err := h.api.NodeQRCode(ctx, nodeID)
	if err != nil {
		return brainapi.QRImage{}, err
	}
	h.qrCache.SetDefault(nodeID, img)
	return img, nil
}
