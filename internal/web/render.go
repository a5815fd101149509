package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const flashSessionName = "dlmdash_flash"

type flashMessage struct {
	Kind string // "success" or "error"
	Text string
}

// statusClasses maps lower-cased status labels to badge styles. Unknown labels
// fall back to the neutral class.
var statusClasses = map[string]string{
	"active":    "badge-success",
	"available": "badge-success",
	"completed": "badge-success",
	"healthy":   "badge-success",

	"occupied": "badge-warning",
	"reserved": "badge-warning",

	"faulted": "badge-danger",
	"failed":  "badge-danger",

	"inactive": "badge-muted",
}

func statusClass(status string) string {
	if cls, ok := statusClasses[strings.ToLower(status)]; ok {
		return cls
	}
	return "badge-muted"
}

func newTemplates() *template.Template {
	funcMap := template.FuncMap{
		"statusClass": statusClass,
		"fmtKW": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"fmtSignedKW": func(v float64) string {
			return fmt.Sprintf("%+.1f", v)
		},
		"fmtFloatPtr": func(p *float64) string {
			if p == nil {
				return "-"
			}
			return fmt.Sprintf("%.1f", *p)
		},
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.UTC().Format("2006-01-02 15:04")
		},
		"fmtTimePtr": func(p *time.Time) string {
			if p == nil {
				return "-"
			}
			return p.UTC().Format("2006-01-02 15:04")
		},
		"fmtDuration": formatDuration,
		"derefStr": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
	}
	return template.Must(template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html"))
}

func formatDuration(d time.Duration) string {
	total := int(d.Minutes())
	if total < 1 {
		return "<1m"
	}
	hours := total / 60
	minutes := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (h *Handlers) addFlash(w http.ResponseWriter, r *http.Request, kind, text string) {
	sess, _ := h.sessions.Get(r, flashSessionName)
	sess.AddFlash(kind + "|" + text)
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save flash", zap.Error(err))
	}
}

func (h *Handlers) popFlashes(w http.ResponseWriter, r *http.Request) []flashMessage {
	sess, _ := h.sessions.Get(r, flashSessionName)
	raw := sess.Flashes()
	if len(raw) > 0 {
		if err := sess.Save(r, w); err != nil {
			h.logger.Warn("failed to clear flashes", zap.Error(err))
		}
	}
	out := make([]flashMessage, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, text, found := strings.Cut(s, "|")
		if !found {
			kind, text = "success", s
		}
		out = append(out, flashMessage{Kind: kind, Text: text})
	}
	return out
}

// render executes a page template. Any flashes preset in data (fetch errors)
// are shown ahead of cookie flashes from the previous request.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}

	flashes, _ := data["Flashes"].([]flashMessage)
	flashes = append(flashes, h.popFlashes(w, r)...)
	data["Flashes"] = flashes

	if latest, ok := h.health.Latest(); ok {
		data["Health"] = latest
		data["HealthKnown"] = true
	} else {
		data["HealthKnown"] = false
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template failed", zap.String("template", name), zap.Error(err))
	}
}

// renderFetchError renders the page shell with an error flash and no rows.
// Fetch failures surface as a transient notification, never a crash page.
func (h *Handlers) renderFetchError(w http.ResponseWriter, r *http.Request, name, page string, err error) {
	h.logger.Warn("page fetch failed", zap.String("page", page), zap.Error(err))
	h.render(w, r, name, map[string]interface{}{
		"Page":    page,
		"Title":   "Error",
		"Flashes": []flashMessage{{Kind: "error", Text: "Failed to load data: " + err.Error()}},
		"Total":   0,

		// Filter selects compare against these, so they must be strings
		// even when the page has no rows to show.
		"FilterNode":      "",
		"FilterVeh":       "",
		"FilterStatus":    "",
		"FilterHub":       "",
		"FilterEventType": "",
	})
}
