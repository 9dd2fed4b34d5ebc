package web

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/dkeller9/contactlens/internal/config"
	"github.com/dkeller9/contactlens/internal/contact"
	"github.com/dkeller9/contactlens/internal/db"
	"github.com/dkeller9/contactlens/internal/errors"
	"github.com/dkeller9/contactlens/internal/features"
	"github.com/dkeller9/contactlens/internal/report"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleList handles GET /contacts — paginated contact list.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 20)
	if limit < 1 || limit > 200 {
		limit = 20
	}
	offset := parseIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := db.ListContacts(r.Context(), h.db, limit, offset)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Contacts",
			Version: h.renderer.version,
			Nav:     "contacts",
		},
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			Total:   total,
			HasMore: offset+len(items) < total,
		},
	})
}

// HandleDetail handles GET /contacts/{id} — one contact with its derived
// features.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("contact ID must be an integer"))
		return
	}

	rec, err := db.GetContactByID(r.Context(), h.db, id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// Features are derived per request; the store holds source rows only.
	result := features.Enrich([]contact.Record{*rec}, time.Now().UTC())
	enriched := &result.Records[0]

	var notes template.HTML
	if enriched.Notes != nil {
		notes = renderMarkdown(*enriched.Notes)
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   enriched.Name,
			Version: h.renderer.version,
			Nav:     "contacts",
		},
		Contact:       enriched,
		RenderedNotes: notes,
	})
}

// HandleAnalytics handles GET /analytics — summary statistics and charts
// for the whole contact table.
func (h *Handlers) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	records, err := db.FetchContacts(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	now := time.Now().UTC()
	data := AnalyticsPageData{
		PageData: PageData{
			Title:   "Analytics",
			Version: h.renderer.version,
			Nav:     "analytics",
		},
	}

	if len(records) == 0 {
		data.Empty = true
		data.Summary = report.BuildSummary(nil, features.CategoryMapping{}, now)
		h.renderer.renderPage(w, r, "analytics", data)
		return
	}

	result := features.Enrich(records, now)
	data.Summary = report.BuildSummary(result.Records, result.Mapping, now)

	svg := report.RenderSVG("Contact Analytics", report.BuildCharts(result.Records))
	// The SVG is produced entirely server-side from trusted data; labels
	// inside it are already escaped by the renderer.
	data.ChartSVG = template.HTML(svg)

	h.renderer.renderPage(w, r, "analytics", data)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
