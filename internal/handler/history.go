package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/export"
	"github.com/saucerburger/pos-service/internal/order"
)

const defaultPageSize = 10

// HistoryHandler serves filtered history views, summaries, and CSV export.
type HistoryHandler struct {
	svc order.Service
	now func() time.Time
}

func NewHistoryHandler(svc order.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc, now: time.Now}
}

type historyResponse struct {
	Orders  []order.Order `json:"orders"`
	Summary order.Summary `json:"summary"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	Pages   int           `json:"pages"`
}

// GetHistory applies the search/date/status filters from the query string
// and returns one page of matching orders plus the summary over the whole
// filtered set.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := order.FilterOrders(h.svc.Orders(r.Context()), filter, h.now())

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageSize)
	pages := (len(filtered) + limit - 1) / limit
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := min(start+limit, len(filtered))

	respondWithJSON(w, http.StatusOK, historyResponse{
		Orders:  filtered[start:end],
		Summary: order.Summarize(filtered),
		Total:   len(filtered),
		Page:    page,
		Pages:   pages,
	})
}

// ExportCSV streams the filtered history as a CSV download.
func (h *HistoryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := order.FilterOrders(h.svc.Orders(r.Context()), filter, h.now())
	csvContent, err := export.OrdersCSV(filtered)
	if err != nil {
		log.Error().Err(err).Msg("handler: csv export failed")
		respondWithError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csvContent)); err != nil {
		log.Error().Err(err).Msg("handler: failed to write csv response")
	}
}

func filterFromQuery(r *http.Request) (order.Filter, error) {
	q := r.URL.Query()
	filter := order.Filter{
		Search: q.Get("search"),
		Date:   order.DateFilter(q.Get("date")),
		Status: q.Get("status"),
	}
	if filter.Date == "" {
		filter.Date = order.DateAll
	}
	if filter.Status == "" {
		filter.Status = order.StatusAll
	}

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		if raw := q.Get(name); raw != "" {
			t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
			if err != nil {
				return order.Filter{}, errInvalidDateParam(name)
			}
			*dst = &t
		}
	}
	return filter, nil
}

type errInvalidDateParam string

func (e errInvalidDateParam) Error() string {
	return "invalid " + string(e) + " date, expected YYYY-MM-DD"
}

func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
