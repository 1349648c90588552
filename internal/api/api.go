// Package api serves the site's JSON endpoints: the display statistics read by
// the home page and the sample items API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/monebot/website/internal/items"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/router"
)

// Prefix is where Routes is mounted.
const Prefix = "/api"

const (
	PathStats = Prefix + "/discord-stats"
	PathItems = Prefix + "/items"
)

// MaxBodyBytes caps create request bodies.
const MaxBodyBytes = 64 << 10

const msgMissingName = "Missing 'name' field in request body or invalid JSON format"

// StatsBody is the /api/discord-stats response.
type StatsBody struct {
	Stats StatsCounts `json:"stats"`
}

type StatsCounts struct {
	ServerCount string `json:"serverCount"`
	MemberCount string `json:"memberCount"`
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Options configures the handlers.
type Options struct {
	ServerCount string
	MemberCount string

	// Rate and Burst bound requests per client IP. Zero disables limiting.
	Rate  float64
	Burst int

	Logger logging.Logger
}

type Handler struct {
	store  items.Repository
	opts   Options
	logger logging.Logger
}

func New(store items.Repository, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Handler{store: store, opts: opts, logger: logger}
}

// Routes returns the API router. Mount it at Prefix.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "The requested URL was not found on the server.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})

	// The home page fetches its counters from this server, so every view
	// would share the loopback bucket.
	r.Get("/discord-stats", h.Stats)

	r.Group(func(r chi.Router) {
		if h.opts.Rate > 0 && h.opts.Burst > 0 {
			r.Use(router.RateLimit(rate.Limit(h.opts.Rate), h.opts.Burst, 10*time.Minute))
		}
		r.Get("/items", h.ListItems)
		r.Post("/items", h.CreateItem)
		r.Get("/items/{id:[0-9]+}", h.GetItem)
	})
	return r
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsBody{Stats: StatsCounts{
		ServerCount: h.opts.ServerCount,
		MemberCount: h.opts.MemberCount,
	}})
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []items.Item{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "The requested URL was not found on the server.")
		return
	}

	it, err := h.store.Get(r.Context(), id)
	if errors.Is(err, items.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Item with ID %d not found", id))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in items.NewItem
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingName)
		return
	}

	it, err := h.store.Create(r.Context(), in)
	if errors.Is(err, items.ErrInvalidItem) {
		writeError(w, http.StatusBadRequest, msgMissingName)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", PathItems, it.ID))
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.L(r.Context()).Error("api request failed",
		logging.String("path", r.URL.Path),
		logging.Err(err),
	)
	writeError(w, http.StatusInternalServerError, "The server encountered an internal error.")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{Error: http.StatusText(status), Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
