package recorder

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dolapkapak/internal/common/httpx"
	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/repository"
)

const healthTimeout = 2 * time.Second

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LedgerHandler serves recorded orders and the health of the ledger's
// database and broker connections.
type LedgerHandler struct {
	repo   repository.OrdersRepositoryInterface
	checks map[string]Pinger
	lg     *logger.Logger
}

func NewLedgerHandler(repo repository.OrdersRepositoryInterface, checks map[string]Pinger, lg *logger.Logger) *LedgerHandler {
	return &LedgerHandler{repo: repo, checks: checks, lg: lg}
}

func Router(h *LedgerHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/api/v1/orders/{id}", h.GetOrder)
	return r
}

func (h *LedgerHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.repo.GetOrder(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		httpx.WriteProblem(w, http.StatusNotFound, "order_not_found", "no recorded order "+id)
	case err != nil:
		h.lg.Error("ledger_lookup_failed", err, map[string]any{"order_id": id})
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", err.Error())
	default:
		httpx.WriteJSON(w, http.StatusOK, o)
	}
}

// Health answers 503 when any dependency fails its ping.
func (h *LedgerHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	code, status := http.StatusOK, map[string]string{}
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			status[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	httpx.WriteJSON(w, code, status)
}
