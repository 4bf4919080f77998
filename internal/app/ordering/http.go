package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"dolapkapak/internal/common/httpx"
	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/domain"
	"dolapkapak/internal/view"
	"dolapkapak/internal/workflow"
)

const maxBodyBytes = 1 << 20

type WorkflowInterface interface {
	Send(ctx context.Context, ev workflow.Event) (workflow.State, error)
	Snapshot(ctx context.Context) (workflow.State, error)
}

type OrderingHandler struct {
	wf       WorkflowInterface
	renderer *view.Renderer
	validate *validator.Validate
	lg       *logger.Logger
}

func NewOrderingHandler(wf WorkflowInterface, renderer *view.Renderer, lg *logger.Logger) *OrderingHandler {
	return &OrderingHandler{wf: wf, renderer: renderer, validate: validator.New(), lg: lg}
}

func Router(h *OrderingHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/view", h.GetView)
		r.Get("/catalog", h.GetCatalog)

		r.Post("/session/login", h.event(func(*http.Request) workflow.Event { return workflow.LoginRequested{} }))
		r.Post("/session/logout", h.event(func(*http.Request) workflow.Event { return workflow.Logout{} }))
		r.Post("/navigate/{target}", h.Navigate)
		r.Post("/docs/close", h.event(func(*http.Request) workflow.Event { return workflow.CloseDocs{} }))
		r.Post("/banner/dismiss", h.event(func(*http.Request) workflow.Event { return workflow.DismissBanner{} }))

		r.Post("/draft/items", h.AddItem)
		r.Delete("/draft/items/{id}", h.event(func(r *http.Request) workflow.Event {
			return workflow.RemoveItem{ID: chi.URLParam(r, "id")}
		}))
		r.Put("/draft/details", h.SetDetails)
		r.Put("/draft/file", h.AttachFile)
		r.Post("/draft/submit", h.event(func(*http.Request) workflow.Event { return workflow.Submit{} }))

		r.Post("/summary/back", h.event(func(*http.Request) workflow.Event { return workflow.Back{} }))
		r.Post("/summary/confirm", h.event(func(*http.Request) workflow.Event { return workflow.Confirm{} }))
		r.Get("/summary/share", h.Share)
	})
	return r
}

func (h *OrderingHandler) GetView(w http.ResponseWriter, r *http.Request) {
	s, err := h.wf.Snapshot(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.renderer.Render(s))
}

func (h *OrderingHandler) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, view.NewCatalog())
}

func (h *OrderingHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	t := workflow.Target(chi.URLParam(r, "target"))
	if !t.Valid() {
		httpx.WriteProblem(w, http.StatusNotFound, "unknown_target", "unknown navigation target "+string(t))
		return
	}
	h.send(w, r, workflow.Navigate{Target: t})
}

func (h *OrderingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, workflow.AddItem{Draft: req.ToDraft()})
}

func (h *OrderingHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	var req domain.DetailsRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, workflow.SetDetails{Address: req.Address, BillingInfo: req.BillingInfo})
}

func (h *OrderingHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	var req domain.AttachFileRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, workflow.AttachFile{File: req.ToFileRef()})
}

func (h *OrderingHandler) Share(w http.ResponseWriter, r *http.Request) {
	s, err := h.wf.Snapshot(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if s.Pending == nil {
		httpx.WriteProblem(w, http.StatusNotFound, "no_pending_order", "there is no order under review")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view.NewShare(*s.Pending))
}

func (h *OrderingHandler) event(build func(*http.Request) workflow.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.send(w, r, build(r))
	}
}

func (h *OrderingHandler) send(w http.ResponseWriter, r *http.Request, ev workflow.Event) {
	s, err := h.wf.Send(r.Context(), ev)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.renderer.Render(s))
}

// decode reads and validates a JSON body, answering the request itself on failure.
func (h *OrderingHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		httpx.WriteProblem(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fe validator.ValidationErrors
	if !errors.As(err, &fe) || len(fe) == 0 {
		return domain.ErrMsgInvalidRequest
	}
	switch fe[0].Field() {
	case "Model":
		return domain.ErrMsgUnknownModel
	case "Color":
		return domain.ErrMsgUnknownColor
	default:
		return domain.ErrMsgInvalidRequest
	}
}

func (h *OrderingHandler) writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.WriteProblem(w, http.StatusUnprocessableEntity, "validation_error", ve.Message)
	case domain.IsConfiguration(err):
		h.lg.Error("pricing_configuration_error", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "configuration_error", err.Error())
	case errors.Is(err, ErrStopped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpx.WriteProblem(w, http.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		h.lg.Error("request_failed", err, nil)
		httpx.WriteProblem(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func (h *OrderingHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.lg.Debug("http_request", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		})
	})
}
