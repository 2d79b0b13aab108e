package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/atvirokodosprendimai/estacionamento/internal/core/domain"
)

const (
	timeFormat        = "2006-01-02T15:04:05.999999999Z07:00"
	maxJSONBodySize   = 1 << 20
	defaultCORSMaxAge = 3600
)

// VagaService is the domain side of the /vagas resource. GetByID, UpdateByID
// and DeleteByID report a missing vaga with domain.ErrNotFound.
type VagaService interface {
	Create(ctx context.Context, vaga domain.Vaga) (domain.Vaga, error)
	GetAll(ctx context.Context) ([]domain.Vaga, error)
	GetByID(ctx context.Context, id int64) (domain.Vaga, error)
	UpdateByID(ctx context.Context, id int64, vaga domain.Vaga) (domain.Vaga, error)
	DeleteByID(ctx context.Context, id int64) (domain.Vaga, error)
}

// operation describes how one endpoint reports failures. Create answers 400 for
// every failure while the other endpoints answer 500; clients depend on it.
type operation struct {
	name          string
	failureStatus int
	reportsAbsent bool
}

var (
	opCreate     = operation{name: "create", failureStatus: http.StatusBadRequest}
	opGetAll     = operation{name: "getAll", failureStatus: http.StatusInternalServerError, reportsAbsent: true}
	opGetByID    = operation{name: "getById", failureStatus: http.StatusInternalServerError, reportsAbsent: true}
	opUpdateByID = operation{name: "updateById", failureStatus: http.StatusInternalServerError, reportsAbsent: true}
	opDeleteByID = operation{name: "deleteById", failureStatus: http.StatusInternalServerError, reportsAbsent: true}
)

type Handler struct {
	vagas      VagaService
	mapper     VagaMapper
	logger     *zap.Logger
	corsMaxAge int
}

type Option func(*Handler)

func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCORSMaxAge sets how long, in seconds, browsers may cache preflight results.
func WithCORSMaxAge(seconds int) Option {
	return func(h *Handler) {
		if seconds > 0 {
			h.corsMaxAge = seconds
		}
	}
}

func NewHandler(vagas VagaService, mapper VagaMapper, opts ...Option) *Handler {
	h := &Handler{
		vagas:      vagas,
		mapper:     mapper,
		logger:     zap.NewNop(),
		corsMaxAge: defaultCORSMaxAge,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         h.corsMaxAge,
	}))
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Get("/openapi.json", h.openapi)

	r.Route("/vagas", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.getAll)
		r.Get("/{id}", h.getByID)
		r.Put("/{id}", h.updateByID)
		r.Delete("/{id}", h.deleteByID)
	})

	return r
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeVagaDTO(w, r)
	if err != nil {
		h.fail(w, opCreate, err)
		return
	}

	vaga, err := h.mapper.ToVagaModel(dto)
	if err == nil {
		vaga, err = h.vagas.Create(r.Context(), vaga)
	}
	if err != nil {
		h.fail(w, opCreate, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVagaResponse(vaga), h.logger)
}

func (h *Handler) getAll(w http.ResponseWriter, r *http.Request) {
	vagas, err := h.vagas.GetAll(r.Context())
	if err != nil {
		h.fail(w, opGetAll, err)
		return
	}
	if len(vagas) == 0 {
		writeNotFound(w)
		return
	}

	writeJSON(w, http.StatusOK, toVagaResponses(vagas), h.logger)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.fail(w, opGetByID, err)
		return
	}

	vaga, err := h.vagas.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, opGetByID, err)
		return
	}

	writeJSON(w, http.StatusOK, toVagaResponse(vaga), h.logger)
}

func (h *Handler) updateByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.fail(w, opUpdateByID, err)
		return
	}
	dto, err := decodeVagaDTO(w, r)
	if err != nil {
		h.fail(w, opUpdateByID, err)
		return
	}

	vaga, err := h.mapper.ToVagaModel(dto)
	if err == nil {
		vaga, err = h.vagas.UpdateByID(r.Context(), id, vaga)
	}
	if err != nil {
		h.fail(w, opUpdateByID, err)
		return
	}

	writeJSON(w, http.StatusOK, toVagaResponse(vaga), h.logger)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.fail(w, opDeleteByID, err)
		return
	}

	vaga, err := h.vagas.DeleteByID(r.Context(), id)
	if err != nil {
		h.fail(w, opDeleteByID, err)
		return
	}

	writeJSON(w, http.StatusOK, toVagaResponse(vaga), h.logger)
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true}, h.logger)
}

func (h *Handler) openapi(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, openapiSpec(), h.logger)
}

// fail is the single place where an operation's error becomes a response.
func (h *Handler) fail(w http.ResponseWriter, op operation, err error) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	case op.reportsAbsent && errors.Is(err, domain.ErrNotFound):
		writeNotFound(w)
	default:
		h.logger.Warn("vaga operation failed", zap.String("operation", op.name), zap.Error(err))
		writeMessage(w, op.failureStatus, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *zap.Logger) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Error("encode json response", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		logger.Debug("write response", zap.Error(err))
	}
}

// writeMessage sends the raw message as a plain-text body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// writeNotFound answers 404 with an empty body.
func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusNotFound)
}
