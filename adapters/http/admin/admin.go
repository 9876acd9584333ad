// Package admin provides the HTTP handlers of the definition-management API.
package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mockgate/mockgate/adapters/metrics"
	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/domain/fault"
	"github.com/mockgate/mockgate/pkg/httpjson"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
)

// Handler serves the definition-management REST API.
type Handler struct {
	endpoints *app.EndpointService
	schemas   *app.SchemaService
	transfer  *app.TransferService
	tx        ports.Transactor
	metrics   *metrics.Collector
	logger    zerolog.Logger
}

// Deps contains dependencies for the admin handler.
type Deps struct {
	Endpoints *app.EndpointService
	Schemas   *app.SchemaService
	Transfer  *app.TransferService
	Tx        ports.Transactor
	Metrics   *metrics.Collector // optional
	Logger    zerolog.Logger
}

// NewHandler creates a new definition API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		endpoints: deps.Endpoints,
		schemas:   deps.Schemas,
		transfer:  deps.Transfer,
		tx:        deps.Tx,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Router returns the definition API router. Callers mount it under the
// API base path. Numeric route parameters are constrained at the pattern
// level, so a non-numeric id never reaches a handler.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/base-endpoints", h.ListBaseEndpoints)
	r.Post("/base-endpoints", h.CreateBaseEndpoint)
	r.Get("/base-endpoints/{id:[0-9]+}/relative-endpoints", h.ListRelativeEndpoints)

	r.Post("/relative-endpoints", h.CreateRelativeEndpoint)
	r.Put("/relative-endpoints/{id:[0-9]+}", h.UpdateRelativeEndpoint)
	r.Delete("/relative-endpoints/{id:[0-9]+}", h.DeleteRelativeEndpoint)
	r.Put("/relative-endpoints/{id:[0-9]+}/schema", h.UpdateFields)

	r.Get("/schemas", h.ListSchemas)
	r.Post("/schemas", h.CreateSchema)

	r.Get("/export", h.Export)
	r.Post("/import", h.Import)

	return r
}

// ErrorResponse is the error envelope for swagger docs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// pathID reads the numeric {id} route parameter. The route pattern
// constrains the segment to digits, so a parse failure only means the
// value overflowed int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// writeServiceError maps a service error onto the wire contract:
// validation messages pass through verbatim as 400s, missing rows become
// 404s named after the entity, anything else is an opaque 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, entity string) {
	switch {
	case fault.IsNotAllowed(err):
		if h.metrics != nil {
			h.metrics.ValidationRejections.WithLabelValues(strings.ReplaceAll(entity, " ", "_")).Inc()
		}
		httpjson.WriteBadRequest(w, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		httpjson.WriteNotFound(w, entity+" not found")
	default:
		h.logger.Error().Err(err).Msg("request failed")
		httpjson.WriteInternalError(w, "Internal server error")
	}
}

// recordWrite counts a successful definition mutation.
func (h *Handler) recordWrite(entity, op string) {
	if h.metrics != nil {
		h.metrics.DefinitionWrites.WithLabelValues(entity, op).Inc()
	}
}
