package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/pkg/httpjson"
	"github.com/mockgate/mockgate/ports"
)

// BaseEndpointsResponse wraps the base endpoint listing.
type BaseEndpointsResponse struct {
	BaseEndpoints []app.BaseEndpointDetail `json:"baseEndpoints"`
}

// CreateBaseEndpointRequest registers a base endpoint path.
type CreateBaseEndpointRequest struct {
	Endpoint string `json:"endpoint"`
}

// CreatedResponse carries the id of a registered row.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// RelativeEndpointsResponse wraps a base endpoint's relative endpoint
// listing.
type RelativeEndpointsResponse struct {
	RelativeEndpoints []app.RelativeEndpointDetail `json:"relativeEndpoints"`
}

// CreateRelativeEndpointRequest registers a path template under the base
// endpoint named by ID.
type CreateRelativeEndpointRequest struct {
	ID       int64  `json:"id"`
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
}

// RelativeEndpointCreatedResponse echoes the derived routing artifacts of
// a newly created relative endpoint.
type RelativeEndpointCreatedResponse struct {
	ID            int64    `json:"id"`
	RegexEndpoint string   `json:"regex_endpoint"`
	URLParams     []string `json:"url_params"`
}

// UpdateRelativeEndpointRequest rewrites an endpoint's path and method.
type UpdateRelativeEndpointRequest struct {
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
}

// FieldPayload is one field entry of a reconciliation request. IsChanged
// is a tri-state marker: omitted leaves the stored row untouched, true
// updates it in place, false creates a new row. Its key is camelCase on
// the wire, unlike the other keys; existing clients send it that way.
type FieldPayload struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	IsArray   bool   `json:"is_array"`
	IsChanged *bool  `json:"isChanged,omitempty"`
}

// UpdateFieldsRequest reconciles an endpoint's fields and replaces its
// meta data document.
type UpdateFieldsRequest struct {
	Fields   []FieldPayload  `json:"fields"`
	MetaData json.RawMessage `json:"meta_data"`
}

// FieldsResponse wraps the refreshed field list after reconciliation.
type FieldsResponse struct {
	Fields []app.FieldDetail `json:"fields"`
}

// ListBaseEndpoints returns all base endpoints.
//
//	@Summary		List base endpoints
//	@Description	Get all registered base endpoints
//	@Tags			Endpoints
//	@Produce		json
//	@Success		200	{object}	BaseEndpointsResponse	"Base endpoint list"
//	@Router			/api/base-endpoints [get]
func (h *Handler) ListBaseEndpoints(w http.ResponseWriter, r *http.Request) {
	bases, err := h.endpoints.ListBases(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "base endpoint")
		return
	}
	httpjson.Write(w, http.StatusOK, BaseEndpointsResponse{BaseEndpoints: bases})
}

// CreateBaseEndpoint registers a base endpoint path. Registering a path
// twice returns the existing row's id.
//
//	@Summary		Register base endpoint
//	@Description	Register a base endpoint path, reusing the existing row for a known path
//	@Tags			Endpoints
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBaseEndpointRequest	true	"Base endpoint path"
//	@Success		200		{object}	CreatedResponse				"Registered base endpoint id"
//	@Failure		400		{object}	ErrorResponse				"Malformed body"
//	@Router			/api/base-endpoints [post]
func (h *Handler) CreateBaseEndpoint(w http.ResponseWriter, r *http.Request) {
	var req CreateBaseEndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	be, err := h.endpoints.AddBase(r.Context(), req.Endpoint)
	if err != nil {
		h.writeServiceError(w, err, "base endpoint")
		return
	}

	h.recordWrite("base_endpoint", "create")
	httpjson.Write(w, http.StatusOK, CreatedResponse{ID: be.ID})
}

// ListRelativeEndpoints returns the relative endpoints under one base
// endpoint, fields embedded. An unknown base yields an empty list.
//
//	@Summary		List relative endpoints
//	@Description	Get the relative endpoints registered under a base endpoint
//	@Tags			Endpoints
//	@Produce		json
//	@Param			id	path		int							true	"Base endpoint id"
//	@Success		200	{object}	RelativeEndpointsResponse	"Relative endpoint list"
//	@Router			/api/base-endpoints/{id}/relative-endpoints [get]
func (h *Handler) ListRelativeEndpoints(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpjson.WriteNotFound(w, "base endpoint not found")
		return
	}

	endpoints, err := h.endpoints.ListRelative(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "relative endpoint")
		return
	}
	httpjson.Write(w, http.StatusOK, RelativeEndpointsResponse{RelativeEndpoints: endpoints})
}

// CreateRelativeEndpoint registers a path template and method under a
// base endpoint.
//
//	@Summary		Create relative endpoint
//	@Description	Register a path template and HTTP method under a base endpoint
//	@Tags			Endpoints
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRelativeEndpointRequest	true	"Base endpoint id, path template and method"
//	@Success		200		{object}	RelativeEndpointCreatedResponse	"Created endpoint with derived regex and url params"
//	@Failure		400		{object}	ErrorResponse					"Validation failure"
//	@Failure		404		{object}	ErrorResponse					"Base endpoint not found"
//	@Router			/api/relative-endpoints [post]
func (h *Handler) CreateRelativeEndpoint(w http.ResponseWriter, r *http.Request) {
	var req CreateRelativeEndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	created, err := h.endpoints.AddRelative(r.Context(), req.ID, req.Endpoint, req.Method)
	if errors.Is(err, ports.ErrNotFound) {
		httpjson.WriteNotFound(w, "base endpoint not found")
		return
	}
	if err != nil {
		h.writeServiceError(w, err, "relative endpoint")
		return
	}

	h.recordWrite("relative_endpoint", "create")
	httpjson.Write(w, http.StatusOK, RelativeEndpointCreatedResponse{
		ID:            created.ID,
		RegexEndpoint: created.Regex,
		URLParams:     created.URLParams(),
	})
}

// UpdateRelativeEndpoint rewrites the path template and method of an
// existing relative endpoint. Its fields and meta data are untouched.
//
//	@Summary		Update relative endpoint
//	@Description	Rewrite the path template and method of a relative endpoint
//	@Tags			Endpoints
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Relative endpoint id"
//	@Param			request	body		UpdateRelativeEndpointRequest	true	"New path template and method"
//	@Success		200		{object}	map[string]string				"Empty object"
//	@Failure		400		{object}	ErrorResponse					"Validation failure"
//	@Failure		404		{object}	ErrorResponse					"Relative endpoint not found"
//	@Router			/api/relative-endpoints/{id} [put]
func (h *Handler) UpdateRelativeEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpjson.WriteNotFound(w, "relative endpoint not found")
		return
	}

	var req UpdateRelativeEndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.endpoints.UpdateRelative(r.Context(), id, req.Endpoint, req.Method); err != nil {
		h.writeServiceError(w, err, "relative endpoint")
		return
	}

	h.recordWrite("relative_endpoint", "update")
	httpjson.WriteEmpty(w)
}

// DeleteRelativeEndpoint removes a relative endpoint and its fields.
//
//	@Summary		Delete relative endpoint
//	@Description	Remove a relative endpoint together with its fields
//	@Tags			Endpoints
//	@Produce		json
//	@Param			id	path		int					true	"Relative endpoint id"
//	@Success		200	{object}	map[string]string	"Empty object"
//	@Failure		404	{object}	ErrorResponse		"Relative endpoint not found"
//	@Router			/api/relative-endpoints/{id} [delete]
func (h *Handler) DeleteRelativeEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpjson.WriteNotFound(w, "relative endpoint not found")
		return
	}

	if err := h.endpoints.DeleteRelative(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "relative endpoint")
		return
	}

	h.recordWrite("relative_endpoint", "delete")
	httpjson.WriteEmpty(w)
}

// UpdateFields reconciles a relative endpoint's fields against the
// incoming list and replaces its meta data document.
//
//	@Summary		Reconcile endpoint fields
//	@Description	Delete absent fields, update changed ones, create new ones and replace the endpoint's meta data
//	@Tags			Endpoints
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Relative endpoint id"
//	@Param			request	body		UpdateFieldsRequest	true	"Field list and meta data"
//	@Success		200		{object}	FieldsResponse		"Refreshed field list"
//	@Failure		400		{object}	ErrorResponse		"Validation failure"
//	@Failure		404		{object}	ErrorResponse		"Relative endpoint not found"
//	@Router			/api/relative-endpoints/{id}/schema [put]
func (h *Handler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpjson.WriteNotFound(w, "relative endpoint not found")
		return
	}

	var req UpdateFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	patches := make([]app.FieldPatch, 0, len(req.Fields))
	for _, f := range req.Fields {
		patches = append(patches, app.FieldPatch{
			ID:        f.ID,
			Key:       f.Key,
			Type:      f.Type,
			Value:     f.Value,
			IsArray:   f.IsArray,
			IsChanged: f.IsChanged,
		})
	}

	meta := string(req.MetaData)
	if meta == "" {
		meta = "{}"
	}

	fields, err := h.endpoints.UpdateFields(r.Context(), id, patches, meta)
	if errors.Is(err, ports.ErrNotFound) {
		httpjson.WriteNotFound(w, "relative endpoint not found")
		return
	}
	if err != nil {
		h.writeServiceError(w, err, "field")
		return
	}

	h.recordWrite("field", "reconcile")
	httpjson.Write(w, http.StatusOK, FieldsResponse{Fields: fields})
}
