package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/pkg/httpjson"
)

// SchemasResponse wraps the schema listing.
type SchemasResponse struct {
	Schemas []app.SchemaDetail `json:"schemas"`
}

// SchemaFieldPayload is one row of a schema creation request. Type
// "schema" makes Value the name of the schema to reference; any other
// type makes Value a primitive type name.
type SchemaFieldPayload struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CreateSchemaRequest creates a named schema from its rows.
type CreateSchemaRequest struct {
	Name   string               `json:"name"`
	Fields []SchemaFieldPayload `json:"fields"`
}

// SchemaCreatedResponse wraps a newly created schema's detail view.
type SchemaCreatedResponse struct {
	Schema app.SchemaDetail `json:"schema"`
}

// ListSchemas returns all schemas with their resolved rows.
//
//	@Summary		List schemas
//	@Description	Get all schemas with their resolved field rows
//	@Tags			Schemas
//	@Produce		json
//	@Success		200	{object}	SchemasResponse	"Schema list"
//	@Router			/api/schemas [get]
func (h *Handler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := h.schemas.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "schema")
		return
	}
	httpjson.Write(w, http.StatusOK, SchemasResponse{Schemas: schemas})
}

// CreateSchema creates a named schema from its rows. The whole creation
// runs in one transaction, so a row failing validation removes the schema
// row again instead of leaving an empty schema behind.
//
//	@Summary		Create schema
//	@Description	Create a named schema from field rows referencing primitives or other schemas
//	@Tags			Schemas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSchemaRequest		true	"Schema name and rows"
//	@Success		200		{object}	SchemaCreatedResponse	"Created schema with resolved rows"
//	@Failure		400		{object}	ErrorResponse			"Validation failure"
//	@Failure		404		{object}	ErrorResponse			"Referenced schema not found"
//	@Router			/api/schemas [post]
func (h *Handler) CreateSchema(w http.ResponseWriter, r *http.Request) {
	var req CreateSchemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	fields := make([]app.SchemaField, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, app.SchemaField{Key: f.Key, Type: f.Type, Value: f.Value})
	}

	var detail app.SchemaDetail
	err := h.tx.InTx(r.Context(), func(ctx context.Context) error {
		var err error
		detail, err = h.schemas.Add(ctx, req.Name, fields)
		return err
	})
	if err != nil {
		h.writeServiceError(w, err, "schema")
		return
	}

	h.recordWrite("schema", "create")
	httpjson.Write(w, http.StatusOK, SchemaCreatedResponse{Schema: detail})
}
