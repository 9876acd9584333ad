package admin

import (
	"encoding/json"
	"net/http"

	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/pkg/httpjson"
)

// Export returns a snapshot of every stored definition.
//
//	@Summary		Export definitions
//	@Description	Dump all base endpoints, relative endpoints, fields, schemas and schema rows as one document
//	@Tags			Transfer
//	@Produce		json
//	@Success		200	{object}	app.Snapshot	"Full definition snapshot"
//	@Router			/api/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.transfer.Export(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "snapshot")
		return
	}

	if h.metrics != nil {
		h.metrics.SnapshotExports.Inc()
	}
	httpjson.Write(w, http.StatusOK, snap)
}

// Import replaces every stored definition with the posted snapshot.
//
//	@Summary		Import definitions
//	@Description	Replace all stored definitions with the snapshot's contents, atomically
//	@Tags			Transfer
//	@Accept			json
//	@Produce		json
//	@Param			snapshot	body		app.Snapshot		true	"Definition snapshot"
//	@Success		200			{object}	map[string]string	"Empty object"
//	@Failure		400			{object}	ErrorResponse		"Malformed snapshot"
//	@Router			/api/import [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var snap app.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		httpjson.WriteBadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.transfer.Import(r.Context(), snap); err != nil {
		h.writeServiceError(w, err, "snapshot")
		return
	}

	if h.metrics != nil {
		h.metrics.SnapshotImports.Inc()
		fields := 0
		for _, e := range snap.RelativeEndpoints {
			fields += len(e.Fields)
		}
		h.metrics.SnapshotRowsImported.WithLabelValues("base_endpoint").Add(float64(len(snap.BaseEndpoints)))
		h.metrics.SnapshotRowsImported.WithLabelValues("relative_endpoint").Add(float64(len(snap.RelativeEndpoints)))
		h.metrics.SnapshotRowsImported.WithLabelValues("field").Add(float64(fields))
		h.metrics.SnapshotRowsImported.WithLabelValues("schema").Add(float64(len(snap.Schema)))
		h.metrics.SnapshotRowsImported.WithLabelValues("schema_data").Add(float64(len(snap.SchemaData)))
	}

	httpjson.WriteEmpty(w)
}
