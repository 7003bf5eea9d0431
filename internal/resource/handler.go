package resource

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/refdata/refdata-api/internal/store"
	"github.com/refdata/refdata-api/pkg/logger"
	"github.com/refdata/refdata-api/pkg/metrics"
	"github.com/refdata/refdata-api/pkg/response"
)

// Handler serves the CRUD contract for one resource schema. All three
// resources share this implementation; only the Schema differs.
type Handler struct {
	schema Schema
	store  store.Store
}

func NewHandler(schema Schema, st store.Store) *Handler {
	return &Handler{schema: schema, store: st}
}

// List returns the full collection. An empty collection is a 200 with an
// empty list, not an error.
func (h *Handler) List(c *gin.Context) {
	docs, err := h.store.FindAll(c.Request.Context(), h.schema.Collection)
	if err != nil {
		h.storeFailure(c, "findAll", err, "Failed to retrieve "+h.lowerPlural())
		return
	}
	out := make([]map[string]interface{}, 0, len(docs))
	for i := range docs {
		out = append(out, serialize(&docs[i]))
	}
	response.Success(c, http.StatusOK, h.schema.Plural+" retrieved successfully", out)
}

// Create validates the body, inserts the document and returns it in full,
// including the assigned id and timestamps.
func (h *Handler) Create(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	fields, verrs := h.schema.ValidateCreate(body)
	if verrs != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", []interface{}{verrs})
		return
	}

	ctx := c.Request.Context()
	id, err := h.store.Insert(ctx, h.schema.Collection, fields)
	if err != nil {
		h.storeFailure(c, "insert", err, "Failed to insert "+h.lowerSingular())
		return
	}
	doc, err := h.store.FindOne(ctx, h.schema.Collection, id)
	if err != nil || doc == nil {
		h.storeFailure(c, "findOne", err, "Failed to insert "+h.lowerSingular())
		return
	}
	response.Success(c, http.StatusCreated, h.schema.Singular+" inserted successfully", serialize(doc))
}

// Get returns a single document by id.
func (h *Handler) Get(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+h.lowerSingular()+" id", nil)
		return
	}
	doc, err := h.store.FindOne(c.Request.Context(), h.schema.Collection, id)
	if err != nil {
		h.storeFailure(c, "findOne", err, "Failed to retrieve "+h.lowerSingular())
		return
	}
	if doc == nil {
		response.Error(c, http.StatusNotFound, h.schema.Singular+" not found", nil)
		return
	}
	response.Success(c, http.StatusOK, h.schema.Singular+" retrieved successfully", serialize(doc))
}

// Update merges the supplied fields into an existing document and returns the
// refreshed document. Validation happens in full before the store is touched.
func (h *Handler) Update(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+h.lowerSingular()+" id", nil)
		return
	}

	// An absent body is treated like {}: it fails below as "no valid fields".
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	fields, verrs := h.schema.ValidateUpdate(body)
	if verrs != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", []interface{}{verrs})
		return
	}
	if len(fields) == 0 {
		response.Error(c, http.StatusBadRequest, "No valid fields to update", nil)
		return
	}

	ctx := c.Request.Context()
	matched, err := h.store.UpdatePartial(ctx, h.schema.Collection, id, fields)
	if err != nil {
		h.storeFailure(c, "updatePartial", err, "Failed to update "+h.lowerSingular())
		return
	}
	if matched == 0 {
		response.Error(c, http.StatusNotFound, h.schema.Singular+" not found", nil)
		return
	}
	doc, err := h.store.FindOne(ctx, h.schema.Collection, id)
	if err != nil {
		h.storeFailure(c, "findOne", err, "Failed to update "+h.lowerSingular())
		return
	}
	if doc == nil {
		// deleted between the update and the refetch
		response.Error(c, http.StatusNotFound, h.schema.Singular+" not found", nil)
		return
	}
	response.Success(c, http.StatusOK, h.schema.Singular+" updated successfully", serialize(doc))
}

// Delete removes a document by id and confirms with the id it removed.
func (h *Handler) Delete(c *gin.Context) {
	raw := c.Param("id")
	id, err := store.ParseID(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+h.lowerSingular()+" id", nil)
		return
	}
	deleted, err := h.store.Delete(c.Request.Context(), h.schema.Collection, id)
	if err != nil {
		h.storeFailure(c, "delete", err, "Failed to delete "+h.lowerSingular())
		return
	}
	if deleted == 0 {
		response.Error(c, http.StatusNotFound, h.schema.Singular+" not found", nil)
		return
	}
	response.Success(c, http.StatusOK, h.schema.Singular+" deleted successfully", gin.H{"_id": raw})
}

func (h *Handler) storeFailure(c *gin.Context, operation string, err error, message string) {
	logger.Sugar.Errorw("store operation failed",
		"collection", h.schema.Collection,
		"operation", operation,
		"error", err,
	)
	metrics.StoreFailures.WithLabelValues(operation).Inc()
	response.Error(c, http.StatusInternalServerError, message, nil)
}

func (h *Handler) lowerSingular() string { return strings.ToLower(h.schema.Singular) }
func (h *Handler) lowerPlural() string   { return strings.ToLower(h.schema.Plural) }

// serialize flattens a document for the envelope: hex id under "_id", the
// resource fields, and the timestamps.
func serialize(d *store.Document) map[string]interface{} {
	out := make(map[string]interface{}, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["_id"] = d.ID.Hex()
	out["createdAt"] = d.CreatedAt
	out["updatedAt"] = d.UpdatedAt
	return out
}
