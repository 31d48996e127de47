// Generic CRUD handlers for tenant record collections.
//
// The visual editor round-trips records verbatim, so request and response
// bodies use the storage record shapes directly. Per-collection field rules
// live in validation functions passed to the handler constructor.

package handlers

import (
	"context"
	"encoding/json"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// ListRecordsRequest is a request to list all records of a collection.
type ListRecordsRequest struct{}

// Validate is a no-op for ListRecordsRequest.
func (r *ListRecordsRequest) Validate() error {
	return nil
}

// GetRecordRequest is a request to get one record by ID.
type GetRecordRequest struct {
	ID string `path:"id"`
}

// Validate validates the get record request fields.
func (r *GetRecordRequest) Validate() error {
	if r.ID == "" {
		return dto.MissingField("id")
	}
	return nil
}

// DeleteRecordRequest is a request to delete one record by ID.
type DeleteRecordRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete record request fields.
func (r *DeleteRecordRequest) Validate() error {
	if r.ID == "" {
		return dto.MissingField("id")
	}
	return nil
}

// SaveRecordRequest carries a record payload for create and update. The
// request body is the record itself; ID comes from the path on updates.
type SaveRecordRequest[T any] struct {
	ID   string `path:"id"`
	Item T
}

// UnmarshalJSON decodes the whole body into the record. Unknown fields are
// dropped, which keeps old clients working when the record schema grows.
func (r *SaveRecordRequest[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.Item)
}

// Validate is a no-op; record field rules run in the handler.
func (r *SaveRecordRequest[T]) Validate() error {
	return nil
}

// RecordsResponse is a response containing all records of a collection.
type RecordsResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// CollectionHandler serves CRUD requests for one tenant collection. All
// operations are scoped to the authenticated user's tenant; the tenant ID
// never comes from the request.
type CollectionHandler[T any, PT interface {
	*T
	storage.Record
}] struct {
	tenants  *storage.TenantStore
	col      storage.Collection[T, PT]
	validate func(*T) error
}

// NewCollectionHandler creates a handler for one collection. validate may
// be nil when the collection has no required fields.
func NewCollectionHandler[T any, PT interface {
	*T
	storage.Record
}](tenants *storage.TenantStore, col storage.Collection[T, PT], validate func(*T) error) *CollectionHandler[T, PT] {
	return &CollectionHandler[T, PT]{tenants: tenants, col: col, validate: validate}
}

// List returns all records of the collection, oldest first.
func (h *CollectionHandler[T, PT]) List(ctx context.Context, user *models.User, _ *ListRecordsRequest) (*RecordsResponse[T], error) {
	items, err := h.col.List(h.tenants, user.TenantID)
	if err != nil {
		return nil, storageError(h.col.Name(), err)
	}
	return &RecordsResponse[T]{Items: items, Total: len(items)}, nil
}

// Get returns one record by ID.
func (h *CollectionHandler[T, PT]) Get(ctx context.Context, user *models.User, req *GetRecordRequest) (*T, error) {
	item, err := h.col.Get(h.tenants, user.TenantID, req.ID)
	if err != nil {
		return nil, storageError(h.col.Name(), err)
	}
	return &item, nil
}

// Create inserts a new record. The server assigns ID and timestamps; any
// client-supplied values for those fields are ignored.
func (h *CollectionHandler[T, PT]) Create(ctx context.Context, user *models.User, req *SaveRecordRequest[T]) (*T, error) {
	if h.validate != nil {
		if err := h.validate(&req.Item); err != nil {
			return nil, err
		}
	}
	item, err := h.col.Insert(h.tenants, user.TenantID, req.Item)
	if err != nil {
		return nil, storageError(h.col.Name(), err)
	}
	return &item, nil
}

// Update replaces the record's fields with the request payload. The record
// ID and creation timestamp are preserved.
func (h *CollectionHandler[T, PT]) Update(ctx context.Context, user *models.User, req *SaveRecordRequest[T]) (*T, error) {
	if h.validate != nil {
		if err := h.validate(&req.Item); err != nil {
			return nil, err
		}
	}
	item, err := h.col.Update(h.tenants, user.TenantID, req.ID, func(cur *T) {
		created := PT(cur).GetCreated()
		*cur = req.Item
		PT(cur).SetCreated(created)
	})
	if err != nil {
		return nil, storageError(h.col.Name(), err)
	}
	return &item, nil
}

// Delete removes one record by ID.
func (h *CollectionHandler[T, PT]) Delete(ctx context.Context, user *models.User, req *DeleteRecordRequest) (*dto.OkResponse, error) {
	if err := h.col.Delete(h.tenants, user.TenantID, req.ID); err != nil {
		return nil, storageError(h.col.Name(), err)
	}
	return &dto.OkResponse{Ok: true}, nil
}
