// Serves JSON Schemas for the record collections. The visual editor uses
// these to build record forms without hardcoding field lists.

package handlers

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// SchemaHandler serves collection record schemas.
type SchemaHandler struct {
	schemas map[string]*jsonschema.Schema
}

// NewSchemaHandler reflects all record schemas once at startup.
func NewSchemaHandler() *SchemaHandler {
	r := &jsonschema.Reflector{
		// Inline everything so the editor gets one self-contained document.
		DoNotReference: true,
	}
	return &SchemaHandler{
		schemas: map[string]*jsonschema.Schema{
			storage.ColProducts:   r.Reflect(&models.Product{}),
			storage.ColCategories: r.Reflect(&models.Category{}),
			storage.ColOrders:     r.Reflect(&models.Order{}),
			storage.ColCustomers:  r.Reflect(&models.Customer{}),
			storage.ColPages:      r.Reflect(&models.Page{}),
			storage.ColGallery:    r.Reflect(&models.GalleryItem{}),
			storage.ColShipments:  r.Reflect(&models.Shipment{}),
			storage.ColConfig:     r.Reflect(&models.StoreConfig{}),
		},
	}
}

// Get returns the JSON Schema for one collection's record type.
func (h *SchemaHandler) Get(ctx context.Context, req *dto.SchemaRequest) (*jsonschema.Schema, error) {
	schema, ok := h.schemas[req.Collection]
	if !ok {
		return nil, dto.NotFound("collection")
	}
	return schema, nil
}
