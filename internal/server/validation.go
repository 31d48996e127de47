// Field rules for record payloads, applied on create and update.

package server

import (
	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
)

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return dto.MissingField("name")
	}
	if p.Price < 0 {
		return dto.InvalidField("price", "must be non-negative")
	}
	if p.Discount < 0 || p.Discount > 100 {
		return dto.InvalidField("discount", "must be between 0 and 100")
	}
	if p.Stock < 0 {
		return dto.InvalidField("stock", "must be non-negative")
	}
	if p.Status == "" {
		p.Status = models.ProductDraft
	}
	if p.Status != models.ProductDraft && p.Status != models.ProductPublished {
		return dto.InvalidField("status", "must be draft or published")
	}
	return nil
}

func validateCategory(c *models.Category) error {
	if c.Name == "" {
		return dto.MissingField("name")
	}
	return nil
}

func validateOrder(o *models.Order) error {
	if len(o.Items) == 0 {
		return dto.MissingField("items")
	}
	for i := range o.Items {
		if o.Items[i].Quantity <= 0 {
			return dto.InvalidField("items", "quantity must be positive")
		}
		if o.Items[i].Price < 0 {
			return dto.InvalidField("items", "price must be non-negative")
		}
	}
	if o.Total < 0 {
		return dto.InvalidField("total", "must be non-negative")
	}
	if o.Status == "" {
		o.Status = "pending"
	}
	return nil
}

func validateCustomer(c *models.Customer) error {
	if c.Name == "" {
		return dto.MissingField("name")
	}
	return nil
}

func validatePage(p *models.Page) error {
	if p.Title == "" {
		return dto.MissingField("title")
	}
	return nil
}

func validateGalleryItem(g *models.GalleryItem) error {
	if g.URL == "" {
		return dto.MissingField("url")
	}
	return nil
}

func validateShipment(s *models.Shipment) error {
	if s.OrderID == "" {
		return dto.MissingField("orderId")
	}
	if s.Status == "" {
		s.Status = "preparing"
	}
	return nil
}
