package models

import "time"

// The storage layer manipulates collection records generically; each
// record type exposes its identifier and timestamps through these
// accessors.

// GetID returns the Product's ID.
func (p *Product) GetID() string { return p.ID }

// SetID assigns the Product's ID.
func (p *Product) SetID(id string) { p.ID = id }

// GetCreated returns the creation timestamp.
func (p *Product) GetCreated() time.Time { return p.CreatedAt }

// SetCreated sets the creation timestamp.
func (p *Product) SetCreated(t time.Time) { p.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (p *Product) SetUpdated(t time.Time) { p.UpdatedAt = t }

// GetID returns the Category's ID.
func (c *Category) GetID() string { return c.ID }

// SetID assigns the Category's ID.
func (c *Category) SetID(id string) { c.ID = id }

// GetCreated returns the creation timestamp.
func (c *Category) GetCreated() time.Time { return c.CreatedAt }

// SetCreated sets the creation timestamp.
func (c *Category) SetCreated(t time.Time) { c.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (c *Category) SetUpdated(t time.Time) { c.UpdatedAt = t }

// GetID returns the Order's ID.
func (o *Order) GetID() string { return o.ID }

// SetID assigns the Order's ID.
func (o *Order) SetID(id string) { o.ID = id }

// GetCreated returns the creation timestamp.
func (o *Order) GetCreated() time.Time { return o.CreatedAt }

// SetCreated sets the creation timestamp.
func (o *Order) SetCreated(t time.Time) { o.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (o *Order) SetUpdated(t time.Time) { o.UpdatedAt = t }

// GetID returns the Customer's ID.
func (c *Customer) GetID() string { return c.ID }

// SetID assigns the Customer's ID.
func (c *Customer) SetID(id string) { c.ID = id }

// GetCreated returns the creation timestamp.
func (c *Customer) GetCreated() time.Time { return c.CreatedAt }

// SetCreated sets the creation timestamp.
func (c *Customer) SetCreated(t time.Time) { c.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (c *Customer) SetUpdated(t time.Time) { c.UpdatedAt = t }

// GetID returns the Page's ID.
func (p *Page) GetID() string { return p.ID }

// SetID assigns the Page's ID.
func (p *Page) SetID(id string) { p.ID = id }

// GetCreated returns the creation timestamp.
func (p *Page) GetCreated() time.Time { return p.CreatedAt }

// SetCreated sets the creation timestamp.
func (p *Page) SetCreated(t time.Time) { p.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (p *Page) SetUpdated(t time.Time) { p.UpdatedAt = t }

// GetID returns the GalleryItem's ID.
func (g *GalleryItem) GetID() string { return g.ID }

// SetID assigns the GalleryItem's ID.
func (g *GalleryItem) SetID(id string) { g.ID = id }

// GetCreated returns the creation timestamp.
func (g *GalleryItem) GetCreated() time.Time { return g.CreatedAt }

// SetCreated sets the creation timestamp.
func (g *GalleryItem) SetCreated(t time.Time) { g.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (g *GalleryItem) SetUpdated(t time.Time) { g.UpdatedAt = t }

// GetID returns the Shipment's ID.
func (s *Shipment) GetID() string { return s.ID }

// SetID assigns the Shipment's ID.
func (s *Shipment) SetID(id string) { s.ID = id }

// GetCreated returns the creation timestamp.
func (s *Shipment) GetCreated() time.Time { return s.CreatedAt }

// SetCreated sets the creation timestamp.
func (s *Shipment) SetCreated(t time.Time) { s.CreatedAt = t }

// SetUpdated sets the modification timestamp.
func (s *Shipment) SetUpdated(t time.Time) { s.UpdatedAt = t }
