package domain

import "time"

// Property is a real-estate listing managed from the admin dashboard.
// Price is a display string; no arithmetic is performed on it.
type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Price       string    `json:"price"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Area        int       `json:"area"`
	Images      []string  `json:"images"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProperty is the writable part of a Property.
type NewProperty struct {
	Title       string
	Description string
	Location    string
	Price       string
	Bedrooms    int
	Bathrooms   int
	Area        int
	Images      []string
}

// PropertyPatch holds a partial update. Nil fields are left untouched;
// a non-nil Images replaces the whole sequence.
type PropertyPatch struct {
	Title       *string
	Description *string
	Location    *string
	Price       *string
	Bedrooms    *int
	Bathrooms   *int
	Area        *int
	Images      *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p PropertyPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil && p.Price == nil &&
		p.Bedrooms == nil && p.Bathrooms == nil && p.Area == nil && p.Images == nil
}

// Apply merges the patch onto prop in place.
func (p PropertyPatch) Apply(prop *Property) {
	if p.Title != nil {
		prop.Title = *p.Title
	}
	if p.Description != nil {
		prop.Description = *p.Description
	}
	if p.Location != nil {
		prop.Location = *p.Location
	}
	if p.Price != nil {
		prop.Price = *p.Price
	}
	if p.Bedrooms != nil {
		prop.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		prop.Bathrooms = *p.Bathrooms
	}
	if p.Area != nil {
		prop.Area = *p.Area
	}
	if p.Images != nil {
		prop.Images = append([]string(nil), (*p.Images)...)
	}
}

// Clone returns a deep copy so callers cannot alias store-owned slices.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = append([]string(nil), p.Images...)
	return &c
}
