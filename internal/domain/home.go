package domain

import "time"

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

// ParsePropertyType validates a property type string against the closed enumeration.
func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(s) {
	case PropertyResidential, PropertyCondo:
		return PropertyType(s), nil
	default:
		return "", ErrValidation("unknown property type %q", s)
	}
}

// Home is a property listing owned by a realtor.
type Home struct {
	ID           int64
	Address      string
	City         string
	Price        float64
	PropertyType PropertyType
	Bedrooms     int64
	Bathrooms    int64
	LandSize     float64
	RealtorID    int64
	Images       []string
	CreatedAt    time.Time
}

// HomeSummary is the listing-search projection: full record plus at most one image.
type HomeSummary struct {
	ID           int64
	Address      string
	City         string
	Price        float64
	PropertyType PropertyType
	Bedrooms     int64
	Bathrooms    int64
	LandSize     float64
	Image        string
}

// CreateHomeRequest holds parameters for creating a listing.
type CreateHomeRequest struct {
	Address      string
	City         string
	Price        float64
	PropertyType PropertyType
	Bedrooms     int64
	Bathrooms    int64
	LandSize     float64
	Images       []string
}

// Validate checks that the request is well-formed.
func (r *CreateHomeRequest) Validate() error {
	if r.Address == "" {
		return ErrValidation("address is required")
	}
	if r.City == "" {
		return ErrValidation("city is required")
	}
	if r.Price <= 0 {
		return ErrValidation("price must be positive")
	}
	if _, err := ParsePropertyType(string(r.PropertyType)); err != nil {
		return err
	}
	return nil
}

// UpdateHomeRequest holds partial-update parameters for a listing.
// Nil fields are left unchanged.
type UpdateHomeRequest struct {
	Address      *string
	City         *string
	Price        *float64
	PropertyType *PropertyType
	Bedrooms     *int64
	Bathrooms    *int64
	LandSize     *float64
}

// Validate checks that the request is well-formed.
func (r *UpdateHomeRequest) Validate() error {
	if r.Address != nil && *r.Address == "" {
		return ErrValidation("address cannot be empty")
	}
	if r.City != nil && *r.City == "" {
		return ErrValidation("city cannot be empty")
	}
	if r.Price != nil && *r.Price <= 0 {
		return ErrValidation("price must be positive")
	}
	if r.PropertyType != nil {
		if _, err := ParsePropertyType(string(*r.PropertyType)); err != nil {
			return err
		}
	}
	return nil
}
