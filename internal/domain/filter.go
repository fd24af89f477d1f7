package domain

import "strconv"

// PriceRange bounds a listing search by price. Min and Max are independently
// optional; nil means the bound is not constrained.
type PriceRange struct {
	Min *float64
	Max *float64
}

// HomeFilter is the assembled search predicate for listings. A nil field means
// the corresponding constraint is absent entirely and must not appear in the
// persistence query; a non-nil field always constrains, even for falsy values.
type HomeFilter struct {
	City         *string
	Price        *PriceRange
	PropertyType *PropertyType
}

// FilterParams are the raw, independently-optional search parameters as they
// arrive on the wire. Empty string means the parameter was not supplied.
type FilterParams struct {
	City         string
	MinPrice     string
	MaxPrice     string
	PropertyType string
}

// ParseHomeFilter assembles a HomeFilter from raw parameters. The price range
// is constructed only when at least one bound is present. Unparseable numbers
// and unknown property types fail with a ValidationError; nothing is ever
// silently coerced.
func ParseHomeFilter(params FilterParams) (HomeFilter, error) {
	var f HomeFilter

	if params.City != "" {
		city := params.City
		f.City = &city
	}

	if params.MinPrice != "" || params.MaxPrice != "" {
		var pr PriceRange
		if params.MinPrice != "" {
			min, err := strconv.ParseFloat(params.MinPrice, 64)
			if err != nil {
				return HomeFilter{}, ErrValidation("minPrice %q is not a number", params.MinPrice)
			}
			pr.Min = &min
		}
		if params.MaxPrice != "" {
			max, err := strconv.ParseFloat(params.MaxPrice, 64)
			if err != nil {
				return HomeFilter{}, ErrValidation("maxPrice %q is not a number", params.MaxPrice)
			}
			pr.Max = &max
		}
		f.Price = &pr
	}

	if params.PropertyType != "" {
		pt, err := ParsePropertyType(params.PropertyType)
		if err != nil {
			return HomeFilter{}, err
		}
		f.PropertyType = &pt
	}

	return f, nil
}
