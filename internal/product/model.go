package product

type Product struct {
	ID          int
	Title       string
	Price       float64
	Description *string
	Category    *string
	Image       *string
	Rating      *float64
	RatingCount *int
}

type CreateProductParams struct {
	Title       string
	Price       float64
	Description *string
	Category    *string
	Image       *string
}

// UpdateProductParams carries only the fields to overwrite; nil leaves the
// stored value untouched.
type UpdateProductParams struct {
	Title       *string
	Price       *float64
	Description *string
	Category    *string
	Image       *string
}
