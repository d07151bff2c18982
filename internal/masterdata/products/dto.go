package products

// ProductForm carries the create/edit form fields. Price and VATRate stay
// string-typed until validation so decimal parse errors surface as field
// errors, not panics.
type ProductForm struct {
	SKU        string `validate:"required,max=64"`
	Name       string `validate:"required,min=2,max=120"`
	Category   string `validate:"required,max=64"`
	Price      string `validate:"required"`
	VATRate    string `validate:"omitempty"`
	FixedPrice bool
}
