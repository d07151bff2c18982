package partners

// PartnerForm carries the create/edit form fields.
type PartnerForm struct {
	Name    string `validate:"required,min=2,max=120"`
	Email   string `validate:"omitempty,email"`
	Phone   string `validate:"omitempty,max=32"`
	Address string `validate:"omitempty,max=240"`
}
