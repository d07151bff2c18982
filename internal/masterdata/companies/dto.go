package companies

// CompanyForm carries the create/edit form fields.
type CompanyForm struct {
	Name         string `validate:"required,min=2,max=120"`
	Registration string `validate:"required,max=64"`
	Status       string `validate:"required,oneof=ACTIVE INACTIVE"`
}
