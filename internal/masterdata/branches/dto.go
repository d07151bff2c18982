package branches

// BranchForm carries the create/edit form fields.
type BranchForm struct {
	Name     string `validate:"required,min=2,max=120"`
	Country  string `validate:"required,max=64"`
	Currency string `validate:"required,len=3,uppercase"`
	Status   string `validate:"required,oneof=ACTIVE INACTIVE"`
}
