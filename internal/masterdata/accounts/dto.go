package accounts

// AccountForm carries the create/edit form fields.
type AccountForm struct {
	BankName string `validate:"required,min=2,max=120"`
	Number   string `validate:"required,min=4,max=34"`
	Currency string `validate:"required,len=3,uppercase"`
}
