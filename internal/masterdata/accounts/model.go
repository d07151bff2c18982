// Package accounts manages the bank accounts of a company.
package accounts

import "time"

// Account is a bank account owned by a company.
type Account struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	BankName  string    `json:"bank_name"`
	Number    string    `json:"number"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
