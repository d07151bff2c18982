// Package companies manages the company master records.
package companies

import (
	"time"

	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

// Company is a legal entity owning branches, accounts and partners.
type Company struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Registration string              `json:"registration"`
	Status       shared.RecordStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
