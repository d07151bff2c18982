// Package branches manages the branch master records of a company.
package branches

import (
	"time"

	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

// Branch is a company location with its own currency and inventory.
type Branch struct {
	ID        int64               `json:"id"`
	CompanyID int64               `json:"company_id"`
	Name      string              `json:"name"`
	Country   string              `json:"country"`
	Currency  string              `json:"currency"`
	Status    shared.RecordStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
