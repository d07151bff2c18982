// Package shared holds helpers common to the master data resource packages.
package shared

import "fmt"

// ErrValidation indicates invalid master data input.
var ErrValidation = fmt.Errorf("masterdata: invalid input")

// RecordStatus marks a master data record active or inactive.
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
)

// Label maps every record status onto its badge.
func (s RecordStatus) Label() (text, tone string) {
	switch s {
	case StatusActive:
		return "Active", "success"
	case StatusInactive:
		return "Inactive", "muted"
	default:
		return "Unknown", "muted"
	}
}
