package entity

import (
	"time"

	"github.com/google/uuid"
)

// MembershipFee defines the charge and validity window for one membership
// type. Checkout amounts and activation validity both come from here.
type MembershipFee struct {
	Id             uuid.UUID
	MembershipType MembershipType
	Amount         float64
	Currency       string
	ValidityMonths int
	Description    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
