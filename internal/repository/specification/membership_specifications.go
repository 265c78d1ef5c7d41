package specification

import (
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByApplicationState struct {
	State string
}

func (s ByApplicationState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", s.State)
}

type ByPaymentStatus struct {
	Status string
}

func (s ByPaymentStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", s.Status)
}

type ByMembershipStatus struct {
	Status string
}

func (s ByMembershipStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("membership_status = ?", s.Status)
}

type ByApplicant struct {
	ApplicantId uuid.UUID
}

func (s ByApplicant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("applicant_id = ?", s.ApplicantId)
}

type ByGatewayOrder struct {
	OrderId string
}

func (s ByGatewayOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("gateway_order_id = ?", s.OrderId)
}

// SearchApplicant matches the dashboard search box: name, student id or
// membership number.
type SearchApplicant struct {
	Term string
}

func (s SearchApplicant) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Term + "%"
	return db.Where("full_name ILIKE ? OR student_id ILIKE ? OR membership_number ILIKE ?", like, like, like)
}

// ActiveMembershipsDue selects active memberships whose end date has passed,
// the input set for the expiry sweep.
type ActiveMembershipsDue struct {
	Now time.Time
}

func (s ActiveMembershipsDue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("membership_status = ? AND membership_end_date IS NOT NULL AND membership_end_date <= ?", "active", s.Now)
}
