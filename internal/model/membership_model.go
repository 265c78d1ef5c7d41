package model

import (
	"time"

	"github.com/google/uuid"
)

// LibraryMembership is the persistence shape of the membership aggregate.
// The applicant profile is flattened into columns; the mapper restores the
// nested entity shape.
type LibraryMembership struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApplicantId *uuid.UUID `gorm:"type:uuid;index"`

	// Applicant profile
	Title           string `gorm:"type:varchar(10);not null"`
	Initials        string `gorm:"type:varchar(20)"`
	FirstName       string `gorm:"type:varchar(255);not null"`
	LastName        string `gorm:"type:varchar(255);not null"`
	FullName        string `gorm:"type:varchar(255);not null;index"`
	RegNo           int    `gorm:"not null"`
	MembershipType  string `gorm:"type:varchar(20);not null"`
	StudentId       string `gorm:"type:varchar(50);not null;index"`
	Faculty         string `gorm:"type:varchar(255)"`
	Course          string `gorm:"type:varchar(255)"`
	Level           string `gorm:"type:varchar(50)"`
	PersonalEmail   string `gorm:"type:varchar(255);not null"`
	UniversityEmail string `gorm:"type:varchar(255);not null"`
	ContactNo       string `gorm:"type:varchar(50)"`
	AddressStreet   string `gorm:"type:varchar(255)"`
	AddressCity     string `gorm:"type:varchar(255)"`
	AddressState    string `gorm:"type:varchar(255)"`
	AddressZip      string `gorm:"type:varchar(20)"`
	NicNo           string `gorm:"type:varchar(20)"`
	DateOfBirth     string `gorm:"type:varchar(20)"`
	ProfilePicURL   string `gorm:"type:text"`

	// Lifecycle status fields
	State            string `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus    string `gorm:"type:varchar(20);not null;default:'pending';index"`
	MembershipStatus string `gorm:"type:varchar(20);not null;default:'not_started';index"`

	// Payment details (set once payment is finalized)
	PaymentAmount      *float64   `gorm:"type:numeric(10,2)"`
	PaymentMethod      *string    `gorm:"type:varchar(20)"`
	PaymentReference   *string    `gorm:"type:varchar(100)"`
	GatewayOrderId     *string    `gorm:"type:varchar(100);index"`
	PaymentConfirmedBy *string    `gorm:"type:varchar(255)"`
	PaymentDate        *time.Time ``
	PaymentConfirmedAt *time.Time ``

	// Membership details (set on activation)
	MembershipNumber    *string    `gorm:"type:varchar(50);uniqueIndex"`
	MembershipStartDate *time.Time ``
	MembershipEndDate   *time.Time `gorm:"index"`
	MembershipCreatedBy *string    `gorm:"type:varchar(255)"`
	MembershipCreatedAt *time.Time ``

	// Audit
	StatusUpdatedBy   *string    `gorm:"type:varchar(255)"`
	StatusUpdatedDate *time.Time ``
	Version           int        `gorm:"not null;default:1"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
}

func (LibraryMembership) TableName() string {
	return "library_memberships"
}
