package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationState string
type PaymentStatus string
type MembershipStatus string
type MembershipType string
type PaymentMethod string

const (
	ApplicationStatePending  ApplicationState = "pending"
	ApplicationStateApproved ApplicationState = "approved"
	ApplicationStateRejected ApplicationState = "rejected"

	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusConfirmed  PaymentStatus = "confirmed"
	PaymentStatusFailed     PaymentStatus = "failed"

	MembershipStatusNotStarted MembershipStatus = "not_started"
	MembershipStatusProcessing MembershipStatus = "processing"
	MembershipStatusActive     MembershipStatus = "active"
	MembershipStatusExpired    MembershipStatus = "expired"

	MembershipTypeUndergraduate MembershipType = "UNDERGRADUATE"
	MembershipTypePostgraduate  MembershipType = "POSTGRADUATE"
	MembershipTypeStaff         MembershipType = "STAFF"
	MembershipTypeExternal      MembershipType = "EXTERNAL"

	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
)

type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// ApplicantProfile carries the submitted application form data.
// The lifecycle rules never inspect these fields; they travel with the record.
type ApplicantProfile struct {
	Title            string
	Initials         string
	FirstName        string
	LastName         string
	FullName         string
	RegNo            int
	MembershipType   MembershipType
	StudentId        string
	Faculty          string
	Course           string
	Level            string
	PersonalEmail    string
	UniversityEmail  string
	ContactNo        string
	PermanentAddress Address
	NicNo            string
	DateOfBirth      string
	ProfilePicURL    string
}

type PaymentDetails struct {
	Amount          float64
	Method          PaymentMethod
	ReferenceNumber string
	GatewayOrderId  *string
	ConfirmedBy     string
	PaymentDate     time.Time
	ConfirmedDate   time.Time
}

type MembershipDetails struct {
	MembershipNumber string
	StartDate        time.Time
	EndDate          time.Time
	CreatedBy        string
	CreatedDate      time.Time
}

// LibraryMembership is the aggregate tracking one application through
// review, payment and activation. Version backs optimistic concurrency
// at the repository layer.
type LibraryMembership struct {
	Id                uuid.UUID
	ApplicantId       *uuid.UUID
	Application       ApplicantProfile
	State             ApplicationState
	PaymentStatus     PaymentStatus
	MembershipStatus  MembershipStatus
	PaymentDetails    *PaymentDetails
	MembershipDetails *MembershipDetails
	StatusUpdatedBy   *string
	StatusUpdatedDate *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
