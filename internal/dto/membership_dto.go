package dto

import (
	"time"

	"library-membership-be/pkg/membership"

	"github.com/google/uuid"
)

type AddressDTO struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
	Zip    string `json:"zip" validate:"required,min=5"`
}

type ApplyRequest struct {
	Title            string     `json:"title" validate:"required,oneof=Mr Mrs Ms Dr Prof"`
	Initials         string     `json:"initials" validate:"required"`
	FirstName        string     `json:"first_name" validate:"required,min=2"`
	LastName         string     `json:"last_name" validate:"required,min=2"`
	FullName         string     `json:"full_name" validate:"required,min=2"`
	RegNo            int        `json:"reg_no" validate:"required,min=100000"`
	MembershipType   string     `json:"membership_type" validate:"required,oneof=UNDERGRADUATE POSTGRADUATE STAFF EXTERNAL"`
	StudentId        string     `json:"student_id" validate:"required,min=2"`
	Faculty          string     `json:"faculty" validate:"required"`
	Course           string     `json:"course" validate:"required"`
	Level            string     `json:"level" validate:"required"`
	PersonalEmail    string     `json:"personal_email" validate:"required,email"`
	UniversityEmail  string     `json:"university_email" validate:"required,email"`
	ContactNo        string     `json:"contact_no" validate:"required,min=9"`
	PermanentAddress AddressDTO `json:"permanent_address" validate:"required"`
	NicNo            string     `json:"nic_no" validate:"required"`
	DateOfBirth      string     `json:"date_of_birth" validate:"required"`
	ProfilePicURL    string     `json:"profile_pic,omitempty"`
}

type ApplyResponse struct {
	Id        uuid.UUID `json:"id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplicantProfileDTO struct {
	Title            string     `json:"title"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	FullName         string     `json:"full_name"`
	RegNo            int        `json:"reg_no"`
	MembershipType   string     `json:"membership_type"`
	StudentId        string     `json:"student_id"`
	Faculty          string     `json:"faculty"`
	Course           string     `json:"course"`
	Level            string     `json:"level"`
	PersonalEmail    string     `json:"personal_email"`
	UniversityEmail  string     `json:"university_email"`
	ContactNo        string     `json:"contact_no"`
	PermanentAddress AddressDTO `json:"permanent_address"`
	ProfilePicURL    string     `json:"profile_pic,omitempty"`
}

type PaymentDetailsDTO struct {
	Amount          float64    `json:"amount"`
	Method          string     `json:"payment_method,omitempty"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	ConfirmedBy     string     `json:"confirmed_by,omitempty"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	ConfirmedDate   *time.Time `json:"confirmed_date,omitempty"`
}

type MembershipDetailsDTO struct {
	MembershipNumber string     `json:"membership_number"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	CreatedBy        string     `json:"created_by,omitempty"`
}

type MembershipResponse struct {
	Id                uuid.UUID             `json:"id"`
	Application       ApplicantProfileDTO   `json:"application"`
	State             string                `json:"state"`
	PaymentStatus     string                `json:"payment_status"`
	MembershipStatus  string                `json:"membership_status"`
	PaymentDetails    *PaymentDetailsDTO    `json:"payment_details,omitempty"`
	MembershipDetails *MembershipDetailsDTO `json:"membership_details,omitempty"`
	StatusUpdatedBy   string                `json:"status_updated_by,omitempty"`
	StatusUpdatedDate *time.Time            `json:"status_updated_date,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

type MembershipListResponse struct {
	Items []*MembershipResponse `json:"items"`
	Total int64                 `json:"total"`
	Stats ApplicationStats      `json:"stats"`
}

type ApplicationStats struct {
	All      int64 `json:"all"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type TimelineResponse struct {
	MembershipId uuid.UUID           `json:"membership_id"`
	Timeline     membership.Timeline `json:"timeline"`
}
