// Package membership owns the status transition rules for a library
// membership record and the projection of its progress timeline.
//
// Every operation here is a pure function: it takes a record snapshot by
// value and returns a new snapshot. Persistence, locking and event
// publishing are the caller's concern (see internal/service).
package membership

import (
	"strings"
	"time"

	"library-membership-be/internal/entity"

	"github.com/google/uuid"
)

// NewApplication builds the initial record for a freshly submitted
// application: review pending, payment gated, activation not started.
func NewApplication(profile entity.ApplicantProfile, applicantId *uuid.UUID) entity.LibraryMembership {
	now := time.Now()
	return entity.LibraryMembership{
		Id:               uuid.New(),
		ApplicantId:      applicantId,
		Application:      profile,
		State:            entity.ApplicationStatePending,
		PaymentStatus:    entity.PaymentStatusPending,
		MembershipStatus: entity.MembershipStatusNotStarted,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ReviewApplication decides a pending application. Re-reviewing an already
// decided application is an InvalidTransitionError, never a silent no-op,
// so double-submitted admin actions surface as bugs.
func ReviewApplication(rec entity.LibraryMembership, decision entity.ApplicationState, reviewer string) (entity.LibraryMembership, error) {
	const op = "ReviewApplication"

	if decision != entity.ApplicationStateApproved && decision != entity.ApplicationStateRejected {
		return rec, &ValidationError{Field: "decision", Reason: "must be approved or rejected"}
	}
	if strings.TrimSpace(reviewer) == "" {
		return rec, &ValidationError{Field: "reviewer", Reason: "must not be empty"}
	}
	if rec.State != entity.ApplicationStatePending {
		return rec, &InvalidTransitionError{Op: op, Reason: "application is already " + string(rec.State)}
	}

	now := time.Now()
	out := rec
	out.State = decision
	out.StatusUpdatedBy = &reviewer
	out.StatusUpdatedDate = &now
	out.UpdatedAt = now
	return out, nil
}

// BeginPayment marks an approved application's payment as processing while
// an online checkout is in flight. Bank transfer verifications skip this and
// go straight to RecordPayment.
func BeginPayment(rec entity.LibraryMembership, details entity.PaymentDetails) (entity.LibraryMembership, error) {
	const op = "BeginPayment"

	if rec.State != entity.ApplicationStateApproved {
		return rec, &InvalidTransitionError{Op: op, Reason: "application is " + string(rec.State) + ", payment requires approval"}
	}
	if rec.PaymentStatus == entity.PaymentStatusConfirmed || rec.PaymentStatus == entity.PaymentStatusFailed {
		return rec, &AlreadyFinalizedError{Op: op, Field: "payment_status", Value: string(rec.PaymentStatus)}
	}

	now := time.Now()
	out := rec
	out.PaymentStatus = entity.PaymentStatusProcessing
	out.PaymentDetails = &details
	out.UpdatedAt = now
	return out, nil
}

// RecordPayment finalizes the payment step of an approved application with
// either outcome. Payment tracking is gated by approval; a rejected or
// still-pending application can never accept a payment.
func RecordPayment(rec entity.LibraryMembership, outcome entity.PaymentStatus, details entity.PaymentDetails) (entity.LibraryMembership, error) {
	const op = "RecordPayment"

	if outcome != entity.PaymentStatusConfirmed && outcome != entity.PaymentStatusFailed {
		return rec, &ValidationError{Field: "outcome", Reason: "must be confirmed or failed"}
	}
	if rec.State != entity.ApplicationStateApproved {
		return rec, &InvalidTransitionError{Op: op, Reason: "application is " + string(rec.State) + ", payment requires approval"}
	}
	if rec.PaymentStatus == entity.PaymentStatusConfirmed || rec.PaymentStatus == entity.PaymentStatusFailed {
		return rec, &AlreadyFinalizedError{Op: op, Field: "payment_status", Value: string(rec.PaymentStatus)}
	}

	now := time.Now()
	d := details
	if d.ConfirmedDate.IsZero() {
		d.ConfirmedDate = now
	}
	if d.PaymentDate.IsZero() {
		d.PaymentDate = now
	}

	out := rec
	out.PaymentStatus = outcome
	out.PaymentDetails = &d
	if d.ConfirmedBy != "" {
		out.StatusUpdatedBy = &d.ConfirmedBy
		out.StatusUpdatedDate = &now
	}
	out.UpdatedAt = now
	return out, nil
}

// ActivateMembership creates the membership for a record whose payment is
// confirmed. The validity window is expressed in whole months so that
// end date arithmetic follows the calendar, matching how membership cards
// are issued.
func ActivateMembership(rec entity.LibraryMembership, membershipNumber string, validityMonths int, createdBy string) (entity.LibraryMembership, error) {
	const op = "ActivateMembership"

	if strings.TrimSpace(membershipNumber) == "" {
		return rec, &ValidationError{Field: "membership_number", Reason: "must not be empty"}
	}
	if validityMonths <= 0 {
		return rec, &ValidationError{Field: "validity_months", Reason: "must be positive"}
	}
	if rec.PaymentStatus != entity.PaymentStatusConfirmed {
		return rec, &InvalidTransitionError{Op: op, Reason: "payment is " + string(rec.PaymentStatus) + ", activation requires confirmed payment"}
	}
	if rec.MembershipStatus != entity.MembershipStatusNotStarted {
		return rec, &AlreadyFinalizedError{Op: op, Field: "membership_status", Value: string(rec.MembershipStatus)}
	}

	now := time.Now()
	out := rec
	out.MembershipStatus = entity.MembershipStatusActive
	out.MembershipDetails = &entity.MembershipDetails{
		MembershipNumber: membershipNumber,
		StartDate:        now,
		EndDate:          now.AddDate(0, validityMonths, 0),
		CreatedBy:        createdBy,
		CreatedDate:      now,
	}
	if createdBy != "" {
		out.StatusUpdatedBy = &createdBy
		out.StatusUpdatedDate = &now
	}
	out.UpdatedAt = now
	return out, nil
}

// ExpireMembership flips an active membership past its end date to expired.
// The caller supplies the clock; this package never schedules the sweep
// (cmd/expirer does).
func ExpireMembership(rec entity.LibraryMembership, now time.Time) (entity.LibraryMembership, error) {
	const op = "ExpireMembership"

	if rec.MembershipStatus != entity.MembershipStatusActive {
		return rec, &InvalidTransitionError{Op: op, Reason: "membership is " + string(rec.MembershipStatus) + ", only active memberships expire"}
	}
	if rec.MembershipDetails == nil || now.Before(rec.MembershipDetails.EndDate) {
		return rec, &InvalidTransitionError{Op: op, Reason: "membership has not reached its end date"}
	}

	out := rec
	out.MembershipStatus = entity.MembershipStatusExpired
	out.UpdatedAt = now
	return out, nil
}
