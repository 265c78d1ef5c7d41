package membership

import "library-membership-be/internal/entity"

// StepStatus is the abstract display state of one timeline step. Mapping to
// colors and icons happens in the presentation layer, not here.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepCurrent  StepStatus = "current"
	StepComplete StepStatus = "complete"
	StepFailed   StepStatus = "failed"
)

type StepView struct {
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
}

type Timeline struct {
	Steps           []StepView `json:"steps"`
	PercentComplete int        `json:"percent_complete"`
}

// ProjectTimeline derives the three-step progress view from a record
// snapshot. It is a pure read: no mutation, no hidden state.
//
// Progress is a discrete scale: 0 (rejected), 33 (review phase), 66
// (payment confirmed), 100 (membership active). These breakpoints are load
// bearing for the progress bar and are asserted in tests.
func ProjectTimeline(rec entity.LibraryMembership) Timeline {
	return Timeline{
		Steps: []StepView{
			reviewStep(rec.State),
			paymentStep(rec.State, rec.PaymentStatus),
			activationStep(rec.PaymentStatus, rec.MembershipStatus),
		},
		PercentComplete: percentComplete(rec),
	}
}

func reviewStep(state entity.ApplicationState) StepView {
	step := StepView{Label: "Application Review"}
	switch state {
	case entity.ApplicationStateApproved:
		step.Status = StepComplete
		step.Description = "Application approved"
	case entity.ApplicationStateRejected:
		step.Status = StepFailed
		step.Description = "Application rejected"
	default:
		step.Status = StepCurrent
		step.Description = "Under review"
	}
	return step
}

func paymentStep(state entity.ApplicationState, payment entity.PaymentStatus) StepView {
	step := StepView{Label: "Payment Processing"}

	switch payment {
	case entity.PaymentStatusProcessing:
		step.Description = "Processing payment"
	case entity.PaymentStatusConfirmed:
		step.Description = "Payment confirmed"
	case entity.PaymentStatusFailed:
		step.Description = "Payment failed"
	default:
		step.Description = "Awaiting payment"
	}

	// Payment is locked until the application is approved.
	if state != entity.ApplicationStateApproved {
		step.Status = StepPending
		return step
	}
	switch payment {
	case entity.PaymentStatusConfirmed:
		step.Status = StepComplete
	case entity.PaymentStatusFailed:
		step.Status = StepFailed
	default:
		step.Status = StepCurrent
	}
	return step
}

func activationStep(payment entity.PaymentStatus, membership entity.MembershipStatus) StepView {
	step := StepView{Label: "Membership Activation"}

	switch membership {
	case entity.MembershipStatusProcessing:
		step.Description = "Processing"
	case entity.MembershipStatusActive:
		step.Description = "Active"
	case entity.MembershipStatusExpired:
		step.Description = "Expired"
	default:
		step.Description = "Not started"
	}

	// Activation is locked until payment is confirmed.
	if payment != entity.PaymentStatusConfirmed {
		step.Status = StepPending
		return step
	}
	switch membership {
	case entity.MembershipStatusActive:
		step.Status = StepComplete
	case entity.MembershipStatusProcessing:
		step.Status = StepCurrent
	case entity.MembershipStatusExpired:
		// An expired membership reads as a terminal failure on the bar,
		// not as a step that never started.
		step.Status = StepFailed
	default:
		step.Status = StepPending
	}
	return step
}

func percentComplete(rec entity.LibraryMembership) int {
	if rec.State == entity.ApplicationStateRejected {
		return 0
	}
	if rec.State != entity.ApplicationStateApproved {
		return 33
	}
	if rec.PaymentStatus != entity.PaymentStatusConfirmed {
		return 33
	}
	if rec.MembershipStatus != entity.MembershipStatusActive {
		return 66
	}
	return 100
}
