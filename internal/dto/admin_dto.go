package dto

import "time"

type ReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Remarks  string `json:"remarks,omitempty"`
}

type ActivateRequest struct {
	// ValidityMonths overrides the fee table default when positive.
	ValidityMonths int `json:"validity_months" validate:"omitempty,min=1,max=120"`
}

type ActivateResponse struct {
	MembershipNumber string    `json:"membership_number"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

type DashboardResponse struct {
	PendingApplications  int64   `json:"pending_applications"`
	ApprovedApplications int64   `json:"approved_applications"`
	RejectedApplications int64   `json:"rejected_applications"`
	PendingPayments      int64   `json:"pending_payments"`
	ConfirmedPayments    int64   `json:"confirmed_payments"`
	ActiveMemberships    int64   `json:"active_memberships"`
	ActivatedThisMonth   int64   `json:"activated_this_month"`
	TotalRevenue         float64 `json:"total_revenue"`
}
