package dto

import "github.com/google/uuid"

type FeeResponse struct {
	Id             uuid.UUID `json:"id"`
	MembershipType string    `json:"membership_type"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	ValidityMonths int       `json:"validity_months"`
	Description    string    `json:"description,omitempty"`
}

type OrderSummaryResponse struct {
	MembershipType string  `json:"membership_type"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	ValidityMonths int     `json:"validity_months"`
}

type CheckoutRequest struct {
	MembershipId uuid.UUID `json:"membership_id" validate:"required"`
}

type CheckoutResponse struct {
	MembershipId    uuid.UUID `json:"membership_id"`
	SnapToken       string    `json:"snap_token"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
}

// MidtransWebhookRequest mirrors the gateway notification payload.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
}

// VerifyPaymentRequest is the finance division manual verification of a
// bank transfer slip.
type VerifyPaymentRequest struct {
	Outcome         string  `json:"outcome" validate:"required,oneof=confirmed failed"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	ReferenceNumber string  `json:"reference_number" validate:"required"`
}
