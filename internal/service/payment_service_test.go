package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedApplication(t *testing.T, factory *fakeFactory) uuid.UUID {
	t.Helper()
	id := seedApplication(t, factory)
	admin := NewAdminService(factory, nil, nil, nil, noopLogger{})
	_, err := admin.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	require.NoError(t, err)
	return id
}

func signWebhook(req *dto.MidtransWebhookRequest, serverKey string) {
	input := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func TestGetFeesSkipsInactive(t *testing.T) {
	factory := newFakeFactory()
	svc := NewPaymentService(factory, nil, nil, noopLogger{})
	seedFee(factory)
	factory.uow.fees.fees = append(factory.uow.fees.fees, entity.MembershipFee{
		Id:             uuid.New(),
		MembershipType: entity.MembershipTypeExternal,
		Amount:         5000,
		IsActive:       false,
	})

	fees, err := svc.GetFees(context.Background())
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, "UNDERGRADUATE", fees[0].MembershipType)
}

func TestGetOrderSummary(t *testing.T) {
	factory := newFakeFactory()
	svc := NewPaymentService(factory, nil, nil, noopLogger{})
	seedFee(factory)
	id := approvedApplication(t, factory)

	summary, err := svc.GetOrderSummary(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "UNDERGRADUATE", summary.MembershipType)
	assert.Equal(t, float64(1500), summary.Amount)
	assert.Equal(t, 12, summary.ValidityMonths)
}

func TestGetOrderSummaryWithoutFeeRow(t *testing.T) {
	factory := newFakeFactory()
	svc := NewPaymentService(factory, nil, nil, noopLogger{})
	id := approvedApplication(t, factory)

	_, err := svc.GetOrderSummary(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fee configured")
}

func TestVerifyPaymentConfirms(t *testing.T) {
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewPaymentService(factory, nil, mail, noopLogger{})
	id := approvedApplication(t, factory)

	res, err := svc.VerifyPayment(context.Background(), id, "finance@university.edu",
		&dto.VerifyPaymentRequest{Outcome: "confirmed", Amount: 1500, ReferenceNumber: "SLIP-991"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.PaymentStatus)
	require.NotNil(t, res.PaymentDetails)
	assert.Equal(t, "SLIP-991", res.PaymentDetails.ReferenceNumber)
	assert.Equal(t, "finance@university.edu", res.PaymentDetails.ConfirmedBy)

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.PaymentStatusConfirmed, stored.PaymentStatus)
	assert.Equal(t, 3, stored.Version)

	msgs := mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MailTemplatePaymentConfirmed, msgs[0].Template)
	assert.Equal(t, "1500.00", msgs[0].Data["amount"])
}

func TestVerifyPaymentBeforeApproval(t *testing.T) {
	factory := newFakeFactory()
	svc := NewPaymentService(factory, nil, nil, noopLogger{})
	id := seedApplication(t, factory)

	_, err := svc.VerifyPayment(context.Background(), id, "finance@university.edu",
		&dto.VerifyPaymentRequest{Outcome: "confirmed", Amount: 1500, ReferenceNumber: "SLIP-1"})
	assert.Error(t, err)
}

func TestHandleNotificationSettlement(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewPaymentService(factory, nil, mail, noopLogger{})
	id := approvedApplication(t, factory)

	req := &dto.MidtransWebhookRequest{
		OrderId:           id.String(),
		TransactionStatus: "settlement",
		TransactionId:     "txn-123",
		StatusCode:        "200",
		GrossAmount:       "1500.00",
	}
	signWebhook(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.PaymentStatusConfirmed, stored.PaymentStatus)
	require.NotNil(t, stored.PaymentDetails)
	assert.Equal(t, "txn-123", stored.PaymentDetails.ReferenceNumber)
	assert.Equal(t, entity.PaymentMethodOnline, stored.PaymentDetails.Method)

	msgs := mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MailTemplatePaymentConfirmed, msgs[0].Template)
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")
	factory := newFakeFactory()
	svc := NewPaymentService(factory, nil, nil, noopLogger{})
	id := approvedApplication(t, factory)

	req := &dto.MidtransWebhookRequest{
		OrderId:           id.String(),
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "1500.00",
		SignatureKey:      "forged",
	}

	err := svc.HandleNotification(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid signature")

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
}

func TestHandleNotificationRedeliveryIsIdempotent(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewPaymentService(factory, nil, mail, noopLogger{})
	id := approvedApplication(t, factory)

	req := &dto.MidtransWebhookRequest{
		OrderId:           id.String(),
		TransactionStatus: "settlement",
		TransactionId:     "txn-123",
		StatusCode:        "200",
		GrossAmount:       "1500.00",
	}
	signWebhook(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))
	require.NoError(t, svc.HandleNotification(context.Background(), req))

	// The redelivery records nothing and sends nothing.
	assert.Len(t, mail.messages(), 1)
}

func TestHandleNotificationFailureOutcome(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewPaymentService(factory, nil, mail, noopLogger{})
	id := approvedApplication(t, factory)

	req := &dto.MidtransWebhookRequest{
		OrderId:           id.String(),
		TransactionStatus: "expire",
		StatusCode:        "407",
		GrossAmount:       "1500.00",
	}
	signWebhook(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.PaymentStatusFailed, stored.PaymentStatus)

	msgs := mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MailTemplatePaymentFailed, msgs[0].Template)
}

func TestHandleNotificationPendingIsNoop(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")
	factory := newFakeFactory()
	svc := NewPaymentService(factory, nil, nil, noopLogger{})
	id := approvedApplication(t, factory)

	req := &dto.MidtransWebhookRequest{
		OrderId:           id.String(),
		TransactionStatus: "pending",
		StatusCode:        "201",
		GrossAmount:       "1500.00",
	}
	signWebhook(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
}
