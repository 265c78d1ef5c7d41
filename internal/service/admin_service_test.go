package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/pkg/membership"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedApplication(t *testing.T, factory *fakeFactory) uuid.UUID {
	t.Helper()
	svc := NewMembershipService(factory, nil, noopLogger{})
	res, err := svc.Apply(context.Background(), nil, validApplyRequest())
	require.NoError(t, err)
	return res.Id
}

func seedFee(factory *fakeFactory) {
	factory.uow.fees.fees = append(factory.uow.fees.fees, entity.MembershipFee{
		Id:             uuid.New(),
		MembershipType: entity.MembershipTypeUndergraduate,
		Amount:         1500,
		Currency:       "LKR",
		ValidityMonths: 12,
		IsActive:       true,
	})
}

func confirmPayment(t *testing.T, factory *fakeFactory, id uuid.UUID) {
	t.Helper()
	rec := factory.uow.memberships.get(id)
	paid, err := membership.RecordPayment(rec, entity.PaymentStatusConfirmed, entity.PaymentDetails{
		Amount:          1500,
		Method:          entity.PaymentMethodBankTransfer,
		ReferenceNumber: "PAY-1",
		ConfirmedBy:     "Finance Admin",
	})
	require.NoError(t, err)
	factory.uow.memberships.put(paid)
}

func TestReviewApplicationApproves(t *testing.T) {
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewAdminService(factory, nil, nil, mail, noopLogger{})
	id := seedApplication(t, factory)

	res, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", res.State)
	assert.Equal(t, "admin@university.edu", res.StatusUpdatedBy)

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.ApplicationStateApproved, stored.State)
	assert.Equal(t, 2, stored.Version)

	msgs := mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MailTemplateApplicationApproved, msgs[0].Template)
	assert.Equal(t, "john.doe@gmail.com", msgs[0].To)
}

func TestReviewApplicationRejectNotifies(t *testing.T) {
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewAdminService(factory, nil, nil, mail, noopLogger{})
	id := seedApplication(t, factory)

	res, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "rejected", Remarks: "incomplete documents"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", res.State)

	msgs := mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, MailTemplateApplicationRejected, msgs[0].Template)
}

func TestReviewApplicationTwiceFails(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAdminService(factory, nil, nil, nil, noopLogger{})
	id := seedApplication(t, factory)

	_, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	require.NoError(t, err)

	_, err = svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "rejected"})
	require.Error(t, err)
	assert.ErrorIs(t, err, membership.ErrInvalidTransition)
}

func TestReviewApplicationUnknownId(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAdminService(factory, nil, nil, nil, noopLogger{})

	_, err := svc.ReviewApplication(context.Background(), uuid.New(), "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	assert.Error(t, err)
}

func TestActivateMembership(t *testing.T) {
	factory := newFakeFactory()
	mail := &fakeMailQueue{}
	svc := NewAdminService(factory, nil, nil, mail, noopLogger{})
	seedFee(factory)
	id := seedApplication(t, factory)

	_, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	require.NoError(t, err)
	confirmPayment(t, factory, id)

	res, err := svc.ActivateMembership(context.Background(), id, "admin@university.edu", &dto.ActivateRequest{})
	require.NoError(t, err)

	wantNumber := fmt.Sprintf("MEM-%d-0001", time.Now().Year())
	assert.Equal(t, wantNumber, res.MembershipNumber)
	// Validity comes from the fee table when the request leaves it unset.
	assert.Equal(t, res.StartDate.AddDate(0, 12, 0), res.EndDate)

	stored := factory.uow.memberships.get(id)
	assert.Equal(t, entity.MembershipStatusActive, stored.MembershipStatus)

	var activationMail *MailMessage
	for _, msg := range mail.messages() {
		if msg.Template == MailTemplateMembershipActivated {
			m := msg
			activationMail = &m
		}
	}
	require.NotNil(t, activationMail)
	assert.Equal(t, wantNumber, activationMail.Data["membership_number"])
}

func TestActivateMembershipSequencePerYear(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAdminService(factory, nil, nil, nil, noopLogger{})
	seedFee(factory)

	for i := 1; i <= 2; i++ {
		id := seedApplication(t, factory)
		_, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
			&dto.ReviewRequest{Decision: "approved"})
		require.NoError(t, err)
		confirmPayment(t, factory, id)

		res, err := svc.ActivateMembership(context.Background(), id, "admin@university.edu", &dto.ActivateRequest{})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("MEM-%d-%04d", time.Now().Year(), i), res.MembershipNumber)
	}
}

func TestActivateMembershipRequiresConfirmedPayment(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAdminService(factory, nil, nil, nil, noopLogger{})
	seedFee(factory)
	id := seedApplication(t, factory)

	_, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	require.NoError(t, err)

	_, err = svc.ActivateMembership(context.Background(), id, "admin@university.edu", &dto.ActivateRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, membership.ErrInvalidTransition)
}

func TestActivateMembershipHonorsExplicitValidity(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAdminService(factory, nil, nil, nil, noopLogger{})
	seedFee(factory)
	id := seedApplication(t, factory)

	_, err := svc.ReviewApplication(context.Background(), id, "admin@university.edu",
		&dto.ReviewRequest{Decision: "approved"})
	require.NoError(t, err)
	confirmPayment(t, factory, id)

	res, err := svc.ActivateMembership(context.Background(), id, "admin@university.edu",
		&dto.ActivateRequest{ValidityMonths: 6})
	require.NoError(t, err)
	assert.Equal(t, res.StartDate.AddDate(0, 6, 0), res.EndDate)
}
