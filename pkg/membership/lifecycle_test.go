package membership

import (
	"errors"
	"testing"
	"time"

	"library-membership-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRecord() entity.LibraryMembership {
	return NewApplication(entity.ApplicantProfile{
		FullName:       "John Michael Doe",
		StudentId:      "OU56789",
		MembershipType: entity.MembershipTypeUndergraduate,
		PersonalEmail:  "john.doe@gmail.com",
	}, nil)
}

func TestNewApplicationStartsGated(t *testing.T) {
	rec := newPendingRecord()

	assert.Equal(t, entity.ApplicationStatePending, rec.State)
	assert.Equal(t, entity.PaymentStatusPending, rec.PaymentStatus)
	assert.Equal(t, entity.MembershipStatusNotStarted, rec.MembershipStatus)
	assert.Nil(t, rec.PaymentDetails)
	assert.Nil(t, rec.MembershipDetails)
}

func TestReviewApplication(t *testing.T) {
	rec := newPendingRecord()

	approved, err := ReviewApplication(rec, entity.ApplicationStateApproved, "Library Admin")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStateApproved, approved.State)
	require.NotNil(t, approved.StatusUpdatedBy)
	assert.Equal(t, "Library Admin", *approved.StatusUpdatedBy)
	assert.NotNil(t, approved.StatusUpdatedDate)

	// Input snapshot is untouched.
	assert.Equal(t, entity.ApplicationStatePending, rec.State)
	assert.Nil(t, rec.StatusUpdatedBy)
}

func TestReviewApplicationTwiceFails(t *testing.T) {
	rec := newPendingRecord()

	approved, err := ReviewApplication(rec, entity.ApplicationStateApproved, "Library Admin")
	require.NoError(t, err)

	again, err := ReviewApplication(approved, entity.ApplicationStateApproved, "Library Admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var ite *InvalidTransitionError
	assert.True(t, errors.As(err, &ite))

	// Failed call returns the record unchanged.
	assert.Equal(t, approved, again)
}

func TestReviewApplicationRejectsBadInput(t *testing.T) {
	rec := newPendingRecord()

	_, err := ReviewApplication(rec, entity.ApplicationStatePending, "Library Admin")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ReviewApplication(rec, entity.ApplicationStateApproved, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRejectionIsTerminal(t *testing.T) {
	rec := newPendingRecord()

	rejected, err := ReviewApplication(rec, entity.ApplicationStateRejected, "Library Admin")
	require.NoError(t, err)

	_, err = RecordPayment(rejected, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ActivateMembership(rejected, "MEM-2026-001", 12, "Library Admin")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBeginPayment(t *testing.T) {
	approved, err := ReviewApplication(newPendingRecord(), entity.ApplicationStateApproved, "Library Admin")
	require.NoError(t, err)

	orderId := "f7a7d9c2-0000-0000-0000-000000000001"
	processing, err := BeginPayment(approved, entity.PaymentDetails{
		Amount:         2500,
		Method:         entity.PaymentMethodOnline,
		GatewayOrderId: &orderId,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusProcessing, processing.PaymentStatus)
	require.NotNil(t, processing.PaymentDetails)
	require.NotNil(t, processing.PaymentDetails.GatewayOrderId)
	assert.Equal(t, orderId, *processing.PaymentDetails.GatewayOrderId)

	// Starting a second checkout before the first settles is allowed; the
	// gateway order simply gets replaced.
	again, err := BeginPayment(processing, entity.PaymentDetails{Amount: 2500, Method: entity.PaymentMethodOnline})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusProcessing, again.PaymentStatus)
}

func TestBeginPaymentPreconditions(t *testing.T) {
	rec := newPendingRecord()

	out, err := BeginPayment(rec, entity.PaymentDetails{Amount: 2500})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, rec, out)

	approved, _ := ReviewApplication(rec, entity.ApplicationStateApproved, "Library Admin")
	paid, _ := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})

	_, err = BeginPayment(paid, entity.PaymentDetails{Amount: 2500})
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestRecordPaymentRequiresApproval(t *testing.T) {
	rec := newPendingRecord()

	out, err := RecordPayment(rec, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, rec, out)
}

func TestRecordPaymentOutcomes(t *testing.T) {
	approved, err := ReviewApplication(newPendingRecord(), entity.ApplicationStateApproved, "Library Admin")
	require.NoError(t, err)

	t.Run("confirmed", func(t *testing.T) {
		paid, err := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{
			Amount:          2500,
			Method:          entity.PaymentMethodBankTransfer,
			ReferenceNumber: "PAY-123456",
			ConfirmedBy:     "Finance Admin",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusConfirmed, paid.PaymentStatus)
		require.NotNil(t, paid.PaymentDetails)
		assert.Equal(t, "PAY-123456", paid.PaymentDetails.ReferenceNumber)
		assert.False(t, paid.PaymentDetails.ConfirmedDate.IsZero())
		// Approved input keeps its nil payment details.
		assert.Nil(t, approved.PaymentDetails)
	})

	t.Run("failed", func(t *testing.T) {
		failed, err := RecordPayment(approved, entity.PaymentStatusFailed, entity.PaymentDetails{Amount: 2500})
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusFailed, failed.PaymentStatus)
	})

	t.Run("invalid outcome", func(t *testing.T) {
		_, err := RecordPayment(approved, entity.PaymentStatusProcessing, entity.PaymentDetails{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRecordPaymentRejectsDuplicates(t *testing.T) {
	approved, _ := ReviewApplication(newPendingRecord(), entity.ApplicationStateApproved, "Library Admin")
	paid, err := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	require.NoError(t, err)

	again, err := RecordPayment(paid, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	var afe *AlreadyFinalizedError
	require.True(t, errors.As(err, &afe))
	assert.Equal(t, "payment_status", afe.Field)

	assert.Equal(t, paid, again)
}

func TestActivateMembership(t *testing.T) {
	approved, _ := ReviewApplication(newPendingRecord(), entity.ApplicationStateApproved, "Library Admin")
	paid, err := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	require.NoError(t, err)

	active, err := ActivateMembership(paid, "MEM-2026-001", 12, "Library Admin")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusActive, active.MembershipStatus)
	require.NotNil(t, active.MembershipDetails)
	assert.Equal(t, "MEM-2026-001", active.MembershipDetails.MembershipNumber)

	wantEnd := active.MembershipDetails.StartDate.AddDate(0, 12, 0)
	assert.True(t, active.MembershipDetails.EndDate.Equal(wantEnd),
		"end date must be start date plus the validity period exactly")
}

func TestActivateMembershipPreconditions(t *testing.T) {
	approved, _ := ReviewApplication(newPendingRecord(), entity.ApplicationStateApproved, "Library Admin")

	// Payment still pending.
	out, err := ActivateMembership(approved, "MEM-2026-001", 12, "Library Admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, approved, out)

	paid, _ := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})

	_, err = ActivateMembership(paid, "", 12, "Library Admin")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ActivateMembership(paid, "MEM-2026-001", 0, "Library Admin")
	assert.ErrorIs(t, err, ErrValidation)

	active, err := ActivateMembership(paid, "MEM-2026-001", 12, "Library Admin")
	require.NoError(t, err)

	again, err := ActivateMembership(active, "MEM-2026-002", 12, "Library Admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	assert.Equal(t, active, again)
}

func TestExpireMembership(t *testing.T) {
	approved, _ := ReviewApplication(newPendingRecord(), entity.ApplicationStateApproved, "Library Admin")
	paid, _ := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	active, err := ActivateMembership(paid, "MEM-2026-001", 12, "Library Admin")
	require.NoError(t, err)

	// Before the end date the sweep must refuse.
	_, err = ExpireMembership(active, active.MembershipDetails.EndDate.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	expired, err := ExpireMembership(active, active.MembershipDetails.EndDate.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusExpired, expired.MembershipStatus)

	// Expired is terminal for the sweep as well.
	_, err = ExpireMembership(expired, time.Now().AddDate(2, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExpireMembershipRequiresActive(t *testing.T) {
	rec := newPendingRecord()
	_, err := ExpireMembership(rec, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
