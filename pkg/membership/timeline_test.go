package membership

import (
	"testing"

	"library-membership-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(state entity.ApplicationState, payment entity.PaymentStatus, membership entity.MembershipStatus) entity.LibraryMembership {
	rec := newPendingRecord()
	rec.State = state
	rec.PaymentStatus = payment
	rec.MembershipStatus = membership
	return rec
}

func TestProjectTimeline(t *testing.T) {
	tests := []struct {
		name        string
		rec         entity.LibraryMembership
		wantPercent int
		wantSteps   [3]StepStatus
	}{
		{
			name:        "fresh application",
			rec:         record(entity.ApplicationStatePending, entity.PaymentStatusPending, entity.MembershipStatusNotStarted),
			wantPercent: 33,
			wantSteps:   [3]StepStatus{StepCurrent, StepPending, StepPending},
		},
		{
			name:        "approved awaiting payment",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusPending, entity.MembershipStatusNotStarted),
			wantPercent: 33,
			wantSteps:   [3]StepStatus{StepComplete, StepCurrent, StepPending},
		},
		{
			name:        "approved payment processing",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusProcessing, entity.MembershipStatusNotStarted),
			wantPercent: 33,
			wantSteps:   [3]StepStatus{StepComplete, StepCurrent, StepPending},
		},
		{
			name:        "payment confirmed activation not started",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusConfirmed, entity.MembershipStatusNotStarted),
			wantPercent: 66,
			wantSteps:   [3]StepStatus{StepComplete, StepComplete, StepPending},
		},
		{
			name:        "activation in progress",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusConfirmed, entity.MembershipStatusProcessing),
			wantPercent: 66,
			wantSteps:   [3]StepStatus{StepComplete, StepComplete, StepCurrent},
		},
		{
			name:        "fully active",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusConfirmed, entity.MembershipStatusActive),
			wantPercent: 100,
			wantSteps:   [3]StepStatus{StepComplete, StepComplete, StepComplete},
		},
		{
			name:        "rejected application",
			rec:         record(entity.ApplicationStateRejected, entity.PaymentStatusPending, entity.MembershipStatusNotStarted),
			wantPercent: 0,
			wantSteps:   [3]StepStatus{StepFailed, StepPending, StepPending},
		},
		{
			name:        "payment failed",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusFailed, entity.MembershipStatusNotStarted),
			wantPercent: 33,
			wantSteps:   [3]StepStatus{StepComplete, StepFailed, StepPending},
		},
		{
			name:        "membership expired",
			rec:         record(entity.ApplicationStateApproved, entity.PaymentStatusConfirmed, entity.MembershipStatusExpired),
			wantPercent: 66,
			wantSteps:   [3]StepStatus{StepComplete, StepComplete, StepFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := ProjectTimeline(tt.rec)

			require.Len(t, tl.Steps, 3)
			assert.Equal(t, tt.wantPercent, tl.PercentComplete)
			for i, want := range tt.wantSteps {
				assert.Equal(t, want, tl.Steps[i].Status, "step %d (%s)", i+1, tl.Steps[i].Label)
			}
		})
	}
}

func TestProjectTimelineStepLabels(t *testing.T) {
	tl := ProjectTimeline(newPendingRecord())

	require.Len(t, tl.Steps, 3)
	assert.Equal(t, "Application Review", tl.Steps[0].Label)
	assert.Equal(t, "Payment Processing", tl.Steps[1].Label)
	assert.Equal(t, "Membership Activation", tl.Steps[2].Label)

	assert.Equal(t, "Under review", tl.Steps[0].Description)
	assert.Equal(t, "Awaiting payment", tl.Steps[1].Description)
	assert.Equal(t, "Not started", tl.Steps[2].Description)
}

func TestProjectTimelineIsPure(t *testing.T) {
	rec := record(entity.ApplicationStateApproved, entity.PaymentStatusConfirmed, entity.MembershipStatusProcessing)

	first := ProjectTimeline(rec)
	second := ProjectTimeline(rec)

	assert.Equal(t, first, second)
	assert.Equal(t, entity.MembershipStatusProcessing, rec.MembershipStatus)
}

func TestProjectTimelineFollowsLifecycle(t *testing.T) {
	rec := newPendingRecord()

	approved, err := ReviewApplication(rec, entity.ApplicationStateApproved, "Library Admin")
	require.NoError(t, err)
	tl := ProjectTimeline(approved)
	assert.Equal(t, 33, tl.PercentComplete)
	assert.Equal(t, StepComplete, tl.Steps[0].Status)
	assert.Equal(t, StepCurrent, tl.Steps[1].Status)

	paid, err := RecordPayment(approved, entity.PaymentStatusConfirmed, entity.PaymentDetails{Amount: 2500})
	require.NoError(t, err)
	tl = ProjectTimeline(paid)
	assert.Equal(t, 66, tl.PercentComplete)

	active, err := ActivateMembership(paid, "MEM-2026-001", 12, "Library Admin")
	require.NoError(t, err)
	tl = ProjectTimeline(active)
	assert.Equal(t, 100, tl.PercentComplete)
}
