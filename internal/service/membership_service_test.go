package service

import (
	"context"
	"testing"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/pkg/membership"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplyRequest() *dto.ApplyRequest {
	return &dto.ApplyRequest{
		Title:           "Mr",
		Initials:        "J.M.",
		FirstName:       "John",
		LastName:        "Doe",
		FullName:        "John Michael Doe",
		RegNo:           202012345,
		MembershipType:  "UNDERGRADUATE",
		StudentId:       "OU56789",
		Faculty:         "Faculty of Science",
		Course:          "BSc Computer Science",
		Level:           "Level 2",
		PersonalEmail:   "john.doe@gmail.com",
		UniversityEmail: "john.doe@university.edu",
		ContactNo:       "0771234567",
		PermanentAddress: dto.AddressDTO{
			Street: "12 Temple Road",
			City:   "Colombo",
			State:  "Western",
			Zip:    "10100",
		},
		NicNo:       "200012345678",
		DateOfBirth: "2000-05-14",
	}
}

func TestApplyCreatesPendingRecord(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})

	applicantId := uuid.New()
	res, err := svc.Apply(context.Background(), &applicantId, validApplyRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", res.State)

	stored := factory.uow.memberships.get(res.Id)
	assert.Equal(t, entity.ApplicationStatePending, stored.State)
	assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, entity.MembershipStatusNotStarted, stored.MembershipStatus)
	assert.Equal(t, "John Michael Doe", stored.Application.FullName)
	require.NotNil(t, stored.ApplicantId)
	assert.Equal(t, applicantId, *stored.ApplicantId)
	assert.Equal(t, 1, stored.Version)
}

func TestApplyBlocksSecondLiveApplication(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})
	applicantId := uuid.New()

	_, err := svc.Apply(context.Background(), &applicantId, validApplyRequest())
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), &applicantId, validApplyRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestApplyAllowsReapplyAfterRejection(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})
	applicantId := uuid.New()

	first, err := svc.Apply(context.Background(), &applicantId, validApplyRequest())
	require.NoError(t, err)

	rec := factory.uow.memberships.get(first.Id)
	rejected, err := membership.ReviewApplication(rec, entity.ApplicationStateRejected, "Library Admin")
	require.NoError(t, err)
	factory.uow.memberships.put(rejected)

	_, err = svc.Apply(context.Background(), &applicantId, validApplyRequest())
	assert.NoError(t, err)
}

func TestGetTimelineForFreshApplication(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})

	res, err := svc.Apply(context.Background(), nil, validApplyRequest())
	require.NoError(t, err)

	timeline, err := svc.GetTimeline(context.Background(), res.Id)
	require.NoError(t, err)
	require.Len(t, timeline.Timeline.Steps, 3)
	assert.Equal(t, membership.StepCurrent, timeline.Timeline.Steps[0].Status)
	assert.Equal(t, membership.StepPending, timeline.Timeline.Steps[1].Status)
	assert.Equal(t, membership.StepPending, timeline.Timeline.Steps[2].Status)
	assert.Equal(t, 33, timeline.Timeline.PercentComplete)
}

func TestGetTimelineUnknownId(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})

	_, err := svc.GetTimeline(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestListReportsStats(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})

	for i := 0; i < 3; i++ {
		req := validApplyRequest()
		res, err := svc.Apply(context.Background(), nil, req)
		require.NoError(t, err)

		if i == 0 {
			rec := factory.uow.memberships.get(res.Id)
			approved, err := membership.ReviewApplication(rec, entity.ApplicationStateApproved, "Library Admin")
			require.NoError(t, err)
			factory.uow.memberships.put(approved)
		}
	}

	list, err := svc.List(context.Background(), MembershipListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, int64(3), list.Stats.All)
	assert.Equal(t, int64(2), list.Stats.Pending)
	assert.Equal(t, int64(1), list.Stats.Approved)
	assert.Equal(t, int64(0), list.Stats.Rejected)
}

func TestListFiltersByState(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMembershipService(factory, nil, noopLogger{})

	res, err := svc.Apply(context.Background(), nil, validApplyRequest())
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), nil, validApplyRequest())
	require.NoError(t, err)

	rec := factory.uow.memberships.get(res.Id)
	approved, err := membership.ReviewApplication(rec, entity.ApplicationStateApproved, "Library Admin")
	require.NoError(t, err)
	factory.uow.memberships.put(approved)

	list, err := svc.List(context.Background(), MembershipListQuery{State: "approved"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "approved", list.Items[0].State)
}
