package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/repository/specification"
	"library-membership-be/internal/repository/unitofwork"
	"library-membership-be/pkg/admin/dashboard"
	"library-membership-be/pkg/events"
	"library-membership-be/pkg/membership"
	pktNats "library-membership-be/pkg/nats"

	"github.com/google/uuid"
)

type IAdminService interface {
	ReviewApplication(ctx context.Context, membershipId uuid.UUID, reviewer string, req *dto.ReviewRequest) (*dto.MembershipResponse, error)
	ActivateMembership(ctx context.Context, membershipId uuid.UUID, activatedBy string, req *dto.ActivateRequest) (*dto.ActivateResponse, error)
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory       unitofwork.RepositoryFactory
	aggregator       *dashboard.Aggregator
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	log              logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	aggregator *dashboard.Aggregator,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:       uowFactory,
		aggregator:       aggregator,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *adminService) ReviewApplication(ctx context.Context, membershipId uuid.UUID, reviewer string, req *dto.ReviewRequest) (*dto.MembershipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("membership not found")
	}

	updated, err := membership.ReviewApplication(*rec, entity.ApplicationState(req.Decision), reviewer)
	if err != nil {
		return nil, err
	}

	if err := uow.MembershipRepository().UpdateVersioned(ctx, &updated, rec.Version); err != nil {
		return nil, err
	}

	s.log.Info("admin", "Application reviewed", map[string]interface{}{
		"membership_id": membershipId,
		"decision":      req.Decision,
		"reviewer":      reviewer,
	})

	eventData := map[string]interface{}{
		"membership_id": updated.Id,
		"decision":      string(updated.State),
		"full_name":     updated.Application.FullName,
		"email":         updated.Application.UniversityEmail,
		"reviewer":      reviewer,
	}
	if updated.ApplicantId != nil {
		eventData["user_id"] = updated.ApplicantId.String()
	}
	s.publishEvent(ctx, "APPLICATION_REVIEWED", eventData)
	s.queueMail(ctx, MailMessage{
		To:       updated.Application.PersonalEmail,
		Template: mailTemplateForDecision(updated.State),
		Data: map[string]string{
			"full_name": updated.Application.FullName,
		},
	})

	return toMembershipResponse(&updated), nil
}

func (s *adminService) ActivateMembership(ctx context.Context, membershipId uuid.UUID, activatedBy string, req *dto.ActivateRequest) (*dto.ActivateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MembershipRepository()

	rec, err := repo.FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("membership not found")
	}

	validityMonths := req.ValidityMonths
	if validityMonths <= 0 {
		fee, err := uow.FeeRepository().FindByMembershipType(ctx, string(rec.Application.MembershipType))
		if err != nil {
			return nil, err
		}
		if fee == nil {
			return nil, fmt.Errorf("no fee configured for membership type %s", rec.Application.MembershipType)
		}
		validityMonths = fee.ValidityMonths
	}

	number, err := s.nextMembershipNumber(ctx, uow)
	if err != nil {
		return nil, err
	}

	updated, err := membership.ActivateMembership(*rec, number, validityMonths, activatedBy)
	if err != nil {
		return nil, err
	}

	if err := repo.UpdateVersioned(ctx, &updated, rec.Version); err != nil {
		return nil, err
	}

	s.log.Info("admin", "Membership activated", map[string]interface{}{
		"membership_id":     membershipId,
		"membership_number": number,
		"activated_by":      activatedBy,
	})

	eventData := map[string]interface{}{
		"membership_id":     updated.Id,
		"membership_number": number,
		"full_name":         updated.Application.FullName,
		"email":             updated.Application.UniversityEmail,
	}
	if updated.ApplicantId != nil {
		eventData["user_id"] = updated.ApplicantId.String()
	}
	s.publishEvent(ctx, "MEMBERSHIP_ACTIVATED", eventData)
	s.queueMail(ctx, MailMessage{
		To:       updated.Application.PersonalEmail,
		Template: MailTemplateMembershipActivated,
		Data: map[string]string{
			"full_name":         updated.Application.FullName,
			"membership_number": number,
			"end_date":          updated.MembershipDetails.EndDate.Format("2006-01-02"),
		},
	})

	return &dto.ActivateResponse{
		MembershipNumber: number,
		StartDate:        updated.MembershipDetails.StartDate,
		EndDate:          updated.MembershipDetails.EndDate,
	}, nil
}

// nextMembershipNumber issues MEM-<year>-<seq>, sequence scoped per year.
func (s *adminService) nextMembershipNumber(ctx context.Context, uow unitofwork.UnitOfWork) (string, error) {
	prefix := fmt.Sprintf("MEM-%d-", time.Now().Year())
	max, err := uow.MembershipRepository().MaxMembershipSequence(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

func (s *adminService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) GetLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.log.GetLogs(level, limit, offset)
}

func (s *adminService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("admin", "Failed to publish "+eventType, map[string]interface{}{"error": err.Error()})
	}
}

func (s *adminService) queueMail(ctx context.Context, msg MailMessage) {
	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.PublishMail(ctx, msg); err != nil {
		s.log.Warn("admin", "Failed to queue email", map[string]interface{}{"error": err.Error()})
	}
}

func mailTemplateForDecision(state entity.ApplicationState) string {
	if state == entity.ApplicationStateApproved {
		return MailTemplateApplicationApproved
	}
	return MailTemplateApplicationRejected
}
