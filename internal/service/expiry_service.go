package service

import (
	"context"
	"time"

	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/repository/specification"
	"library-membership-be/internal/repository/unitofwork"
	"library-membership-be/pkg/events"
	"library-membership-be/pkg/membership"
	pktNats "library-membership-be/pkg/nats"
)

type IExpiryService interface {
	// SweepExpired expires every active membership past its end date and
	// returns how many records were flipped.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type expiryService struct {
	uowFactory       unitofwork.RepositoryFactory
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	log              logger.ILogger
}

func NewExpiryService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	log logger.ILogger,
) IExpiryService {
	return &expiryService{
		uowFactory:       uowFactory,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *expiryService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MembershipRepository()

	due, err := repo.FindAll(ctx, specification.ActiveMembershipsDue{Now: now})
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, rec := range due {
		updated, err := membership.ExpireMembership(*rec, now)
		if err != nil {
			// Another sweep or an admin action got there first.
			s.log.Warn("expiry", "Skipping record", map[string]interface{}{
				"membership_id": rec.Id,
				"error":         err.Error(),
			})
			continue
		}

		if err := repo.UpdateVersioned(ctx, &updated, rec.Version); err != nil {
			s.log.Warn("expiry", "Version conflict during sweep", map[string]interface{}{
				"membership_id": rec.Id,
				"error":         err.Error(),
			})
			continue
		}
		expired++

		if s.eventPublisher != nil {
			data := map[string]interface{}{
				"membership_id":     updated.Id,
				"membership_number": updated.MembershipDetails.MembershipNumber,
				"full_name":         updated.Application.FullName,
				"email":             updated.Application.UniversityEmail,
			}
			if updated.ApplicantId != nil {
				data["user_id"] = updated.ApplicantId.String()
			}
			evt := events.BaseEvent{
				Type:       "MEMBERSHIP_EXPIRED",
				Data:       data,
				OccurredAt: now,
			}
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.log.Warn("expiry", "Failed to publish MEMBERSHIP_EXPIRED", map[string]interface{}{"error": err.Error()})
			}
		}

		if s.publisherService != nil {
			err := s.publisherService.PublishMail(ctx, MailMessage{
				To:       updated.Application.PersonalEmail,
				Template: MailTemplateMembershipExpired,
				Data: map[string]string{
					"full_name":         updated.Application.FullName,
					"membership_number": updated.MembershipDetails.MembershipNumber,
				},
			})
			if err != nil {
				s.log.Warn("expiry", "Failed to queue email", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	s.log.Info("expiry", "Sweep finished", map[string]interface{}{
		"due":     len(due),
		"expired": expired,
	})
	return expired, nil
}
