package service

import (
	"context"
	"errors"
	"time"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/repository/contract"
	"library-membership-be/internal/repository/specification"
	"library-membership-be/internal/repository/unitofwork"
	"library-membership-be/pkg/events"
	"library-membership-be/pkg/membership"
	pktNats "library-membership-be/pkg/nats"

	"github.com/google/uuid"
)

type MembershipListQuery struct {
	State  string
	Search string
	Limit  int
	Offset int
}

type IMembershipService interface {
	Apply(ctx context.Context, applicantId *uuid.UUID, req *dto.ApplyRequest) (*dto.ApplyResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.MembershipResponse, error)
	GetMine(ctx context.Context, applicantId uuid.UUID) (*dto.MembershipResponse, error)
	GetTimeline(ctx context.Context, id uuid.UUID) (*dto.TimelineResponse, error)
	List(ctx context.Context, query MembershipListQuery) (*dto.MembershipListResponse, error)
}

type membershipService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewMembershipService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IMembershipService {
	return &membershipService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *membershipService) Apply(ctx context.Context, applicantId *uuid.UUID, req *dto.ApplyRequest) (*dto.ApplyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// One live application per applicant account.
	if applicantId != nil {
		existing, err := uow.MembershipRepository().FindOne(ctx, specification.ByApplicant{ApplicantId: *applicantId})
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.State != entity.ApplicationStateRejected {
			return nil, errors.New("an application already exists for this account")
		}
	}

	profile := entity.ApplicantProfile{
		Title:           req.Title,
		Initials:        req.Initials,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		FullName:        req.FullName,
		RegNo:           req.RegNo,
		MembershipType:  entity.MembershipType(req.MembershipType),
		StudentId:       req.StudentId,
		Faculty:         req.Faculty,
		Course:          req.Course,
		Level:           req.Level,
		PersonalEmail:   req.PersonalEmail,
		UniversityEmail: req.UniversityEmail,
		ContactNo:       req.ContactNo,
		PermanentAddress: entity.Address{
			Street: req.PermanentAddress.Street,
			City:   req.PermanentAddress.City,
			State:  req.PermanentAddress.State,
			Zip:    req.PermanentAddress.Zip,
		},
		NicNo:         req.NicNo,
		DateOfBirth:   req.DateOfBirth,
		ProfilePicURL: req.ProfilePicURL,
	}

	rec := membership.NewApplication(profile, applicantId)

	if err := uow.MembershipRepository().Create(ctx, &rec); err != nil {
		return nil, err
	}

	s.log.Info("membership", "Application submitted", map[string]interface{}{
		"membership_id": rec.Id,
		"student_id":    rec.Application.StudentId,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "APPLICATION_SUBMITTED",
			Data: map[string]interface{}{
				"membership_id": rec.Id,
				"full_name":     rec.Application.FullName,
				"student_id":    rec.Application.StudentId,
				"email":         rec.Application.UniversityEmail,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("membership", "Failed to publish APPLICATION_SUBMITTED", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ApplyResponse{
		Id:        rec.Id,
		State:     string(rec.State),
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (s *membershipService) GetById(ctx context.Context, id uuid.UUID) (*dto.MembershipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("membership not found")
	}
	return toMembershipResponse(rec), nil
}

func (s *membershipService) GetMine(ctx context.Context, applicantId uuid.UUID) (*dto.MembershipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByApplicant{ApplicantId: applicantId},
		specification.OrderByCreatedDesc{},
	)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("no application found for this account")
	}
	return toMembershipResponse(rec), nil
}

func (s *membershipService) GetTimeline(ctx context.Context, id uuid.UUID) (*dto.TimelineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("membership not found")
	}
	return &dto.TimelineResponse{
		MembershipId: rec.Id,
		Timeline:     membership.ProjectTimeline(*rec),
	}, nil
}

func (s *membershipService) List(ctx context.Context, query MembershipListQuery) (*dto.MembershipListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MembershipRepository()

	specs := []specification.Specification{specification.OrderByCreatedDesc{}}
	countSpecs := []specification.Specification{}
	if query.State != "" {
		specs = append(specs, specification.ByApplicationState{State: query.State})
		countSpecs = append(countSpecs, specification.ByApplicationState{State: query.State})
	}
	if query.Search != "" {
		specs = append(specs, specification.SearchApplicant{Term: query.Search})
		countSpecs = append(countSpecs, specification.SearchApplicant{Term: query.Search})
	}

	total, err := repo.Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	if query.Limit <= 0 {
		query.Limit = 20
	}
	specs = append(specs, specification.Paginate{Limit: query.Limit, Offset: query.Offset})

	recs, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	stats, err := s.collectStats(ctx, repo)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MembershipResponse, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toMembershipResponse(rec))
	}

	return &dto.MembershipListResponse{
		Items: items,
		Total: total,
		Stats: *stats,
	}, nil
}

func (s *membershipService) collectStats(ctx context.Context, repo contract.MembershipRepository) (*dto.ApplicationStats, error) {
	pending, err := repo.CountByState(ctx, string(entity.ApplicationStatePending))
	if err != nil {
		return nil, err
	}
	approved, err := repo.CountByState(ctx, string(entity.ApplicationStateApproved))
	if err != nil {
		return nil, err
	}
	rejected, err := repo.CountByState(ctx, string(entity.ApplicationStateRejected))
	if err != nil {
		return nil, err
	}
	return &dto.ApplicationStats{
		All:      pending + approved + rejected,
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
	}, nil
}

func toMembershipResponse(rec *entity.LibraryMembership) *dto.MembershipResponse {
	res := &dto.MembershipResponse{
		Id: rec.Id,
		Application: dto.ApplicantProfileDTO{
			Title:           rec.Application.Title,
			FirstName:       rec.Application.FirstName,
			LastName:        rec.Application.LastName,
			FullName:        rec.Application.FullName,
			RegNo:           rec.Application.RegNo,
			MembershipType:  string(rec.Application.MembershipType),
			StudentId:       rec.Application.StudentId,
			Faculty:         rec.Application.Faculty,
			Course:          rec.Application.Course,
			Level:           rec.Application.Level,
			PersonalEmail:   rec.Application.PersonalEmail,
			UniversityEmail: rec.Application.UniversityEmail,
			ContactNo:       rec.Application.ContactNo,
			PermanentAddress: dto.AddressDTO{
				Street: rec.Application.PermanentAddress.Street,
				City:   rec.Application.PermanentAddress.City,
				State:  rec.Application.PermanentAddress.State,
				Zip:    rec.Application.PermanentAddress.Zip,
			},
			ProfilePicURL: rec.Application.ProfilePicURL,
		},
		State:             string(rec.State),
		PaymentStatus:     string(rec.PaymentStatus),
		MembershipStatus:  string(rec.MembershipStatus),
		StatusUpdatedDate: rec.StatusUpdatedDate,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
	if rec.StatusUpdatedBy != nil {
		res.StatusUpdatedBy = *rec.StatusUpdatedBy
	}
	if pd := rec.PaymentDetails; pd != nil {
		res.PaymentDetails = &dto.PaymentDetailsDTO{
			Amount:          pd.Amount,
			Method:          string(pd.Method),
			ReferenceNumber: pd.ReferenceNumber,
			ConfirmedBy:     pd.ConfirmedBy,
		}
		if !pd.PaymentDate.IsZero() {
			d := pd.PaymentDate
			res.PaymentDetails.PaymentDate = &d
		}
		if !pd.ConfirmedDate.IsZero() {
			d := pd.ConfirmedDate
			res.PaymentDetails.ConfirmedDate = &d
		}
	}
	if md := rec.MembershipDetails; md != nil {
		start := md.StartDate
		end := md.EndDate
		res.MembershipDetails = &dto.MembershipDetailsDTO{
			MembershipNumber: md.MembershipNumber,
			StartDate:        &start,
			EndDate:          &end,
			CreatedBy:        md.CreatedBy,
		}
	}
	return res
}
