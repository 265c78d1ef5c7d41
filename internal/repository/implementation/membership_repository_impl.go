package implementation

import (
	"context"
	"errors"
	"time"

	"library-membership-be/internal/entity"
	"library-membership-be/internal/mapper"
	"library-membership-be/internal/model"
	"library-membership-be/internal/repository/contract"
	"library-membership-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict signals that a versioned update lost an optimistic
// concurrency race. Callers should re-read the record and retry the action.
var ErrVersionConflict = errors.New("membership record was modified concurrently")

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MembershipMapper
}

func NewMembershipRepository(db *gorm.DB) contract.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mapper.NewMembershipMapper(),
	}
}

func (r *MembershipRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, rec *entity.LibraryMembership) error {
	m := r.mapper.ToModel(rec)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rec = *r.mapper.ToEntity(m)
	return nil
}

func (r *MembershipRepositoryImpl) UpdateVersioned(ctx context.Context, rec *entity.LibraryMembership, expectedVersion int) error {
	m := r.mapper.ToModel(rec)
	m.Version = expectedVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.LibraryMembership{}).
		Where("id = ? AND version = ?", m.Id, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}

	rec.Version = m.Version
	return nil
}

func (r *MembershipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LibraryMembership, error) {
	var m model.LibraryMembership
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MembershipRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LibraryMembership, error) {
	var models []*model.LibraryMembership
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LibraryMembership, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MembershipRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LibraryMembership{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MembershipRepositoryImpl) CountByState(ctx context.Context, state string) (int64, error) {
	return r.Count(ctx, specification.ByApplicationState{State: state})
}

func (r *MembershipRepositoryImpl) CountByPaymentStatus(ctx context.Context, status string) (int64, error) {
	return r.Count(ctx, specification.ByPaymentStatus{Status: status})
}

func (r *MembershipRepositoryImpl) TotalConfirmedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&model.LibraryMembership{}).
		Where("payment_status = ?", string(entity.PaymentStatusConfirmed)).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *MembershipRepositoryImpl) CountActivatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LibraryMembership{}).
		Where("membership_status = ? AND membership_created_at >= ?", string(entity.MembershipStatusActive), since).
		Count(&count).Error
	return count, err
}

func (r *MembershipRepositoryImpl) MaxMembershipSequence(ctx context.Context, prefix string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.LibraryMembership{}).
		Where("membership_number LIKE ?", prefix+"%").
		Select("COALESCE(MAX(CAST(SUBSTRING(membership_number FROM LENGTH(?) + 1) AS INTEGER)), 0)", prefix).
		Scan(&max).Error
	return max, err
}

func (r *MembershipRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LibraryMembership{}, id).Error
}
