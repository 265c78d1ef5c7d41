package implementation

import (
	"context"
	"errors"

	"library-membership-be/internal/entity"
	"library-membership-be/internal/mapper"
	"library-membership-be/internal/model"
	"library-membership-be/internal/repository/contract"
	"library-membership-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeeMapper
}

func NewFeeRepository(db *gorm.DB) contract.FeeRepository {
	return &FeeRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeeMapper(),
	}
}

func (r *FeeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeeRepositoryImpl) Create(ctx context.Context, fee *entity.MembershipFee) error {
	m := r.mapper.ToModel(fee)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*fee = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeeRepositoryImpl) Update(ctx context.Context, fee *entity.MembershipFee) error {
	m := r.mapper.ToModel(fee)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*fee = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MembershipFee{}, id).Error
}

func (r *FeeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MembershipFee, error) {
	var m model.MembershipFee
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MembershipFee, error) {
	var models []*model.MembershipFee
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MembershipFee, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *FeeRepositoryImpl) FindByMembershipType(ctx context.Context, membershipType string) (*entity.MembershipFee, error) {
	var m model.MembershipFee
	err := r.db.WithContext(ctx).
		Where("membership_type = ? AND is_active = true", membershipType).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
