package mapper

import (
	"library-membership-be/internal/entity"
	"library-membership-be/internal/model"
)

type FeeMapper struct{}

func NewFeeMapper() *FeeMapper {
	return &FeeMapper{}
}

func (m *FeeMapper) ToEntity(f *model.MembershipFee) *entity.MembershipFee {
	if f == nil {
		return nil
	}
	return &entity.MembershipFee{
		Id:             f.Id,
		MembershipType: entity.MembershipType(f.MembershipType),
		Amount:         f.Amount,
		Currency:       f.Currency,
		ValidityMonths: f.ValidityMonths,
		Description:    f.Description,
		IsActive:       f.IsActive,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func (m *FeeMapper) ToModel(f *entity.MembershipFee) *model.MembershipFee {
	if f == nil {
		return nil
	}
	return &model.MembershipFee{
		Id:             f.Id,
		MembershipType: string(f.MembershipType),
		Amount:         f.Amount,
		Currency:       f.Currency,
		ValidityMonths: f.ValidityMonths,
		Description:    f.Description,
		IsActive:       f.IsActive,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}
