package contract

import (
	"context"

	"library-membership-be/internal/entity"
	"library-membership-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeeRepository interface {
	Create(ctx context.Context, fee *entity.MembershipFee) error
	Update(ctx context.Context, fee *entity.MembershipFee) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MembershipFee, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MembershipFee, error)
	FindByMembershipType(ctx context.Context, membershipType string) (*entity.MembershipFee, error)
}
