package unitofwork

import (
	"context"

	"library-membership-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MembershipRepository() contract.MembershipRepository
	UserRepository() contract.UserRepository
	FeeRepository() contract.FeeRepository
}
