package contract

import (
	"context"
	"time"

	"library-membership-be/internal/entity"
	"library-membership-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MembershipRepository interface {
	Create(ctx context.Context, rec *entity.LibraryMembership) error

	// UpdateVersioned persists a transitioned record with an optimistic
	// concurrency check: the write only succeeds when the stored row still
	// carries expectedVersion. On success the record's Version is bumped.
	// A concurrent modification surfaces as ErrVersionConflict.
	UpdateVersioned(ctx context.Context, rec *entity.LibraryMembership, expectedVersion int) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LibraryMembership, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LibraryMembership, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Dashboard helpers
	CountByState(ctx context.Context, state string) (int64, error)
	CountByPaymentStatus(ctx context.Context, status string) (int64, error)
	TotalConfirmedRevenue(ctx context.Context) (float64, error)
	CountActivatedSince(ctx context.Context, since time.Time) (int64, error)

	// Membership number sequencing: highest sequence already issued for the
	// given year prefix (e.g. "MEM-2026-").
	MaxMembershipSequence(ctx context.Context, prefix string) (int, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
