package dashboard

import (
	"context"
	"time"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/repository/specification"
	"library-membership-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

const statsCacheKey = "dashboard_stats"

// Aggregator collects the staff dashboard counters. Counts are cached
// briefly because the dashboard polls.
type Aggregator struct {
	logger logger.ILogger
	cache  *cache.Cache
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
		cache:  cache.New(30*time.Second, time.Minute),
	}
}

// GetStats retrieves dashboard statistics.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardResponse, error) {
	if cached, found := a.cache.Get(statsCacheKey); found {
		if stats, ok := cached.(*dto.DashboardResponse); ok {
			return stats, nil
		}
	}

	repo := uow.MembershipRepository()

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

	pendingPayments, err := repo.CountByPaymentStatus(ctx, string(entity.PaymentStatusPending))
	if err != nil {
		return nil, err
	}
	confirmedPayments, err := repo.CountByPaymentStatus(ctx, string(entity.PaymentStatusConfirmed))
	if err != nil {
		return nil, err
	}

	activeMemberships, err := repo.Count(ctx, specification.ByMembershipStatus{Status: string(entity.MembershipStatusActive)})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	activatedThisMonth, err := repo.CountActivatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	revenue, err := repo.TotalConfirmedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardResponse{
		PendingApplications:  pending,
		ApprovedApplications: approved,
		RejectedApplications: rejected,
		PendingPayments:      pendingPayments,
		ConfirmedPayments:    confirmedPayments,
		ActiveMemberships:    activeMemberships,
		ActivatedThisMonth:   activatedThisMonth,
		TotalRevenue:         revenue,
	}

	a.cache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	a.logger.Info("Dashboard", "Stats refreshed", map[string]interface{}{
		"pending_applications": pending,
	})
	return stats, nil
}
