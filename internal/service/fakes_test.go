package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/repository/contract"
	"library-membership-be/internal/repository/implementation"
	"library-membership-be/internal/repository/specification"
	"library-membership-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ---- logger ----

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// ---- mail queue ----

type fakeMailQueue struct {
	mu   sync.Mutex
	sent []MailMessage
}

func (q *fakeMailQueue) PublishMail(_ context.Context, msg MailMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, msg)
	return nil
}

func (q *fakeMailQueue) messages() []MailMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]MailMessage(nil), q.sent...)
}

// ---- membership repository ----

type fakeMembershipRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]entity.LibraryMembership
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{records: map[uuid.UUID]entity.LibraryMembership{}}
}

func (r *fakeMembershipRepo) put(rec entity.LibraryMembership) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Id] = rec
}

func (r *fakeMembershipRepo) get(id uuid.UUID) entity.LibraryMembership {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[id]
}

func matches(rec entity.LibraryMembership, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return rec.Id == s.ID
	case specification.ByApplicant:
		return rec.ApplicantId != nil && *rec.ApplicantId == s.ApplicantId
	case specification.ByApplicationState:
		return string(rec.State) == s.State
	case specification.ByPaymentStatus:
		return string(rec.PaymentStatus) == s.Status
	case specification.ByMembershipStatus:
		return string(rec.MembershipStatus) == s.Status
	case specification.ByGatewayOrder:
		return rec.PaymentDetails != nil &&
			rec.PaymentDetails.GatewayOrderId != nil &&
			*rec.PaymentDetails.GatewayOrderId == s.OrderId
	case specification.SearchApplicant:
		term := strings.ToLower(s.Term)
		if strings.Contains(strings.ToLower(rec.Application.FullName), term) ||
			strings.Contains(strings.ToLower(rec.Application.StudentId), term) {
			return true
		}
		return rec.MembershipDetails != nil &&
			strings.Contains(strings.ToLower(rec.MembershipDetails.MembershipNumber), term)
	case specification.ActiveMembershipsDue:
		return rec.MembershipStatus == entity.MembershipStatusActive &&
			rec.MembershipDetails != nil &&
			!rec.MembershipDetails.EndDate.After(s.Now)
	default:
		// Ordering and pagination carry no filter semantics here.
		return true
	}
}

func (r *fakeMembershipRepo) filter(specs []specification.Specification) []entity.LibraryMembership {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.LibraryMembership
	for _, rec := range r.records {
		ok := true
		for _, spec := range specs {
			if !matches(rec, spec) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

func (r *fakeMembershipRepo) Create(_ context.Context, rec *entity.LibraryMembership) error {
	r.put(*rec)
	return nil
}

func (r *fakeMembershipRepo) UpdateVersioned(_ context.Context, rec *entity.LibraryMembership, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.Id]
	if !ok || stored.Version != expectedVersion {
		return implementation.ErrVersionConflict
	}
	rec.Version = expectedVersion + 1
	r.records[rec.Id] = *rec
	return nil
}

func (r *fakeMembershipRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.LibraryMembership, error) {
	found := r.filter(specs)
	if len(found) == 0 {
		return nil, nil
	}
	rec := found[0]
	return &rec, nil
}

func (r *fakeMembershipRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.LibraryMembership, error) {
	found := r.filter(specs)
	out := make([]*entity.LibraryMembership, 0, len(found))
	for i := range found {
		rec := found[i]
		out = append(out, &rec)
	}
	return out, nil
}

func (r *fakeMembershipRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

func (r *fakeMembershipRepo) CountByState(ctx context.Context, state string) (int64, error) {
	return r.Count(ctx, specification.ByApplicationState{State: state})
}

func (r *fakeMembershipRepo) CountByPaymentStatus(ctx context.Context, status string) (int64, error) {
	return r.Count(ctx, specification.ByPaymentStatus{Status: status})
}

func (r *fakeMembershipRepo) TotalConfirmedRevenue(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total float64
	for _, rec := range r.records {
		if rec.PaymentStatus == entity.PaymentStatusConfirmed && rec.PaymentDetails != nil {
			total += rec.PaymentDetails.Amount
		}
	}
	return total, nil
}

func (r *fakeMembershipRepo) CountActivatedSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, rec := range r.records {
		if rec.MembershipDetails != nil && !rec.MembershipDetails.CreatedDate.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMembershipRepo) MaxMembershipSequence(_ context.Context, prefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	max := 0
	for _, rec := range r.records {
		if rec.MembershipDetails == nil {
			continue
		}
		num := rec.MembershipDetails.MembershipNumber
		if !strings.HasPrefix(num, prefix) {
			continue
		}
		seq := 0
		for _, c := range num[len(prefix):] {
			if c < '0' || c > '9' {
				seq = 0
				break
			}
			seq = seq*10 + int(c-'0')
		}
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

// ---- fee repository ----

type fakeFeeRepo struct {
	fees []entity.MembershipFee
}

func (r *fakeFeeRepo) Create(_ context.Context, fee *entity.MembershipFee) error {
	r.fees = append(r.fees, *fee)
	return nil
}

func (r *fakeFeeRepo) Update(_ context.Context, fee *entity.MembershipFee) error { return nil }
func (r *fakeFeeRepo) Delete(_ context.Context, id uuid.UUID) error              { return nil }

func (r *fakeFeeRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.MembershipFee, error) {
	if len(r.fees) == 0 {
		return nil, nil
	}
	fee := r.fees[0]
	return &fee, nil
}

func (r *fakeFeeRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.MembershipFee, error) {
	out := make([]*entity.MembershipFee, 0, len(r.fees))
	for i := range r.fees {
		fee := r.fees[i]
		out = append(out, &fee)
	}
	return out, nil
}

func (r *fakeFeeRepo) FindByMembershipType(_ context.Context, membershipType string) (*entity.MembershipFee, error) {
	for _, fee := range r.fees {
		if string(fee.MembershipType) == membershipType {
			f := fee
			return &f, nil
		}
	}
	return nil, nil
}

// ---- user repository ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		ok := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				ok = user.Id == s.ID
			case specification.ByEmail:
				ok = user.Email == s.Email
			case specification.ByRole:
				ok = string(user.Role) == s.Role
			}
			if !ok {
				break
			}
		}
		if ok {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for id := range r.users {
		u := r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.Status = entity.UserStatus(status)
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) SaveUserProvider(_ context.Context, _ *entity.UserProvider) error { return nil }

func (r *fakeUserRepo) FindProvider(_ context.Context, _, _ string) (*entity.UserProvider, error) {
	return nil, nil
}

func (r *fakeUserRepo) CreateRefreshToken(_ context.Context, _ *entity.UserRefreshToken) error {
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(_ context.Context, _ ...specification.Specification) (*entity.UserRefreshToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) RevokeRefreshToken(_ context.Context, _ string) error { return nil }

// ---- unit of work ----

type fakeUow struct {
	memberships *fakeMembershipRepo
	users       *fakeUserRepo
	fees        *fakeFeeRepo
}

func (u *fakeUow) Begin(_ context.Context) error { return nil }
func (u *fakeUow) Commit() error                 { return nil }
func (u *fakeUow) Rollback() error               { return nil }

func (u *fakeUow) MembershipRepository() contract.MembershipRepository { return u.memberships }
func (u *fakeUow) UserRepository() contract.UserRepository             { return u.users }
func (u *fakeUow) FeeRepository() contract.FeeRepository               { return u.fees }

type fakeFactory struct {
	uow *fakeUow
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUow{
		memberships: newFakeMembershipRepo(),
		users:       newFakeUserRepo(),
		fees:        &fakeFeeRepo{},
	}}
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }
