package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/you/accountsvc/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	RegisterInactiveFunc      func(ctx context.Context, user *domain.User, code *domain.ActivationCode) error
	FindActiveByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	FindActiveByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ExistsByEmailFunc         func(ctx context.Context, email string) (bool, error)
	ExistsByPhoneFunc         func(ctx context.Context, phone string) (bool, error)
	ExistsByPhoneAndEmailFunc func(ctx context.Context, phone, email string) (bool, error)
	PairInUseByOtherFunc      func(ctx context.Context, phone, email string, id uuid.UUID) (bool, error)
	ActivateFunc              func(ctx context.Context, id uuid.UUID) error
	UpdatePasswordFunc        func(ctx context.Context, email string, hash *string) error
	UpdateBlockedFunc         func(ctx context.Context, id uuid.UUID, blocked bool) error
	UpdateRoleFunc            func(ctx context.Context, id uuid.UUID, role string) error
	UpdateOnlineFunc          func(ctx context.Context, id uuid.UUID, online bool) error
	UpdateProfileFunc         func(ctx context.Context, upd *domain.ProfileUpdate) error
	IsActiveFunc              func(ctx context.Context, id uuid.UUID) (bool, error)
	CountTotalFunc            func(ctx context.Context) (int64, error)
	ListFunc                  func(ctx context.Context, page, size int) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) RegisterInactive(ctx context.Context, user *domain.User, code *domain.ActivationCode) error {
	if m.RegisterInactiveFunc != nil {
		return m.RegisterInactiveFunc(ctx, user, code)
	}
	return nil
}

func (m *MockUserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindActiveByEmailFunc != nil {
		return m.FindActiveByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindActiveByIDFunc != nil {
		return m.FindActiveByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFunc != nil {
		return m.ExistsByPhoneFunc(ctx, phone)
	}
	return false, nil
}

func (m *MockUserRepository) ExistsByPhoneAndEmail(ctx context.Context, phone, email string) (bool, error) {
	if m.ExistsByPhoneAndEmailFunc != nil {
		return m.ExistsByPhoneAndEmailFunc(ctx, phone, email)
	}
	return false, nil
}

func (m *MockUserRepository) PairInUseByOther(ctx context.Context, phone, email string, id uuid.UUID) (bool, error) {
	if m.PairInUseByOtherFunc != nil {
		return m.PairInUseByOtherFunc(ctx, phone, email, id)
	}
	return false, nil
}

func (m *MockUserRepository) Activate(ctx context.Context, id uuid.UUID) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, email string, hash *string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, email, hash)
	}
	return nil
}

func (m *MockUserRepository) UpdateBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	if m.UpdateBlockedFunc != nil {
		return m.UpdateBlockedFunc(ctx, id, blocked)
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *MockUserRepository) UpdateOnline(ctx context.Context, id uuid.UUID, online bool) error {
	if m.UpdateOnlineFunc != nil {
		return m.UpdateOnlineFunc(ctx, id, online)
	}
	return nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, upd *domain.ProfileUpdate) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, upd)
	}
	return nil
}

func (m *MockUserRepository) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.IsActiveFunc != nil {
		return m.IsActiveFunc(ctx, id)
	}
	return true, nil
}

func (m *MockUserRepository) CountTotal(ctx context.Context) (int64, error) {
	if m.CountTotalFunc != nil {
		return m.CountTotalFunc(ctx)
	}
	return 0, nil
}

func (m *MockUserRepository) List(ctx context.Context, page, size int) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, size)
	}
	return nil, nil
}
