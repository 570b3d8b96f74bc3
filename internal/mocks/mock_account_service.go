package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/you/accountsvc/domain"
)

// MockAccountService implements domain.AccountService for testing
type MockAccountService struct {
	RegisterFunc             func(ctx context.Context, draft *domain.RegisterDraft) (*domain.User, error)
	ActivateFunc             func(ctx context.Context, code string) (*domain.User, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) (bool, error)
	LoginFunc                func(ctx context.Context, email, password, device string) (*domain.AuthResult, error)
	LogoutFunc               func(ctx context.Context, userID uuid.UUID, device string) error
	UpdateProfileFunc        func(ctx context.Context, upd *domain.ProfileUpdate) (*domain.User, error)
	GetUserFunc              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsersFunc            func(ctx context.Context, page, size int) (*domain.Page, error)
	SetBlockedFunc           func(ctx context.Context, id uuid.UUID, blocked bool) error
	SetRoleFunc              func(ctx context.Context, id uuid.UUID, role string) error
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

func (m *MockAccountService) Register(ctx context.Context, draft *domain.RegisterDraft) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, draft)
	}
	return nil, domain.ErrInternal
}

func (m *MockAccountService) Activate(ctx context.Context, code string) (*domain.User, error) {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, code)
	}
	return nil, domain.ErrInvalidCode
}

func (m *MockAccountService) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return false, nil
}

func (m *MockAccountService) Login(ctx context.Context, email, password, device string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, device)
	}
	return nil, domain.ErrForbiddenAccess
}

func (m *MockAccountService) Logout(ctx context.Context, userID uuid.UUID, device string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, device)
	}
	return nil
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, upd *domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, upd)
	}
	return nil, domain.ErrNotFound
}

func (m *MockAccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockAccountService) ListUsers(ctx context.Context, page, size int) (*domain.Page, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, page, size)
	}
	return &domain.Page{}, nil
}

func (m *MockAccountService) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	if m.SetBlockedFunc != nil {
		return m.SetBlockedFunc(ctx, id, blocked)
	}
	return nil
}

func (m *MockAccountService) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, id, role)
	}
	return nil
}
