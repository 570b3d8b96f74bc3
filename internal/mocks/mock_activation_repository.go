package mocks

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MockActivationRepository implements domain.ActivationCodeRepository for testing
type MockActivationRepository struct {
	ReplaceFunc    func(ctx context.Context, code *domain.ActivationCode) error
	FindByCodeFunc func(ctx context.Context, code string) (*domain.ActivationCode, error)
	ConsumeFunc    func(ctx context.Context, id uint) error
}

// NewMockActivationRepository creates a new MockActivationRepository with default behaviors
func NewMockActivationRepository() *MockActivationRepository {
	return &MockActivationRepository{}
}

func (m *MockActivationRepository) Replace(ctx context.Context, code *domain.ActivationCode) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, code)
	}
	return nil
}

func (m *MockActivationRepository) FindByCode(ctx context.Context, code string) (*domain.ActivationCode, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, domain.ErrInvalidCode
}

func (m *MockActivationRepository) Consume(ctx context.Context, id uint) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, id)
	}
	return nil
}
