package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/you/accountsvc/domain"
)

// MockDeviceRepository implements domain.DeviceRepository for testing
type MockDeviceRepository struct {
	CreateFunc                     func(ctx context.Context, rec *domain.DeviceRecord) error
	CreateUnderCapFunc             func(ctx context.Context, rec *domain.DeviceRecord, limit int) error
	CountByUserFunc                func(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByUserFunc               func(ctx context.Context, userID uuid.UUID) error
	DeleteByUserAndFingerprintFunc func(ctx context.Context, userID uuid.UUID, fingerprint string) error
}

// NewMockDeviceRepository creates a new MockDeviceRepository with default behaviors
func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{}
}

func (m *MockDeviceRepository) Create(ctx context.Context, rec *domain.DeviceRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *MockDeviceRepository) CreateUnderCap(ctx context.Context, rec *domain.DeviceRecord, limit int) error {
	if m.CreateUnderCapFunc != nil {
		return m.CreateUnderCapFunc(ctx, rec, limit)
	}
	return nil
}

func (m *MockDeviceRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockDeviceRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockDeviceRepository) DeleteByUserAndFingerprint(ctx context.Context, userID uuid.UUID, fingerprint string) error {
	if m.DeleteByUserAndFingerprintFunc != nil {
		return m.DeleteByUserAndFingerprintFunc(ctx, userID, fingerprint)
	}
	return nil
}
