package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
)

// ActivationRepositoryImpl implements domain.ActivationCodeRepository using GORM
type ActivationRepositoryImpl struct {
	db *gorm.DB
}

// DBActivationCode represents the database model for ActivationCode
type DBActivationCode struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Code      string    `gorm:"index;size:16"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBActivationCode) TableName() string {
	return "activation_codes"
}

// NewActivationRepository creates a new activation code repository
func NewActivationRepository(db *gorm.DB) domain.ActivationCodeRepository {
	return &ActivationRepositoryImpl{db: db}
}

// Replace implements domain.ActivationCodeRepository. At most one code is
// outstanding per user; a new registration attempt regenerates it.
func (r *ActivationRepositoryImpl) Replace(ctx context.Context, code *domain.ActivationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", code.UserID).Delete(&DBActivationCode{}).Error; err != nil {
			return err
		}
		dbCode := &DBActivationCode{UserID: code.UserID, Code: code.Code}
		if err := tx.Create(dbCode).Error; err != nil {
			return err
		}
		code.ID = dbCode.ID
		return nil
	})
}

// FindByCode implements domain.ActivationCodeRepository
func (r *ActivationRepositoryImpl) FindByCode(ctx context.Context, code string) (*domain.ActivationCode, error) {
	var dbCode DBActivationCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	return &domain.ActivationCode{
		ID:        dbCode.ID,
		UserID:    dbCode.UserID,
		Code:      dbCode.Code,
		CreatedAt: dbCode.CreatedAt,
	}, nil
}

// Consume implements domain.ActivationCodeRepository. A consumed code is
// deleted and can never be confirmed again.
func (r *ActivationRepositoryImpl) Consume(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBActivationCode{}, id).Error
}
