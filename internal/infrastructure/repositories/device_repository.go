package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/accountsvc/domain"
)

// DeviceRepositoryImpl implements domain.DeviceRepository using GORM
type DeviceRepositoryImpl struct {
	db *gorm.DB
}

// DBDeviceRecord represents the database model for DeviceRecord
type DBDeviceRecord struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Fingerprint string    `gorm:"size:512"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBDeviceRecord) TableName() string {
	return "device_records"
}

// NewDeviceRepository creates a new device record repository
func NewDeviceRepository(db *gorm.DB) domain.DeviceRepository {
	return &DeviceRepositoryImpl{db: db}
}

// Create implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) Create(ctx context.Context, rec *domain.DeviceRecord) error {
	dbRec := &DBDeviceRecord{UserID: rec.UserID, Fingerprint: rec.Fingerprint}
	if err := r.db.WithContext(ctx).Create(dbRec).Error; err != nil {
		return err
	}
	rec.ID = dbRec.ID
	return nil
}

// CreateUnderCap implements domain.DeviceRepository. The count and the
// insert run in one transaction holding a lock on the owning user row, so
// concurrent privileged logins cannot both pass the cap check.
func (r *DeviceRepositoryImpl) CreateUnderCap(ctx context.Context, rec *domain.DeviceRecord, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner := tx.Model(&DBUser{}).Where("id = ?", rec.UserID)
		// sqlite (tests) has no row locks; its writes are serialized by the
		// database-level write lock instead.
		if tx.Dialector.Name() == "postgres" {
			owner = owner.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var ownerID uuid.UUID
		if err := owner.Select("id").Scan(&ownerID).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&DBDeviceRecord{}).Where("user_id = ?", rec.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n >= int64(limit) {
			return domain.ErrForbiddenAccess
		}

		dbRec := &DBDeviceRecord{UserID: rec.UserID, Fingerprint: rec.Fingerprint}
		if err := tx.Create(dbRec).Error; err != nil {
			return err
		}
		rec.ID = dbRec.ID
		return nil
	})
}

// CountByUser implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBDeviceRecord{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// DeleteByUser implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBDeviceRecord{}).Error
}

// DeleteByUserAndFingerprint implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) DeleteByUserAndFingerprint(ctx context.Context, userID uuid.UUID, fingerprint string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND fingerprint = ?", userID, fingerprint).
		Delete(&DBDeviceRecord{}).Error
}
