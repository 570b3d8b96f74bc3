package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255"`
	Phone        string    `gorm:"uniqueIndex;size:32"`
	FirstName    string    `gorm:"size:64"`
	LastName     string    `gorm:"size:64"`
	Gender       string    `gorm:"size:16"`
	Birthdate    *time.Time
	ImagePath    string  `gorm:"size:255"`
	Role         string  `gorm:"index;size:32"`
	Active       bool    `gorm:"index"`
	Blocked      bool
	Online       bool
	PasswordHash *string        `gorm:"column:password"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// RegisterInactive implements domain.UserRepository. The pair check and
// both inserts run in one transaction so concurrent registrations of the
// same pair cannot both pass the check.
func (r *UserRepositoryImpl) RegisterInactive(ctx context.Context, user *domain.User, code *domain.ActivationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&DBUser{}).
			Where("phone = ? AND email = ?", user.Phone, user.Email).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrDuplicateAccount
		}

		dbUser := domainToDB(user)
		dbUser.Active = false
		if err := tx.Create(dbUser).Error; err != nil {
			return translateDuplicate(err)
		}

		dbCode := &DBActivationCode{UserID: dbUser.ID, Code: code.Code}
		if err := tx.Where("user_id = ?", dbUser.ID).Delete(&DBActivationCode{}).Error; err != nil {
			return err
		}
		if err := tx.Create(dbCode).Error; err != nil {
			return err
		}
		code.ID = dbCode.ID
		code.UserID = dbUser.ID
		return nil
	})
}

// FindActiveByEmail implements domain.UserRepository. Only active,
// non-blocked accounts are visible to the login path.
func (r *UserRepositoryImpl) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND active = ? AND blocked = ?", email, true, false).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbUser), nil
}

// FindActiveByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbUser), nil
}

// ExistsByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// ExistsByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("phone = ?", phone).Count(&n).Error
	return n > 0, err
}

// ExistsByPhoneAndEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByPhoneAndEmail(ctx context.Context, phone, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("phone = ? AND email = ?", phone, email).
		Count(&n).Error
	return n > 0, err
}

// PairInUseByOther implements domain.UserRepository
func (r *UserRepositoryImpl) PairInUseByOther(ctx context.Context, phone, email string, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("phone = ? AND email = ? AND id <> ?", phone, email, id).
		Count(&n).Error
	return n > 0, err
}

// Activate implements domain.UserRepository
func (r *UserRepositoryImpl) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", id).
		Update("active", true).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, email string, hash *string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("email = ?", email).
		Update("password", hash).Error
}

// UpdateBlocked implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", id).
		Update("blocked", blocked).Error
}

// UpdateRole implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// UpdateOnline implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateOnline(ctx context.Context, id uuid.UUID, online bool) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", id).
		Update("online", online).Error
}

// UpdateProfile implements domain.UserRepository. Email, role and
// credentials are never touched by this path.
func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, upd *domain.ProfileUpdate) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", upd.ID).
		Updates(map[string]interface{}{
			"phone":      upd.Phone,
			"first_name": upd.FirstName,
			"last_name":  upd.LastName,
			"gender":     upd.Gender,
			"birthdate":  upd.Birthdate,
			"image_path": upd.ImagePath,
		}).Error
}

// IsActive implements domain.UserRepository
func (r *UserRepositoryImpl) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Select("active").Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return dbUser.Active, nil
}

// CountTotal implements domain.UserRepository
func (r *UserRepositoryImpl) CountTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&n).Error
	return n, err
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, page, size int) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Order("created_at").
		Offset(page * size).
		Limit(size).
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// translateDuplicate maps unique constraint violations onto the duplicate
// account error so a lost check-then-insert race surfaces the same kind.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateAccount
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		return domain.ErrDuplicateAccount
	}
	return err
}

// domainToDB converts a domain user to a database user
func domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		Phone:        user.Phone,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Gender:       user.Gender,
		Birthdate:    user.Birthdate,
		ImagePath:    user.ImagePath,
		Role:         user.Role,
		Active:       user.Active,
		Blocked:      user.Blocked,
		Online:       user.Online,
		PasswordHash: user.PasswordHash,
	}
}

// dbToDomain converts a database user to a domain user
func dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		Phone:        dbUser.Phone,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		Gender:       dbUser.Gender,
		Birthdate:    dbUser.Birthdate,
		ImagePath:    dbUser.ImagePath,
		Role:         dbUser.Role,
		Active:       dbUser.Active,
		Blocked:      dbUser.Blocked,
		Online:       dbUser.Online,
		PasswordHash: dbUser.PasswordHash,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
