package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines user data access operations
type UserRepository interface {
	// RegisterInactive atomically checks the phone+email pair and inserts
	// the user together with its activation code. Returns
	// ErrDuplicateAccount when the pair is already taken.
	RegisterInactive(ctx context.Context, user *User, code *ActivationCode) error

	FindActiveByEmail(ctx context.Context, email string) (*User, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByPhoneAndEmail(ctx context.Context, phone, email string) (bool, error)
	// PairInUseByOther reports whether the phone+email pair belongs to an
	// account other than id.
	PairInUseByOther(ctx context.Context, phone, email string, id uuid.UUID) (bool, error)

	Activate(ctx context.Context, id uuid.UUID) error
	// UpdatePassword overwrites the stored hash; a nil hash leaves the
	// account without a usable credential.
	UpdatePassword(ctx context.Context, email string, hash *string) error
	UpdateBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdateOnline(ctx context.Context, id uuid.UUID, online bool) error
	UpdateProfile(ctx context.Context, upd *ProfileUpdate) error

	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
	CountTotal(ctx context.Context) (int64, error)
	List(ctx context.Context, page, size int) ([]*User, error)
}

// ActivationCodeRepository defines activation code data access operations
type ActivationCodeRepository interface {
	// Replace removes any outstanding code for the owning user before
	// inserting the new one.
	Replace(ctx context.Context, code *ActivationCode) error
	FindByCode(ctx context.Context, code string) (*ActivationCode, error)
	Consume(ctx context.Context, id uint) error
}

// DeviceRepository defines device/session record data access operations
type DeviceRepository interface {
	Create(ctx context.Context, rec *DeviceRecord) error
	// CreateUnderCap counts the user's records and inserts the new one in a
	// single transaction serialized on the owning user row. Returns
	// ErrForbiddenAccess without writing when the count has reached limit.
	CreateUnderCap(ctx context.Context, rec *DeviceRecord, limit int) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteByUserAndFingerprint(ctx context.Context, userID uuid.UUID, fingerprint string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	// Verify is false for a nil or empty stored hash, so a consumed
	// temporary password can never authenticate again.
	Verify(hash *string, password string) bool
	// Digest returns a stable digest of the stored hash for embedding in
	// tokens. Empty for a nil hash.
	Digest(hash *string) string
}

// TokenService defines bearer token operations
type TokenService interface {
	Generate(email, passwordDigest, device string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// TokenIssuer issues bearer tokens for presented credentials.
type TokenIssuer interface {
	// Issue returns no token for unknown, inactive or blocked accounts and
	// for a secret that does not verify against the stored hash.
	Issue(ctx context.Context, email, secret, device string) (string, *User, error)
}

// ActivationService is the activation engine: it registers inactive
// accounts with a fresh code and confirms codes exactly once.
type ActivationService interface {
	Register(ctx context.Context, user *User) error
	Confirm(ctx context.Context, code string) (*User, error)
}

// SessionGuard enforces the concurrent-session ceiling for privileged
// roles and records the device for every successful login.
type SessionGuard interface {
	CheckAndRecord(ctx context.Context, user *User, fingerprint string) error
}

// AccountService orchestrates the account use cases.
type AccountService interface {
	Register(ctx context.Context, draft *RegisterDraft) (*User, error)
	Activate(ctx context.Context, code string) (*User, error)
	RequestPasswordReset(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, email, password, device string) (*AuthResult, error)
	Logout(ctx context.Context, userID uuid.UUID, device string) error
	UpdateProfile(ctx context.Context, upd *ProfileUpdate) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context, page, size int) (*Page, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

// MailSender delivers a single email message.
type MailSender interface {
	SendEmail(to, subject, body string, html bool) error
}

// SMSSender delivers a single SMS message.
type SMSSender interface {
	SendSMS(to, message string) error
}

// Notifier accepts notifications for fire-and-forget delivery. A delivery
// failure never propagates to the caller.
type Notifier interface {
	Dispatch(n *Notification)
}
