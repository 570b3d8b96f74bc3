package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles. ADMIN and SUPER_ADMIN are subject to the concurrent-session cap.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// User represents an account in the system
type User struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	Gender       string
	Birthdate    *time.Time
	ImagePath    string
	Role         string
	Active       bool
	Blocked      bool
	Online       bool
	PasswordHash *string // nil means the credential is unusable
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Privileged reports whether the user's role is subject to the session cap.
func (u *User) Privileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleSuperAdmin
}

// ActivationCode is a one-time numeric code bound to exactly one user.
// It is created together with the user at registration and consumed once
// to flip the account to active.
type ActivationCode struct {
	ID        uint
	UserID    uuid.UUID
	Code      string
	CreatedAt time.Time
}

// DeviceRecord tracks a device/session created on successful login.
type DeviceRecord struct {
	ID          uint
	UserID      uuid.UUID
	Fingerprint string
	CreatedAt   time.Time
}

// RegisterDraft carries the fields of a registration request.
type RegisterDraft struct {
	Email     string
	Phone     string
	Password  string
	FirstName string
	LastName  string
	Gender    string
	Birthdate *time.Time
	ImagePath string
}

// ProfileUpdate carries a partial profile update. Email is used only for
// the collision check; the update itself never changes email, role or
// credentials.
type ProfileUpdate struct {
	ID        uuid.UUID
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Gender    string
	Birthdate *time.Time
	ImagePath string
}

// AuthResult represents a successful login outcome
type AuthResult struct {
	User        *User
	AccessToken string
	ExpiresIn   int64
}

// TokenClaims represents the claims embedded in a bearer token
type TokenClaims struct {
	Email          string
	PasswordDigest string
	Device         string
	IssuedAt       int64
	ExpiresAt      int64
}

// Page is one page of user views from a listing query.
type Page struct {
	Users  []*User
	Number int
	Size   int
	Total  int64
}
