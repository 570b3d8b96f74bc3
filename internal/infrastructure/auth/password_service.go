package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/accountsvc/domain"
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{
		cost: bcrypt.DefaultCost,
	}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A nil or empty stored hash is
// an unusable credential and never verifies.
func (p *PasswordServiceImpl) Verify(hash *string, password string) bool {
	if hash == nil || *hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password))
	return err == nil
}

// Digest implements domain.PasswordService. Tokens embed this digest
// instead of the bcrypt hash itself; comparing digests still invalidates
// every token issued before a password change.
func (p *PasswordServiceImpl) Digest(hash *string) string {
	if hash == nil || *hash == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(*hash))
	return hex.EncodeToString(sum[:])
}
