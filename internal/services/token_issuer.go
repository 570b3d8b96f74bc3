package services

import (
	"context"
	"fmt"

	"github.com/you/accountsvc/domain"
)

// TokenIssuerImpl implements domain.TokenIssuer
type TokenIssuerImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewTokenIssuer creates a new token issuer
func NewTokenIssuer(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.TokenIssuer {
	return &TokenIssuerImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Issue implements domain.TokenIssuer. Unknown, inactive and blocked
// accounts are indistinguishable from a wrong secret: all fail with
// ErrForbiddenAccess and no token.
func (s *TokenIssuerImpl) Issue(ctx context.Context, email, secret, device string) (string, *domain.User, error) {
	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrForbiddenAccess
	}

	if !s.passwordSvc.Verify(user.PasswordHash, secret) {
		return "", nil, domain.ErrForbiddenAccess
	}

	token, err := s.tokenSvc.Generate(email, s.passwordSvc.Digest(user.PasswordHash), device)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, user, nil
}
