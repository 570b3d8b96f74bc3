package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
)

// AuthMW wraps the dependencies of the bearer-token middleware
type AuthMW struct {
	tokenSvc    domain.TokenService
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository, passwordSvc domain.PasswordService) *AuthMW {
	return &AuthMW{
		tokenSvc:    tokenSvc,
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// WithJWT returns the bearer-token middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.userRepo, mw.passwordSvc)
}
