package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/accountsvc/domain"
)

// ActivationConfig holds activation engine settings
type ActivationConfig struct {
	CodeLength   int
	ResendWindow time.Duration
}

// ActivationServiceImpl implements domain.ActivationService
type ActivationServiceImpl struct {
	userRepo    domain.UserRepository
	codeRepo    domain.ActivationCodeRepository
	notifier    domain.Notifier
	redisClient *redis.Client
	config      ActivationConfig
	logger      *zap.Logger
}

// NewActivationService creates a new activation engine
func NewActivationService(
	userRepo domain.UserRepository,
	codeRepo domain.ActivationCodeRepository,
	notifier domain.Notifier,
	redisClient *redis.Client,
	config ActivationConfig,
	logger *zap.Logger,
) domain.ActivationService {
	return &ActivationServiceImpl{
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		notifier:    notifier,
		redisClient: redisClient,
		config:      config,
		logger:      logger,
	}
}

// Register implements domain.ActivationService. The user is persisted
// inactive together with a fresh code in one store transaction; the code
// mail is dispatched only after the transaction commits.
func (s *ActivationServiceImpl) Register(ctx context.Context, user *domain.User) error {
	codeValue, err := randomDigits(s.config.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate activation code: %w", err)
	}

	code := &domain.ActivationCode{UserID: user.ID, Code: codeValue}
	if err := s.userRepo.RegisterInactive(ctx, user, code); err != nil {
		return err
	}

	if !s.throttleMail(ctx, user.Email) {
		s.logger.Warn("activation mail throttled", zap.String("email", user.Email))
		return nil
	}

	s.notifier.Dispatch(domain.NewNotification(domain.ActivationCodeNotice, user.Email).
		WithSubject("Account activation").
		WithBody(fmt.Sprintf(
			"%s is the confirmation code to activate your account.\nDo not share it with anyone.",
			codeValue)))

	return nil
}

// Confirm implements domain.ActivationService. A code flips its owning
// account to active exactly once; confirming it again fails because the
// code is consumed on success.
func (s *ActivationServiceImpl) Confirm(ctx context.Context, code string) (*domain.User, error) {
	ac, err := s.codeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Activate(ctx, ac.UserID); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}

	if err := s.codeRepo.Consume(ctx, ac.ID); err != nil {
		return nil, fmt.Errorf("failed to consume activation code: %w", err)
	}

	return s.userRepo.FindActiveByID(ctx, ac.UserID)
}

// throttleMail limits how often a code mail can be triggered per address.
// The durable registration is never throttled, only the mail.
func (s *ActivationServiceImpl) throttleMail(ctx context.Context, email string) bool {
	if s.redisClient == nil || s.config.ResendWindow <= 0 {
		return true
	}
	key := "activation:res:" + email
	ok, err := s.redisClient.SetNX(ctx, key, 1, s.config.ResendWindow).Result()
	if err != nil {
		s.logger.Warn("activation throttle check failed", zap.Error(err))
		return true
	}
	return ok
}

// randomDigits generates a uniformly random numeric code of length n.
func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
