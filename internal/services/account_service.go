package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/accountsvc/domain"
)

// AccountConfig holds account service settings
type AccountConfig struct {
	AccessTTL       time.Duration
	TempPasswordTTL time.Duration
}

// AccountServiceImpl implements domain.AccountService
type AccountServiceImpl struct {
	userRepo    domain.UserRepository
	deviceRepo  domain.DeviceRepository
	passwordSvc domain.PasswordService
	issuer      domain.TokenIssuer
	activation  domain.ActivationService
	guard       domain.SessionGuard
	notifier    domain.Notifier
	redisClient *redis.Client
	config      AccountConfig
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo domain.UserRepository,
	deviceRepo domain.DeviceRepository,
	passwordSvc domain.PasswordService,
	issuer domain.TokenIssuer,
	activation domain.ActivationService,
	guard domain.SessionGuard,
	notifier domain.Notifier,
	redisClient *redis.Client,
	config AccountConfig,
	logger *zap.Logger,
) domain.AccountService {
	return &AccountServiceImpl{
		userRepo:    userRepo,
		deviceRepo:  deviceRepo,
		passwordSvc: passwordSvc,
		issuer:      issuer,
		activation:  activation,
		guard:       guard,
		notifier:    notifier,
		redisClient: redisClient,
		config:      config,
		logger:      logger,
	}
}

// Register implements domain.AccountService
func (s *AccountServiceImpl) Register(ctx context.Context, draft *domain.RegisterDraft) (*domain.User, error) {
	if strings.TrimSpace(draft.Email) == "" ||
		strings.TrimSpace(draft.Phone) == "" ||
		draft.Password == "" {
		return nil, domain.ErrBadParameter
	}

	hash, err := s.passwordSvc.Hash(draft.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        draft.Email,
		Phone:        draft.Phone,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Gender:       draft.Gender,
		Birthdate:    draft.Birthdate,
		ImagePath:    draft.ImagePath,
		Role:         domain.RoleUser,
		Active:       false,
		PasswordHash: &hash,
	}

	if err := s.activation.Register(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return user, nil
}

// Activate implements domain.AccountService
func (s *AccountServiceImpl) Activate(ctx context.Context, code string) (*domain.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.ErrBadParameter
	}
	return s.activation.Confirm(ctx, code)
}

// RequestPasswordReset implements domain.AccountService. An unknown email
// reports false with no side effects. For a known email the stored hash is
// overwritten with the hash of a fresh temporary value; the value itself
// goes out by mail only.
func (s *AccountServiceImpl) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, domain.ErrBadParameter
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to look up account: %w", err)
	}
	if !exists {
		return false, nil
	}

	temp, err := randomDigits(6)
	if err != nil {
		return false, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := s.passwordSvc.Hash(temp)
	if err != nil {
		return false, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, email, &hash); err != nil {
		return false, fmt.Errorf("failed to store temporary password: %w", err)
	}

	if err := s.redisClient.Set(ctx, tempPasswordKey(email), 1, s.config.TempPasswordTTL).Err(); err != nil {
		// The marker only drives the post-login clearing; the reset itself
		// has already committed.
		s.logger.Warn("failed to set temporary password marker",
			zap.String("email", email), zap.Error(err))
	}

	s.notifier.Dispatch(domain.NewNotification(domain.TemporaryPasswordNotice, email).
		WithSubject("One-time password").
		WithBody(fmt.Sprintf(
			"<h1>%s</h1><h6>This is your one-time password.</h6>"+
				"<h6>If you did not try to log in, delete this message and do not share the password with anyone.</h6>",
			temp)).
		AsHTML())

	s.logger.Info("password reset requested", zap.String("email", email))
	return true, nil
}

// Login implements domain.AccountService. Side effects happen only on the
// path to an authenticated result: device record, online flag, security
// alert and temporary password clearing.
func (s *AccountServiceImpl) Login(ctx context.Context, email, password, device string) (*domain.AuthResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrBadParameter
	}

	token, user, err := s.issuer.Issue(ctx, email, password, device)
	if err != nil {
		return nil, err
	}

	if err := s.guard.CheckAndRecord(ctx, user, device); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateOnline(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("failed to update online flag: %w", err)
	}

	alert := domain.NewNotification(domain.LoginAlertNotice, email).
		WithSubject("New login to your account").
		WithBody(fmt.Sprintf(
			"Device %q signed in to your account at %s.\nIf this was not you, please contact us immediately.",
			device, time.Now().UTC().Format(time.RFC3339)))
	if user.Phone != "" {
		alert = alert.WithPhone(user.Phone)
	}
	s.notifier.Dispatch(alert)

	s.clearTemporaryPassword(ctx, email)

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("device", device))

	return &domain.AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// clearTemporaryPassword nulls the stored credential when the login that
// just succeeded consumed an outstanding temporary password. Replaying the
// same temporary password afterwards fails authentication.
func (s *AccountServiceImpl) clearTemporaryPassword(ctx context.Context, email string) {
	deleted, err := s.redisClient.Del(ctx, tempPasswordKey(email)).Result()
	if err != nil {
		s.logger.Warn("failed to check temporary password marker",
			zap.String("email", email), zap.Error(err))
		return
	}
	if deleted == 0 {
		return
	}
	if err := s.userRepo.UpdatePassword(ctx, email, nil); err != nil {
		s.logger.Error("failed to clear temporary password",
			zap.String("email", email), zap.Error(err))
	}
}

// Logout implements domain.AccountService
func (s *AccountServiceImpl) Logout(ctx context.Context, userID uuid.UUID, device string) error {
	if err := s.deviceRepo.DeleteByUserAndFingerprint(ctx, userID, device); err != nil {
		return fmt.Errorf("failed to remove device record: %w", err)
	}
	return s.userRepo.UpdateOnline(ctx, userID, false)
}

// UpdateProfile implements domain.AccountService
func (s *AccountServiceImpl) UpdateProfile(ctx context.Context, upd *domain.ProfileUpdate) (*domain.User, error) {
	if upd.ID == uuid.Nil || strings.TrimSpace(upd.Email) == "" || strings.TrimSpace(upd.Phone) == "" {
		return nil, domain.ErrBadParameter
	}

	taken, err := s.userRepo.PairInUseByOther(ctx, upd.Phone, upd.Email, upd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone and email pair: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateAccount
	}

	if err := s.userRepo.UpdateProfile(ctx, upd); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.userRepo.FindActiveByID(ctx, upd.ID)
}

// GetUser implements domain.AccountService. Inactive users are treated as
// not found.
func (s *AccountServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindActiveByID(ctx, id)
}

// ListUsers implements domain.AccountService. When the requested page
// holds fewer items than the true total, the service degrades to returning
// every user as a single page. Callers depend on this behavior.
func (s *AccountServiceImpl) ListUsers(ctx context.Context, page, size int) (*domain.Page, error) {
	if page < 0 || size <= 0 {
		return nil, domain.ErrBadParameter
	}

	users, err := s.userRepo.List(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := s.userRepo.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	if int64(len(users)) < total {
		users, err = s.userRepo.List(ctx, 0, int(total))
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return &domain.Page{Users: users, Number: 0, Size: int(total), Total: total}, nil
	}

	return &domain.Page{Users: users, Number: page, Size: size, Total: total}, nil
}

// SetBlocked implements domain.AccountService. Blocking also drops the
// user's device records so blocked sessions cannot linger against the cap.
func (s *AccountServiceImpl) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	if err := s.userRepo.UpdateBlocked(ctx, id, blocked); err != nil {
		return fmt.Errorf("failed to update blocked flag: %w", err)
	}
	if blocked {
		if err := s.deviceRepo.DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("failed to drop device records: %w", err)
		}
	}
	return nil
}

// SetRole implements domain.AccountService
func (s *AccountServiceImpl) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrBadParameter
	}
	return s.userRepo.UpdateRole(ctx, id, role)
}

func tempPasswordKey(email string) string {
	return "temp_pwd:" + email
}
