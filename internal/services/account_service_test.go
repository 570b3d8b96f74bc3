package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/mocks"
)

type accountFixture struct {
	userRepo   *mocks.MockUserRepository
	deviceRepo *mocks.MockDeviceRepository
	passwords  *mocks.MockPasswordService
	issuer     *mocks.MockTokenIssuer
	activation *mocks.MockActivationService
	guard      *mocks.MockSessionGuard
	notifier   *mocks.MockNotifier
	redis      *redis.Client
	mr         *miniredis.Miniredis
	svc        domain.AccountService
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &accountFixture{
		userRepo:   mocks.NewMockUserRepository(),
		deviceRepo: mocks.NewMockDeviceRepository(),
		passwords:  mocks.NewMockPasswordService(),
		issuer:     mocks.NewMockTokenIssuer(),
		activation: mocks.NewMockActivationService(),
		guard:      mocks.NewMockSessionGuard(),
		notifier:   mocks.NewMockNotifier(),
		redis:      client,
		mr:         mr,
	}
	f.svc = NewAccountService(
		f.userRepo,
		f.deviceRepo,
		f.passwords,
		f.issuer,
		f.activation,
		f.guard,
		f.notifier,
		client,
		AccountConfig{AccessTTL: time.Hour, TempPasswordTTL: 15 * time.Minute},
		zap.NewNop(),
	)
	return f
}

func TestRegister_Validation(t *testing.T) {
	f := newAccountFixture(t)

	tests := []struct {
		name  string
		draft domain.RegisterDraft
	}{
		{"blank email", domain.RegisterDraft{Phone: "+111", Password: "secret"}},
		{"blank phone", domain.RegisterDraft{Email: "a@b.com", Password: "secret"}},
		{"blank password", domain.RegisterDraft{Email: "a@b.com", Phone: "+111"}},
		{"whitespace email", domain.RegisterDraft{Email: "   ", Phone: "+111", Password: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), &tt.draft)
			assert.ErrorIs(t, err, domain.ErrBadParameter)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	f := newAccountFixture(t)

	var registered *domain.User
	f.activation.RegisterFunc = func(ctx context.Context, user *domain.User) error {
		registered = user
		return nil
	}

	user, err := f.svc.Register(context.Background(), &domain.RegisterDraft{
		Email:    "new@example.com",
		Phone:    "+5511999999999",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, registered)

	assert.Equal(t, user, registered)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.Active)
	assert.NotEqual(t, uuid.Nil, user.ID)
	require.NotNil(t, user.PasswordHash)
	assert.Equal(t, "hashed_secret123", *user.PasswordHash)
}

func TestRegister_DuplicatePropagates(t *testing.T) {
	f := newAccountFixture(t)

	f.activation.RegisterFunc = func(ctx context.Context, user *domain.User) error {
		return domain.ErrDuplicateAccount
	}

	_, err := f.svc.Register(context.Background(), &domain.RegisterDraft{
		Email:    "dup@example.com",
		Phone:    "+111",
		Password: "secret",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestLogin_BlankEmail(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Login(context.Background(), "  ", "secret", "agent")
	assert.ErrorIs(t, err, domain.ErrBadParameter)
}

func TestLogin_Success(t *testing.T) {
	f := newAccountFixture(t)

	user := &domain.User{ID: uuid.New(), Email: "a@b.com", Phone: "+111", Role: domain.RoleUser, Active: true}
	f.issuer.IssueFunc = func(ctx context.Context, email, secret, device string) (string, *domain.User, error) {
		return "signed-token", user, nil
	}

	var online *bool
	f.userRepo.UpdateOnlineFunc = func(ctx context.Context, id uuid.UUID, on bool) error {
		online = &on
		return nil
	}

	res, err := f.svc.Login(context.Background(), "a@b.com", "secret", "agent-1")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", res.AccessToken)
	assert.Equal(t, user, res.User)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	require.NotNil(t, online)
	assert.True(t, *online)

	events := f.notifier.Dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, domain.LoginAlertNotice, events[0].Kind)
	assert.Equal(t, "+111", events[0].Phone)
}

func TestLogin_SessionCapRejectionPropagates(t *testing.T) {
	f := newAccountFixture(t)

	user := &domain.User{ID: uuid.New(), Email: "root@b.com", Role: domain.RoleAdmin, Active: true}
	f.issuer.IssueFunc = func(ctx context.Context, email, secret, device string) (string, *domain.User, error) {
		return "signed-token", user, nil
	}
	f.guard.CheckAndRecordFunc = func(ctx context.Context, u *domain.User, fp string) error {
		return domain.ErrForbiddenAccess
	}

	var onlineCalled bool
	f.userRepo.UpdateOnlineFunc = func(ctx context.Context, id uuid.UUID, on bool) error {
		onlineCalled = true
		return nil
	}

	_, err := f.svc.Login(context.Background(), "root@b.com", "secret", "agent-4")
	assert.ErrorIs(t, err, domain.ErrForbiddenAccess)
	assert.False(t, onlineCalled)
	assert.Empty(t, f.notifier.Dispatched())
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Login(context.Background(), "nobody@b.com", "wrong", "agent")
	assert.ErrorIs(t, err, domain.ErrForbiddenAccess)
}

func TestLogin_ConsumesTemporaryPassword(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	require.NoError(t, f.redis.Set(ctx, "temp_pwd:a@b.com", 1, time.Minute).Err())

	user := &domain.User{ID: uuid.New(), Email: "a@b.com", Active: true}
	f.issuer.IssueFunc = func(ctx context.Context, email, secret, device string) (string, *domain.User, error) {
		return "signed-token", user, nil
	}

	var cleared bool
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, email string, hash *string) error {
		if email == "a@b.com" && hash == nil {
			cleared = true
		}
		return nil
	}

	_, err := f.svc.Login(ctx, "a@b.com", "123456", "agent")
	require.NoError(t, err)

	assert.True(t, cleared, "stored credential should be nulled after consuming the temporary password")
	assert.False(t, f.mr.Exists("temp_pwd:a@b.com"))
}

func TestLogin_NoTemporaryMarkerKeepsPassword(t *testing.T) {
	f := newAccountFixture(t)

	user := &domain.User{ID: uuid.New(), Email: "a@b.com", Active: true}
	f.issuer.IssueFunc = func(ctx context.Context, email, secret, device string) (string, *domain.User, error) {
		return "signed-token", user, nil
	}

	var updateCalled bool
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, email string, hash *string) error {
		updateCalled = true
		return nil
	}

	_, err := f.svc.Login(context.Background(), "a@b.com", "secret", "agent")
	require.NoError(t, err)
	assert.False(t, updateCalled)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	f := newAccountFixture(t)

	var updated bool
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, email string, hash *string) error {
		updated = true
		return nil
	}

	sent, err := f.svc.RequestPasswordReset(context.Background(), "ghost@b.com")
	require.NoError(t, err)

	assert.False(t, sent)
	assert.False(t, updated)
	assert.Empty(t, f.notifier.Dispatched())
}

func TestRequestPasswordReset_KnownEmail(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	f.userRepo.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
		return email == "a@b.com", nil
	}

	var stored *string
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, email string, hash *string) error {
		stored = hash
		return nil
	}

	sent, err := f.svc.RequestPasswordReset(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, sent)

	require.NotNil(t, stored)
	assert.NotEmpty(t, *stored)
	assert.True(t, f.mr.Exists("temp_pwd:a@b.com"))

	events := f.notifier.Dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, domain.TemporaryPasswordNotice, events[0].Kind)
	assert.Equal(t, "a@b.com", events[0].Email)
	assert.True(t, events[0].HTML)
}

func TestRequestPasswordReset_BlankEmail(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.RequestPasswordReset(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrBadParameter)
}

func TestUpdateProfile_PairCollision(t *testing.T) {
	f := newAccountFixture(t)

	f.userRepo.PairInUseByOtherFunc = func(ctx context.Context, phone, email string, id uuid.UUID) (bool, error) {
		return true, nil
	}

	_, err := f.svc.UpdateProfile(context.Background(), &domain.ProfileUpdate{
		ID:    uuid.New(),
		Email: "taken@b.com",
		Phone: "+111",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestUpdateProfile_Success(t *testing.T) {
	f := newAccountFixture(t)
	id := uuid.New()

	var applied *domain.ProfileUpdate
	f.userRepo.UpdateProfileFunc = func(ctx context.Context, upd *domain.ProfileUpdate) error {
		applied = upd
		return nil
	}
	f.userRepo.FindActiveByIDFunc = func(ctx context.Context, uid uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: uid, Email: "a@b.com", FirstName: "Ada"}, nil
	}

	user, err := f.svc.UpdateProfile(context.Background(), &domain.ProfileUpdate{
		ID:        id,
		Email:     "a@b.com",
		Phone:     "+111",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, applied)

	assert.Equal(t, id, applied.ID)
	assert.Equal(t, "Ada", user.FirstName)
}

func TestUpdateProfile_Validation(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.UpdateProfile(context.Background(), &domain.ProfileUpdate{
		Email: "a@b.com",
		Phone: "+111",
	})
	assert.ErrorIs(t, err, domain.ErrBadParameter)
}

func TestListUsers_BadPaging(t *testing.T) {
	f := newAccountFixture(t)

	for _, tc := range []struct{ page, size int }{{-1, 10}, {0, 0}, {0, -5}} {
		_, err := f.svc.ListUsers(context.Background(), tc.page, tc.size)
		assert.ErrorIs(t, err, domain.ErrBadParameter)
	}
}

func TestListUsers_DegradesToAllWhenPageShort(t *testing.T) {
	f := newAccountFixture(t)

	all := make([]*domain.User, 5)
	for i := range all {
		all[i] = &domain.User{ID: uuid.New(), Active: true}
	}

	f.userRepo.ListFunc = func(ctx context.Context, page, size int) ([]*domain.User, error) {
		start := page * size
		end := start + size
		if end > len(all) {
			end = len(all)
		}
		if start >= len(all) {
			return nil, nil
		}
		return all[start:end], nil
	}
	f.userRepo.CountTotalFunc = func(ctx context.Context) (int64, error) {
		return int64(len(all)), nil
	}

	page, err := f.svc.ListUsers(context.Background(), 0, 2)
	require.NoError(t, err)

	assert.Len(t, page.Users, 5)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 5, page.Size)
	assert.Equal(t, int64(5), page.Total)
}

func TestListUsers_FullPageStaysPaged(t *testing.T) {
	f := newAccountFixture(t)

	all := []*domain.User{
		{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()},
	}
	f.userRepo.ListFunc = func(ctx context.Context, page, size int) ([]*domain.User, error) {
		return all, nil
	}
	f.userRepo.CountTotalFunc = func(ctx context.Context) (int64, error) {
		return 3, nil
	}

	page, err := f.svc.ListUsers(context.Background(), 0, 3)
	require.NoError(t, err)

	assert.Len(t, page.Users, 3)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 3, page.Size)
}

func TestLogout_RemovesDeviceAndClearsOnline(t *testing.T) {
	f := newAccountFixture(t)
	id := uuid.New()

	var deletedFP string
	f.deviceRepo.DeleteByUserAndFingerprintFunc = func(ctx context.Context, uid uuid.UUID, fp string) error {
		deletedFP = fp
		return nil
	}
	var online *bool
	f.userRepo.UpdateOnlineFunc = func(ctx context.Context, uid uuid.UUID, on bool) error {
		online = &on
		return nil
	}

	require.NoError(t, f.svc.Logout(context.Background(), id, "agent-9"))
	assert.Equal(t, "agent-9", deletedFP)
	require.NotNil(t, online)
	assert.False(t, *online)
}

func TestSetBlocked_DropsDevices(t *testing.T) {
	f := newAccountFixture(t)
	id := uuid.New()

	var dropped bool
	f.deviceRepo.DeleteByUserFunc = func(ctx context.Context, uid uuid.UUID) error {
		dropped = uid == id
		return nil
	}

	require.NoError(t, f.svc.SetBlocked(context.Background(), id, true))
	assert.True(t, dropped)

	dropped = false
	require.NoError(t, f.svc.SetBlocked(context.Background(), id, false))
	assert.False(t, dropped)
}

func TestSetRole_RejectsUnknownRole(t *testing.T) {
	f := newAccountFixture(t)

	err := f.svc.SetRole(context.Background(), uuid.New(), "OVERLORD")
	assert.ErrorIs(t, err, domain.ErrBadParameter)

	require.NoError(t, f.svc.SetRole(context.Background(), uuid.New(), domain.RoleAdmin))
}
