package mocks

import (
	"context"
	"sync"

	"github.com/you/accountsvc/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hash *string, password string) bool
	DigestFunc func(hash *string) string
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hash *string, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hash, password)
	}
	return hash != nil && *hash == "hashed_"+password
}

func (m *MockPasswordService) Digest(hash *string) string {
	if m.DigestFunc != nil {
		return m.DigestFunc(hash)
	}
	if hash == nil {
		return ""
	}
	return "digest_" + *hash
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(email, passwordDigest, device string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Generate(email, passwordDigest, device string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(email, passwordDigest, device)
	}
	return "token_" + email, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// MockTokenIssuer implements domain.TokenIssuer for testing
type MockTokenIssuer struct {
	IssueFunc func(ctx context.Context, email, secret, device string) (string, *domain.User, error)
}

// NewMockTokenIssuer creates a new MockTokenIssuer with default behaviors
func NewMockTokenIssuer() *MockTokenIssuer {
	return &MockTokenIssuer{}
}

func (m *MockTokenIssuer) Issue(ctx context.Context, email, secret, device string) (string, *domain.User, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, secret, device)
	}
	return "", nil, domain.ErrForbiddenAccess
}

// MockActivationService implements domain.ActivationService for testing
type MockActivationService struct {
	RegisterFunc func(ctx context.Context, user *domain.User) error
	ConfirmFunc  func(ctx context.Context, code string) (*domain.User, error)
}

// NewMockActivationService creates a new MockActivationService with default behaviors
func NewMockActivationService() *MockActivationService {
	return &MockActivationService{}
}

func (m *MockActivationService) Register(ctx context.Context, user *domain.User) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, user)
	}
	return nil
}

func (m *MockActivationService) Confirm(ctx context.Context, code string) (*domain.User, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, code)
	}
	return nil, domain.ErrInvalidCode
}

// MockSessionGuard implements domain.SessionGuard for testing
type MockSessionGuard struct {
	CheckAndRecordFunc func(ctx context.Context, user *domain.User, fingerprint string) error
}

// NewMockSessionGuard creates a new MockSessionGuard with default behaviors
func NewMockSessionGuard() *MockSessionGuard {
	return &MockSessionGuard{}
}

func (m *MockSessionGuard) CheckAndRecord(ctx context.Context, user *domain.User, fingerprint string) error {
	if m.CheckAndRecordFunc != nil {
		return m.CheckAndRecordFunc(ctx, user, fingerprint)
	}
	return nil
}

// MockNotifier implements domain.Notifier for testing; it records every
// dispatched notification.
type MockNotifier struct {
	mu     sync.Mutex
	Events []*domain.Notification
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Dispatch(n *domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, n)
}

// Dispatched returns a snapshot of recorded notifications.
func (m *MockNotifier) Dispatched() []*domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Notification, len(m.Events))
	copy(out, m.Events)
	return out
}

// MockMailSender implements domain.MailSender for testing
type MockMailSender struct {
	SendEmailFunc func(to, subject, body string, html bool) error

	mu   sync.Mutex
	Sent []string
}

// NewMockMailSender creates a new MockMailSender
func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

func (m *MockMailSender) SendEmail(to, subject, body string, html bool) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, to)
	m.mu.Unlock()
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body, html)
	}
	return nil
}

// MockSMSSender implements domain.SMSSender for testing
type MockSMSSender struct {
	SendSMSFunc func(to, message string) error
}

// NewMockSMSSender creates a new MockSMSSender
func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

func (m *MockSMSSender) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}
