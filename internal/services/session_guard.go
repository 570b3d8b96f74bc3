package services

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MaxPrivilegedSessions is the concurrent device-record ceiling for
// ADMIN and SUPER_ADMIN accounts.
const MaxPrivilegedSessions = 3

// SessionGuardImpl implements domain.SessionGuard
type SessionGuardImpl struct {
	devices domain.DeviceRepository
}

// NewSessionGuard creates a new session guard
func NewSessionGuard(devices domain.DeviceRepository) domain.SessionGuard {
	return &SessionGuardImpl{devices: devices}
}

// CheckAndRecord implements domain.SessionGuard. Recording is append-only:
// the guard never prunes records; privileged logins at the cap are refused
// with ErrForbiddenAccess and nothing is written.
func (g *SessionGuardImpl) CheckAndRecord(ctx context.Context, user *domain.User, fingerprint string) error {
	rec := &domain.DeviceRecord{UserID: user.ID, Fingerprint: fingerprint}
	if user.Privileged() {
		return g.devices.CreateUnderCap(ctx, rec, MaxPrivilegedSessions)
	}
	return g.devices.Create(ctx, rec)
}
