package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/accountsvc/domain"
)

func TestCreateUnderCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, func(u *DBUser) { u.Role = domain.RoleAdmin })

	for i := 0; i < 3; i++ {
		rec := &domain.DeviceRecord{UserID: user.ID, Fingerprint: fmt.Sprintf("agent-%d", i)}
		require.NoError(t, repo.CreateUnderCap(ctx, rec, 3))
		assert.NotZero(t, rec.ID)
	}

	// The fourth device hits the cap; nothing is written.
	err := repo.CreateUnderCap(ctx, &domain.DeviceRecord{UserID: user.ID, Fingerprint: "agent-3"}, 3)
	assert.ErrorIs(t, err, domain.ErrForbiddenAccess)

	n, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCreateUnderCap_PerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	first := seedUser(t, db, nil)
	second := seedUser(t, db, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateUnderCap(ctx,
			&domain.DeviceRecord{UserID: first.ID, Fingerprint: fmt.Sprintf("agent-%d", i)}, 3))
	}

	// One user's cap does not affect another's.
	err := repo.CreateUnderCap(ctx, &domain.DeviceRecord{UserID: second.ID, Fingerprint: "agent-0"}, 3)
	assert.NoError(t, err)
}

func TestDeleteByUserAndFingerprint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, nil)

	require.NoError(t, repo.Create(ctx, &domain.DeviceRecord{UserID: user.ID, Fingerprint: "agent-a"}))
	require.NoError(t, repo.Create(ctx, &domain.DeviceRecord{UserID: user.ID, Fingerprint: "agent-b"}))

	require.NoError(t, repo.DeleteByUserAndFingerprint(ctx, user.ID, "agent-a"))

	n, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDeleteByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, nil)
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &domain.DeviceRecord{UserID: user.ID, Fingerprint: fmt.Sprintf("agent-%d", i)}))
	}

	require.NoError(t, repo.DeleteByUser(ctx, user.ID))

	n, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
