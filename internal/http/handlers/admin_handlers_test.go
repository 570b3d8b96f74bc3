package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/mocks"
)

func newAdminRouter(svc domain.AccountService) *gin.Engine {
	h := NewAdminHandlers(svc)
	r := gin.New()
	r.PUT("/admin/users/:id/blocked", h.SetBlocked)
	r.PUT("/admin/users/:id/role", h.SetRole)
	return r
}

func TestSetBlockedHandler(t *testing.T) {
	svc := mocks.NewMockAccountService()
	id := uuid.New()

	var gotBlocked *bool
	svc.SetBlockedFunc = func(ctx context.Context, uid uuid.UUID, blocked bool) error {
		if uid == id {
			gotBlocked = &blocked
		}
		return nil
	}
	router := newAdminRouter(svc)

	w := perform(router, http.MethodPut, "/admin/users/"+id.String()+"/blocked",
		gin.H{"blocked": true}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	if assert.NotNil(t, gotBlocked) {
		assert.True(t, *gotBlocked)
	}

	w = perform(router, http.MethodPut, "/admin/users/not-a-uuid/blocked",
		gin.H{"blocked": true}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetRoleHandler(t *testing.T) {
	svc := mocks.NewMockAccountService()
	id := uuid.New()

	svc.SetRoleFunc = func(ctx context.Context, uid uuid.UUID, role string) error {
		if !domain.ValidRole(role) {
			return domain.ErrBadParameter
		}
		return nil
	}
	router := newAdminRouter(svc)

	w := perform(router, http.MethodPut, "/admin/users/"+id.String()+"/role",
		gin.H{"role": domain.RoleAdmin}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(router, http.MethodPut, "/admin/users/"+id.String()+"/role",
		gin.H{"role": "OVERLORD"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodPut, "/admin/users/"+id.String()+"/role",
		gin.H{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
