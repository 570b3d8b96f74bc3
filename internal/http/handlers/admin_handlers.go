package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/you/accountsvc/domain"
)

// AdminHandlers exposes the account administration operations
type AdminHandlers struct {
	accountSvc domain.AccountService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(accountSvc domain.AccountService) *AdminHandlers {
	return &AdminHandlers{accountSvc: accountSvc}
}

type blockedReq struct {
	Blocked bool `json:"blocked"`
}

type roleReq struct {
	Role string `json:"role" binding:"required"`
}

// SetBlocked blocks or unblocks an account
func (h *AdminHandlers) SetBlocked(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req blockedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountSvc.SetBlocked(c.Request.Context(), id, req.Blocked); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetRole changes an account's role
func (h *AdminHandlers) SetRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountSvc.SetRole(c.Request.Context(), id, req.Role); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
