package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/you/accountsvc/domain"
)

// AccountHandlers handles account HTTP requests
type AccountHandlers struct {
	accountSvc domain.AccountService
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(accountSvc domain.AccountService) *AccountHandlers {
	return &AccountHandlers{accountSvc: accountSvc}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string     `json:"email" binding:"required,email"`
	Phone     string     `json:"phone" binding:"required"`
	Password  string     `json:"password" binding:"required,min=6"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Gender    string     `json:"gender,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	ImagePath string     `json:"image_path,omitempty"`
}

// LoginRequest carries the login secret; the email and device fingerprint
// travel in the `email` and `User-Agent` request headers.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ResetRequest represents a password reset request
type ResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ActivateRequest represents an activation confirmation request
type ActivateRequest struct {
	Code string `json:"code" binding:"required"`
}

// UpdateRequest represents a profile update request
type UpdateRequest struct {
	ID        uuid.UUID  `json:"id" binding:"required"`
	Email     string     `json:"email" binding:"required,email"`
	Phone     string     `json:"phone" binding:"required"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Gender    string     `json:"gender,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	ImagePath string     `json:"image_path,omitempty"`
}

// UserView is the sanitized public view of a user
type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Gender    string     `json:"gender,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	ImagePath string     `json:"image_path,omitempty"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	Online    bool       `json:"online"`
	CreatedAt time.Time  `json:"created_at"`
}

func toView(u *domain.User) *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    u.Gender,
		Birthdate: u.Birthdate,
		ImagePath: u.ImagePath,
		Role:      u.Role,
		Active:    u.Active,
		Online:    u.Online,
		CreatedAt: u.CreatedAt,
	}
}

// writeError maps error kinds onto HTTP statuses; the kind is never
// collapsed before reaching this boundary.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
	case errors.Is(err, domain.ErrBadParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid parameter"})
	case errors.Is(err, domain.ErrForbiddenAccess):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activation code"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// Register handles user registration
func (h *AccountHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountSvc.Register(c.Request.Context(), &domain.RegisterDraft{
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Birthdate: req.Birthdate,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toView(user)})
}

// Activate handles activation code confirmation
func (h *AccountHandlers) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountSvc.Activate(c.Request.Context(), req.Code)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toView(user)})
}

// Reset handles password reset requests. The targeted email is reported
// via the `email` response header.
func (h *AccountHandlers) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, err := h.accountSvc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	if sent {
		c.Header("email", req.Email)
	}
	c.JSON(http.StatusOK, gin.H{"data": sent})
}

// Login handles user login. The email comes from the `email` header, the
// device fingerprint from `User-Agent`, and on success the bearer token is
// returned in the `Authorization` response header.
func (h *AccountHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := c.GetHeader("email")
	device := c.GetHeader("User-Agent")

	result, err := h.accountSvc.Login(c.Request.Context(), email, req.Password, device)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+result.AccessToken)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user":       toView(result.User),
			"expires_in": result.ExpiresIn,
		},
	})
}

// Logout handles user logout (requires authentication)
func (h *AccountHandlers) Logout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if err := h.accountSvc.Logout(c.Request.Context(), userID, c.GetHeader("User-Agent")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out successfully"}})
}

// Get handles reading a user's public view by id
func (h *AccountHandlers) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.accountSvc.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toView(user)})
}

// Update handles profile updates
func (h *AccountHandlers) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountSvc.UpdateProfile(c.Request.Context(), &domain.ProfileUpdate{
		ID:        req.ID,
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Birthdate: req.Birthdate,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toView(user)})
}

// List handles paginated user listing
func (h *AccountHandlers) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size"})
		return
	}

	result, err := h.accountSvc.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]*UserView, 0, len(result.Users))
	for _, u := range result.Users {
		views = append(views, toView(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"users": views,
			"page":  result.Number,
			"size":  result.Size,
			"total": result.Total,
		},
	})
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, domain.ErrForbiddenAccess
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, domain.ErrForbiddenAccess
	}
	return uuid.Parse(s)
}
