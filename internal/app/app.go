package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/accountsvc/internal/config"
	httpx "github.com/you/accountsvc/internal/http"
	"github.com/you/accountsvc/internal/http/handlers"
	"github.com/you/accountsvc/internal/http/middleware"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	accountH := handlers.NewAccountHandlers(c.AccountSvc)
	adminH := handlers.NewAdminHandlers(c.AccountSvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.UserRepo, c.PasswordSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(accountH, adminH, jwtMW, casbinMW)

	seedPolicies(c, logger)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default RBAC policies on first boot.
func seedPolicies(c *Container, logger *zap.Logger) {
	e := c.Casbin.E
	policies, _ := e.GetPolicy()
	if len(policies) > 0 {
		return
	}

	e.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	e.AddPolicy("role_admin", "/users", "GET")
	e.AddPolicy("role_user", "/users/*", "GET")
	e.AddPolicy("role_user", "/users", "PUT")
	e.AddPolicy("role_user", "/auth/logout", "POST")
	e.AddGroupingPolicy("role_admin", "role_user")
	e.AddGroupingPolicy("role_super_admin", "role_admin")
	if err := e.SavePolicy(); err != nil {
		logger.Warn("failed to persist seeded policies", zap.Error(err))
		return
	}
	logger.Info("casbin: seeded default policies")
}
