package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/internal/http/handlers"
	"github.com/you/accountsvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AccountHandlers, adh *handlers.AdminHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/activate", ah.Activate)
	auth.POST("/reset", ah.Reset)
	auth.POST("/login", ah.Login)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.POST("/auth/logout", ah.Logout)
	v.GET("/users/:id", ah.Get)
	v.PUT("/users", ah.Update)
	v.GET("/users", ah.List)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.PUT("/users/:id/blocked", adh.SetBlocked)
	adm.PUT("/users/:id/role", adh.SetRole)

	return r
}
