package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notes-api/internal/container"
	handlers "github.com/oksasatya/notes-api/internal/interface/http"
	"github.com/oksasatya/notes-api/internal/interface/middleware"
	"github.com/oksasatya/notes-api/pkg/helpers"
)

// AuthModule wires signup/login/profile/delete-user routes.
// Public: POST /api/signup, POST /api/login
// Protected: GET /api/profile, DELETE /api/delete-user
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserEmail(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.DELETE("/delete-user", m.Handler.DeleteUser)
	}
}
