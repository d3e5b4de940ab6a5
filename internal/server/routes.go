package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finarchitect/resetpass/internal/handlers"
	"github.com/finarchitect/resetpass/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(middleware.DefaultRequestsPerMinute)
	loginPath := s.Cfg.GetLoginPath()

	s.E.GET("/", s.homeHandler.HomeGet)

	s.E.GET("/reset-password", s.authHandler.ResetPasswordGet)
	s.E.POST("/reset-password", s.authHandler.ResetPasswordPost, rateLimiter)
	s.E.GET(handlers.ResetDonePath, s.authHandler.ResetPasswordDone)

	s.E.GET("/forgot-password", s.authHandler.ForgotPasswordGet)
	s.E.POST("/forgot-password", s.authHandler.ForgotPasswordPost, rateLimiter)

	s.E.GET(loginPath, s.authHandler.LoginGet)
	s.E.POST(loginPath, s.authHandler.LoginPost, rateLimiter)
	s.E.GET("/logout", s.authHandler.Logout)

	s.E.GET("/register", s.authHandler.RegisterGet)
	s.E.POST("/register", s.authHandler.RegisterPost, rateLimiter)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
