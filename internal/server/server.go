package server

import (
	"io/fs"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"

	"github.com/finarchitect/resetpass/internal/app"
	"github.com/finarchitect/resetpass/internal/config"
	"github.com/finarchitect/resetpass/internal/handlers"
	"github.com/finarchitect/resetpass/internal/middleware"
	"github.com/finarchitect/resetpass/internal/rendering"
	"github.com/finarchitect/resetpass/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E           *echo.Echo
	Cfg         config.Provider
	authHandler *handlers.AuthHandler
	homeHandler *handlers.HomeHandler
}

// New creates a new Server from cfg. Logging must already be configured.
func New(cfg config.Provider) *Server {
	return NewWithInjector(cfg, app.NewInjector(cfg))
}

// NewWithInjector creates a Server whose services are resolved from
// injector, letting tests override individual providers.
func NewWithInjector(cfg config.Provider, injector do.Injector) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Renderer = do.MustInvoke[rendering.Renderer](injector)
	setupErrorHandling(e)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "no-referrer",
	}))

	// Configure and use session middleware for flash messages.
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	// Serve embedded static files.
	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(err)
	}
	e.StaticFS("/static", staticFS)

	return &Server{
		E:           e,
		Cfg:         cfg,
		authHandler: do.MustInvoke[*handlers.AuthHandler](injector),
		homeHandler: do.MustInvoke[*handlers.HomeHandler](injector),
	}
}
