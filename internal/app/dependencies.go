package app

import (
	"net/http/cookiejar"

	"github.com/samber/do/v2"

	"github.com/finarchitect/resetpass/internal/authapi"
	"github.com/finarchitect/resetpass/internal/config"
	"github.com/finarchitect/resetpass/internal/domain"
	"github.com/finarchitect/resetpass/internal/handlers"
	"github.com/finarchitect/resetpass/internal/rendering"
)

// NewInjector wires the services the HTTP server needs around cfg.
func NewInjector(cfg config.Provider) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.Provide(injector, newRenderer)
	do.Provide(injector, newAuthClient)
	do.Provide(injector, newAuthHandler)
	do.Provide(injector, newHomeHandler)

	return injector
}

func newRenderer(i do.Injector) (rendering.Renderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

// newAuthClient builds the API client. The cookie jar lets the confirm call
// carry any cookies the API set on earlier responses.
func newAuthClient(i do.Injector) (domain.AuthClient, error) {
	cfg := do.MustInvoke[config.Provider](i)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return authapi.NewClient(cfg.GetAuthAPIBaseURL(),
		authapi.WithTimeout(cfg.GetAuthAPITimeout()),
		authapi.WithCookieJar(jar),
	), nil
}

func newAuthHandler(i do.Injector) (*handlers.AuthHandler, error) {
	return handlers.NewAuthHandler(
		do.MustInvoke[domain.AuthClient](i),
		do.MustInvoke[rendering.Renderer](i),
		do.MustInvoke[config.Provider](i),
	), nil
}

func newHomeHandler(i do.Injector) (*handlers.HomeHandler, error) {
	return handlers.NewHomeHandler(), nil
}
