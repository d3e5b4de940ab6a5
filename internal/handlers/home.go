package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/finarchitect/resetpass/internal/view"
	"github.com/finarchitect/resetpass/web/src/templates/layouts"
)

// HomeHandler handles requests for the site root. Pages go through the
// echo.Renderer installed on the server.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet forwards reset links that point at the root to the reset page and
// otherwise shows where the visitor can go next.
func (hh *HomeHandler) HomeGet(c echo.Context) error {
	if token := c.QueryParam("token"); token != "" {
		return c.Redirect(http.StatusSeeOther, "/reset-password?token="+url.QueryEscape(token))
	}

	cookie, err := c.Cookie(accessTokenCookie)
	isAuthenticated := err == nil && cookie.Value != ""

	page := layouts.Base("", view.GetFlashData(c), homeContent(isAuthenticated))
	return c.Render(http.StatusOK, "home", page)
}

func homeContent(isAuthenticated bool) g.Node {
	if isAuthenticated {
		return g.Group{
			h.P(h.Class("subtitle"), g.Text("You are signed in.")),
			h.A(h.Href("/logout"), h.Class("login-link"), g.Text("Log out")),
		}
	}
	return g.Group{
		h.P(h.Class("subtitle"), g.Text("Welcome")),
		h.A(h.Href("/login"), h.Class("login-link"), g.Text("Log in")),
		h.A(h.Href("/forgot-password"), h.Class("login-link"), g.Text("Forgot your password?")),
	}
}
