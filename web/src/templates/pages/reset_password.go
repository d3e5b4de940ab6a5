package pages

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/finarchitect/resetpass/internal/view/dto/auth"
	"github.com/finarchitect/resetpass/web/src/templates/partials"
)

// ResetPasswordFormID is the element htmx swaps after each submission.
const ResetPasswordFormID = "reset-password-form"

// ResetPassword is the full page content for /reset-password.
func ResetPassword(data auth.ResetPasswordData, loginPath string) g.Node {
	return g.Group{
		h.P(h.Class("subtitle"), g.Text("Set your new password")),
		ResetPasswordForm(data),
		h.A(h.Href(loginPath), h.Class("login-link"), g.Text("Back to Login")),
	}
}

// ResetPasswordForm renders the form with its alerts. It is also the htmx
// fragment returned by POST /reset-password.
func ResetPasswordForm(data auth.ResetPasswordData) g.Node {
	return h.Div(
		h.ID(ResetPasswordFormID),
		h.Style("width: 100%"),
		partials.Alert("error", data.Error),
		partials.Alert("success", data.Success),
		h.Form(
			h.Method("post"),
			h.Action("/reset-password"),
			hx.Post("/reset-password"),
			hx.Target("#"+ResetPasswordFormID),
			hx.Swap("outerHTML"),
			g.Attr("hx-disabled-elt", "find button"),
			h.Input(h.Type("hidden"), h.Name("token"), h.Value(data.Token)),
			passwordField("password", "New Password"),
			passwordField("confirm_password", "Confirm New Password"),
			h.Button(
				h.Type("submit"),
				g.If(data.SubmitDisabled, h.Disabled()),
				h.Span(h.Class("when-idle"), g.Text(data.ButtonLabel)),
				h.Span(h.Class("when-busy"), g.Text("RESETTING PASSWORD...")),
			),
		),
		g.If(data.RedirectURL != "", redirectAfter(data)),
	)
}

func passwordField(name, label string) g.Node {
	return h.Label(
		g.Text(label),
		h.Input(
			h.Type("password"),
			h.Name(name),
			h.Required(),
			h.AutoComplete("new-password"),
		),
	)
}

// redirectAfter fires a single delayed request whose response tells htmx
// where to navigate.
func redirectAfter(data auth.ResetPasswordData) g.Node {
	return h.Div(
		hx.Get(data.RedirectURL),
		hx.Trigger(fmt.Sprintf("load delay:%dms", data.RedirectAfter.Milliseconds())),
		hx.Swap("none"),
	)
}
