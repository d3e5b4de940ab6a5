package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/finarchitect/resetpass/internal/view/dto/auth"
)

// Login is the content of the login page.
func Login(data auth.LoginData) g.Node {
	return g.Group{
		h.P(h.Class("subtitle"), g.Text("Sign in to your account")),
		h.Form(
			h.Method("post"),
			h.Action("/login"),
			field("email", "Email", "email", data.Email, "email"),
			field("password", "Password", "password", "", "current-password"),
			h.Button(h.Type("submit"), g.Text("LOG IN")),
		),
		h.A(h.Href("/forgot-password"), h.Class("login-link"), g.Text("Forgot your password?")),
		h.A(h.Href("/register"), h.Class("login-link"), g.Text("Create an account")),
	}
}

// Register is the content of the registration page.
func Register(data auth.RegisterData) g.Node {
	return g.Group{
		h.P(h.Class("subtitle"), g.Text("Create your account")),
		h.Form(
			h.Method("post"),
			h.Action("/register"),
			field("email", "Email", "email", data.Email, "email"),
			field("first_name", "First Name", "text", data.FirstName, "given-name"),
			field("last_name", "Last Name", "text", data.LastName, "family-name"),
			field("company", "Company", "text", data.Company, "organization"),
			field("password", "Password", "password", "", "new-password"),
			field("confirm_password", "Confirm Password", "password", "", "new-password"),
			h.Button(h.Type("submit"), g.Text("REGISTER")),
		),
		h.A(h.Href("/login"), h.Class("login-link"), g.Text("Back to Login")),
	}
}

// ForgotPassword is the content of the page requesting a reset link.
func ForgotPassword(data auth.ForgotPasswordData) g.Node {
	return g.Group{
		h.P(h.Class("subtitle"), g.Text("Request a password reset link")),
		h.Form(
			h.Method("post"),
			h.Action("/forgot-password"),
			field("email", "Email", "email", data.Email, "email"),
			h.Button(h.Type("submit"), g.Text("SEND RESET LINK")),
		),
		h.A(h.Href("/login"), h.Class("login-link"), g.Text("Back to Login")),
	}
}

func field(name, label, typ, value, autocomplete string) g.Node {
	return h.Label(
		g.Text(label),
		h.Input(
			h.Type(typ),
			h.Name(name),
			h.Value(value),
			h.Required(),
			h.AutoComplete(autocomplete),
		),
	)
}
