package layouts

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/finarchitect/resetpass/internal/view"
	"github.com/finarchitect/resetpass/web/src/templates/partials"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the branded card layout shared by every auth page.
func Base(title string, flashes view.FlashData, content g.Node) templ.Component {
	return view.Component(c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
			h.Script(h.Src(htmxSrc), h.Defer()),
		},
		Body: []g.Node{
			h.Main(
				h.Class("page"),
				h.Div(
					h.Class("card"),
					h.H1(h.Class("brand"), g.Text("FinArchitect")),
					partials.Flash(flashes),
					content,
				),
			),
		},
	}))
}
