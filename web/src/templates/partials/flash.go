package partials

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/finarchitect/resetpass/internal/view"
)

// Flash renders session flash messages as alerts.
func Flash(data view.FlashData) g.Node {
	return g.Group{
		g.Map(data.Error, func(msg string) g.Node { return Alert("error", msg) }),
		g.Map(data.Success, func(msg string) g.Node { return Alert("success", msg) }),
	}
}

// Alert renders a single message with the given severity ("error" or "success").
func Alert(severity, message string) g.Node {
	if message == "" {
		return g.Group{}
	}
	return h.Div(
		h.Class("alert alert-"+severity),
		g.Attr("role", "alert"),
		g.Text(message),
	)
}
