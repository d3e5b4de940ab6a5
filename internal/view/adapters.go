package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// nodeComponent wraps a gomponents.Node to satisfy templ.Component, so pages
// built with gomponents can be handed to anything expecting templ.
type nodeComponent struct {
	node gomponents.Node
}

func (a nodeComponent) Render(_ context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// Component converts a gomponents node into a templ.Component.
func Component(node gomponents.Node) templ.Component {
	return nodeComponent{node: node}
}
