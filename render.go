package hxfrp

import "github.com/pthm/hxfrp/lib/stream"

// View is a mounted fragment stream: the subscription the host renderer
// holds on a tree, and the latest node list it produced.
//
// A View follows the threading rules of the streams it observes: calls must
// be serialized with whatever pushes values into the tree.
type View struct {
	surface Surface
	nodes   []Node
	renders int
	err     error
	sub     stream.Subscription
}

// Mount subscribes to fragments once and renders surface on every emission
// with the then-current node list. surface may be nil.
//
// If the stream fails, the error is kept on the View and the last rendered
// nodes stay in place; no further renders happen.
func Mount(fragments Fragments, surface Surface) *View {
	v := &View{surface: surface}
	v.sub = fragments.Subscribe(stream.Observer[[]Node]{
		Next:  v.render,
		Error: func(err error) { v.err = err },
	})
	return v
}

func (v *View) render(nodes []Node) {
	v.nodes = nodes
	v.renders++
	if v.surface != nil {
		v.surface.Render(nodes)
	}
}

// Nodes returns the node list of the latest render.
func (v *View) Nodes() []Node {
	return v.nodes
}

// Renders reports how many times the view has rendered.
func (v *View) Renders() int {
	return v.renders
}

// Err returns the error that terminated the fragment stream, if any.
func (v *View) Err() error {
	return v.err
}

// Mounted reports whether the view is still subscribed.
func (v *View) Mounted() bool {
	return !v.sub.Closed()
}

// Unmount cancels the subscription, tearing down every upstream producer
// that has no other observer.
func (v *View) Unmount() {
	v.sub.Unsubscribe()
}
