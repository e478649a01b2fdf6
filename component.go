package hxfrp

import (
	"reflect"

	"github.com/pthm/hxfrp/lib/stream"
)

// ToComponent turns a function from a prop stream to an M into a
// conventional function of props.
//
// fn runs exactly once, here, with a prop channel that replays the latest
// props. The returned component mounts the tree on its first call; every
// call then pushes its props into the channel (unless they equal the props
// pushed last) and returns a node rendering the tree's current fragments.
// Calling the component again never rebuilds the tree:
//
//	badge, _ := hxfrp.ToComponent(h, func(props stream.Observable[BadgeProps]) hxfrp.M[struct{}] {
//	    return hxfrp.DynText(h, stream.Map(props, BadgeProps.Label))
//	})
//	node := badge(BadgeProps{Count: 3})
//
// The value of the M is returned alongside the component. If h is a
// Releaser the view is unmounted when h is released; otherwise it lives as
// long as the component.
func ToComponent[P, T any](h Host, fn func(props stream.Observable[P]) M[T]) (func(props P) Node, T) {
	c := &component[P]{host: h, props: stream.NewReplaySubject[P](1)}
	m := fn(c.props)
	c.fragments = m.Fragments
	if c.fragments == nil {
		c.fragments = empty()
	}
	return c.render, m.Value
}

type component[P any] struct {
	host      Host
	props     *stream.ReplaySubject[P]
	fragments Fragments
	view      *View
	last      P
	pushed    bool
}

func (c *component[P]) render(props P) Node {
	if c.view == nil {
		c.view = Mount(c.fragments, nil)
		if r, ok := c.host.(Releaser); ok {
			r.OnRelease(c.view.Unmount)
		}
	}
	if !c.pushed || !reflect.DeepEqual(props, c.last) {
		c.pushed = true
		c.last = props
		c.props.Push(props)
	}
	return c.host.Fragment(c.view.Nodes)
}
