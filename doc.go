// Package hxfrp composes reactive user interfaces from value streams and
// serves them as server-rendered HTML driven by HTMX.
//
// A piece of UI is an M[T]: a stream of the flat node list it currently
// renders to, paired with a value it exposes to its parent (usually a
// stream of its own outputs). Combinators build larger Ms out of smaller
// ones, and the render bridge hands the final node list to a host renderer.
//
// # Composition
//
// Mdo runs a block with a Binder. Every Bind appends the bound M's
// fragments as the next sibling and returns its value, so outputs of one
// child can feed the next:
//
//	form := hxfrp.Mdo(func(b *hxfrp.Binder) stream.Observable[string] {
//	    in := hxfrp.Bind(b, hxfrp.TextInput(h, hxfrp.TextInputConfig{}))
//	    hxfrp.Bind(b, hxfrp.DynText(h, in.Value))
//	    return in.Value
//	})
//
// Siblings always render in the order they were bound.
//
// # Forward references
//
// Rec hands a block a struct of Field channels that may be read before they
// are fed. A later Feed delivers its values to every earlier reader, and
// fields replay everything they received to late subscribers:
//
//	type state struct{ Query hxfrp.Field[string] }
//
//	view := hxfrp.Rec(func(s *state) hxfrp.M[struct{}] {
//	    return hxfrp.Mdo(func(b *hxfrp.Binder) struct{} {
//	        hxfrp.Bind(b, hxfrp.DynText(h, s.Query.Stream()))
//	        in := hxfrp.Bind(b, hxfrp.TextInput(h, hxfrp.TextInputConfig{}))
//	        s.Query.Feed(in.Change)
//	        return struct{}{}
//	    })
//	})
//
// # Dynamic structure
//
// Dyn switches between subtrees: each emission of its source replaces the
// previous subtree, tearing down that subtree's subscriptions and event
// handlers. List renders one child per element of a slice stream and
// rebuilds them positionally whenever the slice changes.
//
// # Hosts
//
// The combinators never inspect nodes. They are written against Host, which
// builds elements and text and wires event handlers. HTMLHost renders
// templ components. Registry gives every page view a session with its own
// HTMLHost, mounts the tree, and routes HTMX event posts back into it:
//
//	reg := hxfrp.NewRegistry(key)
//	mux.Handle("/", reg.Page(build, layout))
//	mux.Handle(reg.Path(), reg.Handler())
//
// Propagation within a session is serialized behind the session's lock;
// the streams themselves are single-threaded.
package hxfrp
