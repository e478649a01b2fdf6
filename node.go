package hxfrp

import "github.com/pthm/hxfrp/lib/stream"

// Fragments is a stream of the flat, ordered node list a subtree currently
// renders to.
type Fragments = stream.Observable[[]Node]

// M pairs a value with the live fragments of the subtree that produced it.
//
// Fragments is hot: every combinator in this package shares it, so binding
// the same M in several places never re-runs the producers beneath it.
// Value is opaque to the combinators; it is usually a stream or a bundle of
// streams the subtree exposes to its parent.
type M[T any] struct {
	Fragments Fragments
	Value     T
}

// Pure returns an M that renders nothing and carries v.
func Pure[T any](v T) M[T] {
	return M[T]{Fragments: empty(), Value: v}
}

// Binder collects the fragments of the Ms bound inside an Mdo block.
type Binder struct {
	siblings []Fragments
	closed   bool
}

// Bind registers m's fragments as the next sibling of the enclosing Mdo
// block and returns m's value.
//
// Bind panics with ErrBinderClosed when b escaped its block and is used
// after Mdo returned.
func Bind[A any](b *Binder, m M[A]) A {
	if b.closed {
		panic(ErrBinderClosed)
	}
	frags := m.Fragments
	if frags == nil {
		frags = empty()
	}
	b.siblings = append(b.siblings, frags)
	return m.Value
}

// Mdo runs block with a fresh Binder and returns an M whose value is the
// block's result and whose fragments are the bound siblings concatenated
// in bind order.
//
// The fragments emit once every sibling has emitted, and again whenever any
// sibling re-emits; each emission lists the siblings in the order they were
// bound, whichever of them triggered it. A block that binds nothing renders
// a constant empty list.
//
//	m := hxfrp.Mdo(func(b *hxfrp.Binder) stream.Observable[string] {
//	    hxfrp.Bind(b, hxfrp.Text(h, "Name: "))
//	    in := hxfrp.Bind(b, hxfrp.TextInput(h, hxfrp.TextInputConfig{}))
//	    return in.Value
//	})
func Mdo[T any](block func(b *Binder) T) M[T] {
	b := &Binder{}
	value := block(b)
	b.closed = true
	return M[T]{Fragments: concat(b.siblings), Value: value}
}

func concat(siblings []Fragments) Fragments {
	switch len(siblings) {
	case 0:
		return empty()
	case 1:
		return siblings[0]
	}
	return stream.ShareReplay(stream.Map(stream.CombineLatest(siblings), flatten), 1)
}

func flatten(lists [][]Node) []Node {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Node, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func empty() Fragments {
	return stream.Of([]Node{})
}
