package hxfrp

import (
	"github.com/a-h/templ"
	"github.com/pthm/hxfrp/lib/stream"
)

// Attrs returns a constant attribute stream.
func Attrs(a templ.Attributes) stream.Observable[templ.Attributes] {
	return stream.Of(a)
}

// El wraps child in a single element built by h. The element is rebuilt
// with the latest attributes and the child's current fragments whenever
// either changes. The value passes through from child.
//
// A nil attrs stream means no attributes.
func El[T any](h Host, tag string, attrs stream.Observable[templ.Attributes], child M[T]) M[T] {
	if attrs == nil {
		attrs = Attrs(templ.Attributes{})
	}
	children := child.Fragments
	if children == nil {
		children = empty()
	}
	frags := stream.CombineLatest2(children, attrs, func(nodes []Node, a templ.Attributes) []Node {
		return []Node{h.Element(tag, a, nodes)}
	})
	return M[T]{Fragments: stream.ShareReplay(frags, 1), Value: child.Value}
}

// ElBlock is El with the content given as an Mdo block.
func ElBlock[T any](h Host, tag string, attrs stream.Observable[templ.Attributes], block func(b *Binder) T) M[T] {
	return El(h, tag, attrs, Mdo(block))
}

// Text renders a constant text node.
func Text(h Host, s string) M[struct{}] {
	return DynText(h, stream.Of(s))
}

// DynText renders a text node that follows content.
func DynText(h Host, content stream.Observable[string]) M[struct{}] {
	frags := stream.Map(content, func(s string) []Node {
		return []Node{h.Text(s)}
	})
	return M[struct{}]{Fragments: stream.ShareReplay(frags, 1)}
}
