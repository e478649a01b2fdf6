package hxfrp

import "github.com/a-h/templ"

// Node is one opaque render unit built by a Host. The combinators never look
// inside a Node; they only order sibling lists and hand them back to the
// Host that made them.
type Node any

// Host is the rendering capability the combinators are written against.
// Any renderer that can build an element from a tag, attributes and
// children, and can wrap a live list of nodes, can back hxfrp.
//
// HTMLHost renders to HTML through templ. Tests typically supply a small
// in-memory Host so rendered output can be compared structurally.
type Host interface {
	// Element builds one element node. children is the flattened fragment
	// list of the element's content.
	Element(tag string, attrs templ.Attributes, children []Node) Node

	// Text builds a literal text node.
	Text(s string) Node

	// Fragment builds a node that renders whatever current returns at the
	// moment it is rendered. ToComponent uses it to expose a mounted view as
	// a single node.
	Fragment(current func() []Node) Node

	// On registers fn for the named interaction events and returns the
	// attributes that wire an element to it, plus a release function that
	// unregisters fn. Release must be safe to call more than once.
	On(events []string, fn func(Event)) (attrs templ.Attributes, release func())
}

// Releaser is implemented by hosts with a lifetime of their own. Work
// registered with OnRelease runs once, when the host is released.
// ToComponent registers the unmount of its view there; on a host that is not
// a Releaser the view stays mounted for as long as the component is
// reachable.
type Releaser interface {
	OnRelease(fn func())
}

// Event is a user interaction delivered to a handler registered with
// Host.On.
type Event struct {
	Type  string // one of the Event* constants
	Value string // current value of the element that fired the event
	Key   int    // key code for key events
}

// Interaction event names understood by the built-in primitives.
const (
	EventInput    = "input"
	EventKeyPress = "keypress"
	EventKeyDown  = "keydown"
	EventKeyUp    = "keyup"
	EventFocus    = "focus"
	EventBlur     = "blur"
	EventClick    = "click"
)

// Surface receives every re-render of a mounted fragment stream.
//
// The host renderer implements Surface to repaint itself; View records the
// latest list regardless, so a nil Surface is valid when the host pulls
// nodes from the View instead.
type Surface interface {
	Render(nodes []Node)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(nodes []Node)

// Render calls f(nodes).
func (f SurfaceFunc) Render(nodes []Node) {
	f(nodes)
}
