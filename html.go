package hxfrp

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// Attribute names HTMLHost writes on wired elements when no wire function
// is configured.
const (
	AttrHandler = "data-hxfrp-handler"
	AttrOn      = "data-hxfrp-on"
)

// WireFunc returns the attributes that connect an element to the handler
// registered under id.
type WireFunc func(id uint64, events []string) templ.Attributes

// HTMLHost is a Host whose nodes are templ components.
//
// Handlers registered through On are kept in a table keyed by a numeric id
// and invoked with Dispatch. The table is safe for concurrent use; the
// handlers themselves run on the caller's goroutine.
type HTMLHost struct {
	mu       sync.Mutex
	handlers map[uint64]func(Event)
	nextID   uint64
	wire     WireFunc
	releases []func()
	released bool
}

// NewHTMLHost creates an HTMLHost. If wire is nil, wired elements carry
// AttrHandler and AttrOn attributes instead of live HTMX wiring.
func NewHTMLHost(wire WireFunc) *HTMLHost {
	if wire == nil {
		wire = func(id uint64, events []string) templ.Attributes {
			return templ.Attributes{
				AttrHandler: strconv.FormatUint(id, 10),
				AttrOn:      strings.Join(events, " "),
			}
		}
	}
	return &HTMLHost{
		handlers: make(map[uint64]func(Event)),
		wire:     wire,
	}
}

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Element implements Host.
func (h *HTMLHost) Element(tag string, attrs templ.Attributes, children []Node) Node {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if voidElements[tag] {
			return nil
		}
		if err := RenderNodes(ctx, w, children); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Text implements Host.
func (h *HTMLHost) Text(s string) Node {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Fragment implements Host.
func (h *HTMLHost) Fragment(current func() []Node) Node {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderNodes(ctx, w, current())
	})
}

// On implements Host.
func (h *HTMLHost) On(events []string, fn func(Event)) (templ.Attributes, func()) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.handlers[id] = fn
	h.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.handlers, id)
			h.mu.Unlock()
		})
	}
	return h.wire(id, events), release
}

// Dispatch delivers ev to the handler registered under id.
func (h *HTMLHost) Dispatch(id uint64, ev Event) error {
	h.mu.Lock()
	fn, ok := h.handlers[id]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrHandlerNotFound, id)
	}
	fn(ev)
	return nil
}

// OnRelease implements Releaser. fn runs at once if h was already
// released.
func (h *HTMLHost) OnRelease(fn func()) {
	h.mu.Lock()
	if !h.released {
		h.releases = append(h.releases, fn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	fn()
}

// Release runs the functions registered with OnRelease, most recent first.
// Releasing twice is a no-op.
func (h *HTMLHost) Release() {
	h.mu.Lock()
	fns := h.releases
	h.releases = nil
	h.released = true
	h.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Handlers reports how many handlers are currently registered.
func (h *HTMLHost) Handlers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}

// RenderNodes writes nodes as HTML. Nodes must be templ components, strings
// (escaped) or nil (skipped).
func RenderNodes(ctx context.Context, w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case nil:
		case templ.Component:
			if err := n.Render(ctx, w); err != nil {
				return err
			}
		case string:
			if _, err := io.WriteString(w, templ.EscapeString(n)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %T", ErrUnknownNode, n)
		}
	}
	return nil
}
