package hxfrp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
)

// Registry keeps the mounted trees of live page sessions and routes HTMX
// event posts to them.
//
// Every page view gets its own Session: a tree built against a fresh
// HTMLHost and mounted for as long as the page lives. Elements wired with
// Host.On post their events to Handler, which dispatches them into the tree
// and answers with the re-rendered session root.
type Registry struct {
	mu       sync.Mutex
	encoder  *Encoder
	sessions map[string]*Session
	opts     options
	now      func() time.Time

	// OnError is called when an event post fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a registry that signs event tokens with key.
func NewRegistry(key []byte, opts ...Option) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxfrp: failed to create encoder: %v", err))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := &Registry{
		encoder:  enc,
		sessions: make(map[string]*Session),
		opts:     o,
		now:      time.Now,
	}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case errors.Is(err, ErrHandlerNotFound):
			// The element was replaced before its event arrived.
			w.WriteHeader(http.StatusNoContent)
		case IsNotFound(err):
			w.Header().Set("HX-Refresh", "true")
			http.Error(w, "Not found", http.StatusNotFound)
		case IsDecryptionError(err):
			http.Error(w, "Bad request", http.StatusBadRequest)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	return reg
}

// Path returns the URL path events are posted to.
func (reg *Registry) Path() string {
	return reg.opts.path
}

// Sessions reports how many sessions are live.
func (reg *Registry) Sessions() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// NewSession builds a tree with build against a fresh HTMLHost and mounts it.
func (reg *Registry) NewSession(build func(h Host) Fragments) *Session {
	s := &Session{
		reg:      reg,
		id:       uuid.NewString(),
		lastSeen: reg.now(),
	}
	s.host = NewHTMLHost(s.wire)

	s.mu.Lock()
	s.view = Mount(build(s.host), nil)
	s.mu.Unlock()

	reg.mu.Lock()
	reg.sessions[s.id] = s
	n := len(reg.sessions)
	reg.mu.Unlock()

	reg.opts.logger.Info("hxfrp: session created", "session", s.id, "sessions", n)
	return s
}

// Page returns a handler that starts a session per request and renders its
// root inside layout. A nil layout renders the root alone.
func (reg *Registry) Page(build func(h Host) Fragments, layout func(root templ.Component) templ.Component) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reg.sweep()
		s := reg.NewSession(build)
		page := s.Root()
		if layout != nil {
			page = layout(page)
		}
		if err := Render(w, r, page); err != nil {
			reg.opts.logger.Error("hxfrp: page render failed", "session", s.id, "error", err)
		}
	})
}

// Handler returns the HTTP handler for event posts.
// Mount this at Path() in your application.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		reg.sweep()

		var tok eventToken
		if err := reg.encoder.Decode(r.URL.Query().Get("t"), reg.opts.sensitive, &tok); err != nil {
			reg.OnError(w, r, wrapEncodingError(err))
			return
		}

		s, err := reg.lookup(tok.Session)
		if err != nil {
			reg.OnError(w, r, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		key, _ := strconv.Atoi(r.PostForm.Get(fieldKey))
		ev := Event{
			Type:  r.PostForm.Get(fieldEvent),
			Value: r.PostForm.Get(fieldValue),
			Key:   key,
		}

		html, changed, err := s.Dispatch(r.Context(), tok.Handler, ev)
		if err != nil {
			reg.opts.logger.Warn("hxfrp: dispatch failed",
				"session", s.id, "handler", tok.Handler, "event", ev.Type,
				"trigger", TriggerID(r), "target", TargetID(r), "error", err)
			reg.OnError(w, r, err)
			return
		}
		if !changed {
			w.Header().Set("HX-Reswap", "none")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, html)
	})
}

// Close unmounts every session.
func (reg *Registry) Close() {
	reg.mu.Lock()
	sessions := make([]*Session, 0, len(reg.sessions))
	for _, s := range reg.sessions {
		sessions = append(sessions, s)
	}
	reg.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (reg *Registry) lookup(id string) (*Session, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	s, ok := reg.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

func (reg *Registry) forget(id string) {
	reg.mu.Lock()
	delete(reg.sessions, id)
	reg.mu.Unlock()
}

// sweep closes sessions idle for longer than the TTL.
func (reg *Registry) sweep() {
	if reg.opts.ttl <= 0 {
		return
	}
	cutoff := reg.now().Add(-reg.opts.ttl)

	reg.mu.Lock()
	var expired []*Session
	for _, s := range reg.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
		}
	}
	reg.mu.Unlock()

	for _, s := range expired {
		reg.opts.logger.Info("hxfrp: session evicted", "session", s.id)
		s.Close()
	}
}

// Session is one mounted tree and the host its handlers live on.
//
// All propagation into the tree happens under the session lock, so the
// streams inside see one logical thread no matter how many requests arrive
// at once.
type Session struct {
	reg  *Registry
	id   string
	host *HTMLHost

	mu       sync.Mutex
	view     *View
	lastHTML string
	lastSeen time.Time
	closed   bool
}

// ID returns the session identifier carried in event tokens.
func (s *Session) ID() string {
	return s.id
}

// RootID returns the id attribute of the element wrapping the tree.
func (s *Session) RootID() string {
	return "hxfrp-" + s.id
}

// Host returns the host the tree was built against.
func (s *Session) Host() *HTMLHost {
	return s.host
}

// Root renders the tree's current nodes wrapped in the root element.
func (s *Session) Root() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		inner, err := s.render(ctx)
		if err != nil {
			return err
		}
		s.lastHTML = inner
		_, err = io.WriteString(w, s.wrap(inner))
		return err
	})
}

// Dispatch delivers ev to handler and re-renders the root. changed is false
// when the HTML equals what was last sent to the client. With SwapInner the
// returned HTML is the root's content only; otherwise it includes the root
// element.
func (s *Session) Dispatch(ctx context.Context, handler uint64, ev Event) (html string, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, fmt.Errorf("%w: %s", ErrSessionNotFound, s.id)
	}
	s.lastSeen = s.reg.now()

	if err := s.host.Dispatch(handler, ev); err != nil {
		return "", false, err
	}
	if err := s.view.Err(); err != nil {
		return "", false, fmt.Errorf("hxfrp: session %s: %w", s.id, err)
	}

	inner, err := s.render(ctx)
	if err != nil {
		return "", false, err
	}
	changed = inner != s.lastHTML
	s.lastHTML = inner
	if s.reg.opts.swap == SwapInner {
		return inner, changed, nil
	}
	return s.wrap(inner), changed, nil
}

// Close unmounts the tree, releases the host and removes the session from its registry.
// Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.view.Unmount()
	s.host.Release()
	s.mu.Unlock()

	s.reg.forget(s.id)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// render writes the tree's current nodes without the root element.
func (s *Session) render(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := RenderNodes(ctx, &buf, s.view.Nodes()); err != nil {
		s.reg.opts.logger.Error("hxfrp: render failed", "session", s.id, "error", err)
		return "", err
	}
	return buf.String(), nil
}

func (s *Session) wrap(inner string) string {
	return `<div id="` + templ.EscapeString(s.RootID()) + `">` + inner + "</div>"
}

// wire is the session host's WireFunc: it signs a token for the handler and
// points the element's events at the registry.
func (s *Session) wire(id uint64, events []string) templ.Attributes {
	token, err := s.reg.encoder.Encode(eventToken{Session: s.id, Handler: id}, s.reg.opts.sensitive)
	if err != nil {
		s.reg.opts.logger.Error("hxfrp: token encoding failed", "session", s.id, "handler", id, "error", err)
		return templ.Attributes{}
	}
	attrs := WireAttrs(s.reg.opts.path, token, events, s.RootID(), s.reg.opts.swap)
	// HTMX restores focus to an element with the same id after a swap.
	attrs["id"] = s.RootID() + "-h" + strconv.FormatUint(id, 10)
	return attrs
}
