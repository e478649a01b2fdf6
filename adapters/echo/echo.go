// Package hxfrpecho provides Echo framework integration for hxfrp sessions.
//
// Mount the event handler onto an Echo instance or group, then serve pages
// through the returned registry:
//
//	e := echo.New()
//	reg := hxfrpecho.Mount(e)
//	e.GET("/", hxfrpecho.Page(reg, build, layout))
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxfrpecho.MountGroup(g)
package hxfrpecho

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxfrp"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	key  []byte
	path string
	reg  []hxfrp.Option
}

// WithKey sets the signing key for the registry.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL path events are posted to.
// Defaults to "/_e/". Inside a group the path is relative to the group.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithRegistryOptions passes options through to hxfrp.NewRegistry.
func WithRegistryOptions(opts ...hxfrp.Option) Option {
	return func(o *options) {
		o.reg = append(o.reg, opts...)
	}
}

// Mount creates a registry and mounts its event handler on an Echo instance.
//
//	e := echo.New()
//	reg := hxfrpecho.Mount(e)
//
//	// With options:
//	reg := hxfrpecho.Mount(e, hxfrpecho.WithKey(key))
func Mount(e *echo.Echo, opts ...Option) *hxfrp.Registry {
	return mount(func(path string, h echo.HandlerFunc) []*echo.Route {
		return e.Any(path, h)
	}, opts)
}

// MountGroup creates a registry and mounts its event handler on an Echo group.
// This allows event posts to share middleware with the group (auth, logging, etc.).
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxfrpecho.MountGroup(g)
func MountGroup(g *echo.Group, opts ...Option) *hxfrp.Registry {
	return mount(func(path string, h echo.HandlerFunc) []*echo.Route {
		return g.Any(path, h)
	}, opts)
}

func mount(add func(path string, h echo.HandlerFunc) []*echo.Route, opts []Option) *hxfrp.Registry {
	o := &options{path: "/_e/"}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxfrpecho: failed to generate random key: %v", err))
		}
	}

	var reg *hxfrp.Registry
	routes := add(o.path+"*", func(c echo.Context) error {
		reg.Handler().ServeHTTP(c.Response(), c.Request())
		return nil
	})

	// Elements post to the routed path, which includes any group prefix.
	full := o.path
	if len(routes) > 0 {
		full = strings.TrimSuffix(routes[0].Path, "*")
	}
	reg = hxfrp.NewRegistry(key, append([]hxfrp.Option{hxfrp.WithPath(full)}, o.reg...)...)
	return reg
}

// Page returns an Echo handler that starts a session per request and
// renders it inside layout.
//
//	e.GET("/", hxfrpecho.Page(reg, build, layout))
func Page(reg *hxfrp.Registry, build func(h hxfrp.Host) hxfrp.Fragments, layout func(templ.Component) templ.Component) echo.HandlerFunc {
	return echo.WrapHandler(reg.Page(build, layout))
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxfrpecho.Render(c, myTemplate())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
