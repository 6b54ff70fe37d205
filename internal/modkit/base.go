package modkit

import (
	"net/http"

	"minishop/internal/modkit/httpkit"
	str "minishop/internal/platform/strings"
)

// Option adjusts a Base before the module finishes building it
type Option func(*Base)

// WithName overrides the module name
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix overrides the mount path
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends mw after the module's own middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// WithPorts injects the collaborators a module needs, see Injected
func WithPorts[T any](p T) Option { return func(b *Base) { b.injected = p } }

// Base mounts a module's routes under its prefix behind its middleware
// modules embed it and call Routes once built
type Base struct {
	name     string
	prefix   string
	own      []func(http.Handler) http.Handler
	mw       []func(http.Handler) http.Handler
	injected any
	routes   func(httpkit.Router)
}

// Build applies opts over the default name and prefix
func Build(name, prefix string, opts ...Option) *Base {
	b := &Base{name: name, prefix: prefix}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Injected returns the value given to WithPorts when it is a T
func Injected[T any](b *Base) (T, bool) {
	v, ok := b.injected.(T)
	return v, ok
}

// Use adds module middleware, it runs before anything passed WithMiddlewares
func (b *Base) Use(mw ...func(http.Handler) http.Handler) { b.own = append(b.own, mw...) }

// Routes sets the endpoint registration run at mount time
func (b *Base) Routes(fn func(httpkit.Router)) { b.routes = fn }

// Name panics when empty
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix is normalized to a single leading slash
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Ports is nil, modules that export ports shadow it
func (b *Base) Ports() any { return nil }

// Middlewares in the order they wrap the routes
func (b *Base) Middlewares() []func(http.Handler) http.Handler {
	return append(append([]func(http.Handler) http.Handler(nil), b.own...), b.mw...)
}

// MountRoutes opens the prefix group on r
func (b *Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(g httpkit.Router) {
		for _, mw := range b.Middlewares() {
			g.Use(mw)
		}
		if b.routes != nil {
			b.routes(g)
		}
	})
}
