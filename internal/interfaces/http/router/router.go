// Package router mounts resource groups under the versioned API prefix.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Registrar mounts its routes on the API group
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router owns the /api/{version} group. Middleware added with Use applies to
// that group only, so probes mounted on the bare engine stay public.
type Router struct {
	engine  *gin.Engine
	version string
	chain   []gin.HandlerFunc
	groups  []Registrar
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion sets the version segment of the prefix ("v1" by default)
func WithAPIVersion(version string) Option {
	return func(r *Router) { r.version = version }
}

func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use appends API-only middleware
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.chain = append(r.chain, middleware...)
	return r
}

// Register queues groups for Setup
func (r *Router) Register(groups ...Registrar) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

// BasePath returns the versioned API prefix
func (r *Router) BasePath() string {
	return "/api/" + r.version
}

// Setup mounts every registered group. Call it once.
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath(), r.chain...)
	for _, g := range r.groups {
		g.RegisterRoutes(api)
	}
}

// Route is one endpoint of a Group, relative to the group prefix
type Route struct {
	Method   string
	Path     string
	handlers []gin.HandlerFunc
}

// Group is a resource prefix with its routes, middleware and nested groups
type Group struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []Route
	children   []*Group
}

func NewGroup(name, prefix string) *Group {
	return &Group{name: name, prefix: prefix}
}

// Name returns the group name
func (g *Group) Name() string { return g.name }

// Prefix returns the group prefix
func (g *Group) Prefix() string { return g.prefix }

// Use adds middleware to this group and its nested groups
func (g *Group) Use(middleware ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// Handle adds a route. The last handler is the endpoint, earlier ones are
// per-route middleware.
func (g *Group) Handle(method, relPath string, handlers ...gin.HandlerFunc) *Group {
	g.routes = append(g.routes, Route{Method: method, Path: relPath, handlers: handlers})
	return g
}

func (g *Group) GET(p string, h ...gin.HandlerFunc) *Group { return g.Handle(http.MethodGet, p, h...) }
func (g *Group) POST(p string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPost, p, h...)
}
func (g *Group) PUT(p string, h ...gin.HandlerFunc) *Group { return g.Handle(http.MethodPut, p, h...) }
func (g *Group) PATCH(p string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPatch, p, h...)
}
func (g *Group) DELETE(p string, h ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodDelete, p, h...)
}

// Nest creates a child group under this prefix
func (g *Group) Nest(name, prefix string) *Group {
	child := NewGroup(name, prefix)
	g.children = append(g.children, child)
	return child
}

// Routes lists every route of the group and its children with paths joined
// to the group prefix
func (g *Group) Routes() []Route {
	out := make([]Route, 0, len(g.routes))
	for _, rt := range g.routes {
		out = append(out, Route{Method: rt.Method, Path: joinPath(g.prefix, rt.Path)})
	}
	for _, child := range g.children {
		for _, rt := range child.Routes() {
			out = append(out, Route{Method: rt.Method, Path: joinPath(g.prefix, rt.Path)})
		}
	}
	return out
}

// RegisterRoutes implements Registrar
func (g *Group) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix, g.middleware...)
	for _, rt := range g.routes {
		group.Handle(rt.Method, rt.Path, rt.handlers...)
	}
	for _, child := range g.children {
		child.RegisterRoutes(group)
	}
}

func joinPath(prefix, rel string) string {
	if rel == "" {
		return prefix
	}
	return path.Join(prefix, rel)
}
