package routerhelper

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup prefixes every registered route with a common base path.
type RouteGroup struct {
	router *httprouter.Router
	base   string
}

func NewRouteGroup(router *httprouter.Router, base string) *RouteGroup {
	return &RouteGroup{router: router, base: base}
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.router.GET(g.base+path, handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.router.POST(g.base+path, handle)
}

func (g *RouteGroup) Handler(method, path string, handler http.Handler) {
	g.router.Handler(method, g.base+path, handler)
}
