package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/ecolearn/internal/pages"
)

// RouteNotFound is reported for paths no screen answers.
const RouteNotFound = "*"

// Guard tells the navigator whether protected screens may be shown.
type Guard interface {
	IsAuthenticated() bool
}

// Resolution is where a path ends up after redirects and the auth guard.
type Resolution struct {
	Route      string // route pattern, e.g. /learning/{id}
	Path       string // concrete path
	Params     map[string]string
	Redirected bool
}

// Navigator maps paths to screens. The guard is consulted on every Resolve; nothing is
// cached between calls.
type Navigator struct {
	mux       *chi.Mux
	guard     Guard
	protected map[string]bool
}

// NewNavigator creates the application's route table.
func NewNavigator(guard Guard) *Navigator {
	n := &Navigator{
		mux:       chi.NewRouter(),
		guard:     guard,
		protected: make(map[string]bool),
	}

	n.add(pages.RouteRoot, false)
	n.add(pages.RouteLogin, false)
	n.add(pages.RouteRegister, false)

	n.add(pages.RouteDashboard, true)
	n.add(pages.RouteLearning, true)
	n.add(pages.RouteLesson, true)
	n.add(pages.RoutePlantations, true)
	n.add(pages.RouteImpact, true)
	n.add(pages.RouteProfile, true)
	return n
}

func (n *Navigator) add(pattern string, protected bool) {
	n.mux.Get(pattern, func(http.ResponseWriter, *http.Request) {})
	n.protected[pattern] = protected
}

// Resolve finds the screen for path.
func (n *Navigator) Resolve(path string) Resolution {
	res := n.match(path)
	if res.Route == pages.RouteRoot {
		res = n.match(pages.RouteDashboard)
		res.Redirected = true
	}
	if n.protected[res.Route] && (n.guard == nil || !n.guard.IsAuthenticated()) {
		return Resolution{Route: pages.RouteLogin, Path: pages.RouteLogin, Redirected: true}
	}
	return res
}

func (n *Navigator) match(path string) Resolution {
	rctx := chi.NewRouteContext()
	if !n.mux.Match(rctx, http.MethodGet, path) {
		return Resolution{Route: RouteNotFound, Path: path}
	}

	res := Resolution{Route: rctx.RoutePattern(), Path: path}
	for i, key := range rctx.URLParams.Keys {
		if res.Params == nil {
			res.Params = make(map[string]string)
		}
		res.Params[key] = rctx.URLParams.Values[i]
	}
	return res
}
