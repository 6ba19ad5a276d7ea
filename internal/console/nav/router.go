// Package nav tracks which view the console is on. It is the terminal
// equivalent of the original interface's history: components request
// redirects here and the REPL renders whatever route is current.
package nav

import "sync"

// Route identifies one console view.
type Route string

const (
	RouteSignIn    Route = "signin"
	RouteWiFi      Route = "wifi"
	RouteAP        Route = "ap"
	RouteNTP       Route = "ntp"
	RouteSecurity  Route = "security"
	RouteSystem    Route = "system"
	RouteSprinkler Route = "sprinkler"
)

// Router holds the current route plus the destination a visitor attempted
// before being bounced to sign-in.
type Router struct {
	mu       sync.Mutex
	current  Route
	stored   Route
	hasStore bool
}

func NewRouter() *Router {
	return &Router{current: RouteSignIn}
}

// Go makes route current.
func (r *Router) Go(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = route
}

// Current returns the current route.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// StoreRedirect records where an unauthenticated visitor was headed so the
// console can return there after sign-in.
func (r *Router) StoreRedirect(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = route
	r.hasStore = true
}

// ConsumeRedirect returns the stored destination, or def when none was
// recorded, and clears the record either way.
func (r *Router) ConsumeRedirect(def Route) Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasStore {
		return def
	}
	r.hasStore = false
	return r.stored
}
