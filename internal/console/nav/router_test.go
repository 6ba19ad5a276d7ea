package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterGoAndCurrent(t *testing.T) {
	r := NewRouter()
	require.Equal(t, RouteSignIn, r.Current())

	r.Go(RouteWiFi)
	require.Equal(t, RouteWiFi, r.Current())
}

func TestRouterRedirect(t *testing.T) {
	r := NewRouter()

	require.Equal(t, RouteWiFi, r.ConsumeRedirect(RouteWiFi))

	r.StoreRedirect(RouteSecurity)
	require.Equal(t, RouteSecurity, r.ConsumeRedirect(RouteWiFi))

	// consumed: falls back to the default again
	require.Equal(t, RouteWiFi, r.ConsumeRedirect(RouteWiFi))
}
