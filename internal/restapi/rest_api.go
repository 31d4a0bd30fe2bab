package restapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"edudash.insights.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter.
// Call Close once the server has stopped.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Handler returns the router wrapped in the full middleware chain. The
// outermost layer runs first: request logging, security headers,
// compression, then rate limiting. Metrics are recorded per route inside
// the router.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}

// Close releases the background work owned by the API.
func (api *RestAPI) Close() error {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
	return nil
}
