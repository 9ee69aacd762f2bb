package http

import (
	"context"
	"net/http"

	"car-rental-backend/internal/service"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const APIPrefix = "/api/v1"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Brands      service.BrandService
	CarFeatures service.CarFeatureService
	Cars        service.CarService
	Users       service.UserService
	Rentals     service.RentalService
	Health      Pinger
}

type RouterOptions struct {
	RateLimitRPS   float64 // 0 disables rate limiting
	RateLimitBurst int
}

// NewRouter builds the HTTP handler serving the whole API.
func NewRouter(svcs Services, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "route not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method_not_allowed", Message: "method not allowed"})
	})

	router.Use(recoverer, requestID, accessLog)
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		router.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)))
	}

	// Subrouters do not inherit these handlers.
	api := router.PathPrefix(APIPrefix).Subrouter()
	api.NotFoundHandler = router.NotFoundHandler
	api.MethodNotAllowedHandler = router.MethodNotAllowedHandler
	RegisterHealthRoutes(api, svcs.Health)
	RegisterBrandRoutes(api, svcs.Brands)
	RegisterCarFeatureRoutes(api, svcs.CarFeatures)
	RegisterCarRoutes(api, svcs.Cars)
	RegisterUserRoutes(api, svcs.Users)
	RegisterRentalRoutes(api, svcs.Rentals)

	return otelhttp.NewHandler(router, "car-rental-api")
}
