package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventlodging/internal/delivery/http/controllers"
	"eventlodging/internal/delivery/http/middleware"
	"eventlodging/internal/domain"
)

// RouterDeps holds what NewRouter needs to mount the API.
type RouterDeps struct {
	Logger   *slog.Logger
	Verifier domain.TokenVerifier
	// Limiter throttles booking mutations. Nil disables rate limiting.
	Limiter middleware.Limiter

	Auth    *controllers.AuthController
	Booking *controllers.BookingController
	Hotel   *controllers.HotelController
	Health  *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(d.Verifier, d.Logger)
	limit := middleware.RateLimit(d.Limiter, d.Logger)

	mux.HandleFunc("GET /health", d.Health.Health)

	// Auth
	mux.HandleFunc("POST /auth/sign-in", d.Auth.SignIn)

	// Booking
	mux.HandleFunc("GET /booking", auth(d.Booking.GetBooking))
	mux.HandleFunc("POST /booking", auth(limit(d.Booking.CreateBooking)))
	mux.HandleFunc("PUT /booking/{bookingID}", auth(limit(d.Booking.ChangeBooking)))

	// Hotels
	mux.HandleFunc("GET /hotels", auth(d.Hotel.ListHotels))
	mux.HandleFunc("GET /hotels/{hotelID}/rooms", auth(d.Hotel.ListRooms))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
