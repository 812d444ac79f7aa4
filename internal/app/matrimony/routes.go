// Package matrimony предоставляет маршруты для основного приложения.
package matrimony

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/admin/approve"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/admin/userlist"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/auth/login"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/auth/register"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/health"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/interaction/interest"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/interaction/shortlist"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/payment/paymentcreate"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/payment/paymentlist"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/profile/list"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/profile/read"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/profile/recommend"
	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/profile/shortlisted"
	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/jwt"
	authservice "github.com/kalyanamapp/matrimony-backend/internal/services/auth"
	membershipservice "github.com/kalyanamapp/matrimony-backend/internal/services/membership"
	profileservice "github.com/kalyanamapp/matrimony-backend/internal/services/profile"
	searchservice "github.com/kalyanamapp/matrimony-backend/internal/services/search"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	searchService *searchservice.Service,
	profileService *profileservice.Service,
	membershipService *membershipservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией: оплата доступна в любом статусе,
		// чтобы просроченный пользователь мог продлить членство
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/payments", paymentcreate.New(logger, membershipService).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, membershipService).ServeHTTP)
		})

		// Группа для активных участников
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.MembershipStatusMiddleware(logger, membershipService))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profiles", list.New(logger, searchService).ServeHTTP)
			r.Get("/profiles/recommendations", recommend.New(logger, searchService).ServeHTTP)
			r.Get("/profiles/{id}", read.New(logger, profileService).ServeHTTP)
			r.Post("/profiles/{id}/shortlist", shortlist.New(logger, profileService).ServeHTTP)
			r.Post("/profiles/{id}/interest", interest.New(logger, profileService).ServeHTTP)
			r.Get("/shortlist", shortlisted.New(logger, profileService).ServeHTTP)
		})

		// Административная группа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.AdminOnlyMiddleware(logger))
			r.Get("/admin/users", userlist.New(logger, searchService).ServeHTTP)
			r.Post("/admin/users/{id}/approve", approve.New(logger, membershipService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
