package routers

import (
	"fmt"
	"time"

	"claimswitch-service/internal/app/config"
	"claimswitch-service/internal/app/delivery/http/controllers"
	"claimswitch-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	claimController *controllers.ClaimController,
	membershipController *controllers.MembershipController,
	webhookController *controllers.WebhookController,
	providerController *controllers.ProviderController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/claims", func(r chi.Router) {
				attachClaimRoutes(r, middlewares, claimController)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientClaimRoutes(r, middlewares, claimController)
			})

			r.Route("/membership", func(r chi.Router) {
				attachMembershipRoutes(r, middlewares, membershipController)
			})

			r.Route("/webhooks", func(r chi.Router) {
				attachWebhookRoutes(r, middlewares, webhookController)
			})

			r.Route("/providers", func(r chi.Router) {
				attachProviderRoutes(r, middlewares, providerController)
			})
		})
	})
}
