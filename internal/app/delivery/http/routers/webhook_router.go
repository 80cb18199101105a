package routers

import (
	"claimswitch-service/internal/app/delivery/http/controllers"
	"claimswitch-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRoutes(router chi.Router, middlewares *middlewares.Middlewares, ctrl *controllers.WebhookController) {
	// POST /webhooks/claims/{providerCode}
	router.With(middlewares.WebhookAuth).Post("/claims/{providerCode}", ctrl.HandleClaimCallback)
}
