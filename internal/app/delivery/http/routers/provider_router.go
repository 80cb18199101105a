package routers

import (
	"claimswitch-service/internal/app/delivery/http/controllers"
	"claimswitch-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachProviderRoutes(router chi.Router, _ *middlewares.Middlewares, ctrl *controllers.ProviderController) {
	// GET /providers
	router.Get("/", ctrl.GetAllProviders)

	// GET /providers/{providerID}
	router.Get("/{providerID}", ctrl.GetProviderByID)

	// POST /providers
	router.Post("/", ctrl.CreateProvider)

	// PUT /providers/{providerID}
	router.Put("/{providerID}", ctrl.UpdateProvider)
}
