package routers

import (
	"claimswitch-service/internal/app/delivery/http/controllers"
	"claimswitch-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachMembershipRoutes(router chi.Router, _ *middlewares.Middlewares, ctrl *controllers.MembershipController) {
	// POST /membership/validate
	router.Post("/validate", ctrl.ValidateMembership)
}
