package routers

import (
	"claimswitch-service/internal/app/delivery/http/controllers"
	"claimswitch-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachClaimRoutes(router chi.Router, _ *middlewares.Middlewares, ctrl *controllers.ClaimController) {
	// POST /claims/submit-direct
	router.Post("/submit-direct", ctrl.SubmitDirectClaim)

	// GET /claims/{claimNumber}/status
	router.Get("/{claimNumber}/status", ctrl.GetClaimStatus)

	// PATCH /claims/{claimNumber}/status
	router.Patch("/{claimNumber}/status", ctrl.UpdateClaimStatus)
}

func attachPatientClaimRoutes(router chi.Router, _ *middlewares.Middlewares, ctrl *controllers.ClaimController) {
	// GET /patients/{patientID}/claims
	router.Get("/{patientID}/claims", ctrl.GetClaimsByPatient)
}
