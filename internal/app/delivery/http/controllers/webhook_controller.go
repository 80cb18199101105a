package controllers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type WebhookController struct {
	Log            *zap.Logger
	WebhookUsecase contracts.WebhookUsecase
}

var (
	webhookControllerInstance *WebhookController
	onceWebhookController     sync.Once
)

func NewWebhookController(logger *zap.Logger, webhookUsecase contracts.WebhookUsecase) *WebhookController {
	onceWebhookController.Do(func() {
		instance := &WebhookController{
			Log:            logger,
			WebhookUsecase: webhookUsecase,
		}
		webhookControllerInstance = instance
	})
	return webhookControllerInstance
}

// HandleClaimCallback accepts a provider callback and answers 202 once the
// payload is durably queued. Reconciliation happens on the worker so slow
// claim store writes never back-pressure the provider.
func (ctrl *WebhookController) HandleClaimCallback(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("WebhookController.HandleClaimCallback requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	providerCode, ok := r.Context().Value(constvars.CONTEXT_PROVIDER_CODE_KEY).(string)
	if !ok || providerCode == "" {
		ctrl.Log.Error("WebhookController.HandleClaimCallback provider code not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerProcess(nil))
		return
	}

	ctrl.Log.Info("WebhookController.HandleClaimCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, providerCode),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadRequestBody(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.WebhookUsecase.EnqueueCallback(ctx, providerCode, body); err != nil {
		ctrl.Log.Error("WebhookController.HandleClaimCallback error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderCodeKey, providerCode),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("WebhookController.HandleClaimCallback accepted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderCodeKey, providerCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.WebhookAcceptedMessage, nil)
}
