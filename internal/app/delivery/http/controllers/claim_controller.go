package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/dto/responses"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ClaimController struct {
	Log          *zap.Logger
	ClaimUsecase contracts.ClaimUsecase
}

var (
	claimControllerInstance *ClaimController
	onceClaimController     sync.Once
)

func NewClaimController(logger *zap.Logger, claimUsecase contracts.ClaimUsecase) *ClaimController {
	onceClaimController.Do(func() {
		instance := &ClaimController{
			Log:          logger,
			ClaimUsecase: claimUsecase,
		}
		claimControllerInstance = instance
	})
	return claimControllerInstance
}

func (ctrl *ClaimController) SubmitDirectClaim(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ClaimController.SubmitDirectClaim requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ClaimController.SubmitDirectClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.SubmitDirectClaimRequest)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ClaimController.SubmitDirectClaim error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ClaimController.SubmitDirectClaim validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.ClaimUsecase.SubmitDirectClaim(ctx, request)
	if err != nil {
		ctrl.Log.Error("ClaimController.SubmitDirectClaim error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ClaimController.SubmitDirectClaim succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, response.ClaimNumber),
		zap.String(constvars.LoggingClaimStatusKey, response.Status),
	)
	utils.BuildRawJSONResponse(w, constvars.StatusOK, response)
}

func (ctrl *ClaimController) GetClaimStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ClaimController.GetClaimStatus requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ClaimController.GetClaimStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	claimNumber := chi.URLParam(r, constvars.URLParamClaimNumber)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ClaimUsecase.GetClaimStatus(ctx, claimNumber)
	if err != nil {
		ctrl.Log.Error("ClaimController.GetClaimStatus error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if response == nil {
		utils.BuildRawJSONResponse(w, constvars.StatusNotFound, responses.ClaimNotFoundResponse{Found: false})
		return
	}

	utils.BuildRawJSONResponse(w, constvars.StatusOK, response)
}

func (ctrl *ClaimController) UpdateClaimStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ClaimController.UpdateClaimStatus requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ClaimController.UpdateClaimStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UpdateClaimStatusRequest)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ClaimController.UpdateClaimStatus error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ClaimController.UpdateClaimStatus validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	claimNumber := chi.URLParam(r, constvars.URLParamClaimNumber)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ClaimUsecase.UpdateClaimStatus(ctx, claimNumber, request)
	if err != nil {
		ctrl.Log.Error("ClaimController.UpdateClaimStatus error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ClaimController.UpdateClaimStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
		zap.String(constvars.LoggingClaimStatusKey, response.Status),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ClaimStatusUpdatedSuccessMessage, response)
}

func (ctrl *ClaimController) GetClaimsByPatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ClaimController.GetClaimsByPatient requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ClaimController.GetClaimsByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patientID, err := strconv.ParseInt(chi.URLParam(r, constvars.URLParamPatientID), 10, 64)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrClientCustomMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ClaimUsecase.GetClaimsByPatient(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("ClaimController.GetClaimsByPatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, response)
}
