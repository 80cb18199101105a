package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/pkg/constvars"
	"claimswitch-service/internal/pkg/dto/requests"
	"claimswitch-service/internal/pkg/exceptions"
	"claimswitch-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type MembershipController struct {
	Log               *zap.Logger
	MembershipUsecase contracts.MembershipUsecase
}

var (
	membershipControllerInstance *MembershipController
	onceMembershipController     sync.Once
)

func NewMembershipController(logger *zap.Logger, membershipUsecase contracts.MembershipUsecase) *MembershipController {
	onceMembershipController.Do(func() {
		instance := &MembershipController{
			Log:               logger,
			MembershipUsecase: membershipUsecase,
		}
		membershipControllerInstance = instance
	})
	return membershipControllerInstance
}

func (ctrl *MembershipController) ValidateMembership(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("MembershipController.ValidateMembership requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("MembershipController.ValidateMembership called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.ValidateMembershipRequest)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("MembershipController.ValidateMembership error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("MembershipController.ValidateMembership validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.MembershipUsecase.ValidateMembership(ctx, request)
	if err != nil {
		ctrl.Log.Error("MembershipController.ValidateMembership error from usecase",
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

	utils.BuildRawJSONResponse(w, constvars.StatusOK, response)
}
