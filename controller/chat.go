package controller

import (
	"net/http"

	"event_assistant/model"
	"event_assistant/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Chat handles one user message end to end.
func Chat(ctx *gin.Context) {
	var req model.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewError(model.ErrorParams, err))
		return
	}

	res, svcErr := factory.GetServiceFactory().NewChatService().Chat(ctx, &req)
	if svcErr != nil {
		log.Errorf("Chat error: %v", svcErr)
		ctx.JSON(statusFor(svcErr), svcErr)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

func statusFor(err *model.Error) int {
	switch err.Code {
	case model.ErrorParams, model.ErrorMissingClientID, model.ErrorMalformedOverrideQuery:
		return http.StatusBadRequest
	case model.ErrorBackendUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
