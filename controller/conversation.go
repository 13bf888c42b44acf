package controller

import (
	"net/http"
	"strconv"

	"event_assistant/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GetConversation returns the client's full ordered message history. The
// include_results query flag adds each turn's stored raw search payload.
func GetConversation(ctx *gin.Context) {
	clientID := ctx.Param("client_id")
	includeRaw, _ := strconv.ParseBool(ctx.DefaultQuery("include_results", "false"))

	res, svcErr := factory.GetServiceFactory().NewChatService().GetConversation(ctx, clientID, includeRaw)
	if svcErr != nil {
		log.Errorf("GetConversation error: %v", svcErr)
		ctx.JSON(statusFor(svcErr), svcErr)
		return
	}

	ctx.JSON(http.StatusOK, res)
}
