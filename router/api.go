package router

import (
	"event_assistant/controller"
	"event_assistant/middleware"

	"github.com/gin-gonic/gin"
)

func addApiRouter(engine *gin.Engine) {
	api := engine.Group("/api/v1")
	api.Use(gin.Recovery(), middleware.Logger)
	{
		api.POST("/chat", controller.Chat)
		api.GET("/conversation/:client_id", controller.GetConversation)
	}
}
