package handlers

import (
	"gigdispatch/internal/utils"
	"gigdispatch/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type WSHandler struct {
	hub *websocket.Hub
}

func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades the request and subscribes the caller to the job
// event feed.
func (h *WSHandler) Connect(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	userType, _ := c.Get("user_type")
	userTypeStr, _ := userType.(string)

	if err := websocket.ServeWS(h.hub, c.Writer, c.Request, userID, userTypeStr); err != nil {
		utils.InternalServerErrorResponse(c)
	}
}
