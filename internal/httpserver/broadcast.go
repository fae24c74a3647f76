package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	broadcastsvc "scentpos/internal/service/broadcast"
)

func listBroadcasts(svc *broadcastsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		broadcasts, err := svc.List(c.Request.Context(), limitQuery(c, 30))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, broadcasts)
	}
}

type broadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

func queueBroadcast(svc *broadcastsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req broadcastRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		queued, err := svc.Queue(c.Request.Context(), req.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, queued)
	}
}
