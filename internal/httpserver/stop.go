package httpserver

import (
	"net/http"

	stopsvc "fleetmanager/internal/service/stop"
	"github.com/gin-gonic/gin"
)

type stopStatusRequest struct {
	Status string `json:"status"`
}

func updateStopStatusHandler(svc *stopsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		// Body takes precedence; a bare ?status= query also works.
		var req stopStatusRequest
		_ = c.ShouldBindJSON(&req)
		status := req.Status
		if status == "" {
			status = c.Query("status")
		}

		if err := svc.UpdateStatus(c.Request.Context(), id, status); err != nil {
			respondError(c, err, "Stop not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Stop status updated"})
	}
}
