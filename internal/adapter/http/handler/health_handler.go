package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kapu/content-tagger-go/internal/util"
)

// HealthHandler handles GET /health. It checks nothing beyond the process
// being able to answer.
type HealthHandler struct {
	now util.Clock
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: util.FormatISO(h.now()),
	})
}
