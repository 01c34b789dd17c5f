package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapu/content-tagger-go/internal/domain"
	"github.com/kapu/content-tagger-go/internal/service/tagging"
	"go.uber.org/zap"
)

const authFailedMessage = "Failed to authenticate with Mezink API"

// BatchRunner processes a decoded batch.
type BatchRunner interface {
	Run(ctx context.Context, rows []domain.Row) ([]domain.ClassificationResult, error)
}

// ProcessHandler handles POST /process
type ProcessHandler struct {
	batches BatchRunner
	logger  *zap.Logger
}

func NewProcessHandler(batches BatchRunner, logger *zap.Logger) *ProcessHandler {
	return &ProcessHandler{
		batches: batches,
		logger:  logger,
	}
}

// Process returns one result per input row, or a single error object.
func (h *ProcessHandler) Process(c *gin.Context) {
	var req domain.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Server error: invalid request body: "+err.Error())
		return
	}

	// a started batch runs to completion even if the caller goes away
	ctx := context.WithoutCancel(c.Request.Context())

	h.logger.Info("Batch received",
		zap.String("request_id", c.GetString("request_id")),
		zap.Int("rows", len(req.Rows)),
	)

	results, err := h.batches.Run(ctx, req.Rows)
	if err != nil {
		if errors.Is(err, tagging.ErrAuthenticationFailed) {
			respondError(c, authFailedMessage)
			return
		}
		respondError(c, "Server error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, results)
}
