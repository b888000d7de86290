package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Status: statusError})
		return
	}

	result := h.classifier.Classify(c.Request.Context(), *req.Text)
	c.JSON(http.StatusOK, ClassifyResponse{
		Result:     result,
		Categories: result.Categories(),
	})
}

// ClassifyBatch handles POST /api/v1/classify/batch.
func (h *Handler) ClassifyBatch(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid batch classification request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Status: statusError})
		return
	}
	if len(req.Texts) > h.maxBatch {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  fmt.Sprintf("batch holds %d texts, limit is %d", len(req.Texts), h.maxBatch),
			Status: statusError,
		})
		return
	}

	results, err := h.batch.Process(ctx, req.Texts)
	if err != nil {
		log.Error("Batch classification failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Status: statusError})
		return
	}

	log.Info("Batch classification completed", logger.Int("total", len(results)))
	c.JSON(http.StatusOK, BatchClassifyResponse{Results: results, Total: len(results)})
}
