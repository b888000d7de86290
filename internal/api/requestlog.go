package api

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/storage"
)

const (
	previewLength   = 100
	logWriteTimeout = 3 * time.Second
)

// recordRequest writes entry to the request log. Failures are logged and
// never fail the request.
func (h *Handler) recordRequest(c *gin.Context, entry *domain.RequestLogEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), logWriteTimeout)
	defer cancel()

	err := h.requestLog.Log(ctx, entry)
	h.telemetry.RecordRequestLog(h.requestLog.Backend(), err == nil)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("Request log write failed",
			logger.String("backend", h.requestLog.Backend()),
			logger.String("endpoint", entry.Endpoint),
			logger.Error(err))
	}
}

// ListRequests handles GET /api/v1/requests.
func (h *Handler) ListRequests(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer", Status: statusError})
			return
		}
		limit = n
	}

	entries, err := h.requestLog.Recent(c.Request.Context(), storage.ClampLimit(limit))
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Listing request log failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load request log", Status: statusError})
		return
	}

	c.JSON(http.StatusOK, RequestLogResponse{
		Entries: entries,
		Total:   len(entries),
		Backend: h.requestLog.Backend(),
	})
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
