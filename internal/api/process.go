package api

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/ZinnunMalikov/clipsmart-main/internal/assistant"
	"github.com/ZinnunMalikov/clipsmart-main/internal/cache"
	"github.com/ZinnunMalikov/clipsmart-main/internal/circuitbreaker"
	"github.com/ZinnunMalikov/clipsmart-main/internal/classifier"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/processor"
	"github.com/ZinnunMalikov/clipsmart-main/internal/screenshot"
)

const (
	welcomeMessage    = "Welcome to ClipSmart Classification API!"
	textReceived      = "Welcome to ClipSmart! Text received successfully."
	mathDetected      = "Math content detected - use screenshot capture for LaTeX conversion"
	screenshotDone    = "Screenshot processed successfully"
	calendarDone      = "Calendar event created successfully"
	noValidDate       = "Could not extract valid date from text"
	notConfiguredText = "assistant not configured"
)

// Welcome handles GET /.
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

// ProcessClipboard handles POST /process.
func (h *Handler) ProcessClipboard(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req ClipboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid clipboard request", logger.Error(err))
		h.telemetry.RecordRequest(domain.EndpointProcess, false)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Status: statusError})
		return
	}

	raw, _ := req.Text.(string)
	processed := processor.ProcessText(raw)

	// The original text is classified, not the unescaped one.
	result := h.classifier.ClassifyValue(ctx, req.Text)

	resp := ProcessResponse{
		Message:        textReceived,
		TextLength:     utf8.RuneCountInString(processed),
		Preview:        processor.Preview(processed),
		Classification: result,
		OriginalText:   req.Text,
	}

	if result.WantsLatex() {
		log.Info("Math content detected", logger.Int("text_length", resp.TextLength))
		resp.LatexConversion = mathDetected

		if h.store != nil {
			output := resp
			output.OriginalText = nil
			obj, err := h.store.UploadJSON(ctx, output, map[string]any{
				"source":          "text_input",
				"original_text":   processed,
				"processing_type": "math_detection",
			})
			if err != nil {
				log.Warn("Storing math detection result failed", logger.Error(err))
			}
			resp.S3Storage = storageInfo(obj)
		}
	}

	h.recordRequest(c, &domain.RequestLogEntry{
		Endpoint:           domain.EndpointProcess,
		ContentPreview:     truncate(processed, previewLength),
		ContentLength:      resp.TextLength,
		Classification:     result.Map(),
		ProcessingSuccess:  true,
		HasObjectStorage:   resp.S3Storage != nil && resp.S3Storage.Success,
		HasLatexConversion: resp.LatexConversion != "",
	})

	h.telemetry.RecordRequest(domain.EndpointProcess, true)
	c.JSON(http.StatusOK, resp)
}

// ProcessScreenshot handles POST /process-image.
func (h *Handler) ProcessScreenshot(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req ScreenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.screenshotFailed(c, http.StatusBadRequest, err, req)
		return
	}

	log.Info("Received screenshot", logger.String("type", req.Type))

	shot, err := screenshot.Decode(req.Image)
	if err != nil {
		h.screenshotFailed(c, http.StatusBadRequest, err, req)
		return
	}

	if h.assistant == nil {
		h.screenshotFailed(c, http.StatusServiceUnavailable, assistant.ErrNotConfigured, req)
		return
	}

	latex, cached := h.cachedLatex(c, shot.Hash)
	if !cached {
		latex, err = h.assistant.TranscribeLatex(ctx, shot.PNG)
		if err != nil {
			h.screenshotFailed(c, assistantStatus(err), err, req)
			return
		}
		if h.cache != nil {
			if putErr := h.cache.PutLatex(ctx, shot.Hash, latex); putErr != nil {
				log.Warn("Caching transcription failed", logger.Error(putErr))
			}
		}
	}

	processed := processor.ProcessText(latex)
	resp := ScreenshotResponse{
		Message:         screenshotDone,
		LatexConversion: processed,
		IsMath:          classifier.IsMath(processed),
		Status:          statusSuccess,
		Cached:          cached,
	}

	if h.store != nil && processed != "" {
		metadata := map[string]any{
			"source":          "screenshot",
			"type":            req.Type,
			"image_hash":      shot.Hash,
			"width":           shot.Width,
			"height":          shot.Height,
			"processing_type": "image_to_latex",
		}
		if texObj, texErr := h.store.UploadLatex(ctx, processed); texErr == nil {
			metadata["latex_uri"] = texObj.URI
		} else {
			log.Warn("Storing LaTeX source failed", logger.Error(texErr))
		}

		obj, upErr := h.store.UploadJSON(ctx, resp, metadata)
		if upErr != nil {
			log.Warn("Storing screenshot result failed", logger.Error(upErr))
		}
		resp.S3Storage = storageInfo(obj)
	}

	h.recordRequest(c, &domain.RequestLogEntry{
		Endpoint:           domain.EndpointProcessImage,
		ContentPreview:     "Screenshot (" + req.Type + ")",
		ContentLength:      len(req.Image),
		Classification:     map[string]bool{string(domain.CategoryMath): resp.IsMath},
		ProcessingSuccess:  true,
		HasObjectStorage:   resp.S3Storage != nil && resp.S3Storage.Success,
		HasLatexConversion: processed != "",
	})

	h.telemetry.RecordRequest(domain.EndpointProcessImage, true)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) cachedLatex(c *gin.Context, hash string) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	latex, err := h.cache.Latex(c.Request.Context(), hash)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.FromContext(c.Request.Context()).Warn("Transcription cache lookup failed", logger.Error(err))
		}
		return "", false
	}
	return latex, true
}

func (h *Handler) screenshotFailed(c *gin.Context, status int, err error, req ScreenshotRequest) {
	logger.FromContext(c.Request.Context()).Warn("Screenshot processing failed",
		logger.Int("status", status),
		logger.Error(err))

	h.recordRequest(c, &domain.RequestLogEntry{
		Endpoint:       domain.EndpointProcessImage,
		ContentPreview: "Screenshot (" + req.Type + ")",
		ContentLength:  len(req.Image),
	})
	h.telemetry.RecordRequest(domain.EndpointProcessImage, false)

	c.JSON(status, ErrorResponse{
		Error:  "Failed to process screenshot: " + err.Error(),
		Status: statusError,
	})
}

// CreateCalendarEvent handles POST /create-calendar-event.
func (h *Handler) CreateCalendarEvent(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req CalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.calendarFailed(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if h.assistant == nil {
		h.calendarFailed(c, http.StatusServiceUnavailable, ErrorResponse{
			Error:        notConfiguredText,
			OriginalText: req.Text,
		})
		return
	}

	ev, err := h.eventFor(c, req.Text)
	switch {
	case errors.Is(err, assistant.ErrNoDate):
		h.calendarFailed(c, http.StatusUnprocessableEntity, ErrorResponse{
			Error:        noValidDate,
			OriginalText: req.Text,
		})
		return
	case err != nil:
		h.calendarFailed(c, assistantStatus(err), ErrorResponse{
			Error:        "Failed to create calendar event: " + err.Error(),
			OriginalText: req.Text,
		})
		return
	}

	ics := h.calendar.Build(ev, req.Description)
	resp := CalendarEventResponse{
		Message:    calendarDone,
		Status:     statusSuccess,
		ICSContent: ics,
		EventDetails: EventDetailsResponse{
			Summary:     ev.Summary,
			StartDate:   ev.StartDate,
			EndDate:     ev.EndDate,
			Description: req.Description,
		},
		OriginalText: req.Text,
	}

	if h.store != nil {
		obj, upErr := h.store.UploadCalendar(ctx, ics)
		if upErr != nil {
			log.Warn("Storing calendar file failed", logger.Error(upErr))
		} else {
			resp.DownloadURL = obj.URL
			resp.S3Storage = storageInfo(obj)
		}
	}

	h.recordRequest(c, &domain.RequestLogEntry{
		Endpoint:          domain.EndpointCalendarEvent,
		ContentPreview:    truncate(req.Text, previewLength),
		ContentLength:     utf8.RuneCountInString(req.Text),
		Classification:    map[string]bool{string(domain.CategoryDate): true},
		ProcessingSuccess: true,
		HasObjectStorage:  resp.S3Storage != nil,
	})

	h.telemetry.RecordRequest(domain.EndpointCalendarEvent, true)
	c.JSON(http.StatusOK, resp)
}

// eventFor resolves text through the cache, then the assistant. Only
// successful extractions are cached.
func (h *Handler) eventFor(c *gin.Context, text string) (domain.EventDetails, error) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	if h.cache != nil {
		ev, err := h.cache.Event(ctx, text)
		if err == nil {
			return ev, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn("Event cache lookup failed", logger.Error(err))
		}
	}

	ev, err := h.assistant.ExtractEvent(ctx, text)
	if err != nil {
		return domain.EventDetails{}, err
	}

	if h.cache != nil {
		if putErr := h.cache.PutEvent(ctx, text, ev); putErr != nil {
			log.Warn("Caching event failed", logger.Error(putErr))
		}
	}
	return ev, nil
}

func (h *Handler) calendarFailed(c *gin.Context, status int, body ErrorResponse) {
	logger.FromContext(c.Request.Context()).Warn("Calendar event creation failed",
		logger.Int("status", status),
		logger.String("error", body.Error))

	h.recordRequest(c, &domain.RequestLogEntry{
		Endpoint:       domain.EndpointCalendarEvent,
		ContentPreview: truncate(body.OriginalText, previewLength),
		ContentLength:  utf8.RuneCountInString(body.OriginalText),
		Classification: map[string]bool{string(domain.CategoryDate): false},
	})
	h.telemetry.RecordRequest(domain.EndpointCalendarEvent, false)

	body.Status = statusError
	c.JSON(status, body)
}

// assistantStatus maps assistant failures: unavailable is 503, anything the
// upstream did wrong is 502.
func assistantStatus(err error) int {
	switch {
	case errors.Is(err, assistant.ErrNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
