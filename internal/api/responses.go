package api

import (
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/processor"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ClipboardRequest is the body of POST /process. Text is left untyped so
// that a missing or non-string value classifies as nothing instead of
// failing the request.
type ClipboardRequest struct {
	Text any `json:"text"`
}

// ObjectStorageInfo summarizes an upload in a response.
type ObjectStorageInfo struct {
	URL         string `json:"url"`
	Success     bool   `json:"success"`
	ContentType string `json:"content_type"`
}

// ProcessResponse is the body returned by POST /process.
type ProcessResponse struct {
	Message         string                      `json:"message"`
	TextLength      int                         `json:"text_length"`
	Preview         string                      `json:"preview"`
	Classification  domain.ClassificationResult `json:"classification"`
	OriginalText    any                         `json:"original_text"`
	LatexConversion string                      `json:"latex_conversion,omitempty"`
	S3Storage       *ObjectStorageInfo          `json:"s3_storage,omitempty"`
}

// ScreenshotRequest is the body of POST /process-image.
type ScreenshotRequest struct {
	Image string `json:"image" binding:"required"`
	Type  string `json:"type"`
}

// ScreenshotResponse is the body returned by POST /process-image.
type ScreenshotResponse struct {
	Message         string             `json:"message"`
	LatexConversion string             `json:"latex_conversion"`
	IsMath          bool               `json:"is_math"`
	Status          string             `json:"status"`
	Cached          bool               `json:"cached"`
	S3Storage       *ObjectStorageInfo `json:"s3_storage,omitempty"`
}

// CalendarEventRequest is the body of POST /create-calendar-event.
type CalendarEventRequest struct {
	Text        string `json:"text" binding:"required"`
	Description string `json:"description"`
}

// EventDetailsResponse echoes the extracted event.
type EventDetailsResponse struct {
	Summary     string `json:"summary"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// CalendarEventResponse is the body returned by POST /create-calendar-event.
type CalendarEventResponse struct {
	Message      string               `json:"message"`
	Status       string               `json:"status"`
	ICSContent   string               `json:"ics_content"`
	EventDetails EventDetailsResponse `json:"event_details"`
	OriginalText string               `json:"original_text"`
	DownloadURL  string               `json:"download_url,omitempty"`
	S3Storage    *ObjectStorageInfo   `json:"s3_storage,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error        string `json:"error"`
	Status       string `json:"status"`
	OriginalText string `json:"original_text,omitempty"`
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text *string `json:"text" binding:"required"`
}

// ClassifyResponse is the body returned by POST /api/v1/classify.
type ClassifyResponse struct {
	Result     domain.ClassificationResult `json:"result"`
	Categories []domain.Category          `json:"categories"`
}

// BatchClassifyRequest is the body of POST /api/v1/classify/batch.
type BatchClassifyRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=100"`
}

// BatchClassifyResponse is the body returned by POST /api/v1/classify/batch.
type BatchClassifyResponse struct {
	Results []processor.BatchResult `json:"results"`
	Total   int                     `json:"total"`
}

// RequestLogResponse is the body returned by GET /api/v1/requests.
type RequestLogResponse struct {
	Entries []domain.RequestLogEntry `json:"entries"`
	Total   int                      `json:"total"`
	Backend string                   `json:"backend"`
}

func storageInfo(obj domain.StoredObject) *ObjectStorageInfo {
	return &ObjectStorageInfo{URL: obj.URL, Success: obj.Success, ContentType: obj.ContentType}
}
