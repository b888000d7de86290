package domain

import "time"

// Endpoints recorded in the request log.
const (
	EndpointProcess       = "/process"
	EndpointProcessImage  = "/process-image"
	EndpointCalendarEvent = "/create-calendar-event"
)

// RequestLogEntry is one processed request, as persisted by the request log.
type RequestLogEntry struct {
	ID                 int64           `db:"id"                   json:"id,omitempty"`
	Timestamp          time.Time       `db:"timestamp"            json:"timestamp"`
	Endpoint           string          `db:"endpoint"             json:"endpoint"`
	ContentPreview     string          `db:"content_preview"      json:"content_preview"`
	ContentLength      int             `db:"content_length"       json:"content_length"`
	Classification     map[string]bool `db:"-"                    json:"classification,omitempty"`
	ProcessingSuccess  bool            `db:"processing_success"   json:"processing_success"`
	HasObjectStorage   bool            `db:"has_s3_storage"       json:"has_s3_storage"`
	HasLatexConversion bool            `db:"has_latex_conversion" json:"has_latex_conversion"`
}
