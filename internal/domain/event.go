package domain

// EventDetails is the calendar information extracted from free text. Start and
// End use the UTC basic format YYYYMMDDTHHMMSSZ.
type EventDetails struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Summary      string `json:"summary"`
	HasValidDate bool   `json:"has_valid_date"`
}

// StoredObject describes an upload to the object store.
type StoredObject struct {
	Success     bool   `json:"success"`
	URL         string `json:"url,omitempty"`
	URI         string `json:"s3_uri,omitempty"`
	Key         string `json:"key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Error       string `json:"error,omitempty"`
}
