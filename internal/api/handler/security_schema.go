package handler

type incidentRequest struct {
	Type    string `json:"type"    validate:"required,oneof=login_attempt csrf_attempt xss_attempt unusual_activity multiple_requests"`
	Source  string `json:"source"  validate:"required"`
	Details string `json:"details" validate:"required"`
}

type scanRequest struct {
	Document string `json:"document"`
}

type fetchRequest struct {
	Method string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	URL    string `json:"url"    validate:"required,url"`
	Body   string `json:"body,omitempty"`
}

type fetchResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}
