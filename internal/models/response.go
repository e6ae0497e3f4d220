package models

// represents the response structure for /interviews
type InterviewsResponse struct {
	Total int         `json:"total"`
	Items []Interview `json:"items"`
}

// returned by the upload endpoint; analysis continues in the background
type UploadResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

// uniform error payload
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
