package apiclient

// Meta carries pagination details returned by list endpoints.
type Meta struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
}

// DataResponse is the backend's standard success envelope: a data payload
// with optional pagination and message.
type DataResponse[T any] struct {
	Data    T      `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
	Message string `json:"message,omitempty"`
}
