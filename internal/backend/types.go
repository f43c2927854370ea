package backend

import "fmt"

// UploadRequest describes the local file to send to /api/upload.
type UploadRequest struct {
	Name        string // file name reported to the backend
	Path        string // where to read the bytes from
	ContentType string // MIME type of the file part; detected when empty
}

// UploadResult is the success body of /api/upload.
type UploadResult struct {
	FileName   string `json:"file_name"`
	NumChunks  int    `json:"num_chunks"`
	Collection string `json:"collection,omitempty"`
}

// QueryResult is the success body of /api/query. Contexts is nil when the
// backend omitted the field.
type QueryResult struct {
	Answer   string   `json:"answer"`
	Contexts []string `json:"contexts,omitempty"`
}

// HealthResult is the body of /api/health.
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type errorBody struct {
	Error string `json:"error"`
}

// StatusError is returned for any non-2xx response. Message holds the
// backend's structured "error" field and is empty when the body had none.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}
