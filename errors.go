package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedFormat means the response parsed but did not have the
	// shape this client understands (no candidates, or a first part that
	// is not text). It indicates a client-side schema assumption broke,
	// not a remote failure.
	ErrUnexpectedFormat = errors.New("unexpected response format")

	// ErrImageDownload means fetching a remote image returned a non-2xx
	// status.
	ErrImageDownload = errors.New("image download failed")

	// ErrImageFormat means the image bytes were not recognized as an image.
	ErrImageFormat = errors.New("unrecognized image format")
)

// APIError is the error envelope returned by the API on a non-2xx status:
// {"error": {"code", "message", "status", "details"}}.
type APIError struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail is one structured entry of an APIError.
type ErrorDetail struct {
	Type     string         `json:"@type"`
	Reason   string         `json:"reason,omitempty"`
	Domain   string         `json:"domain,omitempty"`
	Metadata *ErrorMetadata `json:"metadata,omitempty"`
}

// ErrorMetadata names the service a detail refers to.
type ErrorMetadata struct {
	Service string `json:"service"`
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: %s (code %d, status %s)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("gemini: %s (code %d)", e.Message, e.Code)
}

// errorResponse wraps APIError the way the wire does.
type errorResponse struct {
	Error *APIError `json:"error"`
}
