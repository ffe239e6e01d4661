package httpx

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/AngelCh415/digmar-dash/internal/ingest"
)

// APIError is the JSON body of every failed API call.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func newAPIError(status int, code, msg string, details any) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: msg, Details: details}
}

type parseDetails struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// loadError maps a load failure to its API form.
func loadError(err error) *APIError {
	var (
		se  *ingest.SchemaError
		pe  *ingest.ParseError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.Is(err, ingest.ErrEmptyInput):
		return newAPIError(http.StatusBadRequest, "EMPTY_INPUT", "no CSV file provided", nil)
	case errors.As(err, &se):
		return newAPIError(http.StatusUnprocessableEntity, "MALFORMED_INPUT",
			"CSV format does not match, check the column names",
			map[string]any{"missing": se.Missing})
	case errors.As(err, &pe):
		return newAPIError(http.StatusUnprocessableEntity, "PARSE_ERROR", pe.Error(),
			parseDetails{Line: pe.Line, Column: pe.Column, Value: pe.Value})
	case errors.As(err, &mbe):
		return newAPIError(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			"upload exceeds maximum allowed size", map[string]any{"max_size": mbe.Limit})
	}
	return newAPIError(http.StatusUnprocessableEntity, "PARSE_ERROR", err.Error(), nil)
}

func renderError(w http.ResponseWriter, r *http.Request, e *APIError) {
	_ = render.Render(w, r, e)
}
