package errors

// ErrorResponse is the uniform failure envelope. Every non-2xx response
// carries this shape; callers never see a raw panic or driver error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// New builds a failure envelope. The underlying error, when present, is
// attached verbatim as Details for diagnostics.
func New(message string, err error) ErrorResponse {
	resp := ErrorResponse{Success: false, Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	return resp
}
