// Package types holds the wire shapes shared between api/responses and the
// dashboard client.
package types

// SuccessEnvelope wraps every 2xx payload under a "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Details is only populated for
// codes whose metadata allows it, so internal failure text never leaks.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx payload under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
