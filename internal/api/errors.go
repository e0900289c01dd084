package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call
type ErrorKind string

const (
	// KindNetwork means the remote service could not be reached
	KindNetwork ErrorKind = "network"
	// KindServer is a 4xx/5xx response without a specific message
	KindServer ErrorKind = "server"
	// KindDomain is a 4xx/5xx response carrying a server-supplied message
	KindDomain ErrorKind = "domain"
	// KindUnknown covers everything else, e.g. undecodable responses
	KindUnknown ErrorKind = "unknown"
)

// Fixed user-facing messages.
const (
	MsgNetwork = "Network error"
	MsgServer  = "Server error"
)

// Machine-readable error codes sent by the server in the "code" field.
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeEmailTaken   = "EMAIL_TAKEN"
)

// Error is the normalized error returned by every Client operation
type Error struct {
	Kind    ErrorKind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts an *Error from err
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthFailure reports whether code marks an invalid or missing credential
func IsAuthFailure(code string) bool {
	switch code {
	case CodeTokenExpired, CodeTokenInvalid, CodeAuthRequired:
		return true
	}
	return false
}

// errorBody is the error envelope of the remote API
type errorBody struct {
	Code    string          `json:"code"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func (b errorBody) specific() string {
	if len(b.Details) > 0 {
		var details string
		if err := json.Unmarshal(b.Details, &details); err == nil && details != "" {
			return details
		}
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// normalizeStatus turns a non-2xx response into an *Error. A specific
// server message wins over the generic "Server error".
func normalizeStatus(status int, body []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	apiErr := &Error{Status: status, Code: eb.Code}
	msg := eb.specific()

	switch {
	case status >= 400 && status < 600 && msg != "":
		apiErr.Kind = KindDomain
		apiErr.Message = msg
	case status >= 400 && status < 600:
		apiErr.Kind = KindServer
		apiErr.Message = MsgServer
	case msg != "":
		apiErr.Kind = KindUnknown
		apiErr.Message = msg
	default:
		apiErr.Kind = KindUnknown
		apiErr.Message = fmt.Sprintf("unexpected status %d", status)
	}
	return apiErr
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

func unknownError(err error) *Error {
	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}
