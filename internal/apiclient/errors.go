package apiclient

import (
	"errors"
	"fmt"
)

// Kind discriminates the variants of Error.
type Kind int

const (
	// KindBase is an error envelope returned by the remote API.
	KindBase Kind = iota
	KindNoToken
	KindNetwork
	KindInvalidResponse
	KindJSONParse
	KindInvalidFormat
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindNoToken:
		return "no_token"
	case KindNetwork:
		return "network"
	case KindInvalidResponse:
		return "invalid_response"
	case KindJSONParse:
		return "json_parse"
	case KindInvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

// Code is the symbolic error code carried by API error envelopes.
type Code string

const (
	CodeTokenValidationFailed Code = "TOKEN_VALIDATION_FAILED"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodeEndpointNotFound      Code = "ENDPOINT_NOT_FOUND"
	CodeResourceNotFound      Code = "RESOURCE_NOT_FOUND"
	CodeInvalidIDFormat       Code = "INVALID_ID_FORMAT"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeValidationError       Code = "VALIDATION_ERROR"
	CodePayloadTooLarge       Code = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedMediaType  Code = "UNSUPPORTED_MEDIA_TYPE"
	CodeRateLimitExceeded     Code = "RATE_LIMIT_EXCEEDED"
	CodeCORSError             Code = "CORS_ERROR"
	CodeInternalServerError   Code = "INTERNAL_SERVER_ERROR"
	CodeInvalidResponse       Code = "INVALID_RESPONSE"
	CodeLocalJSONParseError   Code = "LOCAL_JSON_PARSE_ERROR"
	CodeNetworkError          Code = "NETWORK_ERROR"
	CodeNoTokenFound          Code = "NO_TOKEN_FOUND"
	CodeInvalidFormat         Code = "INVALID_FORMAT"
)

var knownCodes = map[Code]struct{}{
	CodeTokenValidationFailed: {},
	CodeUnauthorized:          {},
	CodeEndpointNotFound:      {},
	CodeResourceNotFound:      {},
	CodeInvalidIDFormat:       {},
	CodeInvalidArgument:       {},
	CodeValidationError:       {},
	CodePayloadTooLarge:       {},
	CodeUnsupportedMediaType:  {},
	CodeRateLimitExceeded:     {},
	CodeCORSError:             {},
	CodeInternalServerError:   {},
	CodeInvalidResponse:       {},
	CodeLocalJSONParseError:   {},
	CodeNetworkError:          {},
	CodeNoTokenFound:          {},
	CodeInvalidFormat:         {},
}

// Known reports whether c belongs to the fixed code set.
func (c Code) Known() bool {
	_, ok := knownCodes[c]
	return ok
}

// Error is the single error shape raised by the request layer. Kind tells
// the variants apart; the remaining fields mirror the API error envelope.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Code       Code
	Details    string
	ID         string

	cause error
}

func (e *Error) Error() string {
	if e.Details == "" || e.Details == e.Message {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NoTokenError reports that no bearer token was available.
func NoTokenError(details string) *Error {
	return &Error{Kind: KindNoToken, Message: "No authentication token available", Code: CodeNoTokenFound, Details: details}
}

// NetworkError reports a request that never produced a response.
func NetworkError(details string, cause error) *Error {
	return &Error{Kind: KindNetwork, Message: "Network Error", StatusCode: 500, Code: CodeNetworkError, Details: details, cause: cause}
}

func InvalidResponseError(details string) *Error {
	return &Error{Kind: KindInvalidResponse, Message: "Invalid Response Error", Code: CodeInvalidResponse, Details: details}
}

func JSONParseError(details string, cause error) *Error {
	return &Error{Kind: KindJSONParse, Message: "JSON Parse Error", Code: CodeLocalJSONParseError, Details: details, cause: cause}
}

func InvalidFormatError(details string) *Error {
	return &Error{Kind: KindInvalidFormat, Message: "Invalid Format Error", Code: CodeInvalidFormat, Details: details}
}

func baseError(env errorEnvelope) *Error {
	e := &Error{
		Kind:       KindBase,
		Message:    *env.Error,
		StatusCode: *env.StatusCode,
		Code:       Code(*env.Code),
		Details:    *env.Details,
	}
	if env.ID != nil {
		e.ID = *env.ID
	}
	return e
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}
