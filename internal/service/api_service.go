package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/resumedash/internal/apiclient"
)

// Requester is the authenticated slice of the request layer the resource
// services depend on.
type Requester interface {
	RequestAuthenticated(ctx context.Context, method, path string, body any, opts ...apiclient.RequestOption) (*apiclient.Envelope, error)
}

// ErrUnsuccessful matches envelopes that came back with success=false.
var ErrUnsuccessful = errors.New("remote api reported failure")

type unsuccessfulError struct {
	message string
}

func (e *unsuccessfulError) Error() string {
	return e.message
}

func (e *unsuccessfulError) Is(target error) bool {
	return target == ErrUnsuccessful
}

// requireSuccess turns a success=false envelope into an error carrying the
// server message, or fallback when the server sent none.
func requireSuccess(env *apiclient.Envelope, fallback string) error {
	if env != nil && env.Success {
		return nil
	}
	message := fallback
	if env != nil && strings.TrimSpace(env.Message) != "" {
		message = env.Message
	}
	return &unsuccessfulError{message: message}
}

// requireData is requireSuccess plus a non-null data field.
func requireData(env *apiclient.Envelope, fallback string) error {
	if env != nil && env.Success && env.HasData() {
		return nil
	}
	message := fallback
	if env != nil && strings.TrimSpace(env.Message) != "" {
		message = env.Message
	}
	return &unsuccessfulError{message: message}
}

func requireID(id, message string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", apiclient.InvalidFormatError(message)
	}
	return url.PathEscape(trimmed), nil
}
