// Package form 实现表单提交与删除确认的控制流程。
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/resumedash/internal/model"
	"github.com/resumedash/internal/toast"
	"github.com/resumedash/internal/validation"
)

var (
	// ErrBusy is returned when a controller is asked to start while its
	// previous operation is still running.
	ErrBusy = errors.New("form: operation already in progress")
	// ErrNotConfirmed is returned when a delete is executed without an open
	// confirmation modal.
	ErrNotConfirmed = errors.New("form: delete not confirmed")
)

const unexpectedErrorMessage = "An unexpected error occurred"

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Show(message string, t toast.Type) toast.Toast
}

// Refresher re-renders the current view after a successful mutation.
type Refresher func()

// Outcome describes what a controller did with one request.
type Outcome struct {
	// Issues holds validation failures; submit was not called when non-empty.
	Issues []validation.Issue
	// Submitted is true once the remote call was started.
	Submitted bool
	// Completed is false when the caller stopped waiting before the
	// transition finished. The result is then only reported via the notifier.
	Completed bool
	Result    model.ActionResult
}

func (o Outcome) Invalid() bool {
	return len(o.Issues) > 0
}

type settle struct {
	notifier       Notifier
	refresh        Refresher
	onSuccess      func()
	successMessage string
	errorMessage   string
}

func (s settle) notify(message string, t toast.Type) {
	if s.notifier != nil {
		s.notifier.Show(message, t)
	}
}

// apply reports a finished action and returns the result with its message
// resolved.
func (s settle) apply(result model.ActionResult, after func()) model.ActionResult {
	if result.Success {
		if result.Message == "" {
			result.Message = s.successMessage
		}
		s.notify(result.Message, toast.Success)
		if s.refresh != nil {
			s.refresh()
		}
		if s.onSuccess != nil {
			s.onSuccess()
		}
		if after != nil {
			after()
		}
		return result
	}
	if result.Message == "" {
		result.Message = s.errorMessage
	}
	s.notify(result.Message, toast.Error)
	return result
}

// raised reports an error or panic value and returns the failed result.
func (s settle) raised(err error) model.ActionResult {
	message := unexpectedErrorMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	s.notify(message, toast.Error)
	return model.ActionResult{Success: false, Message: message}
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	if s, ok := r.(string); ok {
		return errors.New(s)
	}
	return fmt.Errorf("%v", r)
}

// transition runs fn on a context detached from ctx and waits for it or for
// ctx, whichever ends first. Panics inside fn are passed to onPanic.
// onSettled runs once fn has finished, even when the caller stopped waiting.
func transition(ctx context.Context, fn func(context.Context) model.ActionResult, onPanic func(error) model.ActionResult, onSettled func()) (model.ActionResult, bool) {
	detached := context.WithoutCancel(ctx)
	done := make(chan model.ActionResult, 1)

	go func() {
		var result model.ActionResult
		defer func() {
			if r := recover(); r != nil {
				result = onPanic(recoveredError(r))
			}
			if onSettled != nil {
				onSettled()
			}
			done <- result
		}()
		result = fn(detached)
	}()

	select {
	case result := <-done:
		return result, true
	case <-ctx.Done():
		return model.ActionResult{}, false
	}
}
