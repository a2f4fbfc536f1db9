package form

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/resumedash/internal/model"
	"github.com/resumedash/internal/validation"
)

const (
	DefaultSuccessMessage = "Operation completed successfully"
	DefaultErrorMessage   = "Operation failed"
)

// Transform turns raw form values into a typed payload. It must be pure.
type Transform[T any] func(url.Values) T

// SubmitFunc performs the remote mutation.
type SubmitFunc[T any] func(ctx context.Context, data T) model.ActionResult

type SubmissionConfig[T any] struct {
	Validator      *validation.Validator
	Transform      Transform[T]
	Submit         SubmitFunc[T]
	OnSuccess      func()
	SuccessMessage string
	ErrorMessage   string
	Notifier       Notifier
	Refresh        Refresher
	// OnSettled runs after the submit transition finished, including when
	// the caller stopped waiting. It is not called when submit never started.
	OnSettled func()
}

// Submission drives one form: transform, validate, submit, notify, refresh.
type Submission[T any] struct {
	cfg SubmissionConfig[T]

	pending    atomic.Bool
	submitting atomic.Bool
}

func NewSubmission[T any](cfg SubmissionConfig[T]) *Submission[T] {
	if cfg.SuccessMessage == "" {
		cfg.SuccessMessage = DefaultSuccessMessage
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = DefaultErrorMessage
	}
	return &Submission[T]{cfg: cfg}
}

// IsPending reports whether a submit transition is running.
func (s *Submission[T]) IsPending() bool {
	return s.pending.Load()
}

// IsSubmitting reports whether Submit is between extract and its final step.
func (s *Submission[T]) IsSubmitting() bool {
	return s.submitting.Load()
}

// Errors returns the issues from the last validation.
func (s *Submission[T]) Errors() []validation.Issue {
	if s.cfg.Validator == nil {
		return nil
	}
	return s.cfg.Validator.Errors()
}

func (s *Submission[T]) settle() settle {
	return settle{
		notifier:       s.cfg.Notifier,
		refresh:        s.cfg.Refresh,
		onSuccess:      s.cfg.OnSuccess,
		successMessage: s.cfg.SuccessMessage,
		errorMessage:   s.cfg.ErrorMessage,
	}
}

// Submit handles one form post. Failures are reported through the notifier
// and the returned Outcome; the only error is ErrBusy.
func (s *Submission[T]) Submit(ctx context.Context, values url.Values) (out Outcome, err error) {
	if s.pending.Load() || !s.submitting.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer s.submitting.Store(false)

	st := s.settle()
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Completed: true, Result: st.raised(recoveredError(r))}
			err = nil
		}
	}()

	data := s.cfg.Transform(values)

	if s.cfg.Validator != nil && !s.cfg.Validator.ValidateData(data) {
		return Outcome{Issues: s.cfg.Validator.Errors(), Completed: true}, nil
	}

	if !s.pending.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}

	result, completed := transition(ctx, func(ctx context.Context) model.ActionResult {
		defer s.pending.Store(false)
		return st.apply(s.cfg.Submit(ctx, data), nil)
	}, func(err error) model.ActionResult {
		s.pending.Store(false)
		return st.raised(err)
	}, s.cfg.OnSettled)

	return Outcome{Submitted: true, Completed: completed, Result: result}, nil
}
