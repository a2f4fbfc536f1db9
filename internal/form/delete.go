package form

import (
	"context"
	"sync/atomic"

	"github.com/resumedash/internal/model"
	"github.com/resumedash/internal/modal"
)

const (
	DefaultConfirmTitle       = "Delete item?"
	DefaultConfirmDescription = "Are you sure you want to delete this item? This action cannot be undone."
	DefaultDeleteSuccess      = "Item deleted successfully"
	DefaultDeleteError        = "Failed to delete item"
)

type DeleteFunc func(ctx context.Context) model.ActionResult

type DeleteConfig struct {
	Delete             DeleteFunc
	OnSuccess          func()
	ConfirmTitle       string
	ConfirmDescription string
	SuccessMessage     string
	ErrorMessage       string
	// Modal defaults to an in-memory closed modal.
	Modal    *modal.Modal
	Notifier Notifier
	Refresh  Refresher
	// OnSettled runs after the delete transition finished, including when
	// the caller stopped waiting.
	OnSettled func()
}

// Delete guards a remote delete behind a confirmation modal.
type Delete struct {
	cfg     DeleteConfig
	modal   *modal.Modal
	pending atomic.Bool
}

func NewDelete(cfg DeleteConfig) *Delete {
	if cfg.ConfirmTitle == "" {
		cfg.ConfirmTitle = DefaultConfirmTitle
	}
	if cfg.ConfirmDescription == "" {
		cfg.ConfirmDescription = DefaultConfirmDescription
	}
	if cfg.SuccessMessage == "" {
		cfg.SuccessMessage = DefaultDeleteSuccess
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = DefaultDeleteError
	}
	m := cfg.Modal
	if m == nil {
		m = modal.New(modal.Options{})
	}
	return &Delete{cfg: cfg, modal: m}
}

func (d *Delete) IsOpen() bool { return d.modal.IsOpen() }
func (d *Delete) IsPending() bool { return d.pending.Load() }
func (d *Delete) Open() { d.modal.Open() }
func (d *Delete) Close() { d.modal.Close() }
func (d *Delete) ConfirmTitle() string { return d.cfg.ConfirmTitle }
func (d *Delete) ConfirmDescription() string { return d.cfg.ConfirmDescription }

// Execute runs the delete once the modal is open. On success the modal is
// closed after notify, refresh and the success callback; on failure it stays
// open.
func (d *Delete) Execute(ctx context.Context) (Outcome, error) {
	if !d.modal.IsOpen() {
		return Outcome{}, ErrNotConfirmed
	}
	if !d.pending.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}

	st := settle{
		notifier:       d.cfg.Notifier,
		refresh:        d.cfg.Refresh,
		onSuccess:      d.cfg.OnSuccess,
		successMessage: d.cfg.SuccessMessage,
		errorMessage:   d.cfg.ErrorMessage,
	}

	result, completed := transition(ctx, func(ctx context.Context) model.ActionResult {
		defer d.pending.Store(false)
		return st.apply(d.cfg.Delete(ctx), d.modal.Close)
	}, func(err error) model.ActionResult {
		d.pending.Store(false)
		return st.raised(err)
	}, d.cfg.OnSettled)

	return Outcome{Submitted: true, Completed: completed, Result: result}, nil
}
