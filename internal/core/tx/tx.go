// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces, not on a concrete driver.
// The pgx implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
	"errors"
)

// ErrHandleClosed is returned when a handle is used after Commit or Abort.
var ErrHandleClosed = errors.New("transaction handle already closed")

// Handle is one active database transaction.
//
// Commit and Abort are mutually exclusive terminal operations. Release must be
// deferred by whoever started the handle; it rolls back anything still open
// and is safe to call more than once.
type Handle interface {
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
	Release()
}

// Handler starts transactions.
type Handler interface {
	StartTransaction(ctx context.Context) (Handle, error)
}

// ReadOnlyHandler extends Handler with read-only transaction support.
type ReadOnlyHandler interface {
	Handler

	// StartReadOnly begins a transaction that rejects writes.
	StartReadOnly(ctx context.Context) (Handle, error)
}

// Within runs fn inside handle when one is supplied, or inside a fresh
// one-step transaction that it fully owns when handle is nil.
//
// A supplied handle is never committed or aborted here.
func Within[T any](ctx context.Context, h Handler, handle Handle, fn func(ctx context.Context, handle Handle) (T, error)) (T, error) {
	if handle != nil {
		return fn(ctx, handle)
	}
	return run(ctx, h.StartTransaction, fn)
}

// WithinReadOnly is Within for reads. Falls back to a read-write transaction
// when h cannot start read-only ones.
func WithinReadOnly[T any](ctx context.Context, h Handler, handle Handle, fn func(ctx context.Context, handle Handle) (T, error)) (T, error) {
	if handle != nil {
		return fn(ctx, handle)
	}
	if ro, ok := h.(ReadOnlyHandler); ok {
		return run(ctx, ro.StartReadOnly, fn)
	}
	return run(ctx, h.StartTransaction, fn)
}

func run[T any](ctx context.Context, start func(context.Context) (Handle, error), fn func(ctx context.Context, handle Handle) (T, error)) (T, error) {
	var zero T

	handle, err := start(ctx)
	if err != nil {
		return zero, err
	}
	defer handle.Release()

	result, err := fn(ctx, handle)
	if err != nil {
		// Abort errors are logged by the handle; the caller sees the original failure.
		_ = handle.Abort(context.WithoutCancel(ctx))
		return zero, err
	}

	if err := handle.Commit(ctx); err != nil {
		return zero, err
	}
	return result, nil
}
