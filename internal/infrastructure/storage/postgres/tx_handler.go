package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/tx"
	"stockkeeper/pkg/logger"
)

var tracer = otel.Tracer("stockkeeper/tx")

var (
	_ tx.ReadOnlyHandler = (*TxHandler)(nil)
	_ tx.Handle          = (*Tx)(nil)
)

var errNoTransaction = errors.New("storage call requires a postgres transaction handle")

// TxOptions configures transaction behavior.
type TxOptions struct {
	// IsolationLevel: pgx.Serializable, pgx.RepeatableRead, pgx.ReadCommitted
	IsolationLevel pgx.TxIsoLevel

	// StatementTimeout protects against long-running queries (0 disables)
	StatementTimeout time.Duration
}

// DefaultTxOptions returns production-safe defaults.
func DefaultTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel:   pgx.ReadCommitted,
		StatementTimeout: 30 * time.Second,
	}
}

// Beginner starts pgx transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxHandler starts Postgres transactions.
type TxHandler struct {
	db   Beginner
	opts TxOptions
}

// NewTxHandler creates a new transaction handler.
func NewTxHandler(db Beginner, opts TxOptions) *TxHandler {
	return &TxHandler{db: db, opts: opts}
}

// StartTransaction implements tx.Handler.
func (h *TxHandler) StartTransaction(ctx context.Context) (tx.Handle, error) {
	return h.begin(ctx, pgx.ReadWrite)
}

// StartReadOnly implements tx.ReadOnlyHandler.
func (h *TxHandler) StartReadOnly(ctx context.Context) (tx.Handle, error) {
	return h.begin(ctx, pgx.ReadOnly)
}

func (h *TxHandler) begin(ctx context.Context, mode pgx.TxAccessMode) (tx.Handle, error) {
	_, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(
			attribute.String("tx.isolation", string(h.opts.IsolationLevel)),
			attribute.String("tx.access_mode", string(mode)),
		))

	pgTx, err := h.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   h.opts.IsolationLevel,
		AccessMode: mode,
	})
	if err != nil {
		endSpan(span, err)
		return nil, classifyError("transaction", "", fmt.Errorf("begin transaction: %w", err))
	}

	// Set statement timeout for protection against runaway queries
	if h.opts.StatementTimeout > 0 {
		_, err = pgTx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", h.opts.StatementTimeout.Milliseconds()))
		if err != nil {
			_ = pgTx.Rollback(context.WithoutCancel(ctx))
			endSpan(span, err)
			return nil, classifyError("transaction", "", fmt.Errorf("set statement_timeout: %w", err))
		}
	}

	return &Tx{
		tx:   pgTx,
		span: span,
		log:  logger.FromContext(ctx),
	}, nil
}

type txState int

const (
	txOpen txState = iota
	txCommitted
	txAborted
)

func (s txState) String() string {
	switch s {
	case txCommitted:
		return "committed"
	case txAborted:
		return "aborted"
	default:
		return "open"
	}
}

// Tx is one Postgres transaction.
type Tx struct {
	mu       sync.Mutex
	tx       pgx.Tx
	state    txState
	released bool
	span     trace.Span
	log      *logger.Logger
}

// Commit commits the transaction. A failed commit leaves it rolled back.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != txOpen {
		return tx.ErrHandleClosed
	}

	if err := t.tx.Commit(ctx); err != nil {
		t.state = txAborted
		t.span.RecordError(err)
		return classifyError("transaction", "", fmt.Errorf("commit transaction: %w", err))
	}
	t.state = txCommitted
	return nil
}

// Abort rolls the transaction back.
func (t *Tx) Abort(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != txOpen {
		return tx.ErrHandleClosed
	}
	t.state = txAborted

	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.log.Errorw("rollback failed", "error", err)
		return classifyError("transaction", "", fmt.Errorf("rollback transaction: %w", err))
	}
	return nil
}

// Release rolls back a transaction that was neither committed nor aborted
// and ends its span. Safe to call more than once.
func (t *Tx) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.released {
		return
	}
	t.released = true

	if t.state == txOpen {
		t.state = txAborted
		// Background context so the rollback completes even after cancellation.
		if err := t.tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			t.log.Errorw("rollback on release failed", "error", err)
		}
	}

	t.span.SetAttributes(attribute.String("tx.outcome", t.state.String()))
	t.span.End()
}

// querier returns the pgx transaction behind handle.
func querier(handle tx.Handle) (Querier, error) {
	t, ok := handle.(*Tx)
	if !ok || t == nil {
		return nil, apperror.NewInternal(errNoTransaction)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != txOpen {
		return nil, apperror.NewInternal(tx.ErrHandleClosed)
	}
	return t.tx, nil
}

// Querier is the subset of pgx.Tx used by the collections.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func endSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
