// Package memstore is an in-memory transactional store for tests.
//
// It implements tx.ReadOnlyHandler and the item and user repositories with the
// same constraints the Postgres schema enforces, returning the same classified
// errors. A transaction works on a snapshot taken at start; Commit publishes the
// snapshot, anything else discards it.
package memstore

import (
	"context"
	"errors"
	"sync"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/domain/stockitem"
	"stockkeeper/internal/domain/user"
)

// Operation names accepted by FailNext and Calls.
const (
	OpBegin  = "begin"
	OpCommit = "commit"

	OpStockInsert      = "stock.Insert"
	OpStockFind        = "stock.Find"
	OpStockFindOne     = "stock.FindOne"
	OpStockReplace     = "stock.Replace"
	OpStockAddQuantity = "stock.AddQuantity"
	OpStockDelete      = "stock.Delete"

	OpShoppingInsert              = "shopping.Insert"
	OpShoppingFind                = "shopping.Find"
	OpShoppingFindOne             = "shopping.FindOne"
	OpShoppingFindByStockItemID   = "shopping.FindByStockItemID"
	OpShoppingReplace             = "shopping.Replace"
	OpShoppingAddQuantity         = "shopping.AddQuantity"
	OpShoppingDelete              = "shopping.Delete"
	OpShoppingDeleteByStockItemID = "shopping.DeleteByStockItemID"

	OpUserInsert     = "user.Insert"
	OpUserFindByID   = "user.FindByID"
	OpUserFindByName = "user.FindByName"
	OpUserDelete     = "user.Delete"
)

var (
	errNoHandle      = errors.New("memstore: operation requires a transaction handle")
	errForeignHandle = errors.New("memstore: handle belongs to another store")
	errReadOnly      = errors.New("memstore: write in read-only transaction")
)

// Stats counts transaction lifecycle events.
type Stats struct {
	Started   int
	ReadOnly  int
	Committed int
	Aborted   int
	Released  int
}

// Open reports handles started but not yet released.
func (s Stats) Open() int {
	return s.Started - s.Released
}

type row[T any] struct {
	key string
	v   T
}

type state struct {
	stock    []row[stockitem.StockItem]
	shopping []row[shoppingitem.ShoppingItem]
	users    []row[user.User]
}

func (st state) clone() state {
	return state{
		stock:    append([]row[stockitem.StockItem](nil), st.stock...),
		shopping: append([]row[shoppingitem.ShoppingItem](nil), st.shopping...),
		users:    append([]row[user.User](nil), st.users...),
	}
}

// Store is the committed state plus fault injection and call counters.
type Store struct {
	mu     sync.Mutex
	data   state
	faults map[string]error
	calls  map[string]int
	stats  Stats
}

// New creates an empty store.
func New() *Store {
	return &Store{
		faults: make(map[string]error),
		calls:  make(map[string]int),
	}
}

// FailNext makes the next call of op fail with err.
// A plain error is surfaced as Unclassified, the way the Postgres classifier would.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// Calls returns how many times op reached the store.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Stats returns a copy of the lifecycle counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// StartTransaction implements tx.Handler.
func (s *Store) StartTransaction(ctx context.Context) (tx.Handle, error) {
	return s.start(ctx, false)
}

// StartReadOnly implements tx.ReadOnlyHandler.
func (s *Store) StartReadOnly(ctx context.Context) (tx.Handle, error) {
	return s.start(ctx, true)
}

func (s *Store) start(ctx context.Context, readOnly bool) (tx.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[OpBegin]++
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := s.takeFault(OpBegin); err != nil {
		return nil, err
	}

	s.stats.Started++
	if readOnly {
		s.stats.ReadOnly++
	}
	return &Tx{store: s, readOnly: readOnly, work: s.data.clone()}, nil
}

// takeFault must be called with mu held.
func (s *Store) takeFault(op string) error {
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err)
}

// exec runs fn against the working state of handle.
func (s *Store) exec(ctx context.Context, handle tx.Handle, op string, write bool, fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[op]++

	if handle == nil {
		return apperror.NewInternal(errNoHandle)
	}
	t, ok := handle.(*Tx)
	if !ok || t.store != s {
		return apperror.NewInternal(errForeignHandle)
	}
	if t.done {
		return apperror.NewInternal(tx.ErrHandleClosed)
	}
	if write && t.readOnly {
		return apperror.NewInternal(errReadOnly)
	}
	if err := ctx.Err(); err != nil {
		return apperror.NewInternal(err)
	}
	if err := s.takeFault(op); err != nil {
		return err
	}
	return fn(&t.work)
}

// Tx is a memstore transaction handle.
type Tx struct {
	store    *Store
	readOnly bool
	work     state
	done     bool
	released bool
}

// Commit publishes the working state.
func (t *Tx) Commit(ctx context.Context) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[OpCommit]++
	if t.done {
		return tx.ErrHandleClosed
	}
	t.done = true

	if err := ctx.Err(); err != nil {
		s.stats.Aborted++
		return apperror.NewInternal(err)
	}
	if err := s.takeFault(OpCommit); err != nil {
		s.stats.Aborted++
		return err
	}

	if !t.readOnly {
		s.data = t.work
	}
	s.stats.Committed++
	return nil
}

// Abort discards the working state.
func (t *Tx) Abort(context.Context) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.done {
		return tx.ErrHandleClosed
	}
	t.done = true
	s.stats.Aborted++
	return nil
}

// Release aborts the transaction if it is still open. Safe to call twice.
func (t *Tx) Release() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.released {
		return
	}
	t.released = true
	s.stats.Released++
	if !t.done {
		t.done = true
		s.stats.Aborted++
	}
}
