package item_repo_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/inventory"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/domain/stockitem"
	"stockkeeper/internal/infrastructure/storage/postgres"
	"stockkeeper/internal/infrastructure/storage/postgres/item_repo"
	"stockkeeper/internal/testutil/pgtest"
)

type ItemRepoIntegrationSuite struct {
	suite.Suite

	ctx      context.Context
	pool     *postgres.Pool
	txh      *postgres.TxHandler
	stock    *stockitem.AtomicService
	shopping *shoppingitem.AtomicService
	service  *inventory.StockItemService
	owner    string
}

func TestItemRepoIntegration(t *testing.T) {
	suite.Run(t, new(ItemRepoIntegrationSuite))
}

func (s *ItemRepoIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool = pgtest.Start(s.T())
	s.txh = postgres.NewTxHandler(s.pool, postgres.TxOptions{StatementTimeout: 5 * time.Second})

	s.stock = stockitem.NewAtomicService(item_repo.NewStockItemRepo(), s.txh)
	s.shopping = shoppingitem.NewAtomicService(item_repo.NewShoppingItemRepo(), s.txh)
	s.service = inventory.NewStockItemService(s.txh, s.stock, s.shopping)
}

func (s *ItemRepoIntegrationSuite) SetupTest() {
	pgtest.Truncate(s.T(), s.pool, "stock_items", "shopping_items")
	s.owner = id.MustNew()
}

func (s *ItemRepoIntegrationSuite) TestBoltScenario() {
	item, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "bolt", Quantity: 5, MinimumQuantity: 10})
	s.Require().NoError(err)
	s.True(id.Valid(item.ID))

	shop, err := s.shopping.ReadByStockItemID(s.ctx, nil, s.owner, item.ID)
	s.Require().NoError(err)
	s.Equal(5, shop.Quantity)
	s.Equal("bolt", shop.Name)
	s.Equal(s.owner, shop.OwnerID)

	deleted, err := s.service.Delete(s.ctx, s.owner, item.ID)
	s.Require().NoError(err)
	s.True(deleted)

	items, err := s.shopping.Read(s.ctx, nil, s.owner)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ItemRepoIntegrationSuite) TestConstraintsAreClassified() {
	_, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "Hammer", Quantity: 1})
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "hAMMER"})
	s.True(apperror.IsConflict(err), "got %v", err)

	for _, spec := range []stockitem.CreateSpec{
		{Name: ""},
		{Name: strings.Repeat("x", 101)},
		{Name: "neg", Quantity: -1},
		{Name: "big", Quantity: 10000},
		{Name: "min", MinimumQuantity: 10000},
		{ID: "not-a-uuid", Name: "id"},
	} {
		_, err := s.service.Create(s.ctx, s.owner, spec)
		s.True(apperror.IsBadRequest(err), "spec %+v: got %v", spec, err)
	}

	items, err := s.stock.Read(s.ctx, nil, s.owner)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *ItemRepoIntegrationSuite) TestDuplicateIDIsConflict() {
	itemID := id.MustNew()
	_, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{ID: itemID, Name: "a"})
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{ID: itemID, Name: "b"})
	s.True(apperror.IsConflict(err))
}

func (s *ItemRepoIntegrationSuite) TestShoppingFailureRollsBackStockItem() {
	// A shopping item already holding the name makes the second step fail.
	_, err := s.shopping.Create(s.ctx, nil, s.owner, shoppingitem.CreateSpec{
		Name:        "orphan",
		StockItemID: id.MustNew(),
	})
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "orphan", Quantity: 1})
	s.True(apperror.IsConflict(err))

	items, err := s.stock.Read(s.ctx, nil, s.owner)
	s.Require().NoError(err)
	s.Empty(items, "stock item insert must be rolled back")
}

func (s *ItemRepoIntegrationSuite) TestDeleteMissing() {
	_, err := s.service.Delete(s.ctx, s.owner, id.MustNew())
	s.True(apperror.IsNotFound(err))
}

func (s *ItemRepoIntegrationSuite) TestSecondaryKey() {
	item, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "clamp", Quantity: 2})
	s.Require().NoError(err)

	var key string
	err = s.pool.QueryRow(s.ctx, "SELECT _id FROM stock_items WHERE id = $1", item.ID).Scan(&key)
	s.Require().NoError(err)
	s.NotEqual(item.ID, key)

	got, err := s.stock.ReadByID(s.ctx, nil, s.owner, key)
	s.Require().NoError(err)
	s.Equal(item.ID, got.ID)

	deleted, err := s.service.Delete(s.ctx, s.owner, key)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.shopping.ReadByStockItemID(s.ctx, nil, s.owner, item.ID)
	s.True(apperror.IsNotFound(err), "shopping item is removed when deleting by store key")
}

func (s *ItemRepoIntegrationSuite) TestUpdateQuantity() {
	item, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "rivet", Quantity: 10})
	s.Require().NoError(err)

	_, err = s.service.UpdateQuantity(s.ctx, s.owner, item.ID, entity.Decrease, 11)
	s.True(apperror.IsBadRequest(err), "got %v", err)

	_, err = s.service.UpdateQuantity(s.ctx, s.owner, item.ID, entity.Increase, 9989)
	s.Require().NoError(err)

	_, err = s.service.UpdateQuantity(s.ctx, s.owner, item.ID, entity.Increase, 1)
	s.True(apperror.IsBadRequest(err))

	got, err := s.service.ReadByID(s.ctx, s.owner, item.ID)
	s.Require().NoError(err)
	s.Equal(9999, got.Quantity)

	_, err = s.service.UpdateQuantity(s.ctx, s.owner, id.MustNew(), entity.Increase, 1)
	s.True(apperror.IsNotFound(err))
}

func (s *ItemRepoIntegrationSuite) TestUpdate() {
	item, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "file", Quantity: 1})
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "rasp", Quantity: 1})
	s.Require().NoError(err)

	_, err = s.service.Update(s.ctx, s.owner, item.ID, stockitem.UpdateSpec{Name: "RASP", Quantity: 1})
	s.True(apperror.IsConflict(err))

	ok, err := s.service.Update(s.ctx, s.owner, item.ID, stockitem.UpdateSpec{Name: "flat file", Quantity: 3, MinimumQuantity: 4})
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.service.Update(s.ctx, id.MustNew(), item.ID, stockitem.UpdateSpec{Name: "x"})
	s.True(apperror.IsNotFound(err))
}

func (s *ItemRepoIntegrationSuite) TestMalformedDocument() {
	_, err := s.pool.Exec(s.ctx, "ALTER TABLE stock_items ALTER COLUMN name DROP NOT NULL")
	s.Require().NoError(err)
	defer func() {
		_, _ = s.pool.Exec(s.ctx, "DELETE FROM stock_items WHERE name IS NULL")
		_, err := s.pool.Exec(s.ctx, "ALTER TABLE stock_items ALTER COLUMN name SET NOT NULL")
		s.Require().NoError(err)
	}()

	itemID := id.MustNew()
	_, err = s.pool.Exec(s.ctx,
		"INSERT INTO stock_items (id, owner_id, name, quantity, minimum_quantity) VALUES ($1, $2, NULL, 1, 1)",
		itemID, s.owner)
	s.Require().NoError(err)

	_, err = s.stock.ReadByID(s.ctx, nil, s.owner, itemID)
	appErr, ok := apperror.AsAppError(err)
	s.Require().True(ok)
	s.Equal(apperror.KindUnclassified, appErr.Kind)
	s.Equal(apperror.CodeDataIntegrity, appErr.Code)
	s.ErrorIs(err, postgres.ErrMalformedDocument)
}

func (s *ItemRepoIntegrationSuite) TestHandleLifecycle() {
	h, err := s.txh.StartTransaction(s.ctx)
	s.Require().NoError(err)

	_, err = s.stock.Create(s.ctx, h, s.owner, stockitem.CreateSpec{Name: "pliers"})
	s.Require().NoError(err)

	s.Require().NoError(h.Commit(s.ctx))
	s.ErrorIs(h.Commit(s.ctx), tx.ErrHandleClosed)
	s.ErrorIs(h.Abort(s.ctx), tx.ErrHandleClosed)
	h.Release()
	h.Release()

	_, err = s.stock.Read(s.ctx, h, s.owner)
	s.Error(err, "a closed handle cannot run queries")
}

func (s *ItemRepoIntegrationSuite) TestReleaseRollsBackOpenHandle() {
	h, err := s.txh.StartTransaction(s.ctx)
	s.Require().NoError(err)

	_, err = s.stock.Create(s.ctx, h, s.owner, stockitem.CreateSpec{Name: "level"})
	s.Require().NoError(err)
	h.Release()

	items, err := s.stock.Read(s.ctx, nil, s.owner)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ItemRepoIntegrationSuite) TestCancelledContextStillAborts() {
	ctx, cancel := context.WithCancel(s.ctx)

	h, err := s.txh.StartTransaction(ctx)
	s.Require().NoError(err)
	_, err = s.stock.Create(ctx, h, s.owner, stockitem.CreateSpec{Name: "chisel"})
	s.Require().NoError(err)

	cancel()
	s.Error(h.Commit(ctx))
	h.Release()

	items, err := s.stock.Read(s.ctx, nil, s.owner)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ItemRepoIntegrationSuite) TestConcurrentCreateSameName() {
	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Create(s.ctx, s.owner, stockitem.CreateSpec{Name: "race"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case apperror.IsConflict(err):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)
	s.Equal(workers-1, conflicts)
}
