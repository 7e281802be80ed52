package shoppingitem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/testutil/memstore"
)

func TestAtomicService(t *testing.T) {
	store := memstore.New()
	svc := shoppingitem.NewAtomicService(store.ShoppingItems(), store)
	ctx := context.Background()
	owner := id.MustNew()
	stockID := id.MustNew()

	item, err := svc.Create(ctx, nil, owner, shoppingitem.CreateSpec{Name: "bolt", Quantity: 5, StockItemID: stockID})
	require.NoError(t, err)
	assert.True(t, id.Valid(item.ID))

	t.Run("one shopping item per stock item", func(t *testing.T) {
		_, err := svc.Create(ctx, nil, owner, shoppingitem.CreateSpec{Name: "other", StockItemID: stockID})
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("read by stock item", func(t *testing.T) {
		got, err := svc.ReadByStockItemID(ctx, nil, owner, stockID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)

		_, err = svc.ReadByStockItemID(ctx, nil, id.MustNew(), stockID)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("quantity delta", func(t *testing.T) {
		ok, err := svc.UpdateQuantity(ctx, nil, owner, item.ID, entity.Decrease, 0)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = svc.UpdateQuantity(ctx, nil, owner, item.ID, entity.Decrease, 2)
		require.NoError(t, err)

		got, err := svc.ReadByID(ctx, nil, owner, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Quantity)
	})

	t.Run("update", func(t *testing.T) {
		ok, err := svc.Update(ctx, nil, owner, item.ID, shoppingitem.UpdateSpec{Name: "bolts", Quantity: 9})
		require.NoError(t, err)
		assert.True(t, ok)

		items, err := svc.Read(ctx, nil, owner)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "bolts", items[0].Name)
		assert.Equal(t, 9, items[0].Quantity)
	})

	t.Run("delete by stock item is idempotent", func(t *testing.T) {
		deleted, err := svc.DeleteByStockItemID(ctx, nil, owner, stockID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = svc.DeleteByStockItemID(ctx, nil, owner, stockID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = svc.Delete(ctx, nil, owner, item.ID)
		assert.True(t, apperror.IsNotFound(err))
	})

	assert.Zero(t, store.Stats().Open())
}
