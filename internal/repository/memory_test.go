package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimko_store/internal/models"
)

func TestReviewStorageCapKeepsMostRecent(t *testing.T) {
	repo := NewMemoryReviewRepository()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < MaxReviewsPerProduct+5; i++ {
		review := &models.Review{
			ID:        fmt.Sprintf("REV-%d", i),
			ProductID: "1",
			Name:      "Reviewer",
			Rating:    4,
			Comment:   "Still my favourite snack.",
			Date:      base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(context.Background(), review))
	}

	reviews, err := repo.GetByProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, reviews, MaxReviewsPerProduct)

	// The oldest entries were the ones trimmed
	for _, review := range reviews {
		assert.NotEqual(t, "REV-0", review.ID)
		assert.NotEqual(t, "REV-4", review.ID)
	}
}

func TestOrderMirrorRoundTrip(t *testing.T) {
	mirror := NewMemoryOrderMirror()

	_, err := mirror.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	orders := []models.Order{
		{OrderID: "ORD-1", Name: "Ali Khan", Status: models.OrderPending},
	}
	require.NoError(t, mirror.Save(orders))

	loaded, err := mirror.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ORD-1", loaded[0].OrderID)
}

func TestPromoRepositoryCopiesState(t *testing.T) {
	repo := NewMemoryPromoRepository()

	state := models.DefaultFreeOrdersState(20)
	state.ConsumedOrders["ORD-1"] = true
	require.NoError(t, repo.Save(state))

	// Mutating the caller's map must not leak into the stored copy
	state.ConsumedOrders["ORD-2"] = true

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.True(t, loaded.ConsumedOrders["ORD-1"])
	assert.False(t, loaded.ConsumedOrders["ORD-2"])
}
