package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimko_store/internal/models"
	"nimko_store/internal/repository"
)

func newPromo(t *testing.T, total int) (PromoService, *repository.MemoryPromoRepository) {
	t.Helper()
	repo := repository.NewMemoryPromoRepository()
	return NewPromoService(repo, total), repo
}

func TestPromoStartsFull(t *testing.T) {
	promo, _ := newPromo(t, 20)

	assert.Equal(t, 20, promo.Remaining())
	assert.True(t, promo.OfferActive())
}

func TestConsumeDecrementsOncePerOrder(t *testing.T) {
	promo, _ := newPromo(t, 20)

	require.True(t, promo.ConsumeFreeOrder("ORD-1"))
	assert.Equal(t, 19, promo.Remaining())

	// A retried checkout handler must not spend a second slot
	assert.False(t, promo.ConsumeFreeOrder("ORD-1"))
	assert.Equal(t, 19, promo.Remaining())
}

func TestConsumeAtZeroIsNoOp(t *testing.T) {
	promo, _ := newPromo(t, 1)

	require.True(t, promo.ConsumeFreeOrder("ORD-1"))
	assert.Equal(t, 0, promo.Remaining())
	assert.False(t, promo.OfferActive())

	assert.False(t, promo.ConsumeFreeOrder("ORD-2"))
	assert.Equal(t, 0, promo.Remaining())
}

func TestOfferActiveIffRemaining(t *testing.T) {
	promo, _ := newPromo(t, 2)

	assert.True(t, promo.OfferActive())
	promo.ConsumeFreeOrder("ORD-1")
	assert.True(t, promo.OfferActive())
	promo.ConsumeFreeOrder("ORD-2")
	assert.False(t, promo.OfferActive())
}

func TestRestoreReturnsSlotOnlyForConsumingOrder(t *testing.T) {
	promo, _ := newPromo(t, 20)

	require.True(t, promo.ConsumeFreeOrder("ORD-1"))
	assert.Equal(t, 19, promo.Remaining())

	// An order that never consumed a slot restores nothing
	assert.False(t, promo.RestoreFreeOrder("ORD-2"))
	assert.Equal(t, 19, promo.Remaining())

	assert.True(t, promo.RestoreFreeOrder("ORD-1"))
	assert.Equal(t, 20, promo.Remaining())

	// Restoring twice cannot push past the total
	assert.False(t, promo.RestoreFreeOrder("ORD-1"))
	assert.Equal(t, 20, promo.Remaining())
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	repo := repository.NewMemoryPromoRepository()

	promo := NewPromoService(repo, 20)
	promo.ConsumeFreeOrder("ORD-1")
	promo.MarkExitPopupShown()

	reloaded := NewPromoService(repo, 20)
	assert.Equal(t, 19, reloaded.Remaining())
	assert.True(t, reloaded.State().HasShownExitPopup)

	// The consumed-order set survives too
	assert.False(t, reloaded.ConsumeFreeOrder("ORD-1"))
}

func TestPromoSizeChangeResetsState(t *testing.T) {
	repo := repository.NewMemoryPromoRepository()
	require.NoError(t, repo.Save(&models.FreeOrdersState{
		RemainingFreeOrders: 3,
		TotalFreeOrders:     10,
		HasShownExitPopup:   true,
	}))

	promo := NewPromoService(repo, 20)
	state := promo.State()
	assert.Equal(t, 20, state.RemainingFreeOrders)
	assert.Equal(t, 20, state.TotalFreeOrders)
	assert.False(t, state.HasShownExitPopup)
}

func TestCorruptStateClampedOnLoad(t *testing.T) {
	repo := repository.NewMemoryPromoRepository()
	require.NoError(t, repo.Save(&models.FreeOrdersState{
		RemainingFreeOrders: 99,
		TotalFreeOrders:     20,
	}))

	promo := NewPromoService(repo, 20)
	assert.Equal(t, 20, promo.Remaining())
}

func TestSaveFailureKeepsCounterWorking(t *testing.T) {
	repo := repository.NewMemoryPromoRepository()
	repo.FailSaves = true

	promo := NewPromoService(repo, 20)
	require.True(t, promo.ConsumeFreeOrder("ORD-1"))
	assert.Equal(t, 19, promo.Remaining())
}

// Two checkouts racing for the last slot must not both win it.
func TestConcurrentCheckoutsCannotDoubleSpendLastSlot(t *testing.T) {
	promo, _ := newPromo(t, 1)

	const racers = 16
	var wg sync.WaitGroup
	won := make(chan string, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			orderID := fmt.Sprintf("ORD-%d", n)
			if promo.ConsumeFreeOrder(orderID) {
				won <- orderID
			}
		}(i)
	}
	wg.Wait()
	close(won)

	winners := 0
	for range won {
		winners++
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 0, promo.Remaining())
}
