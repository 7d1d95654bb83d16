package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"nimko_store/internal/models"
)

// In-memory implementations, used by tests and as drop-in backends when no
// store is configured.

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order

	// FailWrites makes every mutation fail, exercising the local-fallback
	// paths in the order service.
	FailWrites bool
	FailReads  bool
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return errStoreDown
	}
	r.orders[order.OrderID] = *order
	return nil
}

func (r *MemoryOrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailReads {
		return nil, errStoreDown
	}
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (r *MemoryOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailReads {
		return nil, errStoreDown
	}
	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *MemoryOrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return errStoreDown
	}
	order, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	r.orders[orderID] = order
	return nil
}

func (r *MemoryOrderRepository) Delete(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return errStoreDown
	}
	if _, ok := r.orders[orderID]; !ok {
		return ErrNotFound
	}
	delete(r.orders, orderID)
	return nil
}

type MemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []models.Review

	FailWrites bool
	FailReads  bool
}

func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{}
}

func (r *MemoryReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return errStoreDown
	}
	r.reviews = append(r.reviews, *review)

	// Enforce the per-product storage cap, oldest out first
	var forProduct []int
	for i, stored := range r.reviews {
		if stored.ProductID == review.ProductID {
			forProduct = append(forProduct, i)
		}
	}
	if len(forProduct) > MaxReviewsPerProduct {
		oldest := forProduct[0]
		for _, i := range forProduct {
			if r.reviews[i].Date.Before(r.reviews[oldest].Date) {
				oldest = i
			}
		}
		r.reviews = append(r.reviews[:oldest], r.reviews[oldest+1:]...)
	}
	return nil
}

func (r *MemoryReviewRepository) GetByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailReads {
		return nil, errStoreDown
	}
	var reviews []models.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})
	return reviews, nil
}

func (r *MemoryReviewRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reviews)
}

type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryProductRepository(products []models.Product) *MemoryProductRepository {
	return &MemoryProductRepository{products: products}
}

func (r *MemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product(nil), r.products...), nil
}

type MemoryPromoRepository struct {
	mu    sync.Mutex
	state *models.FreeOrdersState

	FailSaves bool
	Saves     int
}

func NewMemoryPromoRepository() *MemoryPromoRepository {
	return &MemoryPromoRepository{}
}

func (r *MemoryPromoRepository) Load() (*models.FreeOrdersState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, ErrNotFound
	}
	return copyPromoState(r.state), nil
}

func (r *MemoryPromoRepository) Save(state *models.FreeOrdersState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSaves {
		return errStoreDown
	}
	r.state = copyPromoState(state)
	r.Saves++
	return nil
}

func copyPromoState(state *models.FreeOrdersState) *models.FreeOrdersState {
	copied := *state
	copied.ConsumedOrders = make(map[string]bool, len(state.ConsumedOrders))
	for id, consumed := range state.ConsumedOrders {
		copied.ConsumedOrders[id] = consumed
	}
	return &copied
}

type MemoryOrderMirror struct {
	mu     sync.Mutex
	orders []models.Order
	saved  bool
}

func NewMemoryOrderMirror() *MemoryOrderMirror {
	return &MemoryOrderMirror{}
}

func (m *MemoryOrderMirror) Save(orders []models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]models.Order(nil), orders...)
	m.saved = true
	return nil
}

func (m *MemoryOrderMirror) Load() ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, ErrNotFound
	}
	return append([]models.Order(nil), m.orders...), nil
}
