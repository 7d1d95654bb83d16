package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"nimko_store/internal/models"
	"nimko_store/internal/repository"
)

// OrderService wraps the order collection with typed operations and a
// push-based subscription. Every subscriber callback receives the full
// ordered list after each mutation (whole-list replacement, no deltas).
type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, orderID string) error
	Subscribe(callback func([]models.Order)) func()
	ExportOrders(ctx context.Context) ([]models.Order, error)
	ImportOrders(ctx context.Context, orders []models.Order) (int, error)
	StatusCounts(ctx context.Context) (map[models.OrderStatus]int, error)
}

type orderService struct {
	repo   repository.OrderRepository
	mirror repository.OrderMirror
	promo  PromoService

	mu          sync.RWMutex
	cache       map[string]models.Order
	subscribers map[int]func([]models.Order)
	nextSubID   int
}

// NewOrderService seeds the in-memory cache from the store, falling back to
// the mirror when the store is unreachable. The promo service may be nil;
// when set, deleting or cancelling an order returns its free slot.
func NewOrderService(repo repository.OrderRepository, mirror repository.OrderMirror, promo PromoService) OrderService {
	s := &orderService{
		repo:        repo,
		mirror:      mirror,
		promo:       promo,
		cache:       make(map[string]models.Order),
		subscribers: make(map[int]func([]models.Order)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	orders, err := repo.GetAll(ctx)
	if err != nil {
		log.Printf("Failed to load orders from store, trying mirror: %v", err)
		orders, err = mirror.Load()
		if err != nil && err != repository.ErrNotFound {
			log.Printf("Failed to load order mirror: %v", err)
		}
	}
	for _, order := range orders {
		s.cache[order.OrderID] = order
	}

	return s
}

func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	if err := validateOrder(order); err != nil {
		return "", err
	}

	if order.OrderID == "" {
		order.OrderID = generateOrderID()
	}
	if order.TotalAmount == 0 {
		order.TotalAmount = order.CartTotal()
	}
	order.Status = models.OrderPending
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := s.repo.Create(ctx, order); err != nil {
		return "", &PersistenceError{Op: "create order", Err: err}
	}

	s.mu.Lock()
	s.cache[order.OrderID] = *order
	s.mu.Unlock()
	s.publish()

	return order.OrderID, nil
}

func (s *orderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.GetAll(ctx)
	if err == nil {
		s.mu.Lock()
		s.cache = make(map[string]models.Order, len(orders))
		for _, order := range orders {
			s.cache[order.OrderID] = order
		}
		s.mu.Unlock()
		return orders, nil
	}

	log.Printf("Failed to list orders from store, serving local copy: %v", err)
	s.mu.RLock()
	cached := s.cachedListLocked()
	s.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	mirrored, mirrorErr := s.mirror.Load()
	if mirrorErr != nil {
		if mirrorErr == repository.ErrNotFound {
			return nil, &PersistenceError{Op: "list orders", Err: err}
		}
		return nil, &PersistenceError{Op: "list orders", Err: mirrorErr}
	}
	return mirrored, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "order", ID: orderID}
		}
		s.mu.RLock()
		cached, ok := s.cache[orderID]
		s.mu.RUnlock()
		if ok {
			return &cached, nil
		}
		return nil, &PersistenceError{Op: "get order", Err: err}
	}
	return order, nil
}

// UpdateStatus is an unconditional last-write-wins write; any status may be
// set to any other. When the remote write fails the change is applied to
// the local copy only, accepting the stale-state risk until the store
// recovers.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	now := time.Now()
	err := s.repo.UpdateStatus(ctx, orderID, status, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "order", ID: orderID}
		}

		s.mu.Lock()
		order, ok := s.cache[orderID]
		if ok {
			order.Status = status
			order.UpdatedAt = now
			s.cache[orderID] = order
		}
		s.mu.Unlock()
		if !ok {
			return &PersistenceError{Op: "update order status", Err: err}
		}
		log.Printf("Store update failed for order %s, applied locally: %v", orderID, err)
	} else {
		s.mu.Lock()
		if order, ok := s.cache[orderID]; ok {
			order.Status = status
			order.UpdatedAt = now
			s.cache[orderID] = order
		}
		s.mu.Unlock()
	}

	if status == models.OrderCancelled && s.promo != nil {
		if s.promo.RestoreFreeOrder(orderID) {
			log.Printf("Restored free-order slot for cancelled order %s", orderID)
		}
	}

	s.publish()
	return nil
}

// DeleteOrder is unconditional. A missing id is silently ignored. Like
// UpdateStatus, a failed remote delete falls back to the local copy.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	err := s.repo.Delete(ctx, orderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.mu.Lock()
		_, ok := s.cache[orderID]
		delete(s.cache, orderID)
		s.mu.Unlock()
		if !ok {
			return &PersistenceError{Op: "delete order", Err: err}
		}
		log.Printf("Store delete failed for order %s, removed locally: %v", orderID, err)
	} else {
		s.mu.Lock()
		delete(s.cache, orderID)
		s.mu.Unlock()
	}

	if s.promo != nil {
		if s.promo.RestoreFreeOrder(orderID) {
			log.Printf("Restored free-order slot for deleted order %s", orderID)
		}
	}

	s.publish()
	return nil
}

// Subscribe registers a live listener and returns its unsubscribe func.
func (s *orderService) Subscribe(callback func([]models.Order)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = callback
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *orderService) ExportOrders(ctx context.Context) ([]models.Order, error) {
	return s.GetOrders(ctx)
}

// ImportOrders writes the given orders onto the store, collapsing
// duplicate order ids (within the batch or against existing records) to
// one. Returns the number of orders actually written.
func (s *orderService) ImportOrders(ctx context.Context, orders []models.Order) (int, error) {
	seen := make(map[string]bool)
	imported := 0

	for _, order := range orders {
		if order.OrderID == "" || seen[order.OrderID] {
			continue
		}
		seen[order.OrderID] = true

		if _, err := s.repo.GetByID(ctx, order.OrderID); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return imported, &PersistenceError{Op: "import orders", Err: err}
		}

		if !order.Status.Valid() {
			order.Status = models.OrderPending
		}
		if err := s.repo.Create(ctx, &order); err != nil {
			return imported, &PersistenceError{Op: "import orders", Err: err}
		}
		s.mu.Lock()
		s.cache[order.OrderID] = order
		s.mu.Unlock()
		imported++
	}

	if imported > 0 {
		s.publish()
	}
	return imported, nil
}

func (s *orderService) StatusCounts(ctx context.Context) (map[models.OrderStatus]int, error) {
	orders, err := s.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		counts[status] = 0
	}
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts, nil
}

// publish refreshes the mirror and hands every subscriber its own copy of
// the full ordered list. A panicking subscriber is logged and skipped, it
// is never retried.
func (s *orderService) publish() {
	s.mu.RLock()
	list := s.cachedListLocked()
	callbacks := make([]func([]models.Order), 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.mu.RUnlock()

	if err := s.mirror.Save(list); err != nil {
		log.Printf("Failed to update order mirror: %v", err)
	}

	for _, cb := range callbacks {
		copied := append([]models.Order(nil), list...)
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Order subscriber panicked: %v", r)
				}
			}()
			cb(copied)
		}()
	}
}

func (s *orderService) cachedListLocked() []models.Order {
	list := make([]models.Order, 0, len(s.cache))
	for _, order := range s.cache {
		list = append(list, order)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func validateOrder(order *models.Order) error {
	required := []struct {
		field string
		value string
	}{
		{"name", order.Name},
		{"phone", order.Phone},
		{"email", order.Email},
		{"address", order.Address},
		{"city", order.City},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "is required"}
		}
	}
	if len(order.Cart) == 0 {
		return &ValidationError{Field: "cart", Message: "must contain at least one item"}
	}
	for _, item := range order.Cart {
		if item.Quantity <= 0 {
			return &ValidationError{Field: "cart", Message: "item quantity must be positive"}
		}
		if item.Price <= 0 {
			return &ValidationError{Field: "cart", Message: "item price must be positive"}
		}
	}
	return nil
}

// generateOrderID mirrors the client-side scheme: timestamp plus a random
// suffix.
func generateOrderID() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
