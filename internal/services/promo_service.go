package services

import (
	"log"
	"sync"

	"nimko_store/internal/models"
	"nimko_store/internal/repository"
)

// PromoService tracks the "first N orders free" counter. Each order id acts
// as an idempotency token: a retried checkout cannot spend two slots, and
// deleting or cancelling a consuming order gives its slot back.
type PromoService interface {
	State() models.FreeOrdersState
	Remaining() int
	OfferActive() bool
	ConsumeFreeOrder(orderID string) bool
	RestoreFreeOrder(orderID string) bool
	MarkExitPopupShown()
	MarkOfferPopupShown()
}

type promoService struct {
	repo  repository.PromoRepository
	mu    sync.Mutex
	state *models.FreeOrdersState
}

// NewPromoService loads the persisted counter state. A missing state, a
// broken load, or a stored total that no longer matches the configured one
// all reset to defaults (the last handles a promotion-size change across
// deployments).
func NewPromoService(repo repository.PromoRepository, totalFreeOrders int) PromoService {
	state, err := repo.Load()
	if err != nil {
		if err != repository.ErrNotFound {
			log.Printf("Failed to load promo state, resetting: %v", err)
		}
		state = models.DefaultFreeOrdersState(totalFreeOrders)
	} else if state.TotalFreeOrders != totalFreeOrders {
		log.Printf("Promo size changed from %d to %d, resetting state", state.TotalFreeOrders, totalFreeOrders)
		state = models.DefaultFreeOrdersState(totalFreeOrders)
	}
	if state.ConsumedOrders == nil {
		state.ConsumedOrders = make(map[string]bool)
	}
	clamp(state)

	s := &promoService{repo: repo, state: state}
	s.save()
	return s
}

func (s *promoService) State() models.FreeOrdersState {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *s.state
	copied.ConsumedOrders = nil
	return copied
}

func (s *promoService) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RemainingFreeOrders
}

func (s *promoService) OfferActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RemainingFreeOrders > 0
}

// ConsumeFreeOrder spends one free slot for the given order. Returns true
// when the slot was spent; false when the offer is exhausted or this order
// already spent one.
func (s *promoService) ConsumeFreeOrder(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.RemainingFreeOrders <= 0 {
		return false
	}
	if s.state.ConsumedOrders[orderID] {
		return false
	}

	s.state.RemainingFreeOrders--
	s.state.ConsumedOrders[orderID] = true
	clamp(s.state)
	s.save()
	return true
}

// RestoreFreeOrder returns the slot spent by the given order, if any.
func (s *promoService) RestoreFreeOrder(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.ConsumedOrders[orderID] {
		return false
	}

	delete(s.state.ConsumedOrders, orderID)
	if s.state.RemainingFreeOrders < s.state.TotalFreeOrders {
		s.state.RemainingFreeOrders++
	}
	clamp(s.state)
	s.save()
	return true
}

func (s *promoService) MarkExitPopupShown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HasShownExitPopup = true
	s.save()
}

func (s *promoService) MarkOfferPopupShown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HasShownOfferPopup = true
	s.save()
}

// save persists the whole state; failures are logged and the in-memory
// state stays authoritative until the next successful save.
func (s *promoService) save() {
	if err := s.repo.Save(s.state); err != nil {
		log.Printf("Failed to save promo state: %v", err)
	}
}

func clamp(state *models.FreeOrdersState) {
	if state.RemainingFreeOrders < 0 {
		state.RemainingFreeOrders = 0
	}
	if state.RemainingFreeOrders > state.TotalFreeOrders {
		state.RemainingFreeOrders = state.TotalFreeOrders
	}
}
