package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nimko_store/internal/models"
	"nimko_store/internal/repository"
	"nimko_store/internal/services"
	"nimko_store/pkg/notify"
)

// StoreHandler serves the shopper-facing endpoints: catalog, checkout and
// the promotional counter.
type StoreHandler struct {
	products   repository.ProductRepository
	orders     services.OrderService
	promo      services.PromoService
	relay      *notify.RelayClient
	storePhone string
}

func NewStoreHandler(
	products repository.ProductRepository,
	orders services.OrderService,
	promo services.PromoService,
	relay *notify.RelayClient,
	storePhone string,
) *StoreHandler {
	return &StoreHandler{
		products:   products,
		orders:     orders,
		promo:      promo,
		relay:      relay,
		storePhone: storePhone,
	}
}

func (h *StoreHandler) ListProducts(c *gin.Context) {
	products, err := h.products.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// Checkout accepts the order payload, writes it with status pending, spends
// a free-order slot while the offer is active, and relays the payload to
// the external bridge fire-and-forget.
func (h *StoreHandler) Checkout(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid order payload"})
		return
	}

	orderID, err := h.orders.CreateOrder(c.Request.Context(), &order)
	if err != nil {
		status, msg := errorReply(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Checkout failed: %v", err)
		}
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	freeOrder := false
	if h.promo.OfferActive() {
		freeOrder = h.promo.ConsumeFreeOrder(orderID)
	}

	if h.relay != nil && h.relay.Enabled() {
		relayed := order
		go func() {
			resp, err := h.relay.SubmitOrder(&relayed)
			if err != nil {
				log.Printf("Order relay failed for %s: %v", relayed.OrderID, err)
				return
			}
			if !resp.Success {
				log.Printf("Order relay rejected %s: %s", relayed.OrderID, resp.Message)
			}
		}()
	}

	message := notify.OrderMessage(&order)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Order placed successfully",
		"orderId":     orderID,
		"timestamp":   time.Now().Format(time.RFC3339),
		"freeOrder":   freeOrder,
		"contactLink": notify.WhatsAppLink(h.storePhone, message),
	})
}

func (h *StoreHandler) GetPromo(c *gin.Context) {
	state := h.promo.State()
	c.JSON(http.StatusOK, gin.H{
		"remainingFreeOrders": state.RemainingFreeOrders,
		"totalFreeOrders":     state.TotalFreeOrders,
		"offerActive":         state.RemainingFreeOrders > 0,
		"hasShownExitPopup":   state.HasShownExitPopup,
		"hasShownOfferPopup":  state.HasShownOfferPopup,
	})
}

// MarkPopupShown records that a promotional popup was displayed so it is
// not shown again.
func (h *StoreHandler) MarkPopupShown(c *gin.Context) {
	var req struct {
		Popup string `json:"popup"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request format"})
		return
	}

	switch req.Popup {
	case "exit":
		h.promo.MarkExitPopupShown()
	case "offer":
		h.promo.MarkOfferPopupShown()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown popup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
