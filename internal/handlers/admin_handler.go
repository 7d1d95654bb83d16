package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nimko_store/internal/models"
	"nimko_store/internal/services"
	"nimko_store/pkg/notify"
)

// AdminHandler is the order-management command surface: live order feed,
// status transitions, delete, export/import and outbound notification
// links.
type AdminHandler struct {
	orders services.OrderService
	auth   services.AuthService
}

func NewAdminHandler(orders services.OrderService, auth services.AuthService) *AdminHandler {
	return &AdminHandler{orders: orders, auth: auth}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request format"})
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// AuthMiddleware guards the admin route group with a Bearer token check.
func AuthMiddleware(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if len(tokenStr) < 8 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		tokenStr = tokenStr[7:] // strip "Bearer "

		email, err := auth.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("adminEmail", email)
		c.Next()
	}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.GetOrders(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		status, msg := errorReply(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "total": len(orders)})
}

// StreamOrders pushes the full order list over SSE whenever anything
// changes. The dashboard treats every event as replacing its whole list.
func (h *AdminHandler) StreamOrders(c *gin.Context) {
	updates := make(chan []models.Order, 8)
	unsubscribe := h.orders.Subscribe(func(orders []models.Order) {
		select {
		case updates <- orders:
		default:
			// A slow consumer only misses intermediate snapshots; the
			// next event carries the full list anyway.
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Initial snapshot so the dashboard renders without waiting for a
	// mutation.
	if orders, err := h.orders.GetOrders(c.Request.Context()); err == nil {
		c.SSEvent("orders", orders)
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case orders := <-updates:
			c.SSEvent("orders", orders)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request format"})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		status, msg := errorReply(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Failed to update order %s: %v", orderID, err)
		}
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": orderID, "status": req.Status})
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if err := h.orders.DeleteOrder(c.Request.Context(), orderID); err != nil {
		log.Printf("Failed to delete order %s: %v", orderID, err)
		status, msg := errorReply(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": orderID})
}

func (h *AdminHandler) ExportOrders(c *gin.Context) {
	orders, err := h.orders.ExportOrders(c.Request.Context())
	if err != nil {
		log.Printf("Failed to export orders: %v", err)
		status, msg := errorReply(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"total":      len(orders),
		"exportedAt": time.Now().Format(time.RFC3339),
	})
}

func (h *AdminHandler) ImportOrders(c *gin.Context) {
	var req struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request format"})
		return
	}

	imported, err := h.orders.ImportOrders(c.Request.Context(), req.Orders)
	if err != nil {
		log.Printf("Order import failed after %d records: %v", imported, err)
		status, msg := errorReply(err)
		c.JSON(status, gin.H{"success": false, "error": msg, "imported": imported})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imported": imported})
}

// NotificationLinks returns pre-filled WhatsApp and mailto links for
// reaching the customer about their order.
func (h *AdminHandler) NotificationLinks(c *gin.Context) {
	orderID := c.Param("orderId")
	order, err := h.orders.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		status, msg := errorReply(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	message := notify.OrderMessage(order)
	subject := "Your order " + order.OrderID
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"whatsapp": notify.WhatsAppLink(order.Phone, message),
		"mailto":   notify.MailtoLink(order.Email, subject, message),
	})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.orders.StatusCounts(c.Request.Context())
	if err != nil {
		log.Printf("Failed to compute order stats: %v", err)
		status, msg := errorReply(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "counts": counts, "total": total})
}
