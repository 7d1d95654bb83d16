package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nimko_store/internal/models"
)

func TestWhatsAppLinkStripsNonDigits(t *testing.T) {
	link := WhatsAppLink("+92 300-1234567", "Hello there")
	assert.Equal(t, "https://wa.me/923001234567?text=Hello+there", link)
}

func TestMailtoLinkEscapesSubjectAndBody(t *testing.T) {
	link := MailtoLink("ali@example.com", "Your order ORD-1", "Line one & two")
	assert.Contains(t, link, "mailto:ali@example.com?subject=Your+order+ORD-1")
	assert.Contains(t, link, "body=Line+one+%26+two")
}

func TestOrderMessageIncludesItemsAndTotal(t *testing.T) {
	order := &models.Order{
		OrderID: "ORD-1",
		Name:    "Ali Khan",
		Status:  models.OrderShipped,
		Cart: []models.CartItem{
			{ProductID: "1", Name: "Nimko", Price: 1399, Quantity: 2},
		},
		TotalAmount: 2798,
	}

	message := OrderMessage(order)
	assert.Contains(t, message, "Ali Khan")
	assert.Contains(t, message, "ORD-1")
	assert.Contains(t, message, "shipped")
	assert.Contains(t, message, "Nimko x2")
	assert.Contains(t, message, "Total: Rs. 2798")
}
