package notify

import (
	"fmt"
	"net/url"
	"strings"

	"nimko_store/internal/models"
)

// Pre-filled outbound links for the admin dashboard. Opening them is
// fire-and-forget; there is no delivery confirmation.

// WhatsAppLink builds a wa.me deep link with a pre-filled message.
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(phone), url.QueryEscape(message))
}

// MailtoLink builds a mailto link with a pre-filled subject and body.
func MailtoLink(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, url.QueryEscape(subject), url.QueryEscape(body))
}

// OrderMessage formats the customer-facing order summary used in both
// links.
func OrderMessage(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! Your order %s is %s.\n\n", order.Name, order.OrderID, order.Status)
	for _, item := range order.Cart {
		fmt.Fprintf(&b, "- %s x%d (Rs. %.0f)\n", item.Name, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: Rs. %.0f", order.TotalAmount)
	return b.String()
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
