package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one summary line of an order hand-off message.
type Item struct {
	Name     string
	Quantity int32
	Price    decimal.Decimal
}

const instruction = "Mohon balas dengan alamat pengiriman untuk menyelesaikan pesanan."

// Summary renders the order as a human-readable message: a short order
// reference, one line per item, the total to two decimal places and a fixed
// instruction asking for the delivery address.
func Summary(orderId uuid.UUID, items []Item, total decimal.Decimal, currency string) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Pesanan #%s\n\n", ShortOrderId(orderId))
	for _, item := range items {
		fmt.Fprintf(&b, "%s (x%d) - %s %s\n", item.Name, item.Quantity, currency, item.Price.String())
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\n\n", currency, total.StringFixed(2))
	b.WriteString(instruction)
	return b.String()
}

// ShortOrderId truncates the order id to its first eight characters for use
// in messages shown to people.
func ShortOrderId(orderId uuid.UUID) string {
	return orderId.String()[:8]
}

// Link builds a wa.me deep link addressed to number carrying text as the
// prefilled message.
func Link(number string, text string) string {
	query := url.Values{"text": []string{text}}
	return fmt.Sprintf("https://wa.me/%s?%s", number, query.Encode())
}
