package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	t.Parallel()
	orderId := uuid.MustParse("3f1d6b0a-9a7e-4a21-8f0e-2f4a5b6c7d8e")
	items := []Item{
		{Name: "Kopi Susu", Quantity: 2, Price: decimal.RequireFromString("18000")},
		{Name: "Roti Bakar", Quantity: 1, Price: decimal.RequireFromString("12500.5")},
	}
	total := decimal.RequireFromString("48500.5")

	summary := Summary(orderId, items, total, "Rp")

	assert.Contains(t, summary, "Pesanan #3f1d6b0a")
	assert.Contains(t, summary, "Kopi Susu (x2) - Rp 18000")
	assert.Contains(t, summary, "Roti Bakar (x1) - Rp 12500.5")
	assert.Contains(t, summary, "Total: Rp 48500.50")
	assert.Contains(t, summary, "alamat pengiriman")
}

func TestShortOrderId(t *testing.T) {
	t.Parallel()
	orderId := uuid.MustParse("3f1d6b0a-9a7e-4a21-8f0e-2f4a5b6c7d8e")
	assert.Equal(t, "3f1d6b0a", ShortOrderId(orderId))
}

func TestLinkEncodesText(t *testing.T) {
	t.Parallel()
	link := Link("6281234567890", "Pesanan #abc\n\nTotal: Rp 10.00")

	require.True(t, strings.HasPrefix(link, "https://wa.me/6281234567890?"))
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Pesanan #abc\n\nTotal: Rp 10.00", parsed.Query().Get("text"))
}
