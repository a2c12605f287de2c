package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		OrderID:      "20250415-003",
		BouquetName:  "Pink Cloud",
		Size:         "M",
		CardText:     "Happy Birthday Noon!",
		DeliveryDate: "2025-04-15",
		TimeWindow:   "14:00-16:00",
		FullAddress:  "88/12 Soi 5, Santitham, Chiang Mai 50300",
		MapsLink:     "https://maps.app.goo.gl/abc123",
		ReceiverName: "Noon",
		Phone:        "+66 81 234 5678",

		PreferredContact: "WhatsApp",
		ItemsTotal:       "1,500",
		DeliveryFee:      "100",
	}
}

func TestRenderConfirmation(t *testing.T) {
	out, err := Render(sampleOrder(), nil)
	require.NoError(t, err)

	msg := out[KindConfirmation]
	assert.Contains(t, msg, "💐 Bouquet: Pink Cloud — M size")
	assert.Contains(t, msg, `📝 Card message: "Happy Birthday Noon!"`)
	assert.Contains(t, msg, "Map link: https://maps.app.goo.gl/abc123")
	assert.Contains(t, msg, "☎️ Contact: +66 81 234 5678 (WhatsApp)")
	assert.Contains(t, msg, "💵 Total Amount Received: 1600 THB")
}

func TestRenderOmitsMapLinkWhenEmpty(t *testing.T) {
	order := sampleOrder()
	order.MapsLink = ""

	out, err := Render(order, nil)
	require.NoError(t, err)
	assert.NotContains(t, out[KindConfirmation], "Map link:")
}

func TestRenderPaymentRequest(t *testing.T) {
	out, err := Render(sampleOrder(), nil)
	require.NoError(t, err)

	msg := out[KindPaymentRequest]
	assert.Contains(t, msg, "Order ID: 20250415-003")
	assert.Contains(t, msg, "📅 Delivery: 2025-04-15 14:00-16:00")
	assert.Contains(t, msg, "Total Amount Received: 1600 THB")
}

func TestRenderMissingInfoListsFields(t *testing.T) {
	missing := []domain.Field{domain.FieldDeliveryDate, domain.FieldPhone}

	out, err := Render(sampleOrder(), missing)
	require.NoError(t, err)

	msg := out[KindMissingInfo]
	assert.Contains(t, msg, "- delivery_date")
	assert.Contains(t, msg, "- phone")
}

func TestRenderBlankFeeShownAsZero(t *testing.T) {
	order := sampleOrder()
	order.DeliveryFee = ""

	out, err := Render(order, nil)
	require.NoError(t, err)
	assert.Contains(t, out[KindConfirmation], "🚚 Delivery fee: 0 THB")
	assert.Contains(t, out[KindConfirmation], "💵 Total Amount Received: 1500 THB")
}

func TestFormatTotalIgnoresUnparseableAmounts(t *testing.T) {
	assert.Equal(t, "100", formatTotal(domain.Order{ItemsTotal: "TBD", DeliveryFee: "100"}))
	assert.Equal(t, "0", formatTotal(domain.Order{}))
}
