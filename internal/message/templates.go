// Package message renders the customer-facing chat texts the operator
// copies into LINE or WhatsApp.
package message

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/SuperShot3/order-form/internal/domain"
)

// Kind names one of the built-in message templates.
type Kind string

const (
	KindConfirmation   Kind = "confirmation"
	KindPaymentRequest Kind = "payment_request"
	KindMissingInfo    Kind = "missing_info"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`Hi! Thank you for your order. Here are the details for your confirmation:

💐 Bouquet: {{.BouquetName}} — {{.Size}} size
📝 Card message: "{{.CardText}}"
📅 Delivery date: {{.DeliveryDate}}
⏰ Delivery time: {{.TimeWindow}}
📍 Delivery address: {{.FullAddress}}
{{- if .MapsLink}}
Map link: {{.MapsLink}}
{{- end}}
👤 Recipient: {{.ReceiverName}}
☎️ Contact: {{.Phone}} ({{.PreferredContact}})
💰 Sell Flowers For: {{.ItemsTotal}} THB
🚚 Delivery fee: {{.DeliveryFee}} THB
💵 Total Amount Received: {{.Total}} THB

Please confirm if everything is correct.`))

var paymentRequestTmpl = template.Must(template.New("payment_request").Parse(
	`Hi! Your order is confirmed. Please complete payment:

Order ID: {{.OrderID}}
💐 Bouquet: {{.BouquetName}} — {{.Size}}
📅 Delivery: {{.DeliveryDate}} {{.TimeWindow}}
📍 Delivery to: {{.FullAddress}}
👤 Recipient: {{.ReceiverName}}

Sell Flowers For: {{.ItemsTotal}} THB
Delivery fee: {{.DeliveryFee}} THB
Total Amount Received: {{.Total}} THB

Please confirm payment once completed.`))

var missingInfoTmpl = template.Must(template.New("missing_info").Parse(
	`Hi! Thank you for your order. We need a few more details:

📋 Missing information:
{{- range .Missing}}
- {{.}}
{{- end}}

Please provide the above so we can process your order.`))

type templateData struct {
	domain.Order
	Total   string
	Missing []domain.Field
}

// Render produces all three message texts for an order. The missing list
// feeds only the missing-info template.
func Render(order domain.Order, missing []domain.Field) (map[Kind]string, error) {
	data := templateData{
		Order:   order,
		Total:   formatTotal(order),
		Missing: missing,
	}
	if data.DeliveryFee == "" {
		data.DeliveryFee = "0"
	}

	out := map[Kind]string{}
	for kind, tmpl := range map[Kind]*template.Template{
		KindConfirmation:   confirmationTmpl,
		KindPaymentRequest: paymentRequestTmpl,
		KindMissingInfo:    missingInfoTmpl,
	} {
		var b strings.Builder
		if err := tmpl.Execute(&b, data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", kind, err)
		}
		out[kind] = b.String()
	}
	return out, nil
}

// formatTotal sums items total and delivery fee, treating unparseable
// amounts as zero the way the order form does.
func formatTotal(order domain.Order) string {
	items, _ := strconv.ParseFloat(strings.ReplaceAll(order.ItemsTotal, ",", ""), 64)
	fee, _ := strconv.ParseFloat(strings.ReplaceAll(order.DeliveryFee, ",", ""), 64)
	return strconv.FormatFloat(items+fee, 'f', -1, 64)
}
