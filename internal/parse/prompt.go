package parse

import (
	"strings"

	"github.com/SuperShot3/order-form/internal/domain"
)

// BuildExtractionPrompt builds the instruction prompt for the AI extraction
// path. The key list is generated from the canonical field set so the model
// always answers in the wire vocabulary.
func BuildExtractionPrompt() string {
	keys := make([]string, len(domain.ParseFields))
	for i, f := range domain.ParseFields {
		keys[i] = string(f)
	}
	var b strings.Builder
	b.WriteString("You are an order intake assistant for a flower delivery shop in Chiang Mai, Thailand.\n")
	b.WriteString("Extract order details from the message below and respond with a single JSON object with exactly two members:\n")
	b.WriteString("- \"extracted\": an object holding the extracted values\n")
	b.WriteString("- \"missing_fields\": an array naming the required keys you could not extract\n\n")
	b.WriteString("Inside \"extracted\", use exactly these keys (omit a key entirely when the text gives no value for it):\n")
	for _, k := range keys {
		b.WriteString("- ")
		b.WriteString(k)
		b.WriteString("\n")
	}
	b.WriteString("\nThe required keys for \"missing_fields\" are:\n")
	for _, f := range domain.CriticalFields {
		b.WriteString("- ")
		b.WriteString(string(f))
		b.WriteString("\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- items_total and delivery_fee are numbers, every other value is a string.\n")
	b.WriteString("- delivery_date uses YYYY-MM-DD.\n")
	b.WriteString("- When the delivery fee is paid to or decided by the driver, set delivery_fee to 0.\n")
	b.WriteString("- size is one of S, M, L, XL.\n")
	b.WriteString("- preferred_contact is one of WhatsApp, LINE, Phone.\n")
	b.WriteString("- Never invent values; leave unknown fields out.\n")
	return b.String()
}
