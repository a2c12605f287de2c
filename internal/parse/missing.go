package parse

import "github.com/SuperShot3/order-form/internal/domain"

// MissingFields reports which critical fields are absent or empty, in the
// canonical critical-field order. A complete result is an empty, non-nil
// slice.
func MissingFields(fields domain.Fields) []domain.Field {
	missing := make([]domain.Field, 0, len(domain.CriticalFields))
	for _, f := range domain.CriticalFields {
		if !fields.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
