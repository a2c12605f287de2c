package domain

import "math"

// Field identifies one canonical order attribute. The literal values are a
// wire contract shared with the storage backends and the order form UI and
// must not change.
type Field string

const (
	FieldOrderID          Field = "order_id"
	FieldOrderLink        Field = "order_link"
	FieldCustomerName     Field = "customer_name"
	FieldReceiverName     Field = "receiver_name"
	FieldPhone            Field = "phone"
	FieldPreferredContact Field = "preferred_contact"
	FieldDeliveryDate     Field = "delivery_date"
	FieldTimeWindow       Field = "time_window"
	FieldDistrict         Field = "district"
	FieldFullAddress      Field = "full_address"
	FieldMapsLink         Field = "maps_link"
	FieldBouquetName      Field = "bouquet_name"
	FieldSize             Field = "size"
	FieldCardText         Field = "card_text"
	FieldItemsTotal       Field = "items_total"
	FieldDeliveryFee      Field = "delivery_fee"
	FieldImageLink        Field = "image_link"
)

// ParseFields lists every field the intake pipeline may extract, in the
// canonical priority order used for missing-field reporting and form cues.
var ParseFields = []Field{
	FieldBouquetName,
	FieldSize,
	FieldCardText,
	FieldDeliveryDate,
	FieldTimeWindow,
	FieldDistrict,
	FieldFullAddress,
	FieldMapsLink,
	FieldImageLink,
	FieldReceiverName,
	FieldPhone,
	FieldPreferredContact,
	FieldItemsTotal,
	FieldDeliveryFee,
	FieldCustomerName,
	FieldOrderID,
	FieldOrderLink,
}

// CriticalFields is the fixed subset of fields an order needs to be
// actionable. Order matters: completeness reports follow this sequence.
var CriticalFields = []Field{
	FieldBouquetName,
	FieldSize,
	FieldCardText,
	FieldDeliveryDate,
	FieldTimeWindow,
	FieldFullAddress,
	FieldMapsLink,
	FieldReceiverName,
	FieldPhone,
	FieldPreferredContact,
	FieldItemsTotal,
}

// KnownField reports whether s is one of the canonical field identifiers.
func KnownField(s string) bool {
	for _, f := range ParseFields {
		if Field(s) == f {
			return true
		}
	}
	return false
}

// Fields is a partial mapping of field to extracted value. Values are either
// string or float64. A fresh map is built per extraction attempt; absent
// keys mean "not found".
type Fields map[Field]any

// SetString stores a string value. Empty input leaves the field unset.
func (f Fields) SetString(key Field, v string) {
	if v == "" {
		return
	}
	f[key] = v
}

// SetNumber stores a numeric value, dropping NaN and infinities so a garbled
// amount degrades to "field unset" instead of poisoning the record.
func (f Fields) SetNumber(key Field, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	f[key] = v
}

// Has reports whether the field carries a usable value: present, non-empty
// if a string, non-NaN if a number.
func (f Fields) Has(key Field) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case float64:
		return !math.IsNaN(t)
	}
	return v != nil
}

// String returns the field value as a string, or ("", false) when absent or
// not a string.
func (f Fields) String(key Field) (string, bool) {
	v, ok := f[key].(string)
	return v, ok
}

// Number returns the field value as a float64, or (0, false) when absent or
// not numeric.
func (f Fields) Number(key Field) (float64, bool) {
	v, ok := f[key].(float64)
	return v, ok
}
