package domain

// PaymentStatus tracks the customer payment lifecycle on an order.
type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "Unpaid"
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusConfirmed PaymentStatus = "Confirmed"
)

// DeliveryStatus tracks the courier lifecycle on an order.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "Pending"
	DeliveryStatusAssigned  DeliveryStatus = "Assigned"
	DeliveryStatusOnTheWay  DeliveryStatus = "On the way"
	DeliveryStatusDelivered DeliveryStatus = "Delivered"
)

// Priority flags an order for attention.
type Priority string

const (
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// PreferredContact is the customer's chosen messaging channel. The extractor
// only accepts these three values.
var PreferredContacts = []string{"WhatsApp", "LINE", "Phone"}
