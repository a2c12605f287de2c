package domain

// Order is one row of the shared order ledger. Monetary columns are kept as
// strings end to end, matching the spreadsheet backend; the service layer
// parses them where arithmetic is needed.
type Order struct {
	OrderID              string `db:"order_id" json:"order_id"`
	OrderLink            string `db:"order_link" json:"order_link"`
	CustomerName         string `db:"customer_name" json:"customer_name"`
	ReceiverName         string `db:"receiver_name" json:"receiver_name"`
	Phone                string `db:"phone" json:"phone"`
	PreferredContact     string `db:"preferred_contact" json:"preferred_contact"`
	DeliveryDate         string `db:"delivery_date" json:"delivery_date"`
	TimeWindow           string `db:"time_window" json:"time_window"`
	District             string `db:"district" json:"district"`
	FullAddress          string `db:"full_address" json:"full_address"`
	MapsLink             string `db:"maps_link" json:"maps_link"`
	BouquetName          string `db:"bouquet_name" json:"bouquet_name"`
	Size                 string `db:"size" json:"size"`
	CardText             string `db:"card_text" json:"card_text"`
	ItemsTotal           string `db:"items_total" json:"items_total"`
	DeliveryFee          string `db:"delivery_fee" json:"delivery_fee"`
	FlowersCost          string `db:"flowers_cost" json:"flowers_cost"`
	TotalProfit          string `db:"total_profit" json:"total_profit"`
	PaymentStatus        string `db:"payment_status" json:"payment_status"`
	PaymentConfirmedTime string `db:"payment_confirmed_time" json:"payment_confirmed_time"`
	FloristStatus        int    `db:"florist_status" json:"florist_status"`
	FloristPayment       string `db:"florist_payment" json:"florist_payment"`
	DriverAssigned       string `db:"driver_assigned" json:"driver_assigned"`
	DeliveryStatus       string `db:"delivery_status" json:"delivery_status"`
	Priority             string `db:"priority" json:"priority"`
	Notes                string `db:"notes" json:"notes"`
	ImageLink            string `db:"image_link" json:"image_link"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Search         string
	PaymentStatus  string
	DeliveryStatus string
	Priority       string
	StartDate      string
	EndDate        string
}

// OrderSummary aggregates the ledger's financial totals.
type OrderSummary struct {
	Gross         float64 `json:"gross"`
	TotalProfit   float64 `json:"total_profit"`
	TotalDelivery float64 `json:"total_delivery"`
}

// ParseStrategy names which extraction path produced a ParseResult.
type ParseStrategy string

const (
	ParseStrategyLocal ParseStrategy = "local"
	ParseStrategyAI    ParseStrategy = "ai"
)

// ParseResult is the full output envelope of one parse invocation. It is
// transient: the caller merges the extracted fields into an order draft and
// discards it.
type ParseResult struct {
	Extracted     Fields        `json:"extracted"`
	MissingFields []Field       `json:"missing_fields"`
	Strategy      ParseStrategy `json:"-"`
	AIUsed        bool          `json:"ai_used"`
	AIFailed      bool          `json:"ai_failed,omitempty"`
}

// ParseStatus reports whether AI-assisted parsing can currently run.
type ParseStatus struct {
	AIAvailable bool `json:"ai_available"`
}

// ConnectionCheck is the result of the operator diagnostic round trip.
type ConnectionCheck struct {
	OK    bool   `json:"ok"`
	Model string `json:"model,omitempty"`
	Error string `json:"error,omitempty"`
}

// Settings holds the operator-tunable parsing and form options.
type Settings struct {
	RequiredFields    []Field  `json:"required_fields"`
	UseAIParsing      bool     `json:"use_ai_parsing"`
	DistrictOptions   []string `json:"district_options"`
	TimeWindowOptions []string `json:"time_window_options"`
	SizeOptions       []string `json:"size_options"`
}

// SettingsUpdate is a partial settings change; nil members are untouched.
type SettingsUpdate struct {
	RequiredFields    []Field  `json:"required_fields"`
	UseAIParsing      *bool    `json:"use_ai_parsing"`
	DistrictOptions   []string `json:"district_options"`
	TimeWindowOptions []string `json:"time_window_options"`
	SizeOptions       []string `json:"size_options"`
}

// Merge overlays a partial update onto s and returns the result.
func (s Settings) Merge(updates SettingsUpdate) Settings {
	out := s
	if updates.RequiredFields != nil {
		out.RequiredFields = updates.RequiredFields
	}
	if updates.UseAIParsing != nil {
		out.UseAIParsing = *updates.UseAIParsing
	}
	if updates.DistrictOptions != nil {
		out.DistrictOptions = updates.DistrictOptions
	}
	if updates.TimeWindowOptions != nil {
		out.TimeWindowOptions = updates.TimeWindowOptions
	}
	if updates.SizeOptions != nil {
		out.SizeOptions = updates.SizeOptions
	}
	return out
}

// DefaultDistricts is the delivery-area vocabulary the extractor scans for.
// First match in list order wins.
var DefaultDistricts = []string{
	"Nimman",
	"Santitham",
	"Suthep",
	"Wualai",
	"Jed Yod",
	"Chang Khlan",
	"Doi Saket",
	"Hang Dong",
	"Mae Rim",
}

// DefaultSettings returns a fresh copy of the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		RequiredFields: []Field{
			FieldBouquetName,
			FieldSize,
			FieldCardText,
			FieldDeliveryDate,
			FieldTimeWindow,
			FieldDistrict,
			FieldFullAddress,
			FieldMapsLink,
			FieldReceiverName,
			FieldPhone,
			FieldPreferredContact,
			FieldItemsTotal,
		},
		UseAIParsing:    false,
		DistrictOptions: append([]string(nil), DefaultDistricts...),
		TimeWindowOptions: []string{
			"Standard (during the day)",
			"08:00 - 10:00",
			"10:00 - 12:00",
			"12:00 - 14:00",
			"14:00 - 16:00",
			"16:00 - 18:00",
			"18:00 - 20:00",
			"19:00 - 21:00",
		},
		SizeOptions: []string{"S", "M", "L", "XL"},
	}
}
