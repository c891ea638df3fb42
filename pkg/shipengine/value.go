package shipengine

// Identifier types used across the API. Each wraps the string form ShipEngine
// uses on the wire; equality is plain string equality.

// CarrierID references a connected carrier account. Required whenever more
// than one account exists for the same carrier.
type CarrierID string

// CarrierCode identifies a carrier when only one account exists for it
// (e.g. "stamps_com", "ups", "fedex").
type CarrierCode string

// ServiceCode identifies a carrier service (e.g. "usps_priority_mail").
type ServiceCode string

// PackageCode identifies a carrier package type (e.g. "flat_rate_envelope").
type PackageCode string

// RateID references a previously quoted rate.
type RateID string

// LabelID references a purchased label.
type LabelID string

// ShipmentID references a shipment within ShipEngine.
type ShipmentID string

func (id CarrierID) String() string  { return string(id) }
func (c CarrierCode) String() string { return string(c) }
func (c ServiceCode) String() string { return string(c) }
func (c PackageCode) String() string { return string(c) }
func (id RateID) String() string     { return string(id) }
func (id LabelID) String() string    { return string(id) }
func (id ShipmentID) String() string { return string(id) }

// Amount is a monetary value with its ISO-4217 currency code. The struct
// matches the wire shape used throughout the API.
type Amount struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}
