package shipengine

import (
	"encoding/json"
	"fmt"
)

// ratingErrorFallbackMessage is used when a per-carrier rate error arrives
// without any message text.
const ratingErrorFallbackMessage = "No message was provided"

// RateOptions selects which carrier accounts to quote and optionally narrows
// the result to specific services or package types. At least one carrier is
// required; requests with none are rejected before any network call.
type RateOptions struct {
	carrierIDs   []CarrierID
	serviceCodes []ServiceCode
	packageTypes []PackageCode
}

// NewRateOptions builds rate options for the given carrier accounts.
func NewRateOptions(carrierIDs ...CarrierID) *RateOptions {
	opts := &RateOptions{}
	for _, id := range carrierIDs {
		opts.AddCarrierID(id)
	}
	return opts
}

// AddCarrierID adds a carrier account to quote.
func (o *RateOptions) AddCarrierID(id CarrierID) *RateOptions {
	o.carrierIDs = append(o.carrierIDs, id)
	return o
}

// AddServiceCode narrows quoting to the given service.
func (o *RateOptions) AddServiceCode(code ServiceCode) *RateOptions {
	o.serviceCodes = append(o.serviceCodes, code)
	return o
}

// AddPackageType narrows quoting to the given package type.
func (o *RateOptions) AddPackageType(code PackageCode) *RateOptions {
	o.packageTypes = append(o.packageTypes, code)
	return o
}

func (o *RateOptions) validate() error {
	if len(o.carrierIDs) == 0 {
		return fmt.Errorf("%w: rate options require at least one carrier id", ErrInvalidArgument)
	}
	return nil
}

// MarshalJSON renders the filter payload. The service_codes and package_types
// keys are omitted when their sets are empty; the remote API treats an empty
// array as "match nothing" rather than "no filter".
func (o *RateOptions) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		"carrier_ids": o.carrierIDs,
	}
	if len(o.serviceCodes) > 0 {
		doc["service_codes"] = o.serviceCodes
	}
	if len(o.packageTypes) > 0 {
		doc["package_types"] = o.packageTypes
	}
	return json.Marshal(doc)
}

// RateDocument is the wire shape of one quoted rate.
type RateDocument struct {
	RateID                RateID      `json:"rate_id"`
	RateType              string      `json:"rate_type"`
	CarrierID             CarrierID   `json:"carrier_id"`
	CarrierCode           CarrierCode `json:"carrier_code"`
	CarrierNickname       string      `json:"carrier_nickname"`
	CarrierFriendlyName   string      `json:"carrier_friendly_name"`
	ShippingAmount        Amount      `json:"shipping_amount"`
	InsuranceAmount       Amount      `json:"insurance_amount"`
	ConfirmationAmount    Amount      `json:"confirmation_amount"`
	OtherAmount           Amount      `json:"other_amount"`
	Zone                  json.Number `json:"zone"`
	PackageType           string      `json:"package_type"`
	DeliveryDays          int         `json:"delivery_days"`
	GuaranteedService     bool        `json:"guaranteed_service"`
	EstimatedDeliveryDate string      `json:"estimated_delivery_date"`
	CarrierDeliveryDays   string      `json:"carrier_delivery_days"`
	ShipDate              string      `json:"ship_date"`
	NegotiatedRate        bool        `json:"negotiated_rate"`
	ServiceType           string      `json:"service_type"`
	ServiceCode           ServiceCode `json:"service_code"`
	Trackable             bool        `json:"trackable"`
	WarningMessages       []string    `json:"warning_messages"`
	ErrorMessages         []string    `json:"error_messages"`
}

// RatingErrorDocument is the wire shape of a per-carrier rating failure.
type RatingErrorDocument struct {
	Message     string      `json:"message"`
	ErrorSource string      `json:"error_source"`
	ErrorType   string      `json:"error_type"`
	ErrorCode   string      `json:"error_code"`
	CarrierID   CarrierID   `json:"carrier_id"`
	CarrierCode CarrierCode `json:"carrier_code"`
	CarrierName string      `json:"carrier_name"`
}

// RateResponseDocument is the wire envelope of a rate-shopping call.
type RateResponseDocument struct {
	RateRequestID json.Number           `json:"rate_request_id"`
	ShipmentID    ShipmentID            `json:"shipment_id"`
	Rates         []RateDocument        `json:"rates"`
	InvalidRates  []RateDocument        `json:"invalid_rates"`
	Errors        []RatingErrorDocument `json:"errors"`
}

// Rate is one service quote for a shipment.
type Rate struct {
	ID                    RateID
	Type                  string
	CarrierID             CarrierID
	CarrierCode           CarrierCode
	CarrierNickname       string
	CarrierFriendlyName   string
	ShippingAmount        Amount
	InsuranceAmount       Amount
	ConfirmationAmount    Amount
	OtherAmount           Amount
	Zone                  string
	PackageType           string
	DeliveryDays          int
	GuaranteedService     bool
	EstimatedDeliveryDate string
	CarrierDeliveryDays   string
	ShipDate              string
	NegotiatedRate        bool
	ServiceName           string
	ServiceCode           ServiceCode
	Trackable             bool
	WarningMessages       []string
	ErrorMessages         []string
}

// TotalAmount sums the shipping, insurance, confirmation and other charges.
// Currency follows the shipping amount.
func (r Rate) TotalAmount() Amount {
	return Amount{
		Currency: r.ShippingAmount.Currency,
		Amount: r.ShippingAmount.Amount +
			r.InsuranceAmount.Amount +
			r.ConfirmationAmount.Amount +
			r.OtherAmount.Amount,
	}
}

// RatingError is a soft per-carrier failure inside an otherwise successful
// rate response. It is data for the caller to inspect, not an error value.
type RatingError struct {
	Message     string
	Source      string
	Type        string
	Code        string
	CarrierID   CarrierID
	CarrierCode CarrierCode
	CarrierName string
}

// RateResponse is the parsed result of a rate-shopping call.
type RateResponse struct {
	RequestID    string
	ShipmentID   ShipmentID
	Rates        []Rate
	InvalidRates []Rate
	Errors       []RatingError
}

// RateByServiceCode returns the first rate quoted for the given service, or
// false when no carrier quoted it.
func (r *RateResponse) RateByServiceCode(code ServiceCode) (Rate, bool) {
	for _, rate := range r.Rates {
		if rate.ServiceCode == code {
			return rate, true
		}
	}
	return Rate{}, false
}

// RateByID returns the rate with the given id, or false when absent.
func (r *RateResponse) RateByID(id RateID) (Rate, bool) {
	for _, rate := range r.Rates {
		if rate.ID == id {
			return rate, true
		}
	}
	return Rate{}, false
}

// RatesByCarrierID returns every rate quoted by the given carrier account.
func (r *RateResponse) RatesByCarrierID(id CarrierID) []Rate {
	var rates []Rate
	for _, rate := range r.Rates {
		if rate.CarrierID == id {
			rates = append(rates, rate)
		}
	}
	return rates
}

// RatesByCarrierCode returns every rate quoted under the given carrier code.
func (r *RateResponse) RatesByCarrierCode(code CarrierCode) []Rate {
	var rates []Rate
	for _, rate := range r.Rates {
		if rate.CarrierCode == code {
			rates = append(rates, rate)
		}
	}
	return rates
}

func parseRate(doc RateDocument) Rate {
	return Rate{
		ID:                    doc.RateID,
		Type:                  doc.RateType,
		CarrierID:             doc.CarrierID,
		CarrierCode:           doc.CarrierCode,
		CarrierNickname:       doc.CarrierNickname,
		CarrierFriendlyName:   doc.CarrierFriendlyName,
		ShippingAmount:        doc.ShippingAmount,
		InsuranceAmount:       doc.InsuranceAmount,
		ConfirmationAmount:    doc.ConfirmationAmount,
		OtherAmount:           doc.OtherAmount,
		Zone:                  doc.Zone.String(),
		PackageType:           doc.PackageType,
		DeliveryDays:          doc.DeliveryDays,
		GuaranteedService:     doc.GuaranteedService,
		EstimatedDeliveryDate: doc.EstimatedDeliveryDate,
		CarrierDeliveryDays:   doc.CarrierDeliveryDays,
		ShipDate:              doc.ShipDate,
		NegotiatedRate:        doc.NegotiatedRate,
		ServiceName:           doc.ServiceType,
		ServiceCode:           doc.ServiceCode,
		Trackable:             doc.Trackable,
		WarningMessages:       doc.WarningMessages,
		ErrorMessages:         doc.ErrorMessages,
	}
}

func parseRatingError(doc RatingErrorDocument) RatingError {
	message := doc.Message
	if message == "" {
		message = ratingErrorFallbackMessage
	}
	return RatingError{
		Message:     message,
		Source:      doc.ErrorSource,
		Type:        doc.ErrorType,
		Code:        doc.ErrorCode,
		CarrierID:   doc.CarrierID,
		CarrierCode: doc.CarrierCode,
		CarrierName: doc.CarrierName,
	}
}

// parseRateResponse maps the wire envelope to the domain result. It performs
// no I/O and tolerates absent optional arrays.
func parseRateResponse(doc RateResponseDocument) *RateResponse {
	resp := &RateResponse{
		RequestID:  doc.RateRequestID.String(),
		ShipmentID: doc.ShipmentID,
	}
	for _, rate := range doc.Rates {
		resp.Rates = append(resp.Rates, parseRate(rate))
	}
	for _, rate := range doc.InvalidRates {
		resp.InvalidRates = append(resp.InvalidRates, parseRate(rate))
	}
	for _, e := range doc.Errors {
		resp.Errors = append(resp.Errors, parseRatingError(e))
	}
	return resp
}
