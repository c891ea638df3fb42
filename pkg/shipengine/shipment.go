package shipengine

import (
	"encoding/json"
	"fmt"
)

// WeightUnit is the unit of a package weight.
type WeightUnit string

const (
	WeightOunce WeightUnit = "ounce"
	WeightPound WeightUnit = "pound"
	WeightGram  WeightUnit = "gram"
)

const gramsPerOunce = 28.349523125

// Weight is a package weight with its unit.
type Weight struct {
	Value float64
	Unit  WeightUnit
}

// NewWeight builds a Weight, rejecting units outside the enumerated set.
func NewWeight(value float64, unit WeightUnit) (Weight, error) {
	switch unit {
	case WeightOunce, WeightPound, WeightGram:
		return Weight{Value: value, Unit: unit}, nil
	default:
		return Weight{}, fmt.Errorf("%w: weight unit must be one of ounce,pound,gram, got %q", ErrInvalidArgument, unit)
	}
}

// Ounces normalizes the weight to ounces for aggregation across packages.
func (w Weight) Ounces() float64 {
	switch w.Unit {
	case WeightPound:
		return w.Value * 16
	case WeightGram:
		return w.Value / gramsPerOunce
	default:
		return w.Value
	}
}

// DimensionUnit is the unit of package dimensions.
type DimensionUnit string

const (
	DimensionInch       DimensionUnit = "inch"
	DimensionCentimeter DimensionUnit = "centimeter"
)

// Dimensions are the outer measurements of a package.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
	Unit   DimensionUnit
}

// NewDimensions builds Dimensions, rejecting units outside the enumerated set.
func NewDimensions(length, width, height float64, unit DimensionUnit) (Dimensions, error) {
	switch unit {
	case DimensionInch, DimensionCentimeter:
		return Dimensions{Length: length, Width: width, Height: height, Unit: unit}, nil
	default:
		return Dimensions{}, fmt.Errorf("%w: dimension unit must be one of inch,centimeter, got %q", ErrInvalidArgument, unit)
	}
}

const (
	maxLabelMessages     = 3
	maxLabelMessageChars = 35
)

// labelMessage is one line of free text printed on the label. The label key
// (reference1..reference3) is assigned in insertion order.
type labelMessage struct {
	label string
	text  string
}

// Package is one parcel of a shipment. Optional sections stay absent from the
// wire payload until explicitly set.
type Package struct {
	weight       Weight
	dimensions   *Dimensions
	insuredValue *Amount
	packageCode  PackageCode
	messages     []labelMessage
}

// NewPackage creates a Package of the given weight.
func NewPackage(weight Weight) *Package {
	return &Package{weight: weight}
}

// Weight returns the package weight.
func (p *Package) Weight() Weight {
	return p.weight
}

// SetDimensions attaches outer dimensions to the package.
func (p *Package) SetDimensions(dims Dimensions) *Package {
	p.dimensions = &dims
	return p
}

// SetInsuredValue declares the amount the package is insured for.
func (p *Package) SetInsuredValue(value Amount) *Package {
	p.insuredValue = &value
	return p
}

// SetPackageCode selects a carrier package type for this parcel.
func (p *Package) SetPackageCode(code PackageCode) *Package {
	p.packageCode = code
	return p
}

// AddLabelMessage adds a line of text to print on the label. At most three
// messages are allowed; each is keyed reference1..reference3 in insertion
// order and truncated to 35 characters.
func (p *Package) AddLabelMessage(text string) error {
	if len(p.messages) >= maxLabelMessages {
		return fmt.Errorf("%w: a package carries at most %d label messages", ErrInvalidArgument, maxLabelMessages)
	}
	if len(text) > maxLabelMessageChars {
		text = text[:maxLabelMessageChars]
	}
	p.messages = append(p.messages, labelMessage{
		label: fmt.Sprintf("reference%d", len(p.messages)+1),
		text:  text,
	})
	return nil
}

// document renders the package wire payload. Optional sections are omitted,
// not emitted empty.
func (p *Package) document() map[string]any {
	doc := map[string]any{
		"weight": map[string]any{
			"value": p.weight.Value,
			"unit":  string(p.weight.Unit),
		},
	}
	if p.dimensions != nil {
		doc["dimensions"] = map[string]any{
			"unit":   string(p.dimensions.Unit),
			"length": p.dimensions.Length,
			"width":  p.dimensions.Width,
			"height": p.dimensions.Height,
		}
	}
	if p.insuredValue != nil {
		doc["insured_value"] = *p.insuredValue
	}
	if p.packageCode != "" {
		doc["package_code"] = p.packageCode.String()
	}
	if len(p.messages) > 0 {
		messages := make(map[string]string, len(p.messages))
		for _, m := range p.messages {
			messages[m.label] = m.text
		}
		doc["label_messages"] = messages
	}
	return doc
}

// CustomsContents declares what a customs shipment contains.
type CustomsContents string

const (
	ContentsGift          CustomsContents = "gift"
	ContentsMerchandise   CustomsContents = "merchandise"
	ContentsReturnedGoods CustomsContents = "returned_goods"
	ContentsDocuments     CustomsContents = "documents"
	ContentsSample        CustomsContents = "sample"
)

// NonDelivery declares what happens to an undeliverable customs shipment.
type NonDelivery string

const (
	NonDeliveryAbandon NonDelivery = "treat_as_abandoned"
	NonDeliveryReturn  NonDelivery = "return_to_sender"
)

// CustomsItem describes one line item on a customs declaration.
type CustomsItem struct {
	Description     string
	Quantity        int
	Value           float64
	CountryOfOrigin string
	TariffCode      string
}

func (i CustomsItem) document() map[string]any {
	doc := map[string]any{
		"description":       i.Description,
		"quantity":          i.Quantity,
		"value":             i.Value,
		"country_of_origin": i.CountryOfOrigin,
	}
	if i.TariffCode != "" {
		doc["harmonized_tariff_code"] = i.TariffCode
	}
	return doc
}

// Customs is a customs declaration for international shipments.
type Customs struct {
	contents    CustomsContents
	nonDelivery NonDelivery
	items       []CustomsItem
}

// NewCustoms builds a customs declaration, validating both enums immediately.
func NewCustoms(contents CustomsContents, nonDelivery NonDelivery, items []CustomsItem) (*Customs, error) {
	switch contents {
	case ContentsGift, ContentsMerchandise, ContentsReturnedGoods, ContentsDocuments, ContentsSample:
	default:
		return nil, fmt.Errorf("%w: %q is not a valid customs contents value", ErrInvalidArgument, contents)
	}
	switch nonDelivery {
	case NonDeliveryAbandon, NonDeliveryReturn:
	default:
		return nil, fmt.Errorf("%w: %q is not a valid customs non_delivery value", ErrInvalidArgument, nonDelivery)
	}
	return &Customs{contents: contents, nonDelivery: nonDelivery, items: items}, nil
}

// AddItems appends line items to the declaration.
func (c *Customs) AddItems(items ...CustomsItem) {
	c.items = append(c.items, items...)
}

func (c *Customs) document() map[string]any {
	items := make([]map[string]any, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item.document())
	}
	return map[string]any{
		"contents":      string(c.contents),
		"non_delivery":  string(c.nonDelivery),
		"customs_items": items,
	}
}

// InsuranceProvider selects who insures a shipment.
type InsuranceProvider string

const (
	InsuranceNone        InsuranceProvider = "none"
	InsuranceShipsurance InsuranceProvider = "shipsurance"
	InsuranceCarrier     InsuranceProvider = "carrier"
	InsuranceThirdParty  InsuranceProvider = "third_party"
)

// DeliveryConfirmation is the requested proof-of-delivery level.
type DeliveryConfirmation string

const (
	ConfirmationDelivery        DeliveryConfirmation = "delivery"
	ConfirmationSignature       DeliveryConfirmation = "signature"
	ConfirmationAdultSignature  DeliveryConfirmation = "adult_signature"
	ConfirmationDirectSignature DeliveryConfirmation = "direct_signature"
)

// AddressValidation controls validation of shipment addresses during rating.
type AddressValidation string

const (
	NoValidation     AddressValidation = "no_validation"
	ValidateOnly     AddressValidation = "validate_only"
	ValidateAndClean AddressValidation = "validate_and_clean"
)

type shipmentKind int

const (
	shipmentRating shipmentKind = iota
	shipmentLabel
)

// Shipment is an immutable, fully assembled shipment payload produced by a
// ShipmentBuilder. Serialization is deterministic and side-effect free, so the
// same Shipment may back any number of requests.
type Shipment struct {
	kind              shipmentKind
	shipTo            Address
	shipFrom          Address
	packages          []*Package
	insuranceProvider InsuranceProvider
	advancedOptions   map[string]any
	confirmation      DeliveryConfirmation
	customs           *Customs

	// rating only
	validateAddress AddressValidation

	// label only
	serviceCode ServiceCode
	carrierID   CarrierID
}

// TotalWeight sums every package's weight normalized to ounces.
func (s *Shipment) TotalWeight() Weight {
	var total float64
	for _, pkg := range s.packages {
		total += pkg.weight.Ounces()
	}
	return Weight{Value: total, Unit: WeightOunce}
}

// ServiceCode returns the requested service for label shipments; empty for
// rating shipments.
func (s *Shipment) ServiceCode() ServiceCode {
	return s.serviceCode
}

func (s *Shipment) document() map[string]any {
	packages := make([]map[string]any, 0, len(s.packages))
	for _, pkg := range s.packages {
		packages = append(packages, pkg.document())
	}

	total := s.TotalWeight()
	insurance := s.insuranceProvider
	if insurance == "" {
		insurance = InsuranceNone
	}

	doc := map[string]any{
		"ship_to":   s.shipTo.Document(),
		"ship_from": s.shipFrom.Document(),
		"packages":  packages,
		"total_weight": map[string]any{
			"value": total.Value,
			"unit":  string(total.Unit),
		},
		"insurance_provider": string(insurance),
	}
	if len(s.advancedOptions) > 0 {
		doc["advanced_options"] = s.advancedOptions
	}
	if s.confirmation != "" {
		doc["confirmation"] = string(s.confirmation)
	}
	if s.customs != nil {
		doc["customs"] = s.customs.document()
	}

	switch s.kind {
	case shipmentRating:
		doc["validate_address"] = string(s.validateAddress)
	case shipmentLabel:
		doc["service_code"] = s.serviceCode.String()
		if s.carrierID != "" {
			doc["carrier_id"] = s.carrierID.String()
		}
	}
	return doc
}

// MarshalJSON renders the shipment wire payload. Repeated calls produce the
// same bytes for the same Shipment.
func (s *Shipment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.document())
}

// ShipmentBuilder accumulates shipment data and finalizes it with Build.
// Setter errors are returned at the offending call, before any I/O.
type ShipmentBuilder struct {
	shipment Shipment
}

// NewRatingShipment starts a shipment destined for the rate-shopping endpoint.
// Address validation defaults to off.
func NewRatingShipment(shipTo, shipFrom Address) *ShipmentBuilder {
	return &ShipmentBuilder{shipment: Shipment{
		kind:            shipmentRating,
		shipTo:          shipTo,
		shipFrom:        shipFrom,
		validateAddress: NoValidation,
	}}
}

// NewLabelShipment starts a shipment destined for label purchase with the
// given carrier service.
func NewLabelShipment(service ServiceCode, shipTo, shipFrom Address) *ShipmentBuilder {
	return &ShipmentBuilder{shipment: Shipment{
		kind:        shipmentLabel,
		shipTo:      shipTo,
		shipFrom:    shipFrom,
		serviceCode: service,
	}}
}

// AddPackage appends a parcel to the shipment.
func (b *ShipmentBuilder) AddPackage(pkg *Package) *ShipmentBuilder {
	b.shipment.packages = append(b.shipment.packages, pkg)
	return b
}

// AddAdvancedOption records a carrier-specific option by its wire code.
func (b *ShipmentBuilder) AddAdvancedOption(code string, value any) *ShipmentBuilder {
	if b.shipment.advancedOptions == nil {
		b.shipment.advancedOptions = make(map[string]any)
	}
	b.shipment.advancedOptions[code] = value
	return b
}

// SetDeliveryConfirmation requests a proof-of-delivery level.
func (b *ShipmentBuilder) SetDeliveryConfirmation(confirmation DeliveryConfirmation) error {
	switch confirmation {
	case ConfirmationDelivery, ConfirmationSignature, ConfirmationAdultSignature, ConfirmationDirectSignature:
		b.shipment.confirmation = confirmation
		return nil
	default:
		return fmt.Errorf("%w: %q is not a valid delivery confirmation", ErrInvalidArgument, confirmation)
	}
}

// SetCustoms attaches a customs declaration.
func (b *ShipmentBuilder) SetCustoms(customs *Customs) *ShipmentBuilder {
	b.shipment.customs = customs
	return b
}

// SpecifyInsuranceProvider selects the insurer for the shipment.
func (b *ShipmentBuilder) SpecifyInsuranceProvider(provider InsuranceProvider) error {
	switch provider {
	case InsuranceNone, InsuranceShipsurance, InsuranceCarrier, InsuranceThirdParty:
		b.shipment.insuranceProvider = provider
		return nil
	default:
		return fmt.Errorf("%w: %q is not a valid insurance provider", ErrInvalidArgument, provider)
	}
}

// SpecifyCarrierID pins a label shipment to one carrier account. Only needed
// when multiple accounts exist for the same carrier.
func (b *ShipmentBuilder) SpecifyCarrierID(id CarrierID) error {
	if b.shipment.kind != shipmentLabel {
		return fmt.Errorf("%w: carrier_id applies to label shipments only", ErrInvalidArgument)
	}
	b.shipment.carrierID = id
	return nil
}

// SetAddressValidation selects the validation mode for a rating shipment.
func (b *ShipmentBuilder) SetAddressValidation(mode AddressValidation) error {
	if b.shipment.kind != shipmentRating {
		return fmt.Errorf("%w: validate_address applies to rating shipments only", ErrInvalidArgument)
	}
	switch mode {
	case NoValidation, ValidateOnly, ValidateAndClean:
		b.shipment.validateAddress = mode
		return nil
	default:
		return fmt.Errorf("%w: %q is not a valid address validation mode", ErrInvalidArgument, mode)
	}
}

// Build finalizes the shipment. At least one package is required.
func (b *ShipmentBuilder) Build() (*Shipment, error) {
	if len(b.shipment.packages) == 0 {
		return nil, fmt.Errorf("%w: a shipment requires at least one package", ErrInvalidArgument)
	}
	shipment := b.shipment
	shipment.packages = append([]*Package(nil), b.shipment.packages...)
	return &shipment, nil
}
