package shipengine

import (
	"encoding/json"
	"fmt"
)

// CarrierType names a carrier platform that accounts can be connected to.
type CarrierType string

const (
	CarrierUPS          CarrierType = "ups"
	CarrierFedEx        CarrierType = "fedex"
	CarrierStampsDotCom CarrierType = "stamps_com"
)

// ServiceDocument is the wire shape of one carrier service.
type ServiceDocument struct {
	ServiceCode   ServiceCode `json:"service_code"`
	Name          string      `json:"name"`
	Domestic      bool        `json:"domestic"`
	International bool        `json:"international"`
}

// PackageTypeDocument is the wire shape of one carrier package type.
type PackageTypeDocument struct {
	PackageID   string      `json:"package_id"`
	PackageCode PackageCode `json:"package_code"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// AvailableOptionDocument is the wire shape of one advanced carrier option.
type AvailableOptionDocument struct {
	Name         string `json:"name"`
	DefaultValue string `json:"default_value"`
	Description  string `json:"description"`
}

// CarrierDocument is the wire shape of a connected carrier account.
type CarrierDocument struct {
	CarrierID            CarrierID                 `json:"carrier_id"`
	CarrierCode          CarrierCode               `json:"carrier_code"`
	AccountNumber        string                    `json:"account_number"`
	RequiresFundedAmount bool                      `json:"requires_funded_amount"`
	Balance              float64                   `json:"balance"`
	Nickname             string                    `json:"nickname"`
	FriendlyName         string                    `json:"friendly_name"`
	Primary              bool                      `json:"primary"`
	Services             []ServiceDocument         `json:"services"`
	Packages             []PackageTypeDocument     `json:"packages"`
	Options              []AvailableOptionDocument `json:"options"`
}

// Service is one shipping service offered by a carrier.
type Service struct {
	Code          ServiceCode
	Name          string
	Domestic      bool
	International bool
}

// PackageType is one predefined parcel type offered by a carrier.
type PackageType struct {
	ID          string
	Code        PackageCode
	Name        string
	Description string
}

// AvailableOption is one advanced option a carrier supports, with its
// default value.
type AvailableOption struct {
	Name         string
	DefaultValue string
	Description  string
}

// Carrier is a connected carrier account.
type Carrier struct {
	ID                   CarrierID
	Code                 CarrierCode
	AccountNumber        string
	RequiresFundedAmount bool
	Balance              float64
	Nickname             string
	FriendlyName         string
	Primary              bool
	Services             []Service
	PackageTypes         []PackageType
	Options              []AvailableOption
}

// CarrierCatalog bundles the full offering of one carrier account.
type CarrierCatalog struct {
	Services     []Service
	PackageTypes []PackageType
	Options      []AvailableOption
}

func parseService(doc ServiceDocument) Service {
	return Service{
		Code:          doc.ServiceCode,
		Name:          doc.Name,
		Domestic:      doc.Domestic,
		International: doc.International,
	}
}

func parsePackageType(doc PackageTypeDocument) PackageType {
	return PackageType{
		ID:          doc.PackageID,
		Code:        doc.PackageCode,
		Name:        doc.Name,
		Description: doc.Description,
	}
}

func parseAvailableOption(doc AvailableOptionDocument) AvailableOption {
	return AvailableOption{
		Name:         doc.Name,
		DefaultValue: doc.DefaultValue,
		Description:  doc.Description,
	}
}

func parseServices(docs []ServiceDocument) []Service {
	services := make([]Service, 0, len(docs))
	for _, doc := range docs {
		services = append(services, parseService(doc))
	}
	return services
}

func parsePackageTypes(docs []PackageTypeDocument) []PackageType {
	types := make([]PackageType, 0, len(docs))
	for _, doc := range docs {
		types = append(types, parsePackageType(doc))
	}
	return types
}

func parseAvailableOptions(docs []AvailableOptionDocument) []AvailableOption {
	options := make([]AvailableOption, 0, len(docs))
	for _, doc := range docs {
		options = append(options, parseAvailableOption(doc))
	}
	return options
}

func parseCarrier(doc CarrierDocument) Carrier {
	return Carrier{
		ID:                   doc.CarrierID,
		Code:                 doc.CarrierCode,
		AccountNumber:        doc.AccountNumber,
		RequiresFundedAmount: doc.RequiresFundedAmount,
		Balance:              doc.Balance,
		Nickname:             doc.Nickname,
		FriendlyName:         doc.FriendlyName,
		Primary:              doc.Primary,
		Services:             parseServices(doc.Services),
		PackageTypes:         parsePackageTypes(doc.Packages),
		Options:              parseAvailableOptions(doc.Options),
	}
}

// StampsDotComAccount is the connect payload for a Stamps.com account.
type StampsDotComAccount struct {
	Nickname string `json:"nickname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UPSInvoice holds the invoice details UPS may require to verify account
// ownership during connection.
type UPSInvoice struct {
	InvoiceDate   string  `json:"invoice_date"`
	InvoiceNumber string  `json:"invoice_number"`
	ControlID     string  `json:"control_id"`
	InvoiceAmount float64 `json:"invoice_amount"`
}

// UPSAccount is the connect payload for a UPS account.
type UPSAccount struct {
	Nickname                   string      `json:"nickname"`
	AccountNumber              string      `json:"account_number"`
	AccountCountryCode         string      `json:"account_country_code"`
	AccountPostalCode          string      `json:"account_postal_code"`
	Title                      string      `json:"title,omitempty"`
	FirstName                  string      `json:"first_name"`
	LastName                   string      `json:"last_name"`
	Company                    string      `json:"company,omitempty"`
	Address1                   string      `json:"address1"`
	Address2                   string      `json:"address2,omitempty"`
	City                       string      `json:"city"`
	State                      string      `json:"state"`
	PostalCode                 string      `json:"postal_code"`
	CountryCode                string      `json:"country_code"`
	Email                      string      `json:"email"`
	Phone                      string      `json:"phone"`
	Invoice                    *UPSInvoice `json:"invoice,omitempty"`
	AgreeToTechnologyAgreement bool        `json:"agree_to_technology_agreement"`
}

// FedExAccount is the connect payload for a FedEx account.
type FedExAccount struct {
	Nickname      string `json:"nickname"`
	AccountNumber string `json:"account_number"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2,omitempty"`
	City          string `json:"city"`
	Company       string `json:"company,omitempty"`
	CountryCode   string `json:"country_code"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	PostalCode    string `json:"postal_code"`
	State         string `json:"state"`
	AgreeToEULA   bool   `json:"agree_to_eula"`
	MeterNumber   string `json:"meter_number,omitempty"`
}

// UPSPickupType is the UPS pickup arrangement for an account.
type UPSPickupType string

const (
	PickupDaily      UPSPickupType = "daily_pickup"
	PickupOccasional UPSPickupType = "occasional_pickup"
	PickupCustomer   UPSPickupType = "customer_counter"
)

// MailEndorsement is the UPS Mail Innovations endorsement printed on labels.
type MailEndorsement string

const (
	EndorsementNone    MailEndorsement = "none"
	EndorsementReturn  MailEndorsement = "return_service_requested"
	EndorsementForward MailEndorsement = "forward_service_requested"
	EndorsementAddress MailEndorsement = "address_service_requested"
	EndorsementChange  MailEndorsement = "change_service_requested"
	EndorsementLeave   MailEndorsement = "leave_if_no_response"
)

// UPSSettings is a partial update of UPS account settings. Only fields that
// have been set serialize; the remote API interprets absent keys as
// "leave unchanged".
type UPSSettings struct {
	nickname                   *string
	isPrimaryAccount           *bool
	pickupType                 *UPSPickupType
	useCarbonNeutral           *bool
	useGroundFreightPricing    *bool
	useNegotiatedRates         *bool
	accountPostalCode          *string
	invoice                    *UPSInvoice
	useConsolidationServices   *bool
	useOrderNumberOnMILabels   *bool
	mailInnovationsEndorsement *MailEndorsement
	mailInnovationsCostCenter  *string
}

// NewUPSSettings starts an empty settings update.
func NewUPSSettings() *UPSSettings {
	return &UPSSettings{}
}

// SetNickname renames the account.
func (s *UPSSettings) SetNickname(nickname string) *UPSSettings {
	s.nickname = &nickname
	return s
}

// SetPrimaryAccount marks the account as the primary one for its carrier.
func (s *UPSSettings) SetPrimaryAccount(primary bool) *UPSSettings {
	s.isPrimaryAccount = &primary
	return s
}

// SetPickupType selects the pickup arrangement.
func (s *UPSSettings) SetPickupType(pickup UPSPickupType) error {
	switch pickup {
	case PickupDaily, PickupOccasional, PickupCustomer:
		s.pickupType = &pickup
		return nil
	default:
		return fmt.Errorf("%w: %q is not a valid pickup_type", ErrInvalidArgument, pickup)
	}
}

// SetUseCarbonNeutralShippingProgram toggles the carbon neutral program.
func (s *UPSSettings) SetUseCarbonNeutralShippingProgram(use bool) *UPSSettings {
	s.useCarbonNeutral = &use
	return s
}

// SetUseGroundFreightPricing toggles ground freight pricing.
func (s *UPSSettings) SetUseGroundFreightPricing(use bool) *UPSSettings {
	s.useGroundFreightPricing = &use
	return s
}

// SetUseNegotiatedRates toggles account-negotiated rates.
func (s *UPSSettings) SetUseNegotiatedRates(use bool) *UPSSettings {
	s.useNegotiatedRates = &use
	return s
}

// SetAccountPostalCode updates the postal code on file.
func (s *UPSSettings) SetAccountPostalCode(code string) *UPSSettings {
	s.accountPostalCode = &code
	return s
}

// SetInvoice attaches invoice details for account verification.
func (s *UPSSettings) SetInvoice(invoice UPSInvoice) *UPSSettings {
	s.invoice = &invoice
	return s
}

// SetUseConsolidationServices toggles consolidation services.
func (s *UPSSettings) SetUseConsolidationServices(use bool) *UPSSettings {
	s.useConsolidationServices = &use
	return s
}

// SetUseOrderNumberOnMailInnovationsLabels toggles order numbers on Mail
// Innovations labels.
func (s *UPSSettings) SetUseOrderNumberOnMailInnovationsLabels(use bool) *UPSSettings {
	s.useOrderNumberOnMILabels = &use
	return s
}

// SetMailInnovationsEndorsement selects the Mail Innovations endorsement.
func (s *UPSSettings) SetMailInnovationsEndorsement(endorsement MailEndorsement) error {
	switch endorsement {
	case EndorsementNone, EndorsementReturn, EndorsementForward,
		EndorsementAddress, EndorsementChange, EndorsementLeave:
		s.mailInnovationsEndorsement = &endorsement
		return nil
	default:
		return fmt.Errorf("%w: %q is not a valid mail_innovations_endorsement", ErrInvalidArgument, endorsement)
	}
}

// SetMailInnovationsCostCenter sets the Mail Innovations cost center.
func (s *UPSSettings) SetMailInnovationsCostCenter(costCenter string) *UPSSettings {
	s.mailInnovationsCostCenter = &costCenter
	return s
}

// MarshalJSON emits only the fields that were explicitly set.
func (s *UPSSettings) MarshalJSON() ([]byte, error) {
	doc := map[string]any{}
	if s.nickname != nil {
		doc["nickname"] = *s.nickname
	}
	if s.isPrimaryAccount != nil {
		doc["is_primary_account"] = *s.isPrimaryAccount
	}
	if s.pickupType != nil {
		doc["pickup_type"] = string(*s.pickupType)
	}
	if s.useCarbonNeutral != nil {
		doc["use_carbon_neutral_shipping_program"] = *s.useCarbonNeutral
	}
	if s.useGroundFreightPricing != nil {
		doc["use_ground_freight_pricing"] = *s.useGroundFreightPricing
	}
	if s.useNegotiatedRates != nil {
		doc["use_negotiated_rates"] = *s.useNegotiatedRates
	}
	if s.accountPostalCode != nil {
		doc["account_postal_code"] = *s.accountPostalCode
	}
	if s.invoice != nil {
		doc["invoice"] = *s.invoice
	}
	if s.useConsolidationServices != nil {
		doc["use_consolidation_services"] = *s.useConsolidationServices
	}
	if s.useOrderNumberOnMILabels != nil {
		doc["use_order_number_on_mail_innovations_labels"] = *s.useOrderNumberOnMILabels
	}
	if s.mailInnovationsEndorsement != nil {
		doc["mail_innovations_endorsement"] = string(*s.mailInnovationsEndorsement)
	}
	if s.mailInnovationsCostCenter != nil {
		doc["mail_innovations_cost_center"] = *s.mailInnovationsCostCenter
	}
	return json.Marshal(doc)
}
