package shipengine

import (
	"encoding/json"
	"fmt"
)

// Canonical field names of the ShipEngine address model.
const (
	FieldName                 = "name"
	FieldPhone                = "phone"
	FieldCompanyName          = "company_name"
	FieldAddressLine1         = "address_line1"
	FieldAddressLine2         = "address_line2"
	FieldAddressLine3         = "address_line3"
	FieldCityLocality         = "city_locality"
	FieldStateProvince        = "state_province"
	FieldPostalCode           = "postal_code"
	FieldCountryCode          = "country_code"
	FieldResidentialIndicator = "address_residential_indicator"
)

// addressFieldNames are the canonical fields a verification message may refer
// to, in the order they are searched when guessing the offending field.
var addressFieldNames = []string{
	FieldName,
	FieldPhone,
	FieldCompanyName,
	FieldAddressLine1,
	FieldAddressLine2,
	FieldAddressLine3,
	FieldCityLocality,
	FieldStateProvince,
	FieldPostalCode,
	FieldCountryCode,
}

// requiredAddressKeys must all be present in a Formatter's output. Absence of
// any of them fails address construction with a ValidationError.
var requiredAddressKeys = []string{
	FieldName,
	FieldPhone,
	FieldCompanyName,
	FieldAddressLine1,
	FieldCityLocality,
	FieldStateProvince,
	FieldPostalCode,
	FieldCountryCode,
}

// ResidentialIndicator reports whether an address is residential.
type ResidentialIndicator string

const (
	ResidentialYes     ResidentialIndicator = "yes"
	ResidentialNo      ResidentialIndicator = "no"
	ResidentialUnknown ResidentialIndicator = "unknown"
)

// Formatter adapts an arbitrary caller-domain address representation into the
// canonical field mapping. It is the sole extension point the embedding
// application must supply; a Formatter error is a caller-configuration bug and
// propagates to the caller unwrapped.
type Formatter interface {
	Format(address any) (map[string]string, error)
}

// MapFormatter is a Formatter for addresses that already use the canonical
// keys. It passes the map through untouched so that missing keys surface as
// validation errors rather than empty fields.
type MapFormatter struct{}

// Format implements Formatter.
func (MapFormatter) Format(address any) (map[string]string, error) {
	fields, ok := address.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("%w: MapFormatter expects map[string]string, got %T", ErrInvalidArgument, address)
	}
	return fields, nil
}

// Address is the canonical address accepted by every ShipEngine endpoint.
// Values are built by an AddressFactory from a Formatter's output, never
// partially populated.
type Address struct {
	Name                 string
	Phone                string
	CompanyName          string
	AddressLine1         string
	AddressLine2         string
	AddressLine3         string
	CityLocality         string
	StateProvince        string
	PostalCode           string
	CountryCode          string
	ResidentialIndicator ResidentialIndicator
}

// AddressDocument is the wire shape of an address. Optional lines serialize
// as null when unset, matching what the validation endpoint expects.
type AddressDocument struct {
	Name                 string               `json:"name"`
	Phone                string               `json:"phone"`
	CompanyName          string               `json:"company_name"`
	AddressLine1         string               `json:"address_line1"`
	AddressLine2         *string              `json:"address_line2"`
	AddressLine3         *string              `json:"address_line3"`
	CityLocality         string               `json:"city_locality"`
	StateProvince        string               `json:"state_province"`
	PostalCode           string               `json:"postal_code"`
	CountryCode          string               `json:"country_code"`
	ResidentialIndicator ResidentialIndicator `json:"address_residential_indicator"`
}

// Document returns the canonical wire form of the address.
func (a Address) Document() AddressDocument {
	indicator := a.ResidentialIndicator
	if indicator == "" {
		indicator = ResidentialUnknown
	}
	return AddressDocument{
		Name:                 a.Name,
		Phone:                a.Phone,
		CompanyName:          a.CompanyName,
		AddressLine1:         a.AddressLine1,
		AddressLine2:         optionalString(a.AddressLine2),
		AddressLine3:         optionalString(a.AddressLine3),
		CityLocality:         a.CityLocality,
		StateProvince:        a.StateProvince,
		PostalCode:           a.PostalCode,
		CountryCode:          a.CountryCode,
		ResidentialIndicator: indicator,
	}
}

// MarshalJSON serializes the address in its canonical wire form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Document())
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// addressFromDocument builds an Address from a decoded wire document.
func addressFromDocument(doc AddressDocument) Address {
	indicator := doc.ResidentialIndicator
	if indicator == "" {
		indicator = ResidentialUnknown
	}
	return Address{
		Name:                 doc.Name,
		Phone:                doc.Phone,
		CompanyName:          doc.CompanyName,
		AddressLine1:         doc.AddressLine1,
		AddressLine2:         stringValue(doc.AddressLine2),
		AddressLine3:         stringValue(doc.AddressLine3),
		CityLocality:         doc.CityLocality,
		StateProvince:        doc.StateProvince,
		PostalCode:           doc.PostalCode,
		CountryCode:          doc.CountryCode,
		ResidentialIndicator: indicator,
	}
}

// AddressFactory builds canonical Addresses through a caller-supplied
// Formatter, validating that every required field came back.
type AddressFactory struct {
	formatter Formatter
}

// NewAddressFactory creates an AddressFactory using the given Formatter.
func NewAddressFactory(formatter Formatter) *AddressFactory {
	return &AddressFactory{formatter: formatter}
}

// Address formats the given domain address and validates the result. When the
// Formatter omits any required key the returned error is a *ValidationError
// naming all missing keys; the caller never receives a partial Address.
func (f *AddressFactory) Address(address any) (Address, error) {
	fields, err := f.formatter.Format(address)
	if err != nil {
		return Address{}, err
	}

	var missing []string
	for _, key := range requiredAddressKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Address{}, &ValidationError{MissingKeys: missing}
	}

	addr := Address{
		Name:                 fields[FieldName],
		Phone:                fields[FieldPhone],
		CompanyName:          fields[FieldCompanyName],
		AddressLine1:         fields[FieldAddressLine1],
		AddressLine2:         fields[FieldAddressLine2],
		AddressLine3:         fields[FieldAddressLine3],
		CityLocality:         fields[FieldCityLocality],
		StateProvince:        fields[FieldStateProvince],
		PostalCode:           fields[FieldPostalCode],
		CountryCode:          fields[FieldCountryCode],
		ResidentialIndicator: ResidentialUnknown,
	}
	if v := fields[FieldResidentialIndicator]; v != "" {
		addr.ResidentialIndicator = ResidentialIndicator(v)
	}
	return addr, nil
}

// Documents maps a batch of items to wire documents. Each item is either an
// already-built Address, used as-is, or a raw domain object passed through the
// Formatter. Used when validating many addresses in one call.
func (f *AddressFactory) Documents(items []any) ([]AddressDocument, error) {
	docs := make([]AddressDocument, 0, len(items))
	for _, item := range items {
		if addr, ok := item.(Address); ok {
			docs = append(docs, addr.Document())
			continue
		}
		addr, err := f.Address(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, addr.Document())
	}
	return docs, nil
}
