package shipengine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockAPI is a mock implementation of API for testing. Every operation
// returns canned data unless the corresponding On hook is set; SimulateErrors
// makes every call fail with an *ErrorResponse.
type MockAPI struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnValidateAddresses       func(ctx context.Context, addresses []AddressDocument) ([]VerificationResultDocument, error)
	OnListCarriers            func(ctx context.Context) ([]CarrierDocument, error)
	OnGetCarrier              func(ctx context.Context, carrierID CarrierID) (*CarrierDocument, error)
	OnListCarrierServices     func(ctx context.Context, carrierID CarrierID) ([]ServiceDocument, error)
	OnListCarrierPackageTypes func(ctx context.Context, carrierID CarrierID) ([]PackageTypeDocument, error)
	OnGetCarrierOptions       func(ctx context.Context, carrierID CarrierID) ([]AvailableOptionDocument, error)
	OnRemoveCarrier           func(ctx context.Context, carrier CarrierType, carrierID CarrierID) error
	OnGetRates                func(ctx context.Context, shipment *Shipment, options *RateOptions) (*RateResponseDocument, error)
	OnGetRate                 func(ctx context.Context, rateID RateID) (*RateDocument, error)
	OnCreateLabel             func(ctx context.Context, shipment *Shipment, testLabel bool) (*LabelDocument, error)
	OnCreateLabelFromRate     func(ctx context.Context, label *RateLabel) (*LabelDocument, error)
	OnVoidLabel               func(ctx context.Context, labelID LabelID) (*VoidDocument, error)
	OnConnectStampsDotCom     func(ctx context.Context, account StampsDotComAccount) (CarrierID, error)
	OnConnectUPS              func(ctx context.Context, account UPSAccount) (CarrierID, error)
	OnConnectFedEx            func(ctx context.Context, account FedExAccount) (CarrierID, error)
	OnUpdateUPSSettings       func(ctx context.Context, carrierID CarrierID, settings *UPSSettings) error
}

// NewMockAPI creates a new mock API client with default behavior.
func NewMockAPI() *MockAPI {
	return &MockAPI{}
}

func (m *MockAPI) before() error {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return &ErrorResponse{
			RequestID: "req-" + uuid.New().String()[:8],
			Errors:    []APIError{{Code: "mock_error", Message: "Simulated API error"}},
		}
	}
	return nil
}

// ValidateAddresses returns a verified result per submitted address, echoing
// the input through a fixed matched address.
func (m *MockAPI) ValidateAddresses(ctx context.Context, addresses []AddressDocument) ([]VerificationResultDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnValidateAddresses != nil {
		return m.OnValidateAddresses(ctx, addresses)
	}

	results := make([]VerificationResultDocument, 0, len(addresses))
	for _, address := range addresses {
		matched := address
		matched.AddressLine1 = "525 S WINCHESTER BLVD"
		matched.ResidentialIndicator = ResidentialNo
		results = append(results, VerificationResultDocument{
			Status:         StatusVerified,
			MatchedAddress: &matched,
		})
	}
	return results, nil
}

func (m *MockAPI) mockCarrier() CarrierDocument {
	return CarrierDocument{
		CarrierID:     "se-123456",
		CarrierCode:   "stamps_com",
		AccountNumber: "test_account_123",
		Balance:       25.50,
		Nickname:      "Mock Stamps.com",
		FriendlyName:  "Stamps.com",
		Primary:       true,
		Services: []ServiceDocument{
			{ServiceCode: "usps_first_class_mail", Name: "USPS First Class Mail", Domestic: true},
			{ServiceCode: "usps_priority_mail", Name: "USPS Priority Mail", Domestic: true, International: true},
			{ServiceCode: "usps_priority_mail_express", Name: "USPS Priority Mail Express", Domestic: true, International: true},
		},
		Packages: []PackageTypeDocument{
			{PackageID: "pkg-1", PackageCode: "package", Name: "Package", Description: "Package, any custom box"},
			{PackageID: "pkg-2", PackageCode: "flat_rate_envelope", Name: "Flat Rate Envelope", Description: "USPS Flat Rate Envelope"},
		},
		Options: []AvailableOptionDocument{
			{Name: "non_machinable", DefaultValue: "false", Description: "Non machinable parcel"},
		},
	}
}

// ListCarriers returns one mock Stamps.com account.
func (m *MockAPI) ListCarriers(ctx context.Context) ([]CarrierDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnListCarriers != nil {
		return m.OnListCarriers(ctx)
	}
	return []CarrierDocument{m.mockCarrier()}, nil
}

// GetCarrier returns a mock carrier with the requested id.
func (m *MockAPI) GetCarrier(ctx context.Context, carrierID CarrierID) (*CarrierDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnGetCarrier != nil {
		return m.OnGetCarrier(ctx, carrierID)
	}
	carrier := m.mockCarrier()
	carrier.CarrierID = carrierID
	return &carrier, nil
}

// ListCarrierServices returns the mock carrier's services.
func (m *MockAPI) ListCarrierServices(ctx context.Context, carrierID CarrierID) ([]ServiceDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnListCarrierServices != nil {
		return m.OnListCarrierServices(ctx, carrierID)
	}
	return m.mockCarrier().Services, nil
}

// ListCarrierPackageTypes returns the mock carrier's package types.
func (m *MockAPI) ListCarrierPackageTypes(ctx context.Context, carrierID CarrierID) ([]PackageTypeDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnListCarrierPackageTypes != nil {
		return m.OnListCarrierPackageTypes(ctx, carrierID)
	}
	return m.mockCarrier().Packages, nil
}

// GetCarrierOptions returns the mock carrier's advanced options.
func (m *MockAPI) GetCarrierOptions(ctx context.Context, carrierID CarrierID) ([]AvailableOptionDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnGetCarrierOptions != nil {
		return m.OnGetCarrierOptions(ctx, carrierID)
	}
	return m.mockCarrier().Options, nil
}

// RemoveCarrier succeeds unless overridden.
func (m *MockAPI) RemoveCarrier(ctx context.Context, carrier CarrierType, carrierID CarrierID) error {
	if err := m.before(); err != nil {
		return err
	}
	if m.OnRemoveCarrier != nil {
		return m.OnRemoveCarrier(ctx, carrier, carrierID)
	}
	return nil
}

// GetRates returns two mock USPS rates.
func (m *MockAPI) GetRates(ctx context.Context, shipment *Shipment, options *RateOptions) (*RateResponseDocument, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnGetRates != nil {
		return m.OnGetRates(ctx, shipment, options)
	}

	shipDate := time.Now().Format("2006-01-02")
	return &RateResponseDocument{
		RateRequestID: "12345",
		ShipmentID:    ShipmentID("se-ship-" + uuid.New().String()[:8]),
		Rates: []RateDocument{
			{
				RateID:                RateID("se-rate-" + uuid.New().String()[:8]),
				RateType:              "shipment",
				CarrierID:             "se-123456",
				CarrierCode:           "stamps_com",
				CarrierFriendlyName:   "Stamps.com",
				ShippingAmount:        Amount{Currency: "usd", Amount: 7.90},
				InsuranceAmount:       Amount{Currency: "usd", Amount: 0},
				ConfirmationAmount:    Amount{Currency: "usd", Amount: 0},
				OtherAmount:           Amount{Currency: "usd", Amount: 0},
				Zone:                  "5",
				DeliveryDays:          3,
				EstimatedDeliveryDate: time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
				ShipDate:              shipDate,
				ServiceType:           "USPS Priority Mail",
				ServiceCode:           "usps_priority_mail",
				Trackable:             true,
			},
			{
				RateID:                RateID("se-rate-" + uuid.New().String()[:8]),
				RateType:              "shipment",
				CarrierID:             "se-123456",
				CarrierCode:           "stamps_com",
				CarrierFriendlyName:   "Stamps.com",
				ShippingAmount:        Amount{Currency: "usd", Amount: 23.10},
				InsuranceAmount:       Amount{Currency: "usd", Amount: 0},
				ConfirmationAmount:    Amount{Currency: "usd", Amount: 0},
				OtherAmount:           Amount{Currency: "usd", Amount: 0},
				Zone:                  "5",
				DeliveryDays:          1,
				GuaranteedService:     true,
				EstimatedDeliveryDate: time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
				ShipDate:              shipDate,
				ServiceType:           "USPS Priority Mail Express",
				ServiceCode:           "usps_priority_mail_express",
				Trackable:             true,
			},
		},
	}, nil
}

// GetRate returns a mock rate with the requested id.
func (m *MockAPI) GetRate(ctx context.Context, rateID RateID) (*RateDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnGetRate != nil {
		return m.OnGetRate(ctx, rateID)
	}
	return &RateDocument{
		RateID:         rateID,
		RateType:       "shipment",
		CarrierID:      "se-123456",
		CarrierCode:    "stamps_com",
		ShippingAmount: Amount{Currency: "usd", Amount: 7.90},
		ServiceCode:    "usps_priority_mail",
		ServiceType:    "USPS Priority Mail",
		Trackable:      true,
	}, nil
}

func (m *MockAPI) mockLabel() *LabelDocument {
	id := uuid.New().String()[:8]
	return &LabelDocument{
		LabelID:        LabelID("se-label-" + id),
		Status:         "completed",
		ShipmentID:     ShipmentID("se-ship-" + id),
		ShipDate:       time.Now().Format("2006-01-02"),
		CreatedAt:      time.Now().Format(time.RFC3339),
		ShipmentCost:   Amount{Currency: "usd", Amount: 7.90},
		InsuranceCost:  Amount{Currency: "usd", Amount: 0},
		TrackingNumber: "9400111899560000000000",
		CarrierCode:    "stamps_com",
		ServiceCode:    "usps_priority_mail",
		LabelDownload:  DownloadDocument{Href: "https://api.shipengine.com/v1/downloads/1/label-" + id + ".pdf"},
	}
}

// CreateLabel returns a mock purchased label.
func (m *MockAPI) CreateLabel(ctx context.Context, shipment *Shipment, testLabel bool) (*LabelDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnCreateLabel != nil {
		return m.OnCreateLabel(ctx, shipment, testLabel)
	}
	label := m.mockLabel()
	label.ServiceCode = shipment.ServiceCode()
	return label, nil
}

// CreateLabelFromRate returns a mock purchased label.
func (m *MockAPI) CreateLabelFromRate(ctx context.Context, label *RateLabel) (*LabelDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnCreateLabelFromRate != nil {
		return m.OnCreateLabelFromRate(ctx, label)
	}
	return m.mockLabel(), nil
}

// VoidLabel approves the void unless overridden.
func (m *MockAPI) VoidLabel(ctx context.Context, labelID LabelID) (*VoidDocument, error) {
	if err := m.before(); err != nil {
		return nil, err
	}
	if m.OnVoidLabel != nil {
		return m.OnVoidLabel(ctx, labelID)
	}
	return &VoidDocument{
		Approved: true,
		Message:  "Request for void label is being processed",
	}, nil
}

// ConnectStampsDotCom returns a generated carrier id.
func (m *MockAPI) ConnectStampsDotCom(ctx context.Context, account StampsDotComAccount) (CarrierID, error) {
	if err := m.before(); err != nil {
		return "", err
	}
	if m.OnConnectStampsDotCom != nil {
		return m.OnConnectStampsDotCom(ctx, account)
	}
	return CarrierID("se-" + uuid.New().String()[:8]), nil
}

// ConnectUPS returns a generated carrier id.
func (m *MockAPI) ConnectUPS(ctx context.Context, account UPSAccount) (CarrierID, error) {
	if err := m.before(); err != nil {
		return "", err
	}
	if m.OnConnectUPS != nil {
		return m.OnConnectUPS(ctx, account)
	}
	return CarrierID("se-" + uuid.New().String()[:8]), nil
}

// ConnectFedEx returns a generated carrier id.
func (m *MockAPI) ConnectFedEx(ctx context.Context, account FedExAccount) (CarrierID, error) {
	if err := m.before(); err != nil {
		return "", err
	}
	if m.OnConnectFedEx != nil {
		return m.OnConnectFedEx(ctx, account)
	}
	return CarrierID("se-" + uuid.New().String()[:8]), nil
}

// UpdateUPSSettings succeeds unless overridden.
func (m *MockAPI) UpdateUPSSettings(ctx context.Context, carrierID CarrierID, settings *UPSSettings) error {
	if err := m.before(); err != nil {
		return err
	}
	if m.OnUpdateUPSSettings != nil {
		return m.OnUpdateUPSSettings(ctx, carrierID, settings)
	}
	return nil
}

var _ API = (*MockAPI)(nil)
