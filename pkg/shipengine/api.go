package shipengine

import (
	"context"
)

// API defines the ShipEngine REST operations. The abstraction allows for mock
// implementations during testing and real implementations in production.
// Methods accept domain request types and return the exported wire documents;
// the Client facade maps documents to domain results.
type API interface {
	// ValidateAddresses submits canonical addresses for validation
	ValidateAddresses(ctx context.Context, addresses []AddressDocument) ([]VerificationResultDocument, error)

	// ListCarriers lists all connected carrier accounts
	ListCarriers(ctx context.Context) ([]CarrierDocument, error)

	// GetCarrier fetches a single carrier account
	GetCarrier(ctx context.Context, carrierID CarrierID) (*CarrierDocument, error)

	// ListCarrierServices lists the services of a carrier account
	ListCarrierServices(ctx context.Context, carrierID CarrierID) ([]ServiceDocument, error)

	// ListCarrierPackageTypes lists the package types of a carrier account
	ListCarrierPackageTypes(ctx context.Context, carrierID CarrierID) ([]PackageTypeDocument, error)

	// GetCarrierOptions lists the advanced options of a carrier account
	GetCarrierOptions(ctx context.Context, carrierID CarrierID) ([]AvailableOptionDocument, error)

	// RemoveCarrier disconnects a carrier account
	RemoveCarrier(ctx context.Context, carrier CarrierType, carrierID CarrierID) error

	// GetRates quotes a shipment against the carriers in the options
	GetRates(ctx context.Context, shipment *Shipment, options *RateOptions) (*RateResponseDocument, error)

	// GetRate fetches a previously quoted rate
	GetRate(ctx context.Context, rateID RateID) (*RateDocument, error)

	// CreateLabel purchases a label for a fully specified shipment
	CreateLabel(ctx context.Context, shipment *Shipment, testLabel bool) (*LabelDocument, error)

	// CreateLabelFromRate purchases a label from a previously quoted rate
	CreateLabelFromRate(ctx context.Context, label *RateLabel) (*LabelDocument, error)

	// VoidLabel requests cancellation of a purchased label
	VoidLabel(ctx context.Context, labelID LabelID) (*VoidDocument, error)

	// ConnectStampsDotCom connects a Stamps.com account
	ConnectStampsDotCom(ctx context.Context, account StampsDotComAccount) (CarrierID, error)

	// ConnectUPS connects a UPS account
	ConnectUPS(ctx context.Context, account UPSAccount) (CarrierID, error)

	// ConnectFedEx connects a FedEx account
	ConnectFedEx(ctx context.Context, account FedExAccount) (CarrierID, error)

	// UpdateUPSSettings applies a partial settings update to a UPS account
	UpdateUPSSettings(ctx context.Context, carrierID CarrierID, settings *UPSSettings) error
}
