// Package shipengine provides a typed client for the ShipEngine shipping API:
// address validation, carrier management, rate shopping and label purchase.
package shipengine

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds ShipEngine client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	UseMock bool
	Metrics *Metrics
}

// Client is the ShipEngine client facade. It maps domain objects to wire
// documents, delegates transport to an API implementation and parses the
// results back into domain types.
type Client struct {
	config  Config
	api     API
	factory *AddressFactory
	logger  *otelzap.Logger
	tracer  trace.Tracer
}

// New creates a new ShipEngine client. The Formatter adapts the caller's own
// address representation and is the one required extension point.
func New(cfg Config, formatter Formatter, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var api API

	if cfg.UseMock {
		api = NewMockAPI()
	} else {
		api = NewHTTPAPI(HTTPAPIConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
			Metrics: cfg.Metrics,
		})
	}

	return NewWithAPI(cfg, api, formatter, logger, tracer)
}

// NewWithAPI creates a new ShipEngine client with a custom API client.
func NewWithAPI(cfg Config, api API, formatter Formatter, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:  cfg,
		api:     api,
		factory: NewAddressFactory(formatter),
		logger:  logger,
		tracer:  tracer,
	}
}

// span opens a trace span for one operation when a tracer is configured.
func (c *Client) span(ctx context.Context, name string) (context.Context, trace.Span) {
	if c.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return c.tracer.Start(ctx, name)
}

// FormatAddress builds a canonical Address from the caller's own address
// representation through the configured Formatter.
func (c *Client) FormatAddress(address any) (Address, error) {
	return c.factory.Address(address)
}

// ValidateAddresses validates a batch of addresses. Each item is either an
// already-built Address or a raw domain object for the Formatter. One
// verification result is returned per submitted address, in order.
func (c *Client) ValidateAddresses(ctx context.Context, addresses []any) ([]*VerificationResult, error) {
	ctx, span := c.span(ctx, "shipengine.ValidateAddresses")
	defer span.End()

	docs, err := c.factory.Documents(addresses)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Validating addresses", zap.Int("address_count", len(docs)))

	resultDocs, err := c.api.ValidateAddresses(ctx, docs)
	if err != nil {
		c.logger.Error("ShipEngine address validation failed", zap.Error(err))
		return nil, err
	}

	results := make([]*VerificationResult, 0, len(resultDocs))
	for _, doc := range resultDocs {
		results = append(results, parseVerificationResult(doc))
	}
	return results, nil
}

// ListCarriers lists all connected carrier accounts.
func (c *Client) ListCarriers(ctx context.Context) ([]Carrier, error) {
	ctx, span := c.span(ctx, "shipengine.ListCarriers")
	defer span.End()

	docs, err := c.api.ListCarriers(ctx)
	if err != nil {
		c.logger.Error("ShipEngine carrier listing failed", zap.Error(err))
		return nil, err
	}

	carriers := make([]Carrier, 0, len(docs))
	for _, doc := range docs {
		carriers = append(carriers, parseCarrier(doc))
	}

	c.logger.Info("Listed carriers", zap.Int("carrier_count", len(carriers)))
	return carriers, nil
}

// GetCarrier fetches a single carrier account.
func (c *Client) GetCarrier(ctx context.Context, carrierID CarrierID) (*Carrier, error) {
	ctx, span := c.span(ctx, "shipengine.GetCarrier")
	defer span.End()

	doc, err := c.api.GetCarrier(ctx, carrierID)
	if err != nil {
		c.logger.Error("ShipEngine carrier lookup failed",
			zap.String("carrier_id", carrierID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	carrier := parseCarrier(*doc)
	return &carrier, nil
}

// ListCarrierServices lists the services of a carrier account.
func (c *Client) ListCarrierServices(ctx context.Context, carrierID CarrierID) ([]Service, error) {
	ctx, span := c.span(ctx, "shipengine.ListCarrierServices")
	defer span.End()

	docs, err := c.api.ListCarrierServices(ctx, carrierID)
	if err != nil {
		c.logger.Error("ShipEngine service listing failed",
			zap.String("carrier_id", carrierID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return parseServices(docs), nil
}

// ListCarrierPackageTypes lists the package types of a carrier account.
func (c *Client) ListCarrierPackageTypes(ctx context.Context, carrierID CarrierID) ([]PackageType, error) {
	ctx, span := c.span(ctx, "shipengine.ListCarrierPackageTypes")
	defer span.End()

	docs, err := c.api.ListCarrierPackageTypes(ctx, carrierID)
	if err != nil {
		c.logger.Error("ShipEngine package type listing failed",
			zap.String("carrier_id", carrierID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return parsePackageTypes(docs), nil
}

// GetCarrierOptions lists the advanced options of a carrier account.
func (c *Client) GetCarrierOptions(ctx context.Context, carrierID CarrierID) ([]AvailableOption, error) {
	ctx, span := c.span(ctx, "shipengine.GetCarrierOptions")
	defer span.End()

	docs, err := c.api.GetCarrierOptions(ctx, carrierID)
	if err != nil {
		c.logger.Error("ShipEngine option listing failed",
			zap.String("carrier_id", carrierID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return parseAvailableOptions(docs), nil
}

// GetCarrierCatalog fetches the services, package types and options of a
// carrier account concurrently.
func (c *Client) GetCarrierCatalog(ctx context.Context, carrierID CarrierID) (*CarrierCatalog, error) {
	ctx, span := c.span(ctx, "shipengine.GetCarrierCatalog")
	defer span.End()

	var catalog CarrierCatalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		services, err := c.ListCarrierServices(ctx, carrierID)
		catalog.Services = services
		return err
	})
	g.Go(func() error {
		types, err := c.ListCarrierPackageTypes(ctx, carrierID)
		catalog.PackageTypes = types
		return err
	})
	g.Go(func() error {
		options, err := c.GetCarrierOptions(ctx, carrierID)
		catalog.Options = options
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// RemoveCarrier disconnects a carrier account.
func (c *Client) RemoveCarrier(ctx context.Context, carrier CarrierType, carrierID CarrierID) error {
	ctx, span := c.span(ctx, "shipengine.RemoveCarrier")
	defer span.End()

	c.logger.Info("Removing carrier",
		zap.String("carrier", string(carrier)),
		zap.String("carrier_id", carrierID.String()),
	)

	if err := c.api.RemoveCarrier(ctx, carrier, carrierID); err != nil {
		c.logger.Error("ShipEngine carrier removal failed", zap.Error(err))
		return err
	}
	return nil
}

// GetRates quotes a rating shipment against the carriers in the options.
func (c *Client) GetRates(ctx context.Context, shipment *Shipment, options *RateOptions) (*RateResponse, error) {
	ctx, span := c.span(ctx, "shipengine.GetRates")
	defer span.End()

	if shipment.kind != shipmentRating {
		return nil, fmt.Errorf("%w: GetRates requires a rating shipment", ErrInvalidArgument)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	c.logger.Info("Requesting rates",
		zap.Int("carrier_count", len(options.carrierIDs)),
		zap.Int("package_count", len(shipment.packages)),
	)

	doc, err := c.api.GetRates(ctx, shipment, options)
	if err != nil {
		c.logger.Error("ShipEngine rate request failed", zap.Error(err))
		return nil, err
	}

	response := parseRateResponse(*doc)
	c.logger.Info("Received rates",
		zap.Int("rate_count", len(response.Rates)),
		zap.Int("error_count", len(response.Errors)),
	)
	return response, nil
}

// GetRate fetches a previously quoted rate.
func (c *Client) GetRate(ctx context.Context, rateID RateID) (Rate, error) {
	ctx, span := c.span(ctx, "shipengine.GetRate")
	defer span.End()

	doc, err := c.api.GetRate(ctx, rateID)
	if err != nil {
		c.logger.Error("ShipEngine rate lookup failed",
			zap.String("rate_id", rateID.String()),
			zap.Error(err),
		)
		return Rate{}, err
	}
	return parseRate(*doc), nil
}

// CreateLabel purchases a label for a fully specified label shipment.
func (c *Client) CreateLabel(ctx context.Context, shipment *Shipment, testLabel bool) (*Label, error) {
	ctx, span := c.span(ctx, "shipengine.CreateLabel")
	defer span.End()

	if shipment.kind != shipmentLabel {
		return nil, fmt.Errorf("%w: CreateLabel requires a label shipment", ErrInvalidArgument)
	}

	c.logger.Info("Creating label",
		zap.String("service_code", shipment.serviceCode.String()),
		zap.Bool("test_label", testLabel),
	)

	doc, err := c.api.CreateLabel(ctx, shipment, testLabel)
	if err != nil {
		c.logger.Error("ShipEngine label purchase failed", zap.Error(err))
		return nil, err
	}

	label := parseLabel(*doc)
	c.logger.Info("Created label",
		zap.String("label_id", label.ID.String()),
		zap.String("tracking_number", label.TrackingNumber),
	)
	return label, nil
}

// CreateLabelFromRate purchases a label from a previously quoted rate.
func (c *Client) CreateLabelFromRate(ctx context.Context, rateLabel *RateLabel) (*Label, error) {
	ctx, span := c.span(ctx, "shipengine.CreateLabelFromRate")
	defer span.End()

	c.logger.Info("Creating label from rate", zap.String("rate_id", rateLabel.RateID().String()))

	doc, err := c.api.CreateLabelFromRate(ctx, rateLabel)
	if err != nil {
		c.logger.Error("ShipEngine label purchase failed",
			zap.String("rate_id", rateLabel.RateID().String()),
			zap.Error(err),
		)
		return nil, err
	}
	return parseLabel(*doc), nil
}

// VoidLabel requests cancellation of a purchased label.
func (c *Client) VoidLabel(ctx context.Context, labelID LabelID) (VoidResult, error) {
	ctx, span := c.span(ctx, "shipengine.VoidLabel")
	defer span.End()

	c.logger.Info("Voiding label", zap.String("label_id", labelID.String()))

	doc, err := c.api.VoidLabel(ctx, labelID)
	if err != nil {
		c.logger.Error("ShipEngine label void failed",
			zap.String("label_id", labelID.String()),
			zap.Error(err),
		)
		return VoidResult{}, err
	}
	return parseVoidResult(*doc), nil
}

// ConnectStampsDotCom connects a Stamps.com account and returns its carrier id.
func (c *Client) ConnectStampsDotCom(ctx context.Context, account StampsDotComAccount) (CarrierID, error) {
	ctx, span := c.span(ctx, "shipengine.ConnectStampsDotCom")
	defer span.End()

	carrierID, err := c.api.ConnectStampsDotCom(ctx, account)
	if err != nil {
		c.logger.Error("ShipEngine Stamps.com connection failed", zap.Error(err))
		return "", err
	}

	c.logger.Info("Connected Stamps.com account", zap.String("carrier_id", carrierID.String()))
	return carrierID, nil
}

// ConnectUPS connects a UPS account and returns its carrier id.
func (c *Client) ConnectUPS(ctx context.Context, account UPSAccount) (CarrierID, error) {
	ctx, span := c.span(ctx, "shipengine.ConnectUPS")
	defer span.End()

	carrierID, err := c.api.ConnectUPS(ctx, account)
	if err != nil {
		c.logger.Error("ShipEngine UPS connection failed", zap.Error(err))
		return "", err
	}

	c.logger.Info("Connected UPS account", zap.String("carrier_id", carrierID.String()))
	return carrierID, nil
}

// ConnectFedEx connects a FedEx account and returns its carrier id.
func (c *Client) ConnectFedEx(ctx context.Context, account FedExAccount) (CarrierID, error) {
	ctx, span := c.span(ctx, "shipengine.ConnectFedEx")
	defer span.End()

	carrierID, err := c.api.ConnectFedEx(ctx, account)
	if err != nil {
		c.logger.Error("ShipEngine FedEx connection failed", zap.Error(err))
		return "", err
	}

	c.logger.Info("Connected FedEx account", zap.String("carrier_id", carrierID.String()))
	return carrierID, nil
}

// UpdateUPSSettings applies a partial settings update to a UPS account. Only
// fields explicitly set on the settings object are sent.
func (c *Client) UpdateUPSSettings(ctx context.Context, carrierID CarrierID, settings *UPSSettings) error {
	ctx, span := c.span(ctx, "shipengine.UpdateUPSSettings")
	defer span.End()

	c.logger.Info("Updating UPS settings", zap.String("carrier_id", carrierID.String()))

	if err := c.api.UpdateUPSSettings(ctx, carrierID, settings); err != nil {
		c.logger.Error("ShipEngine UPS settings update failed", zap.Error(err))
		return err
	}
	return nil
}
