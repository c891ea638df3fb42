package shipengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production ShipEngine API prefix.
const DefaultBaseURL = "https://api.shipengine.com/v1/"

// deleteStatusOK is the status class that marks a DELETE-style call as
// successful.
var deleteStatusOK = map[int]bool{
	http.StatusOK:                   true,
	http.StatusCreated:              true,
	http.StatusAccepted:             true,
	http.StatusNonAuthoritativeInfo: true,
	http.StatusNoContent:            true,
}

// HTTPAPI is the production implementation of API over HTTP/JSON.
type HTTPAPI struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *Metrics
}

// HTTPAPIConfig holds configuration for the HTTP client.
type HTTPAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Metrics *Metrics
}

// NewHTTPAPI creates a new HTTP-based API client for production use.
func NewHTTPAPI(cfg HTTPAPIConfig) *HTTPAPI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPI{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: cfg.Metrics,
	}
}

// errorEnvelope is the shared remote failure shape. A non-empty errors array
// signals an application-level failure regardless of HTTP status.
type errorEnvelope struct {
	RequestID string     `json:"request_id"`
	Errors    []APIError `json:"errors"`
}

// do issues one request and classifies the outcome. On success the decoded
// body is stored in out, drilling into the named top-level key when key is
// non-empty. A non-empty errors array in the body yields an *ErrorResponse;
// everything else that prevents a decoded success yields a
// *RequestFailedError.
func (c *HTTPAPI) do(ctx context.Context, operation, method, path string, body any, out any, key string) error {
	start := time.Now()
	raw, status, err := c.roundTrip(ctx, method, path, body)
	c.metrics.RecordRequest(operation, statusLabel(status, err), time.Since(start).Seconds())
	if err != nil {
		return err
	}

	if err := classifyBody(raw); err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return &RequestFailedError{Body: string(raw)}
	}
	if out == nil {
		return nil
	}

	payload := raw
	if key != "" {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(raw, &doc); err != nil {
			return &RequestFailedError{Body: string(raw), Cause: err}
		}
		nested, ok := doc[key]
		if !ok {
			return &RequestFailedError{Body: string(raw), Cause: fmt.Errorf("response is missing key %q", key)}
		}
		payload = nested
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &RequestFailedError{Body: string(raw), Cause: err}
	}
	return nil
}

// doDelete issues a DELETE-style request whose success is judged purely by the
// 2xx status class.
func (c *HTTPAPI) doDelete(ctx context.Context, operation, path string) error {
	start := time.Now()
	raw, status, err := c.roundTrip(ctx, http.MethodDelete, path, nil)
	c.metrics.RecordRequest(operation, statusLabel(status, err), time.Since(start).Seconds())
	if err != nil {
		return err
	}

	if err := classifyBody(raw); err != nil {
		return err
	}
	if !deleteStatusOK[status] {
		return &RequestFailedError{Body: string(raw)}
	}
	return nil
}

// roundTrip sends the request and returns the raw response body and status.
// Transport-level failures come back as a *RequestFailedError with no body.
func (c *HTTPAPI) roundTrip(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &RequestFailedError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &RequestFailedError{Cause: err}
	}
	return raw, resp.StatusCode, nil
}

// classifyBody surfaces the shared error envelope when the body carries one.
func classifyBody(raw []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	if len(envelope.Errors) == 0 {
		return nil
	}
	return &ErrorResponse{
		RequestID: envelope.RequestID,
		Errors:    envelope.Errors,
	}
}

func statusLabel(status int, err error) string {
	if err != nil {
		return "transport_error"
	}
	return strconv.Itoa(status)
}

// ValidateAddresses submits canonical addresses for validation.
func (c *HTTPAPI) ValidateAddresses(ctx context.Context, addresses []AddressDocument) ([]VerificationResultDocument, error) {
	var results []VerificationResultDocument
	if err := c.do(ctx, "validate_addresses", http.MethodPost, "addresses/validate", addresses, &results, ""); err != nil {
		return nil, err
	}
	return results, nil
}

// ListCarriers lists all connected carrier accounts.
func (c *HTTPAPI) ListCarriers(ctx context.Context) ([]CarrierDocument, error) {
	var carriers []CarrierDocument
	if err := c.do(ctx, "list_carriers", http.MethodGet, "carriers", nil, &carriers, "carriers"); err != nil {
		return nil, err
	}
	return carriers, nil
}

// GetCarrier fetches a single carrier account.
func (c *HTTPAPI) GetCarrier(ctx context.Context, carrierID CarrierID) (*CarrierDocument, error) {
	var carrier CarrierDocument
	if err := c.do(ctx, "get_carrier", http.MethodGet, "carriers/"+carrierID.String(), nil, &carrier, ""); err != nil {
		return nil, err
	}
	return &carrier, nil
}

// ListCarrierServices lists the services of a carrier account.
func (c *HTTPAPI) ListCarrierServices(ctx context.Context, carrierID CarrierID) ([]ServiceDocument, error) {
	var services []ServiceDocument
	if err := c.do(ctx, "list_carrier_services", http.MethodGet, "carriers/"+carrierID.String()+"/services", nil, &services, "services"); err != nil {
		return nil, err
	}
	return services, nil
}

// ListCarrierPackageTypes lists the package types of a carrier account.
func (c *HTTPAPI) ListCarrierPackageTypes(ctx context.Context, carrierID CarrierID) ([]PackageTypeDocument, error) {
	var packages []PackageTypeDocument
	if err := c.do(ctx, "list_carrier_package_types", http.MethodGet, "carriers/"+carrierID.String()+"/packages", nil, &packages, "packages"); err != nil {
		return nil, err
	}
	return packages, nil
}

// GetCarrierOptions lists the advanced options of a carrier account.
func (c *HTTPAPI) GetCarrierOptions(ctx context.Context, carrierID CarrierID) ([]AvailableOptionDocument, error) {
	var options []AvailableOptionDocument
	if err := c.do(ctx, "get_carrier_options", http.MethodGet, "carriers/"+carrierID.String()+"/options", nil, &options, "options"); err != nil {
		return nil, err
	}
	return options, nil
}

// RemoveCarrier disconnects a carrier account.
func (c *HTTPAPI) RemoveCarrier(ctx context.Context, carrier CarrierType, carrierID CarrierID) error {
	path := fmt.Sprintf("connections/carriers/%s/%s", carrier, carrierID)
	return c.doDelete(ctx, "remove_carrier", path)
}

// GetRates quotes a shipment against the carriers in the options.
func (c *HTTPAPI) GetRates(ctx context.Context, shipment *Shipment, options *RateOptions) (*RateResponseDocument, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	body := map[string]any{
		"shipment":     shipment,
		"rate_options": options,
	}
	var response RateResponseDocument
	if err := c.do(ctx, "get_rates", http.MethodPost, "rates", body, &response, "rate_response"); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetRate fetches a previously quoted rate.
func (c *HTTPAPI) GetRate(ctx context.Context, rateID RateID) (*RateDocument, error) {
	var rate RateDocument
	if err := c.do(ctx, "get_rate", http.MethodGet, "rates/"+rateID.String(), nil, &rate, ""); err != nil {
		return nil, err
	}
	return &rate, nil
}

// CreateLabel purchases a label for a fully specified shipment.
func (c *HTTPAPI) CreateLabel(ctx context.Context, shipment *Shipment, testLabel bool) (*LabelDocument, error) {
	body := map[string]any{
		"shipment":   shipment,
		"test_label": testLabel,
	}
	var label LabelDocument
	if err := c.do(ctx, "create_label", http.MethodPost, "labels", body, &label, ""); err != nil {
		return nil, err
	}
	return &label, nil
}

// CreateLabelFromRate purchases a label from a previously quoted rate.
func (c *HTTPAPI) CreateLabelFromRate(ctx context.Context, label *RateLabel) (*LabelDocument, error) {
	var doc LabelDocument
	path := "labels/rates/" + label.RateID().String()
	if err := c.do(ctx, "create_label_from_rate", http.MethodPost, path, label, &doc, ""); err != nil {
		return nil, err
	}
	return &doc, nil
}

// VoidLabel requests cancellation of a purchased label.
func (c *HTTPAPI) VoidLabel(ctx context.Context, labelID LabelID) (*VoidDocument, error) {
	var void VoidDocument
	path := "labels/" + labelID.String() + "/void"
	if err := c.do(ctx, "void_label", http.MethodPut, path, nil, &void, ""); err != nil {
		return nil, err
	}
	return &void, nil
}

// ConnectStampsDotCom connects a Stamps.com account.
func (c *HTTPAPI) ConnectStampsDotCom(ctx context.Context, account StampsDotComAccount) (CarrierID, error) {
	return c.connect(ctx, "connect_stamps_com", CarrierStampsDotCom, account)
}

// ConnectUPS connects a UPS account.
func (c *HTTPAPI) ConnectUPS(ctx context.Context, account UPSAccount) (CarrierID, error) {
	return c.connect(ctx, "connect_ups", CarrierUPS, account)
}

// ConnectFedEx connects a FedEx account.
func (c *HTTPAPI) ConnectFedEx(ctx context.Context, account FedExAccount) (CarrierID, error) {
	return c.connect(ctx, "connect_fedex", CarrierFedEx, account)
}

func (c *HTTPAPI) connect(ctx context.Context, operation string, carrier CarrierType, account any) (CarrierID, error) {
	var carrierID CarrierID
	path := "connections/carriers/" + string(carrier)
	if err := c.do(ctx, operation, http.MethodPost, path, account, &carrierID, "carrier_id"); err != nil {
		return "", err
	}
	return carrierID, nil
}

// UpdateUPSSettings applies a partial settings update to a UPS account.
func (c *HTTPAPI) UpdateUPSSettings(ctx context.Context, carrierID CarrierID, settings *UPSSettings) error {
	path := "connections/carriers/ups/" + carrierID.String() + "/settings"
	if err := c.do(ctx, "update_ups_settings", http.MethodPut, path, settings, nil, ""); err != nil {
		return err
	}
	return nil
}

var _ API = (*HTTPAPI)(nil)
