package shipengine

import (
	"encoding/json"
	"fmt"
)

// voidFallbackMessage is used when a void response carries no message text.
const voidFallbackMessage = "No message found in Void Response"

// LabelFormat is the file format of a purchased label.
type LabelFormat string

const (
	LabelFormatPDF LabelFormat = "pdf"
	LabelFormatPNG LabelFormat = "png"
	LabelFormatZPL LabelFormat = "zpl"
)

// LabelLayout is the page layout of a purchased label.
type LabelLayout string

const (
	LabelLayout4x6    LabelLayout = "4x6"
	LabelLayoutLetter LabelLayout = "letter"
)

// LabelDownloadType selects how label data is returned.
type LabelDownloadType string

const (
	DownloadURL    LabelDownloadType = "url"
	DownloadInline LabelDownloadType = "inline"
)

// LabelAddressValidation controls address handling when buying a label from a
// rate. Note the wire values differ from the rating endpoint's snake_case set.
type LabelAddressValidation string

const (
	LabelNoValidation     LabelAddressValidation = "noValidation"
	LabelValidateOnly     LabelAddressValidation = "validateOnly"
	LabelValidateAndClean LabelAddressValidation = "validateAndClean"
)

// RateLabel is the request payload for purchasing a label from a previously
// quoted rate. NewRateLabel applies the defaults; setters validate their enum
// immediately.
type RateLabel struct {
	rateID          RateID
	validateAddress LabelAddressValidation
	labelLayout     LabelLayout
	labelFormat     LabelFormat
	downloadType    LabelDownloadType
	testLabel       bool
}

// NewRateLabel builds a label request for the given rate with defaults:
// validateAndClean, 4x6, pdf, url download.
func NewRateLabel(rateID RateID) *RateLabel {
	return &RateLabel{
		rateID:          rateID,
		validateAddress: LabelValidateAndClean,
		labelLayout:     LabelLayout4x6,
		labelFormat:     LabelFormatPDF,
		downloadType:    DownloadURL,
	}
}

// RateID returns the rate the label will be purchased from.
func (l *RateLabel) RateID() RateID {
	return l.rateID
}

// SetAddressValidation selects the address validation mode.
func (l *RateLabel) SetAddressValidation(mode LabelAddressValidation) error {
	switch mode {
	case LabelNoValidation, LabelValidateOnly, LabelValidateAndClean:
		l.validateAddress = mode
		return nil
	default:
		return fmt.Errorf("%w: %q is not supported for validate_address", ErrInvalidArgument, mode)
	}
}

// SetLabelLayout selects the page layout.
func (l *RateLabel) SetLabelLayout(layout LabelLayout) error {
	switch layout {
	case LabelLayout4x6, LabelLayoutLetter:
		l.labelLayout = layout
		return nil
	default:
		return fmt.Errorf("%w: %q is not supported for label_layout", ErrInvalidArgument, layout)
	}
}

// SetLabelFormat selects the file format.
func (l *RateLabel) SetLabelFormat(format LabelFormat) error {
	switch format {
	case LabelFormatPDF, LabelFormatPNG, LabelFormatZPL:
		l.labelFormat = format
		return nil
	default:
		return fmt.Errorf("%w: %q is not supported for label_format", ErrInvalidArgument, format)
	}
}

// SetDownloadType selects how label data comes back.
func (l *RateLabel) SetDownloadType(t LabelDownloadType) error {
	switch t {
	case DownloadURL, DownloadInline:
		l.downloadType = t
		return nil
	default:
		return fmt.Errorf("%w: %q is not supported for label_download_type", ErrInvalidArgument, t)
	}
}

// SetTestLabel marks the purchase as a test label that will not be billed.
func (l *RateLabel) SetTestLabel(test bool) *RateLabel {
	l.testLabel = test
	return l
}

// MarshalJSON renders the purchase payload sent to labels/rates/{rateId}.
func (l *RateLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"validate_address":    string(l.validateAddress),
		"label_layout":        string(l.labelLayout),
		"label_format":        string(l.labelFormat),
		"label_download_type": string(l.downloadType),
		"test_label":          l.testLabel,
	})
}

// DownloadDocument is a wire reference to downloadable label data.
type DownloadDocument struct {
	Href string `json:"href"`
}

// LabelDocument is the wire shape of a purchased label. Optional references
// decode to nil when absent or null.
type LabelDocument struct {
	LabelID        LabelID           `json:"label_id"`
	Status         string            `json:"status"`
	ShipmentID     ShipmentID        `json:"shipment_id"`
	ShipDate       string            `json:"ship_date"`
	CreatedAt      string            `json:"created_at"`
	ShipmentCost   Amount            `json:"shipment_cost"`
	InsuranceCost  Amount            `json:"insurance_cost"`
	TrackingNumber string            `json:"tracking_number"`
	CarrierCode    CarrierCode       `json:"carrier_code"`
	ServiceCode    ServiceCode       `json:"service_code"`
	Voided         bool              `json:"voided"`
	VoidedAt       *string           `json:"voided_at"`
	LabelDownload  DownloadDocument  `json:"label_download"`
	FormDownload   *DownloadDocument `json:"form_download"`
	InsuranceClaim *DownloadDocument `json:"insurance_claim"`
}

// Label is a purchased shipping label.
type Label struct {
	ID             LabelID
	Status         string
	ShipmentID     ShipmentID
	ShipDate       string
	CreatedAt      string
	ShipmentCost   Amount
	InsuranceCost  Amount
	TrackingNumber string
	CarrierCode    CarrierCode
	ServiceCode    ServiceCode
	Voided         bool

	// VoidedAt, FormDownloadURL and InsuranceClaimURL are empty when the
	// response omitted them.
	VoidedAt          string
	LabelDownloadURL  string
	FormDownloadURL   string
	InsuranceClaimURL string
}

func parseLabel(doc LabelDocument) *Label {
	label := &Label{
		ID:               doc.LabelID,
		Status:           doc.Status,
		ShipmentID:       doc.ShipmentID,
		ShipDate:         doc.ShipDate,
		CreatedAt:        doc.CreatedAt,
		ShipmentCost:     doc.ShipmentCost,
		InsuranceCost:    doc.InsuranceCost,
		TrackingNumber:   doc.TrackingNumber,
		CarrierCode:      doc.CarrierCode,
		ServiceCode:      doc.ServiceCode,
		Voided:           doc.Voided,
		VoidedAt:         stringValue(doc.VoidedAt),
		LabelDownloadURL: doc.LabelDownload.Href,
	}
	if doc.FormDownload != nil {
		label.FormDownloadURL = doc.FormDownload.Href
	}
	if doc.InsuranceClaim != nil {
		label.InsuranceClaimURL = doc.InsuranceClaim.Href
	}
	return label
}

// VoidDocument is the wire shape of a void-label response.
type VoidDocument struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

// VoidResult is the outcome of a void-label request.
type VoidResult struct {
	Approved bool
	Message  string
}

func parseVoidResult(doc VoidDocument) VoidResult {
	message := doc.Message
	if message == "" {
		message = voidFallbackMessage
	}
	return VoidResult{Approved: doc.Approved, Message: message}
}
