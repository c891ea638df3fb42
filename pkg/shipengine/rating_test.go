package shipengine_test

import (
	"encoding/json"
	"testing"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateOptions_MarshalJSON_OmitsEmptyFilters(t *testing.T) {
	options := shipengine.NewRateOptions("se-123456")

	data, err := json.Marshal(options)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Contains(t, doc, "carrier_ids")
	assert.NotContains(t, doc, "service_codes")
	assert.NotContains(t, doc, "package_types")
}

func TestRateOptions_MarshalJSON_IncludesFilters(t *testing.T) {
	options := shipengine.NewRateOptions("se-123456").
		AddServiceCode("usps_priority_mail").
		AddPackageType("flat_rate_envelope")

	data, err := json.Marshal(options)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, []any{"usps_priority_mail"}, doc["service_codes"])
	assert.Equal(t, []any{"flat_rate_envelope"}, doc["package_types"])
}

func sampleRateResponse() *shipengine.RateResponse {
	return &shipengine.RateResponse{
		RequestID:  "12345",
		ShipmentID: "se-ship-1",
		Rates: []shipengine.Rate{
			{
				ID:          "rate-1",
				CarrierID:   "se-123456",
				CarrierCode: "stamps_com",
				ServiceCode: "usps_priority_mail",
			},
			{
				ID:          "rate-2",
				CarrierID:   "se-123456",
				CarrierCode: "stamps_com",
				ServiceCode: "usps_priority_mail_express",
			},
			{
				ID:          "rate-3",
				CarrierID:   "se-654321",
				CarrierCode: "ups",
				ServiceCode: "ups_ground",
			},
		},
	}
}

func TestRateResponse_RateByServiceCode(t *testing.T) {
	response := sampleRateResponse()

	rate, ok := response.RateByServiceCode("ups_ground")
	require.True(t, ok)
	assert.Equal(t, shipengine.RateID("rate-3"), rate.ID)

	_, ok = response.RateByServiceCode("fedex_ground")
	assert.False(t, ok)
}

func TestRateResponse_RateByID(t *testing.T) {
	response := sampleRateResponse()

	rate, ok := response.RateByID("rate-2")
	require.True(t, ok)
	assert.Equal(t, shipengine.ServiceCode("usps_priority_mail_express"), rate.ServiceCode)

	_, ok = response.RateByID("rate-99")
	assert.False(t, ok)
}

func TestRateResponse_RatesByCarrier(t *testing.T) {
	response := sampleRateResponse()

	assert.Len(t, response.RatesByCarrierID("se-123456"), 2)
	assert.Len(t, response.RatesByCarrierCode("ups"), 1)
	assert.Empty(t, response.RatesByCarrierCode("fedex"))
}

func TestRate_TotalAmount(t *testing.T) {
	rate := shipengine.Rate{
		ShippingAmount:     shipengine.Amount{Currency: "usd", Amount: 7.90},
		InsuranceAmount:    shipengine.Amount{Currency: "usd", Amount: 1.05},
		ConfirmationAmount: shipengine.Amount{Currency: "usd", Amount: 2.35},
		OtherAmount:        shipengine.Amount{Currency: "usd", Amount: 0.50},
	}

	total := rate.TotalAmount()
	assert.Equal(t, "usd", total.Currency)
	assert.InDelta(t, 11.80, total.Amount, 1e-9)
}
