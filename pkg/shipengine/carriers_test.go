package shipengine_test

import (
	"encoding/json"
	"testing"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUPSSettings_MarshalJSON_EmptyEmitsNothing(t *testing.T) {
	data, err := json.Marshal(shipengine.NewUPSSettings())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestUPSSettings_MarshalJSON_OnlySetFields(t *testing.T) {
	settings := shipengine.NewUPSSettings().
		SetNickname("My UPS").
		SetUseNegotiatedRates(true)
	require.NoError(t, settings.SetPickupType(shipengine.PickupDaily))

	data, err := json.Marshal(settings)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Len(t, doc, 3)
	assert.Equal(t, "My UPS", doc["nickname"])
	assert.Equal(t, true, doc["use_negotiated_rates"])
	assert.Equal(t, "daily_pickup", doc["pickup_type"])
}

func TestUPSSettings_MarshalJSON_FalseIsStillEmitted(t *testing.T) {
	settings := shipengine.NewUPSSettings().SetUseGroundFreightPricing(false)

	data, err := json.Marshal(settings)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Contains(t, doc, "use_ground_freight_pricing")
	assert.Equal(t, false, doc["use_ground_freight_pricing"])
}

func TestUPSSettings_EnumValidation(t *testing.T) {
	settings := shipengine.NewUPSSettings()

	assert.ErrorIs(t, settings.SetPickupType("weekly_pickup"), shipengine.ErrInvalidArgument)
	assert.ErrorIs(t, settings.SetMailInnovationsEndorsement("discard"), shipengine.ErrInvalidArgument)

	require.NoError(t, settings.SetMailInnovationsEndorsement(shipengine.EndorsementReturn))
}

func TestStampsDotComAccount_Payload(t *testing.T) {
	account := shipengine.StampsDotComAccount{
		Nickname: "My Stamps",
		Username: "shipper",
		Password: "hunter2",
	}

	data, err := json.Marshal(account)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nickname":"My Stamps","username":"shipper","password":"hunter2"}`, string(data))
}

func TestUPSAccount_Payload(t *testing.T) {
	account := shipengine.UPSAccount{
		Nickname:           "My UPS",
		AccountNumber:      "A1234",
		AccountCountryCode: "US",
		AccountPostalCode:  "95128",
		FirstName:          "John",
		LastName:           "Doe",
		Address1:           "525 Winchester Blvd",
		City:               "San Jose",
		State:              "CA",
		PostalCode:         "95128",
		CountryCode:        "US",
		Email:              "john@example.test",
		Phone:              "555-123-4567",
		Invoice: &shipengine.UPSInvoice{
			InvoiceDate:   "2026-08-01",
			InvoiceNumber: "INV-1",
			ControlID:     "C1",
			InvoiceAmount: 42.50,
		},
		AgreeToTechnologyAgreement: true,
	}

	data, err := json.Marshal(account)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, true, doc["agree_to_technology_agreement"])
	assert.NotContains(t, doc, "title")
	assert.NotContains(t, doc, "address2")

	invoice := doc["invoice"].(map[string]any)
	assert.Equal(t, "INV-1", invoice["invoice_number"])
}

func TestFedExAccount_Payload(t *testing.T) {
	account := shipengine.FedExAccount{
		Nickname:      "My FedEx",
		AccountNumber: "F5678",
		Address1:      "525 Winchester Blvd",
		City:          "San Jose",
		CountryCode:   "US",
		Email:         "john@example.test",
		FirstName:     "John",
		LastName:      "Doe",
		Phone:         "555-123-4567",
		PostalCode:    "95128",
		State:         "CA",
		AgreeToEULA:   true,
	}

	data, err := json.Marshal(account)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, true, doc["agree_to_eula"])
	assert.NotContains(t, doc, "meter_number")
}
