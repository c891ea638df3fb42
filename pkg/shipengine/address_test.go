package shipengine_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullAddressFields() map[string]string {
	return map[string]string{
		"name":           "John Doe",
		"phone":          "555-123-4567",
		"company_name":   "Acme Corp",
		"address_line1":  "525 Winchester Blvd",
		"city_locality":  "San Jose",
		"state_province": "CA",
		"postal_code":    "95128",
		"country_code":   "US",
	}
}

func TestAddressFactory_Address_Defaults(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})

	addr, err := factory.Address(fullAddressFields())

	require.NoError(t, err)
	assert.Equal(t, "John Doe", addr.Name)
	assert.Equal(t, "Acme Corp", addr.CompanyName)
	assert.Empty(t, addr.AddressLine2)
	assert.Empty(t, addr.AddressLine3)
	assert.Equal(t, shipengine.ResidentialUnknown, addr.ResidentialIndicator)
}

func TestAddressFactory_Address_MissingKeys(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})

	fields := fullAddressFields()
	delete(fields, "phone")
	delete(fields, "postal_code")

	_, err := factory.Address(fields)

	var validationErr *shipengine.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"phone", "postal_code"}, validationErr.MissingKeys)
}

func TestAddressFactory_Address_ResidentialIndicatorKept(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})

	fields := fullAddressFields()
	fields["address_residential_indicator"] = "yes"

	addr, err := factory.Address(fields)

	require.NoError(t, err)
	assert.Equal(t, shipengine.ResidentialYes, addr.ResidentialIndicator)
}

func TestAddressFactory_FormatterErrorPropagates(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})

	_, err := factory.Address("not a map")

	require.Error(t, err)
	assert.ErrorIs(t, err, shipengine.ErrInvalidArgument)
	var validationErr *shipengine.ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestAddress_MarshalJSON_CanonicalKeys(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})
	addr, err := factory.Address(fullAddressFields())
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{
		"name", "phone", "company_name", "address_line1", "address_line2",
		"address_line3", "city_locality", "state_province", "postal_code",
		"country_code", "address_residential_indicator",
	} {
		assert.Contains(t, doc, key)
	}
	assert.Nil(t, doc["address_line2"])
	assert.Nil(t, doc["address_line3"])
	assert.Equal(t, "unknown", doc["address_residential_indicator"])
}

func TestAddressFactory_Documents_MixedInput(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})

	built, err := factory.Address(fullAddressFields())
	require.NoError(t, err)

	raw := fullAddressFields()
	raw["name"] = "Jane Doe"

	docs, err := factory.Documents([]any{built, raw})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "John Doe", docs[0].Name)
	assert.Equal(t, "Jane Doe", docs[1].Name)
}

func TestAddressFactory_Documents_InvalidItemFails(t *testing.T) {
	factory := shipengine.NewAddressFactory(shipengine.MapFormatter{})

	_, err := factory.Documents([]any{map[string]string{"name": "Only Name"}})

	var validationErr *shipengine.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
