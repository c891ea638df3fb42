package shipengine_test

import (
	"context"
	"testing"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockAPI *shipengine.MockAPI) *shipengine.Client {
	logger := otelzap.New(zap.NewNop())
	return shipengine.NewWithAPI(
		shipengine.Config{APIKey: "test-key"},
		mockAPI,
		shipengine.MapFormatter{},
		logger,
		nil,
	)
}

func TestVerificationStatus_Message(t *testing.T) {
	assert.Equal(t, "Address was successfully verified.", shipengine.StatusVerified.Message())
	assert.Equal(t, "The address was validated, but the address should be double checked.", shipengine.StatusWarning.Message())
}

func TestClient_ValidateAddresses_Verified(t *testing.T) {
	mockAPI := shipengine.NewMockAPI()
	client := newTestClient(mockAPI)

	results, err := client.ValidateAddresses(context.Background(), []any{fullAddressFields()})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Verified())
	require.NotNil(t, results[0].MatchedAddress)
	assert.Equal(t, "525 S WINCHESTER BLVD", results[0].MatchedAddress.AddressLine1)
}

func TestClient_ValidateAddresses_MessageTranslation(t *testing.T) {
	mockAPI := shipengine.NewMockAPI()
	mockAPI.OnValidateAddresses = func(ctx context.Context, addresses []shipengine.AddressDocument) ([]shipengine.VerificationResultDocument, error) {
		return []shipengine.VerificationResultDocument{
			{
				Status: shipengine.StatusError,
				Messages: []shipengine.AddressMessageDocument{
					{Code: "a1004", Message: "The postal_code appears incomplete", Type: "error"},
					{Code: "x9999", Message: "Totally novel failure", Type: "error"},
				},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	results, err := client.ValidateAddresses(context.Background(), []any{fullAddressFields()})

	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.False(t, result.Verified())
	assert.Nil(t, result.MatchedAddress)
	require.Len(t, result.Messages, 2)

	known := result.Messages[0]
	assert.Equal(t, "The address was found but appears incomplete.", known.Reason)
	assert.Equal(t, "postal_code", known.Field)

	unknown := result.Messages[1]
	assert.Equal(t, "Unknown Failure", unknown.Reason)
	assert.Equal(t, "unknown", unknown.Field)
}

func TestClient_ValidateAddresses_InvalidInputNeverReachesAPI(t *testing.T) {
	mockAPI := shipengine.NewMockAPI()
	called := false
	mockAPI.OnValidateAddresses = func(ctx context.Context, addresses []shipengine.AddressDocument) ([]shipengine.VerificationResultDocument, error) {
		called = true
		return nil, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.ValidateAddresses(context.Background(), []any{map[string]string{"name": "Only Name"}})

	var validationErr *shipengine.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, called)
}

func TestClient_ValidateAddresses_MatchedAddressOnlyWhenPresent(t *testing.T) {
	mockAPI := shipengine.NewMockAPI()
	mockAPI.OnValidateAddresses = func(ctx context.Context, addresses []shipengine.AddressDocument) ([]shipengine.VerificationResultDocument, error) {
		return []shipengine.VerificationResultDocument{
			{Status: shipengine.StatusUnverified},
		}, nil
	}
	client := newTestClient(mockAPI)

	results, err := client.ValidateAddresses(context.Background(), []any{fullAddressFields()})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].MatchedAddress)
	assert.Equal(t, shipengine.StatusUnverified, results[0].Status)
}
