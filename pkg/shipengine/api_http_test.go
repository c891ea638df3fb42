package shipengine_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(serverURL string) *shipengine.HTTPAPI {
	return shipengine.NewHTTPAPI(shipengine.HTTPAPIConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
	})
}

func TestHTTPAPI_Headers(t *testing.T) {
	var gotContentType, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get("api-key")
		w.Write([]byte(`{"carriers": []}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	_, err := api.ListCarriers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestHTTPAPI_KeyDrilling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carriers", r.URL.Path)
		w.Write([]byte(`{"carriers": [{"carrier_id": "se-123456", "carrier_code": "stamps_com"}]}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	carriers, err := api.ListCarriers(context.Background())

	require.NoError(t, err)
	require.Len(t, carriers, 1)
	assert.Equal(t, shipengine.CarrierID("se-123456"), carriers[0].CarrierID)
}

func TestHTTPAPI_ErrorEnvelopeOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"request_id": "req-1", "errors": [{"error_code": "invalid_address", "message": "Address is invalid"}]}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	_, err := api.ListCarriers(context.Background())

	var errResp *shipengine.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, "req-1", errResp.RequestID)
	require.Len(t, errResp.Errors, 1)
	assert.Equal(t, "invalid_address", errResp.Errors[0].Code)
	assert.Equal(t, "Address is invalid", errResp.Errors[0].Message)
}

func TestHTTPAPI_ErrorEnvelopeAlternateSpelling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"request_id": "req-2", "errors": [{"error_code": "rate_error", "error_message": "No rates available"}]}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	_, err := api.GetRate(context.Background(), "rate-1")

	var errResp *shipengine.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	require.Len(t, errResp.Errors, 1)
	assert.Equal(t, "No rates available", errResp.Errors[0].Message)
}

func TestHTTPAPI_FailureStatusWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	_, err := api.ListCarriers(context.Background())

	var failedErr *shipengine.RequestFailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Equal(t, "upstream exploded", failedErr.Body)
}

func TestHTTPAPI_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	api := newTestAPI(server.URL)
	_, err := api.ListCarriers(context.Background())

	var failedErr *shipengine.RequestFailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Empty(t, failedErr.Body)
	assert.Error(t, failedErr.Cause)
}

func TestHTTPAPI_RemoveCarrier_SuccessStatuses(t *testing.T) {
	for _, status := range []int{200, 201, 202, 203, 204} {
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(status)
		}))

		api := newTestAPI(server.URL)
		err := api.RemoveCarrier(context.Background(), shipengine.CarrierStampsDotCom, "se-123456")
		server.Close()

		require.NoError(t, err, "status %d", status)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/connections/carriers/stamps_com/se-123456", gotPath)
	}
}

func TestHTTPAPI_RemoveCarrier_FailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	err := api.RemoveCarrier(context.Background(), shipengine.CarrierUPS, "se-999")

	var failedErr *shipengine.RequestFailedError
	require.ErrorAs(t, err, &failedErr)
}

func TestHTTPAPI_GetRates_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rates", r.URL.Path)
		w.Write([]byte(`{
			"rate_response": {
				"rate_request_id": 12345,
				"shipment_id": "se-ship-1",
				"rates": [{"rate_id": "rate-1", "carrier_id": "se-123456", "carrier_code": "stamps_com", "service_code": "usps_priority_mail"}]
			}
		}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)

	shipment := buildRatingShipment(t)
	response, err := api.GetRates(context.Background(), shipment, shipengine.NewRateOptions("se-123456"))

	require.NoError(t, err)
	assert.Equal(t, shipengine.ShipmentID("se-ship-1"), response.ShipmentID)
	require.Len(t, response.Rates, 1)
	assert.Equal(t, shipengine.RateID("rate-1"), response.Rates[0].RateID)
}

func TestHTTPAPI_GetRates_EmptyCarriersNeverSent(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	_, err := api.GetRates(context.Background(), buildRatingShipment(t), shipengine.NewRateOptions())

	assert.ErrorIs(t, err, shipengine.ErrInvalidArgument)
	assert.False(t, called)
}

func TestHTTPAPI_Connect_CarrierIDDrill(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/connections/carriers/stamps_com", r.URL.Path)
		w.Write([]byte(`{"carrier_id": "se-777"}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	carrierID, err := api.ConnectStampsDotCom(context.Background(), shipengine.StampsDotComAccount{
		Nickname: "My Stamps",
		Username: "shipper",
		Password: "hunter2",
	})

	require.NoError(t, err)
	assert.Equal(t, shipengine.CarrierID("se-777"), carrierID)
}

func TestHTTPAPI_VoidLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/labels/se-label-1/void", r.URL.Path)
		w.Write([]byte(`{"approved": true, "message": "Void accepted"}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	void, err := api.VoidLabel(context.Background(), "se-label-1")

	require.NoError(t, err)
	assert.True(t, void.Approved)
	assert.Equal(t, "Void accepted", void.Message)
}

func buildRatingShipment(t *testing.T) *shipengine.Shipment {
	t.Helper()
	builder := shipengine.NewRatingShipment(testAddress(t, "To"), testAddress(t, "From"))
	builder.AddPackage(shipengine.NewPackage(mustWeight(t, 1, shipengine.WeightPound)))
	shipment, err := builder.Build()
	require.NoError(t, err)
	return shipment
}
