package shipengine_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Message(t *testing.T) {
	err := &shipengine.ValidationError{MissingKeys: []string{"phone", "postal_code"}}

	assert.Equal(t, "invalid address data: missing required key(s): phone,postal_code", err.Error())
}

func TestAPIError_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		code    string
		message string
	}{
		{
			name:    "message field",
			payload: `{"error_code": "invalid_address", "message": "Address is invalid"}`,
			code:    "invalid_address",
			message: "Address is invalid",
		},
		{
			name:    "error_message field",
			payload: `{"error_code": "invalid_address", "error_message": "Address is invalid"}`,
			code:    "invalid_address",
			message: "Address is invalid",
		},
		{
			name:    "no code",
			payload: `{"message": "Something went wrong"}`,
			code:    "",
			message: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr shipengine.APIError
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestAPIError_String(t *testing.T) {
	withCode := shipengine.APIError{Code: "invalid_address", Message: "Address is invalid"}
	assert.Equal(t, "[Error Code: invalid_address] Address is invalid", withCode.String())

	noCode := shipengine.APIError{Message: "Something went wrong"}
	assert.Equal(t, "[Error Code: N/A] Something went wrong", noCode.String())
}

func TestErrorResponse_Message(t *testing.T) {
	err := &shipengine.ErrorResponse{
		RequestID: "req-123",
		Errors: []shipengine.APIError{
			{Code: "a", Message: "first"},
			{Code: "b", Message: "second"},
		},
	}

	assert.Equal(t, "shipengine request req-123 response contained 2 error(s)", err.Error())
}

func TestRequestFailedError_Message(t *testing.T) {
	withBody := &shipengine.RequestFailedError{Body: "bad gateway"}
	assert.Equal(t, "shipengine request failed: bad gateway", withBody.Error())

	empty := &shipengine.RequestFailedError{}
	assert.Equal(t, "shipengine request failed: no response was received", empty.Error())
}

func TestRequestFailedError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &shipengine.RequestFailedError{Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
