package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// ErrorEnvelope matches the API error payload
type ErrorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AssertErrorResponse verifies the error payload's status, type and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedType, expectedMessage string) ErrorEnvelope {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var envelope ErrorEnvelope
	AssertJSONResponse(t, resp, &envelope)
	assert.False(t, envelope.Success)
	assert.Equal(t, expectedType, envelope.Error.Type)
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, envelope.Error.Message)
	}
	return envelope
}
