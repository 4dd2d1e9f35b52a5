package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin-dev/todo-calendar-api/internal/testutil"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSignUpEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("valid signup returns tokens", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/signup"), map[string]string{
			"username": "alice",
			"email":    "alice@x.com",
			"password": "Passw0rd!",
		})
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var authResp testutil.AuthResponse
		testutil.AssertJSONResponse(t, resp, &authResp)
		assert.True(t, authResp.Success)
		assert.Equal(t, "alice", authResp.Data.User.Username)
		assert.NotEmpty(t, authResp.Data.AccessToken)
		assert.NotEmpty(t, authResp.Data.RefreshToken)
	})

	t.Run("weak password is a validation error", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/signup"), map[string]string{
			"username": "bob",
			"email":    "bob@x.com",
			"password": "short",
		})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "ValidationError", "")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/signup"), map[string]string{
			"username": "alice2",
			"email":    "alice@x.com",
			"password": "Passw0rd!",
		})
		testutil.AssertErrorResponse(t, resp, http.StatusConflict, "ConflictError", "Username or email already exists")
	})
}

func TestSignInEndpoint_EnumerationResistance(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("existing@x.com").
		WithPassword("Passw0rd!").
		BuildAndAuthenticate(t, ts)

	read := func(resp *http.Response) string {
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	wrongPass := postJSON(t, ts.APIURL("/auth/signin"), map[string]string{
		"email":    "existing@x.com",
		"password": "WrongPass1!",
	})
	noUser := postJSON(t, ts.APIURL("/auth/signin"), map[string]string{
		"email":    "ghost@x.com",
		"password": "Passw0rd!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, noUser.StatusCode)
	// Byte-identical payloads: no account enumeration through error shape
	assert.Equal(t, read(wrongPass), read(noUser))
}

func TestSignOutEndpoint_Idempotent(t *testing.T) {
	ts := testutil.NewTestServer(t)

	for _, body := range []map[string]string{
		{"refreshToken": "never-issued"},
		{"refreshToken": ""},
		{},
	} {
		resp := postJSON(t, ts.APIURL("/auth/signout"), body)
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	signup := postJSON(t, ts.APIURL("/auth/signup"), map[string]string{
		"username": "refresher",
		"email":    "refresher@x.com",
		"password": "Passw0rd!",
	})
	var authResp testutil.AuthResponse
	testutil.AssertJSONResponse(t, signup, &authResp)

	t.Run("valid refresh mints a new access token", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/refresh"), map[string]string{
			"refreshToken": authResp.Data.RefreshToken,
		})
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var envelope struct {
			Data struct {
				AccessToken string `json:"accessToken"`
			} `json:"data"`
		}
		testutil.AssertJSONResponse(t, resp, &envelope)
		assert.NotEmpty(t, envelope.Data.AccessToken)
	})

	t.Run("garbled token is 401", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/refresh"), map[string]string{
			"refreshToken": "garbage",
		})
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "AuthenticationError", "Invalid refresh token")
	})

	t.Run("revoked token is 404", func(t *testing.T) {
		signout := postJSON(t, ts.APIURL("/auth/signout"), map[string]string{
			"refreshToken": authResp.Data.RefreshToken,
		})
		testutil.AssertStatusCode(t, signout, http.StatusOK)

		resp := postJSON(t, ts.APIURL("/auth/refresh"), map[string]string{
			"refreshToken": authResp.Data.RefreshToken,
		})
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "NotFoundError", "Refresh token not found")
	})
}
