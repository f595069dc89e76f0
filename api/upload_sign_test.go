package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"cloudvid/video-api/model"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signatureOf(t *testing.T, a *API, userID, body string) string {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/api/uploads/sign", userID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Signature string `json:"signature"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Signature)
	return resp.Signature
}

func TestUploadSign_RequiresIdentity(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/uploads/sign", "", `{"paramsToSign":{"timestamp":1}}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// An unauthorized call must leave the store untouched
	assert.Zero(t, countRows(t, a.DB, model.User{}))
	assert.Zero(t, countRows(t, a.DB, model.Video{}))
}

func TestUploadSign_Deterministic(t *testing.T) {
	a := newTestAPI(t)

	body := `{"paramsToSign":{"timestamp":1315060510,"public_id":"dog_video","folder":"pets"}}`

	first := signatureOf(t, a, "user_a", body)
	second := signatureOf(t, a, "user_a", body)
	assert.Equal(t, first, second)

	// Key order in the request must not matter
	reordered := `{"paramsToSign":{"folder":"pets","public_id":"dog_video","timestamp":1315060510}}`
	assert.Equal(t, first, signatureOf(t, a, "user_a", reordered))

	// Any changed value must change the signature
	changed := signatureOf(t, a, "user_a", `{"paramsToSign":{"timestamp":1315060510,"public_id":"dog_video","folder":"cats"}}`)
	assert.NotEqual(t, first, changed)
}

func TestUploadSign_NoSideEffects(t *testing.T) {
	a := newTestAPI(t)

	signatureOf(t, a, "user_a", `{"paramsToSign":{"timestamp":1}}`)

	// Signing provisions nothing, not even the caller's account
	assert.Zero(t, countRows(t, a.DB, model.User{}))
	assert.Zero(t, countRows(t, a.DB, model.Video{}))
}

func TestUploadSign_BadInput(t *testing.T) {
	a := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty params", `{"paramsToSign":{}}`},
		{"missing params", `{}`},
		{"malformed json", `{"paramsToSign":`},
		{"client supplied signature", `{"paramsToSign":{"timestamp":1,"signature":"abc"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, a, http.MethodPost, "/api/uploads/sign", "user_a", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUploadSign_MissingSecretIsServerFault(t *testing.T) {
	a := newTestAPI(t)

	viper.Set("media.api_secret", "")
	t.Cleanup(func() { viper.Set("media.api_secret", "test-media-secret") })

	w := doJSON(t, a, http.MethodPost, "/api/uploads/sign", "user_a", `{"paramsToSign":{"timestamp":1}}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "misconfiguration")
}
