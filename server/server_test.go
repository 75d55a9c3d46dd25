package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/banglaphonetic/gobangla/gobangla"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	return New(gobangla.DefaultEngine(), nil)
}

func post(t *testing.T, app *fiber.App, path string, body string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestScheme(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scheme", nil))
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var scheme SchemeResponse
	require.NoError(t, json.Unmarshal(body, &scheme))

	assert.Equal(t, gobangla.DEFAULT_SCHEME_ID, scheme.Identifier)
	assert.Equal(t, "bn", scheme.LangCode)
	assert.True(t, scheme.IsStable)
	assert.Equal(t, gobangla.DefaultScheme().Len(), scheme.Mappings)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &raw))

	for _, key := range []string{"identifier", "lang_code", "display_name", "author", "is_stable", "mappings"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "Identifier")
	assert.NotContains(t, raw, "LangCode")
}

func TestConvert(t *testing.T) {
	app := newTestApp()

	resp, body := post(t, app, "/convert", `{"text": "ami  bhalo\tachi xyz123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result ConvertResponse
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, gobangla.Convert("ami  bhalo\tachi xyz123"), result.Text)
	assert.Nil(t, result.Caret)
}

func TestConvertWord(t *testing.T) {
	app := newTestApp()

	resp, body := post(t, app, "/convert/word", `{"text": "hello ami world", "caret": 9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result ConvertResponse
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, "hello আমি  world", result.Text)
	require.NotNil(t, result.Caret)
	assert.Equal(t, 10, *result.Caret)

	// Caret defaults to the end
	_, body = post(t, app, "/convert/word", `{"text": "ami"}`)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "আমি ", result.Text)
	assert.Equal(t, 4, *result.Caret)
}

func TestConvertInvalidBody(t *testing.T) {
	app := newTestApp()

	resp, body := post(t, app, "/convert", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "invalid_body", errResp.Code)
}

func TestConvertTooLong(t *testing.T) {
	app := newTestApp()

	text := strings.Repeat("a", maxTextLength+1)
	resp, body := post(t, app, "/convert", `{"text": "`+text+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "text_too_long", errResp.Code)
}

func TestNotFound(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
