package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kao20300/CwaWeather-backend/internal/cwa"
	"github.com/kao20300/CwaWeather-backend/internal/forecast"
)

const testCity = "臺東市"

func newApp(service *forecast.Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, service)
	return app
}

func appWithUpstream(t *testing.T, handler http.HandlerFunc, apiKey string) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := cwa.NewClient(&http.Client{Timeout: 5 * time.Second}, srv.URL, "F-D0047-089", apiKey)
	return newApp(forecast.NewService(client, testCity))
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func upstreamDocument() map[string]any {
	return map[string]any{
		"success": "true",
		"records": map[string]any{
			"issueTime": "2024-06-01 05:00:00",
			"locations": []any{
				map[string]any{
					"locationsName": "臺東縣",
					"location": []any{
						map[string]any{
							"locationName": testCity,
							"weatherElement": []any{
								map[string]any{
									"elementName": "Wx",
									"time": []any{
										map[string]any{
											"startTime":    "2024-06-01 06:00:00",
											"endTime":      "2024-06-01 12:00:00",
											"elementValue": []any{map[string]any{"value": "晴時多雲"}},
										},
									},
								},
								map[string]any{
									"elementName": "PoP12h",
									"time": []any{
										map[string]any{
											"startTime":    "2024-06-01 06:00:00",
											"endTime":      "2024-06-01 18:00:00",
											"elementValue": []any{map[string]any{"value": "40"}},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestRootEndpoint(t *testing.T) {
	app := newApp(forecast.NewService(nil, testCity))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["message"])

	endpoints, ok := body["endpoints"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/api/weather/taitung", endpoints["weather"])
	assert.Equal(t, "/api/health", endpoints["health"])
}

func TestHealthEndpoint(t *testing.T) {
	app := newApp(forecast.NewService(nil, testCity))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "OK", body["status"])

	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestWeatherEndpoint_Success(t *testing.T) {
	app := appWithUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(upstreamDocument())
	}, "test-key")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather/taitung", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testCity, data["city"])
	assert.Equal(t, "2024-06-01 05:00:00", data["updateTime"])

	forecasts, ok := data["forecasts"].([]any)
	require.True(t, ok)
	require.Len(t, forecasts, 1)

	period, ok := forecasts[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "晴時多雲", period["weather"])
	assert.Equal(t, "40%", period["rain"])
}

func TestWeatherEndpoint_MissingAPIKey(t *testing.T) {
	var upstreamCalls int
	app := appWithUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		upstreamCalls++
		w.WriteHeader(http.StatusOK)
	}, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather/taitung", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, body["message"])
	assert.Zero(t, upstreamCalls)
}

func TestWeatherEndpoint_UpstreamErrorPassthrough(t *testing.T) {
	app := appWithUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid authorization key"}`))
	}, "bad-key")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather/taitung", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "invalid authorization key", details["message"])
}

func TestWeatherEndpoint_NoForecastData(t *testing.T) {
	app := appWithUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":"true","records":{"locations":[]}}`))
	}, "test-key")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather/taitung", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
}

func TestWeatherEndpoint_StructuralErrorIsInternal(t *testing.T) {
	doc := upstreamDocument()
	// Strip the Wx element so the canonical time axis is missing.
	records := doc["records"].(map[string]any)
	location := records["locations"].([]any)[0].(map[string]any)["location"].([]any)[0].(map[string]any)
	location["weatherElement"] = []any{}

	app := appWithUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}, "test-key")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather/taitung", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUnknownRouteReturns404(t *testing.T) {
	app := newApp(forecast.NewService(nil, testCity))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "data")
}
