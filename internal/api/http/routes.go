package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kao20300/CwaWeather-backend/internal/cwa"
	"github.com/kao20300/CwaWeather-backend/internal/forecast"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app. It must be
// called after global middleware; the trailing handler catches every
// unmatched path.
func RegisterRoutes(app *fiber.App, service *forecast.Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CWA Taitung weather forecast API",
			"endpoints": fiber.Map{
				"health":  "/api/health",
				"weather": "/api/weather/taitung",
			},
		})
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/api/weather/taitung", func(c *fiber.Ctx) error {
		data, err := service.CityForecast(c.Context())
		if err != nil {
			return weatherError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    data,
		})
	})

	// Catch-all for unmatched routes.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found: " + c.Path(),
		})
	})
}

// weatherError maps pipeline errors onto the documented HTTP responses.
// Every error is logged here; none propagate past the route boundary.
func weatherError(c *fiber.Ctx, err error) error {
	log.Printf("weather request failed: %v", err)

	var upstream *cwa.UpstreamError

	switch {
	case errors.Is(err, cwa.ErrMissingAPIKey):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "missing configuration",
			"message": err.Error(),
		})

	case errors.As(err, &upstream):
		// Transparent pass-through of the upstream status and payload.
		var details any
		if len(upstream.Payload) > 0 {
			if jsonErr := json.Unmarshal(upstream.Payload, &details); jsonErr != nil {
				details = string(upstream.Payload)
			}
		}
		return c.Status(upstream.StatusCode).JSON(fiber.Map{
			"error":   "upstream API error",
			"message": "CWA API request failed",
			"details": details,
		})

	case errors.Is(err, forecast.ErrNoForecastData):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "forecast data not found",
			"message": err.Error(),
		})

	case errors.Is(err, forecast.ErrMissingTimeAxis):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "unexpected upstream data",
			"message": err.Error(),
		})

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal server error",
			"message": "failed to fetch weather data",
		})
	}
}
