package forecast

import (
	"context"

	"github.com/kao20300/CwaWeather-backend/internal/cwa"
)

// Fetcher is the outbound dependency the service needs from the CWA adapter.
type Fetcher interface {
	FetchForecast(ctx context.Context) (*cwa.RawDocument, error)
}

// Service composes the fetch and normalize steps for the configured
// township. Each call is an independent unit of work: one outbound request,
// no shared state, no caching between calls.
type Service struct {
	fetcher Fetcher
	city    string
}

// NewService creates a Service targeting the given township name.
func NewService(fetcher Fetcher, city string) *Service {
	return &Service{
		fetcher: fetcher,
		city:    city,
	}
}

// CityForecast fetches the county dataset and normalizes the target
// township's records. Errors from either step propagate unmodified so the
// route layer can classify them.
func (s *Service) CityForecast(ctx context.Context) (*WeatherResponse, error) {
	doc, err := s.fetcher.FetchForecast(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(doc, s.city)
}
