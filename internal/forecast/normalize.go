package forecast

import (
	"errors"
	"strings"

	"github.com/kao20300/CwaWeather-backend/internal/cwa"
)

var (
	// ErrNoForecastData is returned when the upstream document has no usable
	// location group or township records.
	ErrNoForecastData = errors.New("no location data in forecast document")

	// ErrMissingTimeAxis is returned when the weather-phenomenon element is
	// absent. Wx defines the canonical time axis, so without it no periods
	// can be built; a partial result is never produced.
	ErrMissingTimeAxis = errors.New("weather phenomenon element (Wx) missing from township record")
)

// elementKind enumerates the weather elements the normalizer understands.
// Anything else in the upstream document is an explicit no-op.
type elementKind string

const (
	elementWx     elementKind = "Wx"    // weather phenomenon; canonical time axis
	elementPoP6h  elementKind = "PoP6h" // 6-hour precipitation probability
	elementPoP12h elementKind = "PoP12h"
	elementT      elementKind = "T" // point temperature
	elementCI     elementKind = "CI"
	elementWs     elementKind = "Ws"
)

// elementSetters maps each recognized element to the output field it fills.
// Precipitation is handled separately by the rainSources resolver chain.
var elementSetters = map[elementKind]func(p *Period, value string){
	elementWx: func(p *Period, v string) { p.Weather = v },
	elementT: func(p *Period, v string) {
		p.MinTemp = v + "°C"
		p.MaxTemp = v + "°C"
	},
	elementCI: func(p *Period, v string) { p.Comfort = v },
	elementWs: func(p *Period, v string) { p.WindSpeed = v },
}

// rainSources is the precipitation fallback chain, evaluated in priority
// order: the finer 6-hour probability wins, the 12-hour one backs it up,
// and an empty result defaults to "0%".
var rainSources = []elementKind{elementPoP6h, elementPoP12h}

const defaultRain = "0%"

// Normalize locates targetCity inside the county document and flattens its
// weather elements into time-ordered periods. The input is not mutated;
// normalizing the same document twice yields identical output.
func Normalize(doc *cwa.RawDocument, targetCity string) (*WeatherResponse, error) {
	if doc == nil || len(doc.Records.Locations) == 0 {
		return nil, ErrNoForecastData
	}

	group := doc.Records.Locations[0]
	if len(group.Location) == 0 {
		return nil, ErrNoForecastData
	}

	loc := selectTownship(group.Location, targetCity)

	wx := findElement(loc.WeatherElement, elementWx)
	if wx == nil {
		return nil, ErrMissingTimeAxis
	}

	periods := make([]Period, 0, len(wx.Time))
	for i, slot := range wx.Time {
		p := Period{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}

		for _, elem := range loc.WeatherElement {
			setter, ok := elementSetters[elementKind(elem.ElementName)]
			if !ok {
				continue
			}
			if v, ok := elementValueAt(elem, i); ok {
				setter(&p, v)
			}
		}

		p.Rain = resolveRain(loc.WeatherElement, i)

		periods = append(periods, p)
	}

	return &WeatherResponse{
		City:       loc.LocationName,
		UpdateTime: doc.Records.IssueTime,
		Forecasts:  periods,
	}, nil
}

// selectTownship prefers an exact name match and otherwise falls back to the
// first township. The fallback is deliberate leniency, not a data guarantee.
func selectTownship(townships []cwa.Location, targetCity string) cwa.Location {
	for _, t := range townships {
		if t.LocationName == targetCity {
			return t
		}
	}
	return townships[0]
}

// resolveRain walks the precipitation sources in priority order at index i.
func resolveRain(elements []cwa.WeatherElement, i int) string {
	for _, kind := range rainSources {
		elem := findElement(elements, kind)
		if elem == nil {
			continue
		}
		if v, ok := elementValueAt(*elem, i); ok {
			return v + "%"
		}
	}
	return defaultRain
}

func findElement(elements []cwa.WeatherElement, kind elementKind) *cwa.WeatherElement {
	for idx := range elements {
		if elements[idx].ElementName == string(kind) {
			return &elements[idx]
		}
	}
	return nil
}

// elementValueAt reports the element's value at time index i. CWA pads empty
// slots with a single space, so a blank value counts as absent.
func elementValueAt(elem cwa.WeatherElement, i int) (string, bool) {
	if i >= len(elem.Time) {
		return "", false
	}
	values := elem.Time[i].ElementValue
	if len(values) == 0 {
		return "", false
	}
	v := values[0].Value
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
