package cwa

// Wire types for the CWA datastore township forecast response
// (F-D0047 family). Only the fields the normalizer consumes are mapped;
// everything else in the upstream document is ignored by the decoder.

// RawDocument is the top-level response envelope.
type RawDocument struct {
	Success string  `json:"success"`
	Records Records `json:"records"`
}

// Records carries the dataset issue timestamp and location groups. The
// dataset is scoped to a single county, so exactly one group is expected.
type Records struct {
	IssueTime string          `json:"issueTime"`
	Locations []LocationGroup `json:"locations"`
}

// LocationGroup is one county's set of township records.
type LocationGroup struct {
	LocationsName string     `json:"locationsName"`
	Location      []Location `json:"location"`
}

// Location is a single township and its weather element series.
type Location struct {
	LocationName   string           `json:"locationName"`
	Geocode        string           `json:"geocode"`
	WeatherElement []WeatherElement `json:"weatherElement"`
}

// WeatherElement is a named element (Wx, PoP6h, T, ...) with its
// time-indexed entries. All elements of a township share the same time-axis
// alignment; the Wx element is treated as canonical.
type WeatherElement struct {
	ElementName string      `json:"elementName"`
	Description string      `json:"description"`
	Time        []TimeEntry `json:"time"`
}

// TimeEntry is one forecast slot of an element.
type TimeEntry struct {
	StartTime    string         `json:"startTime"`
	EndTime      string         `json:"endTime"`
	ElementValue []ElementValue `json:"elementValue"`
}

// ElementValue is a single measured/forecast value within a time slot.
type ElementValue struct {
	Value    string `json:"value"`
	Measures string `json:"measures"`
}
