package forecast

// Period is one normalized forecast time slot. Temperature bounds mirror the
// single point temperature the upstream dataset provides; there is no
// separate min/max source.
type Period struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Weather   string `json:"weather"`
	Rain      string `json:"rain"`
	MinTemp   string `json:"minTemp"`
	MaxTemp   string `json:"maxTemp"`
	Comfort   string `json:"comfort"`
	WindSpeed string `json:"windSpeed"`
}

// WeatherResponse is the normalized view of one township's forecast.
// Forecasts are ordered by the canonical time axis and never re-sorted.
type WeatherResponse struct {
	City       string   `json:"city"`
	UpdateTime string   `json:"updateTime"`
	Forecasts  []Period `json:"forecasts"`
}
