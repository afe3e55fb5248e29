package types

// CurrentWeather describes observed conditions at the time of the snapshot.
type CurrentWeather struct {
	TemperatureC         float64 `json:"temperature_c"`
	ApparentTemperatureC float64 `json:"apparent_temperature_c"`
	WindSpeedKmh         float64 `json:"wind_speed_kmh"`
	WindDirectionDeg     float64 `json:"wind_direction_deg"`
	IconCode             string  `json:"icon_code"`
	Summary              string  `json:"summary"`
}

// ForecastDay is a single calendar day in the daily forecast sequence.
// PrecipitationProb is a percentage in [0,100]; nil means the provider did
// not report a probability for that day.
type ForecastDay struct {
	Date              DateKey  `json:"date"`
	PrecipitationProb *float64 `json:"precipitation_probability,omitempty"`
	HighTempC         float64  `json:"high_temp_c"`
	LowTempC          float64  `json:"low_temp_c"`
	IconCode          string   `json:"icon_code"`
}

// WeatherSnapshot is the opaque weather input the advisory engine evaluates.
// Daily is ordered by date ascending with index 0 as "today"; rules index by
// position and scan runs of consecutive days, so the sequence must be gapless.
type WeatherSnapshot struct {
	Current      *CurrentWeather `json:"current,omitempty"`
	Daily        []ForecastDay   `json:"daily"`
	TyphoonAlert bool            `json:"typhoon_alert"`
	RainVolumeMm *float64        `json:"rain_volume_mm,omitempty"`
}

// Today returns the forecast for the current day, or nil when the daily
// sequence is empty.
func (w *WeatherSnapshot) Today() *ForecastDay {
	if len(w.Daily) == 0 {
		return nil
	}
	return &w.Daily[0]
}

// DayFor returns the forecast day matching the given date key, or nil.
func (w *WeatherSnapshot) DayFor(date DateKey) *ForecastDay {
	for i := range w.Daily {
		if w.Daily[i].Date == date {
			return &w.Daily[i]
		}
	}
	return nil
}
