package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"cropwatch/internal/external"
	"cropwatch/internal/types"
)

// Compile-time assertion that OpenMeteoProvider implements Provider.
var _ Provider = (*OpenMeteoProvider)(nil)

// AlertSource reports whether a typhoon alert is in effect for a
// coordinate. It is separate from the forecast provider because alerts come
// from a different authority than the numerical forecast.
type AlertSource interface {
	TyphoonAlert(ctx context.Context, lat, lon float64) (bool, error)
}

// OpenMeteoProvider fetches forecasts from an Open-Meteo-compatible API and
// translates them into the engine's WeatherSnapshot. An optional
// AlertSource contributes the typhoon flag; alert-source failures degrade
// to "no alert" rather than failing the fetch.
type OpenMeteoProvider struct {
	client  *external.Client
	baseURL string
	alerts  AlertSource
	logger  types.Logger
	days    int
}

// NewOpenMeteoProvider creates a provider against the given API base URL
// (no trailing slash). alerts may be nil. days is the forecast horizon.
func NewOpenMeteoProvider(client *external.Client, baseURL string, alerts AlertSource, logger types.Logger, days int) *OpenMeteoProvider {
	if days <= 0 {
		days = 7
	}
	return &OpenMeteoProvider{
		client:  client,
		baseURL: baseURL,
		alerts:  alerts,
		logger:  logger,
		days:    days,
	}
}

// forecastResponse mirrors the subset of the Open-Meteo response the
// snapshot needs.
type forecastResponse struct {
	Current struct {
		Temperature2m       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
		WindDirection10m    float64 `json:"wind_direction_10m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time                 []string   `json:"time"`
		PrecipProbabilityMax []*float64 `json:"precipitation_probability_max"`
		Temperature2mMax     []float64  `json:"temperature_2m_max"`
		Temperature2mMin     []float64  `json:"temperature_2m_min"`
		PrecipitationSum     []*float64 `json:"precipitation_sum"`
		WeatherCode          []int      `json:"weather_code"`
	} `json:"daily"`
}

// Fetch retrieves and translates the forecast for the coordinate.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, lat, lon float64) (*types.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current", "temperature_2m,apparent_temperature,wind_speed_10m,wind_direction_10m,weather_code")
	q.Set("daily", "precipitation_probability_max,temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code")
	q.Set("forecast_days", strconv.Itoa(p.days))
	q.Set("wind_speed_unit", "kmh")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamWeather, "weather provider unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, types.NewAppError(types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather provider returned %d", resp.StatusCode), nil)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamWeather, "malformed weather response", err)
	}

	snapshot := translate(&body)

	if p.alerts != nil {
		alert, err := p.alerts.TyphoonAlert(ctx, lat, lon)
		if err != nil {
			p.logger.Warn("alert source failed, assuming no typhoon alert", "error", err.Error())
		} else {
			snapshot.TyphoonAlert = alert
		}
	}
	return snapshot, nil
}

// translate maps the provider response into the engine's snapshot shape.
// Daily arrays are position-aligned; a short array truncates the horizon
// rather than inventing values.
func translate(body *forecastResponse) *types.WeatherSnapshot {
	snapshot := &types.WeatherSnapshot{
		Current: &types.CurrentWeather{
			TemperatureC:         body.Current.Temperature2m,
			ApparentTemperatureC: body.Current.ApparentTemperature,
			WindSpeedKmh:         body.Current.WindSpeed10m,
			WindDirectionDeg:     body.Current.WindDirection10m,
			IconCode:             strconv.Itoa(body.Current.WeatherCode),
			Summary:              weatherCodeSummary(body.Current.WeatherCode),
		},
	}

	d := body.Daily
	for i, date := range d.Time {
		if i >= len(d.Temperature2mMax) || i >= len(d.Temperature2mMin) {
			break
		}
		day := types.ForecastDay{
			Date:      types.DateKey(date),
			HighTempC: d.Temperature2mMax[i],
			LowTempC:  d.Temperature2mMin[i],
		}
		if i < len(d.PrecipProbabilityMax) {
			day.PrecipitationProb = d.PrecipProbabilityMax[i]
		}
		if i < len(d.WeatherCode) {
			day.IconCode = strconv.Itoa(d.WeatherCode[i])
		}
		snapshot.Daily = append(snapshot.Daily, day)
	}

	if len(d.PrecipitationSum) > 0 && d.PrecipitationSum[0] != nil {
		snapshot.RainVolumeMm = d.PrecipitationSum[0]
	}
	return snapshot
}

// weatherCodeSummary maps WMO weather codes to short text summaries.
func weatherCodeSummary(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 3:
		return "Partly cloudy"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain showers"
	case code <= 86:
		return "Snow showers"
	default:
		return "Thunderstorm"
	}
}
