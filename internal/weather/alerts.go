package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cropwatch/internal/external"
	"cropwatch/internal/types"
)

// Compile-time assertion that FeedAlertSource implements AlertSource.
var _ AlertSource = (*FeedAlertSource)(nil)

// FeedAlertSource reads typhoon alerts from a severe-weather warnings feed.
// The feed returns active warnings for a coordinate:
//
//	GET {base}/v1/warnings?lat=..&lon=..
//	{"warnings": [{"type": "typhoon", "severity": "warning"}, ...]}
//
// Any active warning whose type mentions "typhoon" or "cyclone" raises the
// alert flag.
type FeedAlertSource struct {
	client  *external.Client
	baseURL string
}

// NewFeedAlertSource creates an alert source against the given feed base
// URL (no trailing slash).
func NewFeedAlertSource(client *external.Client, baseURL string) *FeedAlertSource {
	return &FeedAlertSource{client: client, baseURL: baseURL}
}

type warningsResponse struct {
	Warnings []struct {
		Type     string `json:"type"`
		Severity string `json:"severity"`
	} `json:"warnings"`
}

// TyphoonAlert reports whether a typhoon warning is active for the
// coordinate.
func (s *FeedAlertSource) TyphoonAlert(ctx context.Context, lat, lon float64) (bool, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/warnings?"+q.Encode(), nil)
	if err != nil {
		return false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return false, types.NewAppError(types.ErrCodeUpstreamWeather,
			fmt.Sprintf("warnings feed returned %d", resp.StatusCode), nil)
	}

	var body warningsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, types.NewAppError(types.ErrCodeUpstreamWeather, "malformed warnings response", err)
	}

	for _, w := range body.Warnings {
		t := strings.ToLower(w.Type)
		if strings.Contains(t, "typhoon") || strings.Contains(t, "cyclone") {
			return true, nil
		}
	}
	return false, nil
}
