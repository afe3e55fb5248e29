package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationMissingField, http.StatusBadRequest},
		{ErrCodeValidationStatus, http.StatusBadRequest},
		{ErrCodeNotFoundCrop, http.StatusNotFound},
		{ErrCodeUpstreamWeather, http.StatusBadGateway},
		{ErrCodeUpstreamRateLimit, http.StatusBadGateway},
		{ErrCodeInternalStore, http.StatusInternalServerError},
		{ErrorCode("something_new"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestAppErrorChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAppError(ErrCodeUpstreamWeather, "forecast fetch failed", cause)

	assert.Equal(t, "upstream_weather_unavailable: forecast fetch failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, ErrCodeUpstreamWeather, appErr.Code)
}
