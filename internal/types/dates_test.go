package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyRoundtrip(t *testing.T) {
	manila := time.FixedZone("PST", 8*3600)

	// 23:30 UTC on the 29th is already the 30th in Manila.
	instant := time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, DateKey("2026-08-29"), NewDateKey(instant))
	assert.Equal(t, DateKey("2026-08-30"), NewDateKey(instant.In(manila)))

	d := DateKey("2026-08-30")
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, manila), d.Time(manila))
	assert.Equal(t, time.Date(2026, 8, 30, 8, 0, 0, 0, manila), d.At(8, 0, manila))
}

func TestDateKeyMalformed(t *testing.T) {
	bad := DateKey("30/08/2026")
	assert.False(t, bad.Valid())
	assert.True(t, bad.Time(time.UTC).IsZero())
	assert.True(t, bad.At(8, 0, time.UTC).IsZero())
	assert.Equal(t, bad, bad.AddDays(3))
}

func TestDateKeyAddDays(t *testing.T) {
	d := DateKey("2026-08-30")
	assert.Equal(t, DateKey("2026-09-01"), d.AddDays(2))
	assert.Equal(t, DateKey("2026-08-29"), d.AddDays(-1))
	// Month and year rollover.
	assert.Equal(t, DateKey("2027-01-01"), DateKey("2026-12-31").AddDays(1))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween("2026-08-30", "2026-08-30"))
	assert.Equal(t, 1, DaysBetween("2026-08-30", "2026-08-31"))
	assert.Equal(t, -5, DaysBetween("2026-08-30", "2026-08-25"))
	assert.Equal(t, 31, DaysBetween("2026-08-01", "2026-09-01"))
	assert.Equal(t, 0, DaysBetween("garbage", "2026-08-30"))
}

func TestDateKeyBefore(t *testing.T) {
	assert.True(t, DateKey("2026-08-30").Before("2026-09-01"))
	assert.False(t, DateKey("2026-09-01").Before("2026-08-30"))
	assert.False(t, DateKey("2026-08-30").Before("2026-08-30"))
}
