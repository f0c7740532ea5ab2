package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

func TestDateOf_ServerTimezoneIndependent(t *testing.T) {
	// 2026-09-10 23:30 UTC - в Малайзии уже 2026-09-11 07:30
	utcEvening := time.Date(2026, 9, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-09-11", DateOf(utcEvening))
	assert.Equal(t, "2026-09-11", DateOf(utcEvening.In(time.FixedZone("EST", -5*3600))),
		"civil date must not depend on the representation timezone")
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-09-10")
	require.NoError(t, err)

	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.September, day.Month())
	assert.Equal(t, 10, day.Day())
	assert.Equal(t, 0, day.Hour())

	_, offset := day.Zone()
	assert.Equal(t, 8*3600, offset)

	_, err = ParseDate("10/09/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2026-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestInstant(t *testing.T) {
	instant, err := Instant("2026-09-10", timeofday.MustParse("14:00"))
	require.NoError(t, err)

	// 14:00 UTC+8 == 06:00 UTC
	assert.Equal(t, time.Date(2026, 9, 10, 6, 0, 0, 0, time.UTC).Unix(), instant.Unix())

	_, err = Instant("bad-date", timeofday.MustParse("14:00"))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-09-10", 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-11", got)

	// Переход через границу месяца и года
	got, err = AddDays("2026-12-31", 90)
	require.NoError(t, err)
	assert.Equal(t, "2027-03-31", got)
}

func TestStartOfDay(t *testing.T) {
	// 2026-09-10 20:00 UTC == 2026-09-11 04:00 в Малайзии
	moment := time.Date(2026, 9, 10, 20, 0, 0, 0, time.UTC)

	start := StartOfDay(moment)
	assert.Equal(t, "2026-09-11", start.Format(DateFormat))
	assert.Equal(t, 0, start.Hour())
	assert.True(t, start.Before(moment))
	assert.Equal(t, "2026-09-11", DateOf(start))
}
