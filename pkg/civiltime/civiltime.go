package civiltime

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// Все календарные даты и времена отправления маркетплейса интерпретируются
// в фиксированной гражданской таймзоне Малайзии (UTC+8), независимо от
// таймзоны сервера.
const ZoneName = "Asia/Kuala_Lumpur"

// DateFormat формат календарной даты
const DateFormat = "2006-01-02"

// ErrInvalidDate возвращается при некорректном формате даты
var ErrInvalidDate = errors.New("civiltime: invalid date format")

var location = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		// Контейнер без tzdata: Малайзия не переводит часы, фиксированный
		// оффсет эквивалентен
		return time.FixedZone("+08", 8*60*60)
	}
	return loc
}

// Location возвращает фиксированную гражданскую таймзону
func Location() *time.Location {
	return location
}

// DateOf возвращает календарную дату момента t в гражданской таймзоне
func DateOf(t time.Time) string {
	return t.In(location).Format(DateFormat)
}

// ParseDate парсит дату "YYYY-MM-DD" в полночь гражданской таймзоны
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Instant возвращает абсолютный момент, соответствующий date+tod
// в гражданской таймзоне
func Instant(date string, tod timeofday.TimeOfDay) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, location), nil
}

// AddDays возвращает дату через n календарных дней после date
func AddDays(date string, n int) (string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return day.AddDate(0, 0, n).Format(DateFormat), nil
}

// StartOfDay возвращает полночь гражданской таймзоны для момента t
func StartOfDay(t time.Time) time.Time {
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}
