package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat возвращается при некорректном текстовом представлении времени
var ErrInvalidFormat = errors.New("timeofday: invalid time format")

// TimeOfDay время суток без даты и таймзоны (например, время отправления тура).
// Сравнима оператором ==, сериализуется в JSON как строка "15:04".
type TimeOfDay struct {
	hour   int
	minute int
}

// New создает TimeOfDay из часов и минут
func New(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidFormat, hour, minute)
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// FromTime извлекает время суток из time.Time
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay{hour: t.Hour(), minute: t.Minute()}
}

// Parse парсит текстовое представление времени.
// Поддерживает 24-часовой формат ("14:00", "9:05") и 12-часовой
// с меридианом ("2:00 PM", "2:00pm", "12 AM") - каталог пакетов
// исторически хранит время отправления в обоих видах.
func Parse(s string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}

	upper := strings.ToUpper(trimmed)

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			upper = strings.TrimSpace(strings.TrimSuffix(upper, suffix))
			break
		}
	}

	hourPart := upper
	minutePart := "0"
	if idx := strings.Index(upper, ":"); idx >= 0 {
		hourPart = upper[:idx]
		minutePart = upper[idx+1:]
		// В 24-часовом формате минуты обязаны быть двузначными ("14:5" некорректно)
		if len(minutePart) != 2 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	} else if meridiem == "" {
		// Без двоеточия допустим только 12-часовой формат ("2 PM")
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		if meridiem == "AM" && hour == 12 {
			hour = 0
		}
		if meridiem == "PM" && hour != 12 {
			hour += 12
		}
	}

	return New(hour, minute)
}

// MustParse парсит время и паникует при ошибке. Только для тестов и констант.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour возвращает час (0-23)
func (t TimeOfDay) Hour() int {
	return t.hour
}

// Minute возвращает минуту (0-59)
func (t TimeOfDay) Minute() int {
	return t.minute
}

// Minutes возвращает количество минут с полуночи
func (t TimeOfDay) Minutes() int {
	return t.hour*60 + t.minute
}

// String возвращает каноническое представление "15:04"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Before возвращает true, если t раньше other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// After возвращает true, если t позже other
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// MarshalJSON сериализует время как строку "15:04"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON парсит время из строки, принимает оба текстовых формата
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, string(data))
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
