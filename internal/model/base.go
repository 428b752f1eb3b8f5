package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── TIME column type ──

// TimeOfDay is a nullable wall-clock time with second precision, stored in a
// SQL TIME column.
type TimeOfDay struct {
	Seconds int
	Valid   bool
}

const secondsPerDay = 24 * 60 * 60

// NewTimeOfDay builds a valid time from hours and minutes.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Seconds: hour*3600 + minute*60, Valid: true}
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS with an optional fractional part.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("is not a valid time in the format HH:MM")
	}
	limits := []int{23, 59, 59}
	total := 0
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return TimeOfDay{}, fmt.Errorf("is not a valid time in the format HH:MM")
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return TimeOfDay{}, fmt.Errorf("is not a valid time in the format HH:MM")
		}
		total = total*60 + n
	}
	if len(parts) == 2 {
		total *= 60
	}
	return TimeOfDay{Seconds: total, Valid: true}, nil
}

// String renders HH:MM, or "" when the time is not set.
func (t TimeOfDay) String() string {
	if !t.Valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Seconds/3600, t.Seconds%3600/60)
}

// Duration is the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Seconds) * time.Second
}

// Scan implements sql.Scanner for TIME, text and timestamp columns.
func (t *TimeOfDay) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*t = TimeOfDay{}
		return nil
	case time.Time:
		*t = TimeOfDay{Seconds: v.Hour()*3600 + v.Minute()*60 + v.Second(), Valid: true}
		return nil
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("TimeOfDay.Scan: unsupported type %T", src)
	}
	parsed, err := ParseTimeOfDay(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("TimeOfDay.Scan: %q %w", s, err)
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer as HH:MM:SS.
func (t TimeOfDay) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	s := t.Seconds % secondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60), nil
}

// BaseModel audit timestamps embedded by the top-level tables.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
