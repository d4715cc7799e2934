// Package calendar converts instants to Jalali dates.
package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"faal-poster/internal/domain"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DefaultTimezone is where "today" is decided.
const DefaultTimezone = "Asia/Tehran"

// Jalali reports the current Jalali date in a fixed location.
type Jalali struct {
	loc *time.Location
	now func() time.Time
}

// NewJalali creates a Jalali calendar for the named IANA zone.
// A nil now uses time.Now.
func NewJalali(timezone string, now func() time.Time) (*Jalali, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Jalali{loc: loc, now: now}, nil
}

// Today returns the current Jalali date.
func (j *Jalali) Today() domain.LocalizedDate {
	return ToLocalized(j.now().In(j.loc))
}

// ToLocalized converts t, in its own location, to a Jalali date with a
// Saturday-first weekday index.
func ToLocalized(t time.Time) domain.LocalizedDate {
	pt := ptime.New(t)
	return domain.LocalizedDate{
		Year:    pt.Year(),
		Month:   int(pt.Month()),
		Day:     pt.Day(),
		Weekday: (int(t.Weekday()) + 1) % 7,
	}
}
