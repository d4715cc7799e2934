package domain

import (
	"fmt"
	"strings"
)

var dayNames = [7]string{
	"شنبه",
	"یک‌شنبه",
	"دوشنبه",
	"سه‌شنبه",
	"چهارشنبه",
	"پنج‌شنبه",
	"جمعه",
}

// LocalizedDate is a Jalali calendar date. Weekday counts from Saturday = 0.
type LocalizedDate struct {
	Year    int
	Month   int
	Day     int
	Weekday int
}

// DayName returns the Persian name of a Saturday-first weekday index.
func DayName(weekday int) (string, error) {
	if weekday < 0 || weekday >= len(dayNames) {
		return "", fmt.Errorf("%w: %d", ErrInvalidWeekday, weekday)
	}
	return dayNames[weekday], nil
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// ToPersianDigits maps ASCII digits to Extended Arabic-Indic digits and leaves
// every other rune untouched.
func ToPersianDigits(s string) string {
	return persianDigits.Replace(s)
}

// Key is the zero-padded Western-digit form yyyy/mm/dd, used for cache and journal keys.
func (d LocalizedDate) Key() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Caption renders "{dayName} {persianDigitDate}".
func (d LocalizedDate) Caption() (string, error) {
	name, err := DayName(d.Weekday)
	if err != nil {
		return "", err
	}
	return name + " " + ToPersianDigits(d.Key()), nil
}
