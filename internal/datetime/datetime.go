// Package datetime normalizes the dates and times users type into canonical
// calendar values. Inputs are tried against an ordered table of layouts and
// the first layout that parses the whole string wins.
package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Canonical layouts used for persistence.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 1504"
)

// ErrDateFormat is the kind of every FormatError.
var ErrDateFormat = errors.New("date format not recognized")

// FormatError reports text that matched none of the accepted layouts.
type FormatError struct {
	Input    string
	WantTime bool // true when a date-time was being parsed
}

func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	if e.WantTime {
		return fmt.Sprintf("Oops! Date format not recognized: %s. Have you entered the correct time?", e.Input)
	}
	return fmt.Sprintf("Oops! Date format not recognized: %s. If you have entered a time, please remove it.", e.Input)
}

func (e *FormatError) Unwrap() error { return ErrDateFormat }

// layout is one accepted input form.
type layout struct {
	value     string
	noYear    bool // year defaults to the current year
	shortYear bool // two-digit year, mapped to 2000-2099
}

// Go's "2" and "1" accept one or two digits, so d/dd and M/MM share a layout.
var dateLayouts = []layout{
	{value: "2 Jan 2006"},
	{value: "2006-01-02"},
	{value: "01/02/06", shortYear: true},
	{value: "Jan 2 2006"},
	{value: "2/1/2006"},
	{value: "2-January-2006"},
	{value: "2 January 2006"},
	{value: "2/1/06", shortYear: true},
	{value: "2 Jan", noYear: true},
	{value: "2 January", noYear: true},
}

// dateTimeLayouts pairs every date layout with a 24-hour and a 12-hour time.
var dateTimeLayouts = buildDateTimeLayouts()

func buildDateTimeLayouts() []layout {
	out := make([]layout, 0, 2*len(dateLayouts)+1)
	for _, d := range dateLayouts {
		for _, clock := range []string{"1504", "3PM"} {
			l := d
			l.value = d.value + " " + clock
			out = append(out, l)
		}
	}
	return append(out, layout{value: "2006-01-02T15:04"})
}

// Normalizer parses user dates relative to a clock and location.
type Normalizer struct {
	now func() time.Time
	loc *time.Location
}

// New returns a Normalizer. A nil clock means time.Now; a nil location
// means time.Local.
func New(now func() time.Time, loc *time.Location) *Normalizer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{now: now, loc: loc}
}

// Default uses the wall clock in the local time zone.
var Default = New(nil, nil)

// ParseDate parses text with the Default normalizer.
func ParseDate(text string) (time.Time, error) {
	return Default.ParseDate(text)
}

// ParseDateTime parses text with the Default normalizer.
func ParseDateTime(text string) (time.Time, error) {
	return Default.ParseDateTime(text)
}

// ParseDate returns the calendar date (at midnight) that text denotes.
func (n *Normalizer) ParseDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if t, ok := n.match(dateLayouts, s); ok {
		return t, nil
	}
	return time.Time{}, &FormatError{Input: text}
}

// ParseDateTime returns the date and time text denotes. Time-bearing
// layouts are tried first; a bare date falls back to midnight.
func (n *Normalizer) ParseDateTime(text string) (time.Time, error) {
	s := upperMeridiem(strings.TrimSpace(text))
	if t, ok := n.match(dateTimeLayouts, s); ok {
		return t, nil
	}
	if t, ok := n.match(dateLayouts, s); ok {
		return t, nil
	}
	return time.Time{}, &FormatError{Input: text, WantTime: true}
}

func (n *Normalizer) match(layouts []layout, s string) (time.Time, bool) {
	for _, l := range layouts {
		t, err := time.ParseInLocation(l.value, s, n.loc)
		if err != nil {
			continue
		}
		return n.adjustYear(t, l), true
	}
	return time.Time{}, false
}

func (n *Normalizer) adjustYear(t time.Time, l layout) time.Time {
	year := t.Year()
	switch {
	case l.noYear:
		year = n.now().In(n.loc).Year()
	case l.shortYear && year < 2000:
		year += 100
	default:
		return t
	}
	day := t.Day()
	if last := daysIn(t.Month(), year); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), 0, 0, n.loc)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// upperMeridiem lets "6pm" match the "3PM" layouts.
func upperMeridiem(s string) string {
	if len(s) < 2 {
		return s
	}
	suffix := strings.ToUpper(s[len(s)-2:])
	if suffix == "AM" || suffix == "PM" {
		return s[:len(s)-2] + suffix
	}
	return s
}

// FormatDate renders a date in canonical form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime renders a date-time in canonical form.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// DisplayDateTime renders a date-time for people, e.g. "2019-10-15 6PM"
// or "2019-10-15 6:30PM".
func DisplayDateTime(t time.Time) string {
	if t.Minute() == 0 {
		return t.Format("2006-01-02 3PM")
	}
	return t.Format("2006-01-02 3:04PM")
}
