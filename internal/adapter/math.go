package adapter

import "time"

func DaysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func ClampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	max := DaysInMonth(y, m)
	if d > max {
		return max
	}
	return d
}

// Setters keep the wall clock and clamp the day of month instead of
// overflowing into the next month.

func SetYear(t time.Time, y int) time.Time {
	d := ClampDay(y, t.Month(), t.Day())
	return time.Date(y, t.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func SetMonth(t time.Time, m time.Month) time.Time {
	d := ClampDay(t.Year(), m, t.Day())
	return time.Date(t.Year(), m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func SetDay(t time.Time, d int) time.Time {
	d = ClampDay(t.Year(), t.Month(), d)
	return time.Date(t.Year(), t.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func SetHours(t time.Time, h int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), h, t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func SetMinutes(t time.Time, m int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), m, t.Second(), t.Nanosecond(), t.Location())
}

func SetSeconds(t time.Time, s int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), s, t.Nanosecond(), t.Location())
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddHours moves the wall clock, so DST transitions do not skip an hour.
func AddHours(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+n, t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

func StartOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func StartOfMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func StartOfSecond(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// StartOfWeek returns the first day of t's week in the adapter's locale.
func (a *Adapter) StartOfWeek(t time.Time) time.Time {
	diff := (int(t.Weekday()) - int(a.locale.WeekStart) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -diff)
}

// MergeDateAndTime returns the calendar day of date with the clock of clock.
func MergeDateAndTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), date.Location())
}

func SameYear(a, b time.Time) bool  { return a.Year() == b.Year() }
func SameMonth(a, b time.Time) bool { return SameYear(a, b) && a.Month() == b.Month() }
func SameDay(a, b time.Time) bool   { return SameMonth(a, b) && a.Day() == b.Day() }
func SameHour(a, b time.Time) bool  { return a.Hour() == b.Hour() }
func SameMinute(a, b time.Time) bool {
	return SameHour(a, b) && a.Minute() == b.Minute()
}
