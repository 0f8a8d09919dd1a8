package adapter

import "time"

type dateState uint8

const (
	dateEmpty dateState = iota
	dateValid
	dateInvalid
)

// Date is an edited value. The zero Date is empty; a Date composed from
// sections that do not form a real calendar date is invalid.
type Date struct {
	t     time.Time
	state dateState
}

func DateOf(t time.Time) Date {
	return Date{t: t, state: dateValid}
}

func InvalidDate() Date {
	return Date{state: dateInvalid}
}

func (d Date) IsEmpty() bool   { return d.state == dateEmpty }
func (d Date) IsValid() bool   { return d.state == dateValid }
func (d Date) IsInvalid() bool { return d.state == dateInvalid }

// Time returns the underlying time. It is the zero time unless d is valid.
func (d Date) Time() time.Time { return d.t }

func (d Date) Equal(o Date) bool {
	if d.state != o.state {
		return false
	}
	if d.state != dateValid {
		return true
	}
	return d.t.Equal(o.t)
}

func (d Date) String() string {
	switch d.state {
	case dateEmpty:
		return ""
	case dateInvalid:
		return "Invalid Date"
	}
	return d.t.Format("2006-01-02T15:04:05")
}
