package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange return the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// TaxYear returns the calendar year range.
func TaxYear(year int) Range {
	return Range{From: New(year, time.January, 1), To: New(year, time.December, 31)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Period returns the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Yearly, false
	}
}

// Name the period range
func (r Range) Name() string {
	p, ok := r.Period()
	if ok {
		return p.String()
	}
	return "special"
}

// Identifier returns a short name for the range: "2024", "2024-Q3", "2024-07",
// or "from_to" for non standard ranges.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	default:
		return r.From.Format("2006")
	}
}

func (r Range) String() string { return fmt.Sprintf("%s to %s", r.From, r.To) }
