package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a tax reporting period.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Yearly, fmt.Errorf("unknown period %s", p)
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Monthly:
		return New(d.Year(), d.Month(), 1)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return New(d.Year(), time.Month(quarter*3+1), 1)
	case Yearly:
		return New(d.Year(), time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Monthly:
		return New(d.Year(), d.Month()+1, 0)
	case Quarterly:
		quarter := (d.Month() - 1) / 3        // in [0..3]
		endMonth := time.Month(quarter*3 + 3) // in [1..12]
		return New(d.Year(), endMonth+1, 0)   // last is next month on the day 0
	case Yearly:
		return New(d.Year()+1, time.January, 0)
	default:
		panic("unknown period")
	}
}
