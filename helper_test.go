package cryptotax

import (
	"time"

	"github.com/etnz/cryptotax/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day0 is the reference date of test scenarios.
var day0 = date.New(2023, time.January, 1)

// day returns the date n days after day0.
func day(n int) date.Date { return day0.Add(n) }

// newTx is a helper for test to create a USD transaction n days after day0.
func newTx(id string, n int, kind Kind, asset string, amount, costBasis, fmv float64) Transaction {
	return NewTransaction(id, day(n), kind, asset, amount, costBasis, fmv, "", "USD")
}

// must is a helper for test to unwrap a value or panic.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
