package cryptotax

import (
	"slices"

	"github.com/etnz/cryptotax/date"
)

// lot is a surviving quantity of an acquisition, used for cost basis calculations.
type lot struct {
	origin    Transaction
	costBasis Money    // Total cost of the origin (the FMV for income kinds).
	remaining Quantity // Not yet consumed by disposals.
}

func newLot(origin Transaction) *lot {
	l := &lot{origin: origin, costBasis: origin.CostBasis, remaining: origin.Amount}
	if origin.Kind.IsIncome() {
		l.costBasis = origin.FairMarketValue
	}
	return l
}

func (l *lot) openDate() date.Date { return l.origin.Date }
func (l *lot) amount() Quantity    { return l.origin.Amount }

// costOf returns the share of the lot cost basis for quantity q.
func (l *lot) costOf(q Quantity) Money {
	return l.costBasis.Mul(q).Div(l.amount())
}

// remainingCost returns the cost basis of the unconsumed part of the lot.
func (l *lot) remainingCost() Money {
	return l.costOf(l.remaining)
}

// lots holds the open lots of one asset in acquisition order.
type lots []*lot

// selection returns the lots in the order they must be consumed by a
// disposal. Lots themselves are shared with the receiver.
func (l lots) selection(method CostBasisMethod) lots {
	selected := slices.Clone(l)
	switch method {
	case LIFO:
		slices.Reverse(selected)
	case HIFO:
		// Ordered by the lot total cost basis, not its per-unit cost.
		slices.SortStableFunc(selected, func(a, b *lot) int {
			return b.costBasis.Decimal().Cmp(a.costBasis.Decimal())
		})
	}
	return selected
}

// open returns the lots that still hold a positive quantity, in acquisition order.
func (l lots) open() lots {
	return slices.DeleteFunc(slices.Clone(l), func(x *lot) bool { return !x.remaining.IsPositive() })
}

// quantity returns the total remaining quantity.
func (l lots) quantity() Quantity {
	var total Quantity
	for _, x := range l {
		total = total.Add(x.remaining)
	}
	return total
}

// cost returns the total cost basis of the remaining quantities.
func (l lots) cost(currency string) Money {
	total := M(0, currency)
	for _, x := range l {
		total = total.Add(x.remainingCost())
	}
	return total
}
