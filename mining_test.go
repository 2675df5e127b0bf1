package cryptotax

import "testing"

func TestCalculateMiningIncome(t *testing.T) {
	blocks := []MinedBlock{
		{Date: day(0), Asset: "BTC", CoinsMined: Q(0.1), UnitValue: USD(50000), Expenses: USD(1000)},
		{Date: day(30), Asset: "BTC", CoinsMined: Q(0.2), UnitValue: USD(40000), Expenses: USD(2000)},
	}
	got := CalculateMiningIncome(blocks, DefaultConfig())
	testCases := []struct {
		name string
		got  Money
		want Money
	}{
		{"gross", got.GrossIncome, USD(13000)},
		{"expenses", got.Expenses, USD(3000)},
		{"net", got.NetIncome, USD(10000)},
		{"self employment tax", got.SelfEmploymentTax, USD(1412.955)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.Equal(tc.want) {
				t.Errorf("CalculateMiningIncome() %s = %v, want %v", tc.name, tc.got.Decimal(), tc.want.Decimal())
			}
		})
	}
}

func TestCalculateMiningIncome_Empty(t *testing.T) {
	got := CalculateMiningIncome(nil, DefaultConfig())
	if !got.NetIncome.IsZero() || !got.SelfEmploymentTax.IsZero() {
		t.Errorf("CalculateMiningIncome(nil) = %+v, want zero", got)
	}
}
