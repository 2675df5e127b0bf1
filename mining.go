package cryptotax

import "github.com/etnz/cryptotax/date"

// MinedBlock is a mining reward and the expenses incurred to earn it.
type MinedBlock struct {
	Date       date.Date
	Asset      string
	CoinsMined Quantity
	UnitValue  Money // Fair market value of one coin when mined.
	Expenses   Money
}

// MiningIncome summarizes mining as self-employment income.
type MiningIncome struct {
	GrossIncome       Money
	Expenses          Money
	NetIncome         Money
	SelfEmploymentTax Money
}

// CalculateMiningIncome computes the mining income of blocks with the rates of cfg.
func CalculateMiningIncome(blocks []MinedBlock, cfg Config) MiningIncome {
	income := MiningIncome{
		GrossIncome: M(0, cfg.Currency),
		Expenses:    M(0, cfg.Currency),
	}
	for _, b := range blocks {
		income.GrossIncome = income.GrossIncome.Add(b.UnitValue.Mul(b.CoinsMined))
		income.Expenses = income.Expenses.Add(b.Expenses)
	}
	income.NetIncome = income.GrossIncome.Sub(income.Expenses)
	income.SelfEmploymentTax = income.NetIncome.Scale(cfg.Rates.SelfEmploymentBase).Scale(cfg.Rates.SelfEmployment)
	return income
}

// MarshalJSON implements the json.Marshaler interface for MiningIncome.
func (m MiningIncome) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("gross_income", m.GrossIncome)
	w.Append("expenses", m.Expenses)
	w.Append("net_income", m.NetIncome)
	w.Append("self_employment_tax", m.SelfEmploymentTax)
	return w.MarshalJSON()
}
