package cryptotax

// DefaultWashSaleWindow is the number of days on each side of a loss sale
// during which a repurchase makes it a wash sale.
const DefaultWashSaleWindow = 30

// DetectWashSale scans all transactions, in order, for the first Buy of the
// same asset at most windowDays away from the sale, excluding the sale day.
//
// The first match in list order wins even when a later Buy is closer in time.
// The disallowed loss is computed from the sale transaction's own cost basis
// and fair market value, not from the lots it consumed.
func DetectWashSale(sale Transaction, all []Transaction, windowDays int) (WashSale, bool) {
	for _, tx := range all {
		if tx.Kind != Buy || tx.Asset != sale.Asset {
			continue
		}
		days := tx.Date.DaysSince(sale.Date)
		if days < 0 {
			days = -days
		}
		if days == 0 || days > windowDays {
			continue
		}
		return WashSale{
			OriginalSale:   sale,
			Repurchase:     tx,
			DisallowedLoss: sale.CostBasis.Sub(sale.FairMarketValue),
			DaysApart:      days,
		}, true
	}
	return WashSale{}, false
}
