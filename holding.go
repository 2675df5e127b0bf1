package cryptotax

// holdings summarizes the open lots of every asset still held, in order of
// first acquisition.
func (c *calculation) holdings() []Holding {
	cur := c.Config.Currency
	var holdings []Holding
	for _, asset := range c.assets {
		pool := c.pools[asset]
		qty := pool.quantity()
		if !qty.IsPositive() {
			continue
		}
		cost := pool.cost(cur)
		avg := cost.Div(qty)
		price, ok := c.lastPrice(asset)
		if !ok {
			price = avg
		}
		value := price.Mul(qty)
		holdings = append(holdings, Holding{
			Asset:              asset,
			Quantity:           qty,
			CostBasis:          cost,
			AverageCostBasis:   avg,
			CurrentPrice:       price,
			CurrentValue:       value,
			UnrealizedGainLoss: value.Sub(cost),
		})
	}
	return holdings
}

// lastPrice returns the unit price of the last processed transaction of
// asset. It is an estimate from the ledger, not a market quote.
func (c *calculation) lastPrice(asset string) (Money, bool) {
	txs := c.report.Transactions
	for i := len(txs) - 1; i >= 0; i-- {
		if txs[i].Asset != asset {
			continue
		}
		if price, ok := txs[i].UnitPrice(); ok {
			return price, true
		}
	}
	return Money{}, false
}
