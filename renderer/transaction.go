package renderer

import (
	"fmt"

	"github.com/etnz/cryptotax"
)

// Transaction renders a transaction to a string.
func Transaction(tx cryptotax.Transaction) string {
	switch tx.Kind {
	case cryptotax.Buy:
		return fmt.Sprintf("Bought %s %s for %s", tx.Amount, tx.Asset, tx.CostBasis)
	case cryptotax.Sell:
		return fmt.Sprintf("Sold %s %s for %s", tx.Amount, tx.Asset, tx.FairMarketValue)
	case cryptotax.Trade:
		return fmt.Sprintf("Traded %s %s worth %s", tx.Amount, tx.Asset, tx.FairMarketValue)
	case cryptotax.Income, cryptotax.Stake, cryptotax.Airdrop:
		return fmt.Sprintf("Received %s %s (%s) worth %s", tx.Amount, tx.Asset, tx.Kind, tx.FairMarketValue)
	case cryptotax.Gift:
		return fmt.Sprintf("Gifted %s %s", tx.Amount, tx.Asset)
	default:
		return fmt.Sprintf("%s %s %s", tx.Kind, tx.Amount, tx.Asset)
	}
}
