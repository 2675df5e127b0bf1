package cryptotax

import "github.com/etnz/cryptotax/date"

// NFTSale is the sale of a non fungible token.
type NFTSale struct {
	Name         string
	PurchaseDate date.Date
	SaleDate     date.Date
	CostBasis    Money
	SalePrice    Money
	Collectible  bool
}

// Gain returns the sale price minus the cost basis.
func (s NFTSale) Gain() Money { return s.SalePrice.Sub(s.CostBasis) }

// NFTTax summarizes the tax on NFT sales.
type NFTTax struct {
	TotalGains       Money
	CollectibleGains Money // Long-term gains on collectibles.
	RegularGains     Money
	CollectibleTax   Money
	RegularTax       Money
}

// CalculateNFTTax taxes long-term gains on collectibles at the collectible
// rate and every other gain at the regular rate of cfg.
func CalculateNFTTax(sales []NFTSale, cfg Config) NFTTax {
	tax := NFTTax{
		CollectibleGains: M(0, cfg.Currency),
		RegularGains:     M(0, cfg.Currency),
	}
	for _, s := range sales {
		longTerm := s.SaleDate.DaysSince(s.PurchaseDate) > cfg.LongTermDays
		if s.Collectible && longTerm {
			tax.CollectibleGains = tax.CollectibleGains.Add(s.Gain())
		} else {
			tax.RegularGains = tax.RegularGains.Add(s.Gain())
		}
	}
	tax.TotalGains = tax.CollectibleGains.Add(tax.RegularGains)
	tax.CollectibleTax = tax.CollectibleGains.Scale(cfg.Rates.Collectible)
	tax.RegularTax = tax.RegularGains.Scale(cfg.Rates.NFTRegular)
	return tax
}

// Total returns the sum of collectible and regular taxes.
func (t NFTTax) Total() Money { return t.CollectibleTax.Add(t.RegularTax) }

// MarshalJSON implements the json.Marshaler interface for NFTTax.
func (t NFTTax) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("total_gains", t.TotalGains)
	w.Append("collectible_gains", t.CollectibleGains)
	w.Append("regular_gains", t.RegularGains)
	w.Append("collectible_tax", t.CollectibleTax)
	w.Append("regular_tax", t.RegularTax)
	return w.MarshalJSON()
}
