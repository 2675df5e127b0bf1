package cryptotax

import "testing"

func TestDetectWashSale(t *testing.T) {
	sale := newTx("sell", 100, Sell, "BTC", 1, 20000, 15000)
	testCases := []struct {
		name     string
		txs      []Transaction
		wantOK   bool
		wantID   string
		wantDays int
	}{
		{
			name:     "30 days after",
			txs:      []Transaction{sale, newTx("rebuy", 130, Buy, "BTC", 1, 100, 100)},
			wantOK:   true,
			wantID:   "rebuy",
			wantDays: 30,
		},
		{
			name: "31 days after",
			txs:  []Transaction{sale, newTx("rebuy", 131, Buy, "BTC", 1, 100, 100)},
		},
		{
			name: "same day",
			txs:  []Transaction{sale, newTx("rebuy", 100, Buy, "BTC", 1, 100, 100)},
		},
		{
			name:     "before the sale",
			txs:      []Transaction{newTx("prebuy", 80, Buy, "BTC", 1, 100, 100), sale},
			wantOK:   true,
			wantID:   "prebuy",
			wantDays: 20,
		},
		{
			name: "another asset",
			txs:  []Transaction{sale, newTx("rebuy", 110, Buy, "ETH", 1, 100, 100)},
		},
		{
			name: "not a buy",
			txs:  []Transaction{sale, newTx("drop", 110, Airdrop, "BTC", 1, 0, 100)},
		},
		{
			name: "first match in list order",
			txs: []Transaction{
				sale,
				newTx("far", 125, Buy, "BTC", 1, 100, 100),
				newTx("near", 101, Buy, "BTC", 1, 100, 100),
			},
			wantOK:   true,
			wantID:   "far",
			wantDays: 25,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ws, ok := DetectWashSale(sale, tc.txs, DefaultWashSaleWindow)
			if ok != tc.wantOK {
				t.Fatalf("DetectWashSale() ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if ws.Repurchase.ID != tc.wantID || ws.DaysApart != tc.wantDays {
				t.Errorf("DetectWashSale() = %s %d days, want %s %d days", ws.Repurchase.ID, ws.DaysApart, tc.wantID, tc.wantDays)
			}
			if !ws.DisallowedLoss.Equal(USD(5000)) {
				t.Errorf("DisallowedLoss = %v, want %v", ws.DisallowedLoss, USD(5000))
			}
		})
	}
}
