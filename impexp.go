package cryptotax

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/cryptotax/date"
	"github.com/google/uuid"
)

// this file contains functions to handle the CSV and JSONL import/export formats.
// CSV columns are located by their header name so that exchange exports can be
// used after renaming their headers.

// TransactionHeader lists the columns of the transaction CSV format. The
// description and id columns are optional on import.
var TransactionHeader = []string{"date", "type", "asset", "amount", "cost_basis", "fair_market_value", "exchange", "description", "id"}

// GainsHeader lists the columns written by ExportGainsCSV.
var GainsHeader = []string{"sale_date", "asset", "amount", "lot_date", "proceeds", "cost_basis", "gain", "term", "sale_id", "lot_id"}

// MiningHeader lists the columns read by ImportMiningCSV.
var MiningHeader = []string{"date", "asset", "coins_mined", "fmv_per_coin", "expenses"}

// NFTHeader lists the columns read by ImportNFTCSV.
var NFTHeader = []string{"name", "purchase_date", "sale_date", "cost_basis", "sale_price", "collectible"}

// csvNamespace scopes the ids generated for transactions without one.
var csvNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/etnz/cryptotax/csv"))

// csvTable reads records and gives access to their fields by column name.
type csvTable struct {
	r       *csv.Reader
	source  string
	columns map[string]int
	record  []string
	line    int
}

func newCSVTable(r io.Reader, source string, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: missing header", source)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	t := &csvTable{r: cr, source: source, columns: make(map[string]int)}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := t.columns[name]; dup {
			return nil, fmt.Errorf("%s:1: duplicate column %q", source, name)
		}
		t.columns[name] = i
	}
	var missing []string
	for _, name := range required {
		if !t.has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s:1: missing columns %s", source, strings.Join(missing, ", "))
	}
	return t, nil
}

// next reads the next record. It returns false at the end of the input.
func (t *csvTable) next() (bool, error) {
	record, err := t.r.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", t.source, err)
	}
	t.record = record
	t.line, _ = t.r.FieldPos(0)
	return true, nil
}

func (t *csvTable) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

// str returns the trimmed field of col, or "" when the column or the field is missing.
func (t *csvTable) str(col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(t.record) {
		return ""
	}
	return strings.TrimSpace(t.record[i])
}

func (t *csvTable) errorf(col string, err error) error {
	return fmt.Errorf("%s:%d: column %q: %w", t.source, t.line, col, err)
}

func (t *csvTable) day(col string) (date.Date, error) {
	d, err := date.Parse(t.str(col))
	if err != nil {
		return date.Date{}, t.errorf(col, err)
	}
	return d, nil
}

func (t *csvTable) quantity(col string) (Quantity, error) {
	s := t.str(col)
	if s == "" {
		return Quantity{}, t.errorf(col, errors.New("value is missing"))
	}
	q, err := ParseQuantity(s)
	if err != nil {
		return Quantity{}, t.errorf(col, err)
	}
	return q, nil
}

// money parses col as an amount of currency. Empty fields are zero.
func (t *csvTable) money(col, currency string) (Money, error) {
	s := t.str(col)
	if s == "" {
		return M(0, currency), nil
	}
	m, err := ParseMoney(s, currency)
	if err != nil {
		return Money{}, t.errorf(col, err)
	}
	return m, nil
}

func (t *csvTable) flag(col string) (bool, error) {
	s := t.str(col)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, t.errorf(col, err)
	}
	return b, nil
}

// ImportCSV reads transactions from r. source names the input in error
// messages and seeds the ids generated for rows without one. Money values
// are in currency.
func ImportCSV(r io.Reader, source, currency string) ([]Transaction, error) {
	t, err := newCSVTable(r, source, "date", "type", "asset", "amount", "cost_basis", "fair_market_value")
	if err != nil {
		return nil, err
	}
	var txs []Transaction
	ids := make(map[string]int)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tx, err := t.transaction(currency)
		if err != nil {
			return nil, err
		}
		if line, dup := ids[tx.ID]; dup {
			return nil, t.errorf("id", fmt.Errorf("duplicate id %q, first used on line %d", tx.ID, line))
		}
		ids[tx.ID] = t.line
		txs = append(txs, tx)
	}
	return txs, nil
}

func (t *csvTable) transaction(currency string) (Transaction, error) {
	var tx Transaction
	var err error
	if tx.Date, err = t.day("date"); err != nil {
		return tx, err
	}
	if tx.Kind, err = ParseKind(t.str("type")); err != nil {
		return tx, t.errorf("type", err)
	}
	if tx.Asset = strings.ToUpper(t.str("asset")); tx.Asset == "" {
		return tx, t.errorf("asset", errors.New("value is missing"))
	}
	if tx.Amount, err = t.quantity("amount"); err != nil {
		return tx, err
	}
	if tx.CostBasis, err = t.money("cost_basis", currency); err != nil {
		return tx, err
	}
	if tx.FairMarketValue, err = t.money("fair_market_value", currency); err != nil {
		return tx, err
	}
	tx.Exchange = t.str("exchange")
	tx.Memo = t.str("description")
	tx.ID = t.str("id")
	if tx.ID == "" {
		tx.ID = uuid.NewSHA1(csvNamespace, []byte(fmt.Sprintf("%s:%d", t.source, t.line))).String()
	}
	if err := tx.Validate(); err != nil {
		return tx, fmt.Errorf("%s:%d: %w", t.source, t.line, err)
	}
	return tx, nil
}

// ExportCSV writes txs to w in the format read by ImportCSV.
func ExportCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TransactionHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.String(),
			tx.Kind.String(),
			tx.Asset,
			tx.Amount.String(),
			tx.CostBasis.Decimal().String(),
			tx.FairMarketValue.Decimal().String(),
			tx.Exchange,
			tx.Memo,
			tx.ID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write transaction %q: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportJSONL reads one JSON transaction per line, as written by ExportJSONL.
// Empty lines are skipped. Money values without a currency are in currency.
func ImportJSONL(r io.Reader, source, currency string) ([]Transaction, error) {
	var txs []Transaction
	ids := make(map[string]int)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, line, err)
		}
		tx = tx.inCurrency(currency)
		if tx.ID == "" {
			tx.ID = uuid.NewSHA1(csvNamespace, []byte(fmt.Sprintf("%s:%d", source, line))).String()
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, line, err)
		}
		if first, dup := ids[tx.ID]; dup {
			return nil, fmt.Errorf("%s:%d: duplicate id %q, first used on line %d", source, line, tx.ID, first)
		}
		ids[tx.ID] = line
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return txs, nil
}

// ExportJSONL writes one JSON transaction per line.
func ExportJSONL(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("cannot encode transaction %q: %w", tx.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write transaction %q: %w", tx.ID, err)
		}
	}
	return nil
}

// ExportGainsCSV writes one row per gain record.
func ExportGainsCSV(w io.Writer, gains []GainRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(GainsHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, g := range gains {
		record := []string{
			g.SaleDate.String(),
			g.Asset,
			g.Amount.String(),
			g.LotDate.String(),
			g.Proceeds.Decimal().StringFixed(2),
			g.CostBasis.Decimal().StringFixed(2),
			g.Gain.Decimal().StringFixed(2),
			g.Term.String(),
			g.SaleID,
			g.LotID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write gain of %q: %w", g.SaleID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportMiningCSV reads mined blocks from r.
func ImportMiningCSV(r io.Reader, source, currency string) ([]MinedBlock, error) {
	t, err := newCSVTable(r, source, "date", "coins_mined", "fmv_per_coin")
	if err != nil {
		return nil, err
	}
	var blocks []MinedBlock
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return blocks, nil
		}
		var b MinedBlock
		if b.Date, err = t.day("date"); err != nil {
			return nil, err
		}
		b.Asset = strings.ToUpper(t.str("asset"))
		if b.CoinsMined, err = t.quantity("coins_mined"); err != nil {
			return nil, err
		}
		if b.UnitValue, err = t.money("fmv_per_coin", currency); err != nil {
			return nil, err
		}
		if b.Expenses, err = t.money("expenses", currency); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// ImportNFTCSV reads NFT sales from r.
func ImportNFTCSV(r io.Reader, source, currency string) ([]NFTSale, error) {
	t, err := newCSVTable(r, source, "purchase_date", "sale_date", "cost_basis", "sale_price")
	if err != nil {
		return nil, err
	}
	var sales []NFTSale
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return sales, nil
		}
		s := NFTSale{Name: t.str("name")}
		if s.PurchaseDate, err = t.day("purchase_date"); err != nil {
			return nil, err
		}
		if s.SaleDate, err = t.day("sale_date"); err != nil {
			return nil, err
		}
		if s.CostBasis, err = t.money("cost_basis", currency); err != nil {
			return nil, err
		}
		if s.SalePrice, err = t.money("sale_price", currency); err != nil {
			return nil, err
		}
		if s.Collectible, err = t.flag("collectible"); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
}

// CSVTemplate returns an example transaction file.
func CSVTemplate() string {
	return `date,type,asset,amount,cost_basis,fair_market_value,exchange
2024-01-15,buy,BTC,0.5,20000,20000,Coinbase
2024-06-20,sell,BTC,0.5,20000,25000,Coinbase
`
}
