// Package bank holds the transaction dataset the agent's tools query: the
// record type, CSV reading/writing, and read-only stores backed by memory or
// SQLite.
package bank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Debit/credit indicator values in the dr_cr_indctor column.
const (
	Debit  = "DR"
	Credit = "CR"
)

// Transaction is one row of the dataset. Dates stay in their YYYY-MM-DD wire
// form; lexical order equals chronological order, so range queries compare
// strings directly.
type Transaction struct {
	CustomerID string  // cust_id
	Indicator  string  // dr_cr_indctor: DR or CR
	Date       string  // tran_date, YYYY-MM-DD
	Amount     float64 // tran_amt_in_ac
	Mode       string  // tran_type: UPI, CARD, NEFT, ...
	Category   string  // category_of_txn
}

var csvHeader = []string{"cust_id", "dr_cr_indctor", "tran_date", "tran_amt_in_ac", "tran_type", "category_of_txn"}

// ReadCSV parses transactions from r. The header row is required and columns
// are matched by name, so column order in the file does not matter.
func ReadCSV(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range csvHeader {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %s", col)
		}
	}

	var txns []Transaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := strconv.ParseFloat(record[idx["tran_amt_in_ac"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad amount %q: %w", line, record[idx["tran_amt_in_ac"]], err)
		}
		txns = append(txns, Transaction{
			CustomerID: record[idx["cust_id"]],
			Indicator:  record[idx["dr_cr_indctor"]],
			Date:       record[idx["tran_date"]],
			Amount:     amount,
			Mode:       record[idx["tran_type"]],
			Category:   record[idx["category_of_txn"]],
		})
	}
	return txns, nil
}

// LoadCSV reads transactions from the file at path.
func LoadCSV(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	txns, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txns, nil
}

// WriteCSV writes transactions to w with the standard header.
func WriteCSV(w io.Writer, txns []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range txns {
		record := []string{
			t.CustomerID,
			t.Indicator,
			t.Date,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Mode,
			t.Category,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes transactions to the file at path, creating or truncating it.
func SaveCSV(path string, txns []Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	if err := WriteCSV(f, txns); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
