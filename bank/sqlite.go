package bank

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore answers the same queries as MemoryStore from a SQLite database,
// for datasets too large to hold comfortably in memory or already shared with
// other tooling. The dataset is loaded once (ImportCSV or Insert) and treated
// as read-only afterwards.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens/creates the database at dbPath and ensures the schema.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		cust_id TEXT NOT NULL,
		dr_cr_indctor TEXT NOT NULL,
		tran_date TEXT NOT NULL,
		tran_amt_in_ac REAL NOT NULL,
		tran_type TEXT,
		category_of_txn TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_txn_cust ON transactions(cust_id, dr_cr_indctor);
	CREATE INDEX IF NOT EXISTS idx_txn_cust_cat ON transactions(cust_id, category_of_txn);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert bulk-loads transactions inside one database transaction.
func (s *SQLiteStore) Insert(txns []Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO transactions (
		cust_id, dr_cr_indctor, tran_date, tran_amt_in_ac, tran_type, category_of_txn
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, t := range txns {
		if _, err := stmt.Exec(t.CustomerID, t.Indicator, t.Date, t.Amount, t.Mode, t.Category); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ImportCSV loads the CSV at path into the database, replacing any rows from
// a previous import.
func (s *SQLiteStore) ImportCSV(path string) error {
	txns, err := LoadCSV(path)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return s.Insert(txns)
}

// Count reports the number of rows loaded.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) TotalSpending(ctx context.Context, customerID string) (float64, error) {
	return s.sumIndicator(ctx, customerID, Debit)
}

func (s *SQLiteStore) TotalIncome(ctx context.Context, customerID string) (float64, error) {
	return s.sumIndicator(ctx, customerID, Credit)
}

func (s *SQLiteStore) sumIndicator(ctx context.Context, customerID, indicator string) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(tran_amt_in_ac), 0)
		FROM transactions WHERE cust_id = ? AND dr_cr_indctor = ?`,
		customerID, indicator).Scan(&total)
	return total, err
}

func (s *SQLiteStore) SpendingByCategory(ctx context.Context, customerID, category string) (float64, int, error) {
	var total float64
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(tran_amt_in_ac), 0), COUNT(*)
		FROM transactions
		WHERE cust_id = ? AND dr_cr_indctor = ? AND category_of_txn = ? COLLATE NOCASE`,
		customerID, Debit, category).Scan(&total, &count)
	return total, count, err
}

func (s *SQLiteStore) TopCategories(ctx context.Context, customerID string, n int) ([]CategoryTotal, error) {
	if n <= 0 {
		n = -1 // no limit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT category_of_txn, SUM(tran_amt_in_ac) AS total
		FROM transactions
		WHERE cust_id = ? AND dr_cr_indctor = ?
		GROUP BY category_of_txn
		ORDER BY total DESC, category_of_txn ASC
		LIMIT ?`,
		customerID, Debit, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ranked []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, err
		}
		ranked = append(ranked, ct)
	}
	return ranked, rows.Err()
}

func (s *SQLiteStore) SpendingInRange(ctx context.Context, customerID, start, end string) (float64, int, error) {
	var total float64
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(tran_amt_in_ac), 0), COUNT(*)
		FROM transactions
		WHERE cust_id = ? AND dr_cr_indctor = ? AND tran_date >= ? AND tran_date <= ?`,
		customerID, Debit, start, end).Scan(&total, &count)
	return total, count, err
}

func (s *SQLiteStore) Customers(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT cust_id FROM transactions ORDER BY cust_id`)
}

func (s *SQLiteStore) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT category_of_txn FROM transactions
		WHERE category_of_txn <> '' ORDER BY category_of_txn`)
}

func (s *SQLiteStore) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
