package storage

import (
	"database/sql"
	"fmt"
	"time"

	"gsadvantage-scraper/models"
	"gsadvantage-scraper/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter stores price records in PostgreSQL as they stream in
type PostgresWriter struct {
	db       *sql.DB
	logger   *utils.Logger
	inserted int
	written  int
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the price_records table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS price_records (
		id                     SERIAL PRIMARY KEY,
		searched_part_number   VARCHAR(100) NOT NULL,
		displayed_part_number  VARCHAR(100),
		mfr_part_number        TEXT,
		contractor_part_number TEXT,
		manufacturer           TEXT,
		product_name           TEXT,
		price                  VARCHAR(50) NOT NULL,
		unit                   VARCHAR(50),
		contractor_name        TEXT,
		contract_number        VARCHAR(100),
		url                    TEXT,
		scraped_at             TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (searched_part_number, url, contract_number, price)
	);

	CREATE INDEX IF NOT EXISTS idx_price_records_searched ON price_records (searched_part_number);
	CREATE INDEX IF NOT EXISTS idx_price_records_contract ON price_records (contract_number);
	CREATE INDEX IF NOT EXISTS idx_price_records_mfr      ON price_records (manufacturer);
	`
	_, err := w.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info("Table 'price_records' is ready")
	return nil
}

// Write inserts one record, skipping rows already stored by a previous run
func (w *PostgresWriter) Write(record *models.PriceRecord) error {
	w.written++
	result, err := w.db.Exec(`
		INSERT INTO price_records (
			searched_part_number, displayed_part_number, mfr_part_number,
			contractor_part_number, manufacturer, product_name, price,
			unit, contractor_name, contract_number, url, scraped_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (searched_part_number, url, contract_number, price) DO NOTHING
	`,
		record.SearchedPartNumber,
		record.DisplayedPartNumber,
		record.MfrPartNumber,
		record.ContractorPartNumber,
		record.Manufacturer,
		record.ProductName,
		record.Price,
		record.Unit,
		record.ContractorName,
		record.ContractNumber,
		record.URL,
		record.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record for '%s': %w", record.SearchedPartNumber, err)
	}
	if n, err := result.RowsAffected(); err == nil {
		w.inserted += int(n)
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db == nil {
		return nil
	}
	w.logger.Info("Inserted %d/%d records into PostgreSQL", w.inserted, w.written)
	return w.db.Close()
}
