package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gsadvantage-scraper/models"
	"gsadvantage-scraper/utils"
)

var csvHeader = []string{
	"searched_part_number", "displayed_part_number", "mfr_part_number",
	"contractor_part_number", "manufacturer", "product_name", "price",
	"unit", "contractor_name", "contract_number", "url", "scraped_at",
}

// CSVWriter streams price records to a CSV file, one row per record. The file
// is created lazily on the first record so an empty run leaves no file behind.
type CSVWriter struct {
	filePath string
	logger   *utils.Logger

	file   *os.File
	writer *csv.Writer
	rows   int
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// Write appends one record and flushes, so partial output survives a crash
func (w *CSVWriter) Write(record *models.PriceRecord) error {
	if w.writer == nil {
		if err := w.open(); err != nil {
			return err
		}
	}

	row := []string{
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
		record.ScrapedAt.Format(time.RFC3339),
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	w.rows++
	return nil
}

func (w *CSVWriter) open() error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	w.file = file
	w.writer = writer
	return nil
}

// Close flushes and closes the underlying file
func (w *CSVWriter) Close() error {
	if w.writer == nil {
		return nil
	}
	w.writer.Flush()
	flushErr := w.writer.Error()
	closeErr := w.file.Close()
	w.writer = nil
	w.logger.Info("Price records written to: %s (%d rows)", w.filePath, w.rows)
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
