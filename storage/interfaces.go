package storage

import (
	"errors"

	"gsadvantage-scraper/models"
)

// RecordSink receives extracted price records one at a time, as they are
// produced by the crawl
type RecordSink interface {
	Write(record *models.PriceRecord) error
	Close() error
}

// MultiSink fans each record out to every configured sink. A failing sink
// does not stop delivery to the others.
type MultiSink []RecordSink

func (m MultiSink) Write(record *models.PriceRecord) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Write(record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Close() error {
	var errs []error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
