package services

import (
	"testing"

	"gsadvantage-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(term, price, contractor, contract string) *models.PriceRecord {
	return &models.PriceRecord{
		SearchedPartNumber: term,
		Price:              price,
		ContractorName:     contractor,
		ContractNumber:     contract,
	}
}

func TestGenerateRunReport(t *testing.T) {
	terms := []string{"BR32CCP07", "UNCBR32CCP07", "NOHITS"}
	records := []*models.PriceRecord{
		record("BR32CCP07", "50.00", "ACME SUPPLY CO", "GS-35F-402GA"),
		record("BR32CCP07", "75.25", "BOLT DEPOT", "GS-07F-111AA"),
		record("BR32CCP07", "1,045.99", "ACME SUPPLY CO", "GS-35F-402GA"),
		record("UNCBR32CCP07", "9.99", "", ""),
	}

	report := GenerateRunReport(terms, records)

	assert.Equal(t, 3, report.TermsSearched)
	assert.Equal(t, 2, report.TermsWithRecords)
	assert.Equal(t, 4, report.TotalRecords)
	assert.Equal(t, 2, report.DistinctContractors)
	assert.Equal(t, 2, report.DistinctContracts)
	assert.InDelta(t, 9.99, report.MinPrice, 0.001)
	assert.InDelta(t, 1045.99, report.MaxPrice, 0.001)
	assert.InDelta(t, (50.00+75.25+1045.99+9.99)/4, report.AveragePrice, 0.001)
	require.NotNil(t, report.Cheapest)
	assert.Equal(t, "UNCBR32CCP07", report.Cheapest.SearchedPartNumber)
	assert.Equal(t, 3, report.RecordsByTerm["BR32CCP07"])
}

func TestGenerateRunReportEmpty(t *testing.T) {
	report := GenerateRunReport([]string{"BR32CCP07"}, nil)
	assert.Equal(t, 1, report.TermsSearched)
	assert.Zero(t, report.TotalRecords)
	assert.Zero(t, report.AveragePrice)
	assert.Nil(t, report.Cheapest)
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"50.00", 50.00, true},
		{"1,045.99", 1045.99, true},
		{" 75.25 ", 75.25, true},
		{"", 0, false},
		{"call for quote", 0, false},
	}
	for _, tc := range testCases {
		got, err := parsePrice(tc.raw)
		if tc.ok {
			assert.NoError(t, err, tc.raw)
			assert.InDelta(t, tc.want, got, 0.001, tc.raw)
		} else {
			assert.Error(t, err, tc.raw)
		}
	}
}
