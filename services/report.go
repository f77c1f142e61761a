package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gsadvantage-scraper/models"
)

// RunReport holds summary statistics computed from the crawl's output
type RunReport struct {
	TermsSearched       int
	TermsWithRecords    int
	TotalRecords        int
	DistinctContractors int
	DistinctContracts   int
	MinPrice            float64
	MaxPrice            float64
	AveragePrice        float64
	Cheapest            *models.PriceRecord
	RecordsByTerm       map[string]int
}

// GenerateRunReport computes crawl statistics from the emitted records
func GenerateRunReport(partNumbers []string, records []*models.PriceRecord) *RunReport {
	report := &RunReport{
		TermsSearched: len(partNumbers),
		RecordsByTerm: make(map[string]int),
	}

	contractors := make(map[string]bool)
	contracts := make(map[string]bool)

	var totalPrice float64
	priced := 0
	for _, r := range records {
		report.TotalRecords++
		report.RecordsByTerm[r.SearchedPartNumber]++
		if r.ContractorName != "" {
			contractors[r.ContractorName] = true
		}
		if r.ContractNumber != "" {
			contracts[r.ContractNumber] = true
		}

		price, err := parsePrice(r.Price)
		if err != nil || price <= 0 {
			continue
		}
		totalPrice += price
		priced++
		if report.MinPrice == 0 || price < report.MinPrice {
			report.MinPrice = price
			report.Cheapest = r
		}
		if price > report.MaxPrice {
			report.MaxPrice = price
		}
	}

	report.TermsWithRecords = len(report.RecordsByTerm)
	report.DistinctContractors = len(contractors)
	report.DistinctContracts = len(contracts)
	if priced > 0 {
		report.AveragePrice = totalPrice / float64(priced)
	}
	return report
}

// parsePrice converts an extracted price string like "1,045.99" to a float
func parsePrice(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// PrintRunReport formats and prints the run report to terminal
func PrintRunReport(report *RunReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("GSA ADVANTAGE PRICE CRAWL SUMMARY ", 55))
	fmt.Printf("╚%s╝\n", border)

	fmt.Printf("\n OVERVIEW\n%s\n", thin)
	fmt.Printf("  Part Numbers Searched   : %d\n", report.TermsSearched)
	fmt.Printf("  Part Numbers w/ Records : %d\n", report.TermsWithRecords)
	fmt.Printf("  Price Records Extracted : %d\n", report.TotalRecords)
	fmt.Printf("  Distinct Contractors    : %d\n", report.DistinctContractors)
	fmt.Printf("  Distinct Contracts      : %d\n", report.DistinctContracts)
	fmt.Printf("  Minimum Price           : $%.2f\n", report.MinPrice)
	fmt.Printf("  Maximum Price           : $%.2f\n", report.MaxPrice)
	fmt.Printf("  Average Price           : $%.2f\n", report.AveragePrice)

	if report.Cheapest != nil {
		fmt.Printf("\n BEST OFFER\n%s\n", thin)
		fmt.Printf("  Part Number : %s\n", report.Cheapest.SearchedPartNumber)
		fmt.Printf("  Contractor  : %s\n", report.Cheapest.ContractorName)
		fmt.Printf("  Contract    : %s\n", report.Cheapest.ContractNumber)
		fmt.Printf("  Price       : $%s\n", report.Cheapest.Price)
		fmt.Printf("  URL         : %s\n", report.Cheapest.URL)
	}

	if len(report.RecordsByTerm) > 0 {
		fmt.Printf("\n RECORDS PER PART NUMBER\n%s\n", thin)
		type termCount struct {
			term  string
			count int
		}
		var terms []termCount
		for term, cnt := range report.RecordsByTerm {
			terms = append(terms, termCount{term, cnt})
		}
		sort.Slice(terms, func(i, j int) bool {
			return terms[i].count > terms[j].count
		})
		for _, tc := range terms {
			bar := strings.Repeat("▓", tc.count)
			fmt.Printf("  %-25s %3d  %s\n", tc.term+":", tc.count, bar)
		}
	}

	fmt.Printf("\n%s\n\n", border)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}
