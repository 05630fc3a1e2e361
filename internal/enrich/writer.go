package enrich

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rmsp-tools/registry/internal/domain"
)

// ReportStats summarizes a written enrichment report.
type ReportStats struct {
	Processed int
	Found     int
	NotFound  int
}

var reportHeader = []string{"ИНН", "В реестре", "Код региона", "Регион", "Категория", "Дата сведений"}

const reportDateLayout = "02.01.2006"

// WriteReport writes enrichment results as a semicolon-delimited CSV, one
// row per input INN in input order.
func WriteReport(path string, results []domain.EnrichmentResult) (ReportStats, error) {
	var stats ReportStats

	file, err := os.Create(path)
	if err != nil {
		return stats, fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	if err := writer.Write(reportHeader); err != nil {
		return stats, fmt.Errorf("failed to write report header: %w", err)
	}

	for _, result := range results {
		row := reportRow(result)
		if err := writer.Write(row); err != nil {
			return stats, fmt.Errorf("failed to write report row: %w", err)
		}
		stats.Processed++
		if result.Found {
			stats.Found++
		} else {
			stats.NotFound++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return stats, fmt.Errorf("failed to flush report: %w", err)
	}
	if err := file.Close(); err != nil {
		return stats, fmt.Errorf("failed to close report: %w", err)
	}
	return stats, nil
}

func reportRow(result domain.EnrichmentResult) []string {
	found := "Нет"
	if result.Found {
		found = "Да"
	}
	date := ""
	if !result.SnapshotDate.IsZero() {
		date = result.SnapshotDate.Format(reportDateLayout)
	}
	return []string{
		result.INN,
		found,
		result.RegionCode,
		result.RegionName,
		string(result.Category),
		date,
	}
}
