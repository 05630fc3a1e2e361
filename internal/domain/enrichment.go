package domain

import "time"

// EnrichmentResult is the per-INN outcome of a matching batch. Results are
// constructed per query and never persisted by the engine itself.
type EnrichmentResult struct {
	INN          string
	Valid        bool // structurally well-formed INN
	Found        bool
	RegionCode   string
	RegionName   string
	Category     Category
	SnapshotDate time.Time
}

// EnrichmentFromRecord builds a found result carrying the store's current
// attributes and the snapshot date they came from.
func EnrichmentFromRecord(inn string, record RegistryRecord) EnrichmentResult {
	return EnrichmentResult{
		INN:          inn,
		Valid:        true,
		Found:        true,
		RegionCode:   record.RegionCode,
		RegionName:   record.RegionName,
		Category:     record.Category,
		SnapshotDate: record.SnapshotDate,
	}
}
