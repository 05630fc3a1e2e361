package registry

import (
	"strings"
	"time"

	"github.com/rmsp-tools/registry/internal/domain"
)

var snapshotDateLayouts = []string{
	"02.01.2006",
	"2006-01-02",
}

// Normalizer turns raw snapshot rows into canonical registry records. It is
// a pure function over its inputs; all schema drift is absorbed by the
// field-mapping profile it is given.
type Normalizer struct {
	regions RegionResolver
}

// NewNormalizer creates a normalizer. A nil resolver falls back to the
// canonical gazetteer strategy.
func NewNormalizer(regions RegionResolver) *Normalizer {
	if regions == nil {
		regions = NewGazetteerResolver()
	}
	return &Normalizer{regions: regions}
}

// Normalize maps one raw row through the profile. INN and category are
// mandatory; the region is best effort and its absence never rejects the
// row.
func (n *Normalizer) Normalize(row *RawRow, profile Profile) (domain.RegistryRecord, error) {
	inn, ok := row.Lookup(profile.INN...)
	if !ok {
		return domain.RegistryRecord{}, &domain.NormalizationError{Kind: domain.ErrKindMissingField, Field: "inn"}
	}
	inn = strings.TrimSpace(inn)

	kind, err := domain.KindFromINN(inn)
	if err != nil {
		return domain.RegistryRecord{}, err
	}

	rawCategory, ok := row.Lookup(profile.Category...)
	if !ok {
		return domain.RegistryRecord{}, &domain.NormalizationError{Kind: domain.ErrKindMissingField, Field: "category"}
	}
	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		return domain.RegistryRecord{}, err
	}

	record := domain.RegistryRecord{
		INN:        inn,
		Kind:       kind,
		Category:   category,
		SourceFile: row.File,
	}

	if code, ok := row.Lookup(profile.RegionCode...); ok {
		record.RegionCode = NormalizeRegionCode(code)
		if name, ok := row.Lookup(profile.RegionName...); ok {
			record.RegionName = strings.TrimSpace(name)
		} else if name, ok := RegionName(record.RegionCode); ok {
			record.RegionName = name
		}
	} else if address, ok := row.Lookup(profile.Address...); ok {
		if code, name, ok := n.regions.Resolve(address); ok {
			record.RegionCode = code
			record.RegionName = name
		}
	}

	if raw, ok := row.Lookup(profile.Date...); ok {
		if date, err := parseSnapshotDate(raw); err == nil {
			record.SnapshotDate = date
		}
	}

	record.RawFields = collectRawFields(row, profile)
	return record, nil
}

// collectRawFields preserves every column the profile does not interpret,
// in source order.
func collectRawFields(row *RawRow, profile Profile) domain.RawFields {
	consumed := make(map[string]struct{})
	for _, candidates := range [][]string{
		profile.INN, profile.Category, profile.RegionCode,
		profile.RegionName, profile.Address, profile.Date,
	} {
		for _, key := range candidates {
			consumed[key] = struct{}{}
		}
	}

	var fields domain.RawFields
	for _, key := range row.Keys() {
		if _, ok := consumed[key]; ok {
			continue
		}
		fields = append(fields, domain.RawField{Name: key, Value: row.Value(key)})
	}
	return fields
}

func parseSnapshotDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range snapshotDateLayouts {
		date, err := time.Parse(layout, raw)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
