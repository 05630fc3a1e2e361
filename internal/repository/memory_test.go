package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rmsp-tools/registry/internal/domain"
)

func TestMemoryStoreUpsertReplacesByKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := domain.RegistryRecord{
		INN:        "7707329152",
		Kind:       domain.KindLegalEntity,
		Category:   domain.CategoryMicro,
		RegionCode: "77",
		RegionName: "Москва",
	}
	if err := store.UpsertMany(ctx, []domain.RegistryRecord{first}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	second := first
	second.Category = domain.CategorySmall
	second.RegionCode = ""
	second.RegionName = ""
	if err := store.UpsertMany(ctx, []domain.RegistryRecord{second}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", store.Len())
	}
	record, err := store.Get(ctx, "7707329152")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.Category != domain.CategorySmall {
		t.Fatalf("expected replacement category, got %s", record.Category)
	}
	if record.HasRegion() {
		t.Fatalf("expected region cleared by replacement, got %q", record.RegionCode)
	}
}

func TestMemoryStoreGetMiss(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "0000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreGetMany(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	records := []domain.RegistryRecord{
		{INN: "7707329152", Kind: domain.KindLegalEntity, Category: domain.CategoryMicro},
		{INN: "500100732259", Kind: domain.KindIndividualEntrepreneur, Category: domain.CategorySmall},
	}
	if err := store.UpsertMany(ctx, records); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	found, err := store.GetMany(ctx, []string{"7707329152", "1234567890", "500100732259"})
	if err != nil {
		t.Fatalf("get many failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(found))
	}
	if _, ok := found["1234567890"]; ok {
		t.Fatalf("expected absent inn to stay absent")
	}
	if found["500100732259"].Category != domain.CategorySmall {
		t.Fatalf("unexpected record: %+v", found["500100732259"])
	}
}

func TestMemoryLoadLogFiltersByBatch(t *testing.T) {
	loadLog := NewMemoryLoadLog()
	ctx := context.Background()

	batchA := uuid.New()
	batchB := uuid.New()
	rowNumber := 7

	entries := []domain.LoadLogEntry{
		{BatchID: batchA, FileName: "a.xml", RowNumber: &rowNumber, ErrorMessage: "malformed_inn: field inn"},
		{BatchID: batchA, FileName: "a.xml", ErrorMessage: "unknown_category_code: field category"},
		{BatchID: batchB, FileName: "b.xml", ErrorMessage: "missing_field: field inn"},
	}
	for _, entry := range entries {
		if err := loadLog.Record(ctx, entry); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	matched, err := loadLog.List(ctx, batchA, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 entries for batch, got %d", len(matched))
	}
	for _, entry := range matched {
		if entry.ID == uuid.Nil {
			t.Fatalf("expected assigned id")
		}
		if entry.CreatedAt.IsZero() || entry.CreatedAt.After(time.Now()) {
			t.Fatalf("expected a creation timestamp, got %v", entry.CreatedAt)
		}
	}

	all, err := loadLog.List(ctx, uuid.Nil, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all entries with nil batch filter, got %d", len(all))
	}

	paged, err := loadLog.List(ctx, uuid.Nil, 1, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(paged) != 1 || paged[0].FileName != "a.xml" {
		t.Fatalf("unexpected page: %+v", paged)
	}
}
