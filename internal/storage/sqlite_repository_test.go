package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "planline-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func sampleRecord(id, path string, line int) Record {
	return Record{
		ID:            id,
		Path:          path,
		StartLine:     line,
		EndLine:       line,
		Status:        " ",
		Title:         "Sample task",
		OriginalTitle: "Sample task",
		OriginalText:  "- [ ] Sample task",
		Dialect:       "bracket",
		Priority:      2,
		Tags:          `["#work"]`,
		Children:      `[]`,
		Extra:         `null`,
	}
}

func TestRecordCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	rec := sampleRecord("notes/today::3", "notes/today.md", 3)
	rec.Scheduled = "2026-02-09T09:00"
	minutes := 90
	rec.LengthMinutes = &minutes
	rec.Due = "2026-02-12"

	if err := repo.PutRecord(ctx, rec); err != nil {
		t.Fatalf("put record: %v", err)
	}

	got, err := repo.GetRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got.Title != rec.Title || got.Scheduled != rec.Scheduled || got.Due != rec.Due {
		t.Fatalf("unexpected record: %#v", got)
	}
	if got.LengthMinutes == nil || *got.LengthMinutes != 90 {
		t.Fatalf("unexpected length: %#v", got.LengthMinutes)
	}

	rec.Title = "Renamed task"
	if err := repo.PutRecord(ctx, rec); err != nil {
		t.Fatalf("upsert record: %v", err)
	}
	got, err = repo.GetRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.Title != "Renamed task" {
		t.Fatalf("upsert did not replace title: %q", got.Title)
	}

	if err := repo.DeleteRecord(ctx, rec.ID); err != nil {
		t.Fatalf("delete record: %v", err)
	}
	if _, err := repo.GetRecord(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteRecord(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListRecordsFilters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := sampleRecord("inbox::1", "inbox.md", 1)
	a.Scheduled = "2026-02-09T09:00"
	b := sampleRecord("inbox::5", "inbox.md", 5)
	b.Scheduled = "2026-02-10"
	b.Tags = `["#home"]`
	c := sampleRecord("projects/site::2", "projects/site.md", 2)
	c.Scheduled = "2026-02-09"
	c.Dialect = "simple"

	for _, rec := range []Record{a, b, c} {
		if err := repo.PutRecord(ctx, rec); err != nil {
			t.Fatalf("put %s: %v", rec.ID, err)
		}
	}

	byPath, err := repo.ListRecords(ctx, RecordListFilter{Path: "inbox.md"})
	if err != nil {
		t.Fatalf("list by path: %v", err)
	}
	if len(byPath) != 2 || byPath[0].ID != "inbox::1" || byPath[1].ID != "inbox::5" {
		t.Fatalf("unexpected path listing: %#v", byPath)
	}

	byTag, err := repo.ListRecords(ctx, RecordListFilter{Tag: "#home"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != "inbox::5" {
		t.Fatalf("unexpected tag listing: %#v", byTag)
	}

	byDialect, err := repo.ListRecords(ctx, RecordListFilter{Dialect: "simple"})
	if err != nil {
		t.Fatalf("list by dialect: %v", err)
	}
	if len(byDialect) != 1 || byDialect[0].ID != "projects/site::2" {
		t.Fatalf("unexpected dialect listing: %#v", byDialect)
	}

	byDay, err := repo.ListRecords(ctx, RecordListFilter{ScheduledDay: "2026-02-09"})
	if err != nil {
		t.Fatalf("list by day: %v", err)
	}
	if len(byDay) != 2 {
		t.Fatalf("expected both 2026-02-09 records, got %#v", byDay)
	}

	paged, err := repo.ListRecords(ctx, RecordListFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(paged) != 1 {
		t.Fatalf("expected one paged record, got %d", len(paged))
	}
}

func TestReplacePath(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	old := sampleRecord("daily::1", "daily.md", 1)
	other := sampleRecord("other::1", "other.md", 1)
	for _, rec := range []Record{old, other} {
		if err := repo.PutRecord(ctx, rec); err != nil {
			t.Fatalf("put %s: %v", rec.ID, err)
		}
	}

	replacement := []Record{
		sampleRecord("daily::2", "daily.md", 2),
		sampleRecord("daily::7", "daily.md", 7),
	}
	if err := repo.ReplacePath(ctx, "daily.md", replacement); err != nil {
		t.Fatalf("replace path: %v", err)
	}

	got, err := repo.ListRecords(ctx, RecordListFilter{Path: "daily.md"})
	if err != nil {
		t.Fatalf("list after replace: %v", err)
	}
	if len(got) != 2 || got[0].ID != "daily::2" || got[1].ID != "daily::7" {
		t.Fatalf("unexpected records after replace: %#v", got)
	}
	if _, err := repo.GetRecord(ctx, "daily::1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale record survived replace: %v", err)
	}
	if _, err := repo.GetRecord(ctx, "other::1"); err != nil {
		t.Fatalf("replace touched another path: %v", err)
	}
}
