package triage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domaintriage "triagem/internal/domain/triage"
	cacheinfra "triagem/internal/infrastructure/cache"
	exportinfra "triagem/internal/infrastructure/export"
	"triagem/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "triagem/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "triagem/internal/infrastructure/persistence/sqlite/uow"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "triagem.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&model.Category{}, &model.Defect{}, &model.TriageEvent{}, &model.CacheKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	return NewService(
		sqliterepo.NewCategoryRepository(db),
		sqliterepo.NewVocabularyRepository(db),
		sqliterepo.NewLedgerRepository(db),
		sqliteuow.NewUnitOfWork(db),
		cacheinfra.NewSQLiteCache(db),
		exportinfra.NewXLSXWriter(),
	)
}

// steppingClock advances one second per call so recorded timestamps are
// distinct and deterministic.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

func mustCreateCategory(t *testing.T, svc *Service, name string, defects ...string) domaintriage.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), name, "📱 Smartphone", defects)
	if err != nil {
		t.Fatalf("CreateCategory(%q) error = %v", name, err)
	}
	return category
}

func TestCreateCategorySeedsVocabulary(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Celular Samsung", "📱 Smartphone",
		[]string{"Tela Quebrada", " Bateria ", "", "Tela Quebrada", "OK"})
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if category.Icon != "📱" {
		t.Fatalf("icon not normalized: %q", category.Icon)
	}

	labels, err := svc.Defects(ctx, category.CategoryID)
	if err != nil {
		t.Fatalf("Defects() error = %v", err)
	}
	want := []string{"Tela Quebrada", "Bateria", "OK"}
	if len(labels) != len(want) {
		t.Fatalf("Defects() = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("Defects()[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestCreateCategoryRejectsEmptyName(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreateCategory(context.Background(), "  ", "📱", nil)
	var validationErr *domaintriage.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("CreateCategory() error = %v, want ValidationError", err)
	}
	if validationErr.Field != "name" {
		t.Fatalf("ValidationError field = %q", validationErr.Field)
	}
}

func TestAddDefectTwiceKeepsOneEntry(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Fone")

	if err := svc.AddDefect(ctx, category.CategoryID, "Sem Áudio"); err != nil {
		t.Fatalf("AddDefect() error = %v", err)
	}
	if err := svc.AddDefect(ctx, category.CategoryID, "Sem Áudio"); err != nil {
		t.Fatalf("AddDefect(duplicate) error = %v", err)
	}

	labels, err := svc.Defects(ctx, category.CategoryID)
	if err != nil {
		t.Fatalf("Defects() error = %v", err)
	}
	if len(labels) != 1 || labels[0] != "Sem Áudio" {
		t.Fatalf("Defects() = %v", labels)
	}
}

func TestAddDefectToMissingCategory(t *testing.T) {
	svc := setupService(t)

	err := svc.AddDefect(context.Background(), 99, "Bateria")
	if !errors.Is(err, domaintriage.ErrCategoryNotFound) {
		t.Fatalf("AddDefect() error = %v, want ErrCategoryNotFound", err)
	}
}

func TestRemoveDefectInvalidatesCache(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "TV", "Sem Imagem", "OK")

	// Warm the cache, then mutate and read again.
	if _, err := svc.Defects(ctx, category.CategoryID); err != nil {
		t.Fatalf("Defects() error = %v", err)
	}
	if err := svc.RemoveDefect(ctx, category.CategoryID, "Sem Imagem"); err != nil {
		t.Fatalf("RemoveDefect() error = %v", err)
	}

	labels, err := svc.Defects(ctx, category.CategoryID)
	if err != nil {
		t.Fatalf("Defects() error = %v", err)
	}
	if len(labels) != 1 || labels[0] != "OK" {
		t.Fatalf("Defects() after remove = %v", labels)
	}
}

func TestRecordValidationGate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular", "Tela Quebrada")

	_, err := svc.Record(ctx, RecordInput{
		CategoryID:   category.CategoryID,
		InternalCode: "   ",
		SerialNumber: "S1",
		DefectLabel:  "Tela Quebrada",
	})
	var validationErr *domaintriage.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Record() error = %v, want ValidationError", err)
	}
	if validationErr.Field != "internal_code" {
		t.Fatalf("ValidationError field = %q", validationErr.Field)
	}

	// No row may exist after the rejected attempt.
	events, err := svc.AllEvents(ctx, category.CategoryID)
	if err != nil {
		t.Fatalf("AllEvents() error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("AllEvents() len = %d after rejected record", len(events))
	}
}

func TestRecordRejectsUnknownDefect(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular", "OK")

	_, err := svc.Record(ctx, RecordInput{
		CategoryID:   category.CategoryID,
		InternalCode: "A1",
		DefectLabel:  "Inventado",
	})
	var validationErr *domaintriage.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Record() error = %v, want ValidationError", err)
	}
}

func TestRecordAppendOnlyOrder(t *testing.T) {
	svc := setupService(t)
	svc.now = steppingClock(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular", "OK")

	const n = 5
	var lastID uint64
	for i := 0; i < n; i++ {
		event, err := svc.Record(ctx, RecordInput{
			CategoryID:   category.CategoryID,
			InternalCode: fmt.Sprintf("A%d", i),
			DefectLabel:  "OK",
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if event.EventID <= lastID {
			t.Fatalf("event id %d not greater than %d", event.EventID, lastID)
		}
		lastID = event.EventID
	}

	events, err := svc.RecentEvents(ctx, category.CategoryID, n)
	if err != nil {
		t.Fatalf("RecentEvents() error = %v", err)
	}
	if len(events) != n {
		t.Fatalf("RecentEvents() len = %d", len(events))
	}
	for i, event := range events {
		wantCode := fmt.Sprintf("A%d", n-1-i)
		if event.InternalCode != wantCode {
			t.Fatalf("RecentEvents()[%d] code = %q, want %q", i, event.InternalCode, wantCode)
		}
	}
}

func TestDeleteCategoryCascadesDefectsNotEvents(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular", "Tela Quebrada", "OK")

	event, err := svc.Record(ctx, RecordInput{
		CategoryID:   category.CategoryID,
		InternalCode: "A1",
		DefectLabel:  "OK",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if err := svc.DeleteCategory(ctx, category.CategoryID); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}

	labels, err := svc.Defects(ctx, category.CategoryID)
	if err != nil {
		t.Fatalf("Defects() error = %v", err)
	}
	if len(labels) != 0 {
		t.Fatalf("Defects() after delete = %v", labels)
	}

	// The recorded event survives as an orphan reference.
	got, err := svc.GetEvent(ctx, event.EventID)
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if got.CategoryID != category.CategoryID || got.InternalCode != "A1" {
		t.Fatalf("GetEvent() = %+v", got)
	}
}

func TestExportTableRoundTrip(t *testing.T) {
	svc := setupService(t)
	svc.now = steppingClock(time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC))
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular Samsung", "Tela Quebrada", "OK")

	if _, err := svc.Record(ctx, RecordInput{
		CategoryID:   category.CategoryID,
		InternalCode: "A1",
		DefectLabel:  "Tela Quebrada",
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := svc.Record(ctx, RecordInput{
		CategoryID:   category.CategoryID,
		InternalCode: "A2",
		SerialNumber: "S99",
		DefectLabel:  "OK",
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	table, err := svc.ExportTable(ctx, category.CategoryID)
	if err != nil {
		t.Fatalf("ExportTable() error = %v", err)
	}

	if len(table.Columns) != 4 || table.Columns[0] != "Data/Hora" || table.Columns[3] != "Defeito" {
		t.Fatalf("ExportTable() columns = %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("ExportTable() rows = %d", len(table.Rows))
	}

	newest := table.Rows[0]
	if newest[0] != "2026-09-01 09:30:01" || newest[1] != "A2" || newest[2] != "S99" || newest[3] != "OK" {
		t.Fatalf("ExportTable() newest row = %v", newest)
	}
	oldest := table.Rows[1]
	if oldest[0] != "2026-09-01 09:30:00" || oldest[1] != "A1" || oldest[2] != "" || oldest[3] != "Tela Quebrada" {
		t.Fatalf("ExportTable() oldest row = %v", oldest)
	}
}

func TestExportFileNothingToExport(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular", "OK")

	path := filepath.Join(t.TempDir(), "relatorio.xlsx")
	_, err := svc.ExportFile(ctx, category.CategoryID, path)
	if !errors.Is(err, domaintriage.ErrNothingToExport) {
		t.Fatalf("ExportFile() error = %v, want ErrNothingToExport", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("ExportFile() wrote a file despite empty scope")
	}
}

func TestExportFileWritesReport(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Celular", "OK")

	if _, err := svc.Record(ctx, RecordInput{
		CategoryID:   category.CategoryID,
		InternalCode: "A1",
		DefectLabel:  "OK",
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "relatorio.xlsx")
	written, err := svc.ExportFile(ctx, category.CategoryID, path)
	if err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if written != path {
		t.Fatalf("ExportFile() path = %q", written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat exported file: %v", err)
	}
}
