package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"triagem/internal/bootstrap/config"
	"triagem/internal/infrastructure/persistence/sqlite/model"
)

func setupApp(t *testing.T) *App {
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

	return &App{
		Config: config.Config{
			Database: config.DatabaseConfig{Driver: "sqlite", DSN: dsn},
			Triage: config.TriageConfig{
				MultiCategory: true,
				HistoryLimit:  50,
				Seed: config.SeedConfig{
					Name:    "Celular Samsung",
					Icon:    "📱 Smartphone",
					Defects: []string{"Tela Quebrada", "Bateria", "OK"},
				},
			},
		},
		DB: db,
	}
}

func counts(t *testing.T, db *gorm.DB) (categories int64, defects int64, events int64) {
	t.Helper()
	if err := db.Model(&model.Category{}).Count(&categories).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if err := db.Model(&model.Defect{}).Count(&defects).Error; err != nil {
		t.Fatalf("count defects: %v", err)
	}
	if err := db.Model(&model.TriageEvent{}).Count(&events).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return categories, defects, events
}

func TestInitSchemaSeedsOnce(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}

	categories, defects, events := counts(t, app.DB)
	if categories != 1 || defects != 3 || events != 0 {
		t.Fatalf("after first init: categories=%d defects=%d events=%d", categories, defects, events)
	}

	var seeded model.Category
	if err := app.DB.Take(&seeded).Error; err != nil {
		t.Fatalf("load seeded category: %v", err)
	}
	if seeded.Name != "Celular Samsung" || seeded.Icon != "📱" {
		t.Fatalf("seeded category = %+v", seeded)
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}

	// Recording between runs must survive a second init untouched.
	event := model.TriageEvent{
		CategoryID:   1,
		InternalCode: "A1",
		DefectLabel:  "OK",
		RecordedAt:   "2026-09-01 10:00:00",
		SyncStatus:   "pending",
	}
	if err := app.DB.Create(&event).Error; err != nil {
		t.Fatalf("insert event: %v", err)
	}

	before := [3]int64{}
	before[0], before[1], before[2] = counts(t, app.DB)

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema(second) error = %v", err)
	}

	after := [3]int64{}
	after[0], after[1], after[2] = counts(t, app.DB)
	if before != after {
		t.Fatalf("second init changed counts: before=%v after=%v", before, after)
	}
}
