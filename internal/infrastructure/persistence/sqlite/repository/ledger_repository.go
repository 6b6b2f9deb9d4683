package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"triagem/internal/domain/triage"
	"triagem/internal/errs"
	"triagem/internal/infrastructure/persistence/sqlite/model"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, event triage.Event) (triage.Event, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return triage.Event{}, err
	}

	row := model.TriageEvent{
		CategoryID:   event.CategoryID,
		InternalCode: event.InternalCode,
		SerialNumber: event.SerialNumber,
		DefectLabel:  event.DefectLabel,
		RecordedAt:   event.RecordedAt,
		SyncStatus:   "pending",
	}
	if err := db.Create(&row).Error; err != nil {
		return triage.Event{}, errs.Wrap(err, "insert triage event")
	}
	return mapEvent(row), nil
}

func (r *LedgerRepository) Recent(ctx context.Context, categoryID uint64, limit int) ([]triage.Event, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.TriageEvent{}).
		Where("category_id = ?", categoryID).
		Order("event_id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.TriageEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query recent triage events")
	}
	return mapEvents(rows), nil
}

func (r *LedgerRepository) All(ctx context.Context, categoryID uint64) ([]triage.Event, error) {
	return r.Recent(ctx, categoryID, 0)
}

func (r *LedgerRepository) Get(ctx context.Context, eventID uint64) (triage.Event, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return triage.Event{}, err
	}

	var row model.TriageEvent
	if err := db.Where("event_id = ?", eventID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return triage.Event{}, triage.ErrEventNotFound
		}
		return triage.Event{}, errs.Wrap(err, "query triage event by id")
	}
	return mapEvent(row), nil
}

func mapEvent(row model.TriageEvent) triage.Event {
	return triage.Event{
		EventID:      row.EventID,
		CategoryID:   row.CategoryID,
		InternalCode: row.InternalCode,
		SerialNumber: row.SerialNumber,
		DefectLabel:  row.DefectLabel,
		RecordedAt:   row.RecordedAt,
	}
}

func mapEvents(rows []model.TriageEvent) []triage.Event {
	items := make([]triage.Event, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapEvent(row))
	}
	return items
}
