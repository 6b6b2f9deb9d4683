package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"triagem/internal/errs"
	"triagem/internal/infrastructure/persistence/sqlite/model"
)

type VocabularyRepository struct {
	db *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

func (r *VocabularyRepository) List(ctx context.Context, categoryID uint64) ([]string, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Defect
	if err := db.
		Where("category_id = ?", categoryID).
		Order("defect_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query defects")
	}

	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Label)
	}
	return labels, nil
}

// Add is idempotent: the composite unique index on (category_id, label)
// plus DO NOTHING makes a duplicate add a silent no-op.
func (r *VocabularyRepository) Add(ctx context.Context, categoryID uint64, label string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.Defect{
		CategoryID: categoryID,
		Label:      label,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert defect")
	}
	return nil
}

func (r *VocabularyRepository) Remove(ctx context.Context, categoryID uint64, label string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.
		Where("category_id = ? AND label = ?", categoryID, label).
		Delete(&model.Defect{}).Error; err != nil {
		return errs.Wrap(err, "delete defect")
	}
	return nil
}

func (r *VocabularyRepository) RemoveAll(ctx context.Context, categoryID uint64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.
		Where("category_id = ?", categoryID).
		Delete(&model.Defect{}).Error; err != nil {
		return errs.Wrap(err, "delete category defects")
	}
	return nil
}
