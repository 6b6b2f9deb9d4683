package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"triagem/internal/domain/triage"
	"triagem/internal/errs"
	"triagem/internal/infrastructure/persistence/sqlite/model"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]triage.Category, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Category
	if err := db.Order("category_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query categories")
	}

	items := make([]triage.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapCategory(row))
	}
	return items, nil
}

func (r *CategoryRepository) Get(ctx context.Context, categoryID uint64) (triage.Category, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return triage.Category{}, err
	}

	var row model.Category
	if err := db.Where("category_id = ?", categoryID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return triage.Category{}, triage.ErrCategoryNotFound
		}
		return triage.Category{}, errs.Wrap(err, "query category by id")
	}
	return mapCategory(row), nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string, icon string) (triage.Category, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return triage.Category{}, err
	}

	row := model.Category{
		Name: name,
		Icon: icon,
	}
	if err := db.Create(&row).Error; err != nil {
		return triage.Category{}, errs.Wrap(err, "insert category")
	}
	return mapCategory(row), nil
}

func (r *CategoryRepository) Update(ctx context.Context, categoryID uint64, name string, icon string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&model.Category{}).
		Where("category_id = ?", categoryID).
		Updates(map[string]any{
			"name": name,
			"icon": icon,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update category")
	}
	if result.RowsAffected == 0 {
		return triage.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID uint64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("category_id = ?", categoryID).Delete(&model.Category{}).Error; err != nil {
		return errs.Wrap(err, "delete category")
	}
	return nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, errs.Wrap(err, "count categories")
	}
	return count, nil
}

func mapCategory(row model.Category) triage.Category {
	return triage.Category{
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Icon:       row.Icon,
	}
}
