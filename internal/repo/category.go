package repo

import (
	"context"

	"github.com/koolee1372/bpr-cms/internal/models"
)

func (r *GormRepo) Categories(ctx context.Context, tenantID string) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(r.DB.WithContext(ctx).Create(category).Error)
}

func (r *GormRepo) DeleteCategory(ctx context.Context, tenantID string, id uint) error {
	res := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CountCategories(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
