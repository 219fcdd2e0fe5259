package repo

import (
	"context"

	"github.com/koolee1372/bpr-cms/internal/models"
)

func (r *GormRepo) ArticleByID(ctx context.Context, tenantID string, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&article).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (r *GormRepo) Articles(ctx context.Context, tenantID string, offset, limit int) (int64, []models.Article, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Article{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Article
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) PublicArticles(ctx context.Context, tenantID string) ([]models.Article, error) {
	var items []models.Article
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND is_public = ?", tenantID, true).
		Order("published_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) PublicArticleBySlug(ctx context.Context, tenantID, slug string) (*models.Article, error) {
	var article models.Article
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND slug = ? AND is_public = ?", tenantID, slug, true).
		First(&article).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (r *GormRepo) CreateArticle(ctx context.Context, article *models.Article) error {
	return translate(r.DB.WithContext(ctx).Create(article).Error)
}

func (r *GormRepo) UpdateArticle(ctx context.Context, article *models.Article) error {
	return translate(r.DB.WithContext(ctx).Save(article).Error)
}

func (r *GormRepo) DeleteArticle(ctx context.Context, tenantID string, id uint) error {
	res := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Article{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CountArticles(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Article{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
