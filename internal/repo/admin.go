package repo

import (
	"context"

	"github.com/koolee1372/bpr-cms/internal/models"
)

func (r *GormRepo) AdminByEmail(ctx context.Context, tenantID, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *GormRepo) AdminByID(ctx context.Context, tenantID, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *GormRepo) Admins(ctx context.Context, tenantID string) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("tenant_id = ? AND email = ?", admin.TenantID, admin.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return translate(r.DB.WithContext(ctx).Create(admin).Error)
}

func (r *GormRepo) UpdateAdmin(ctx context.Context, admin *models.Admin) error {
	return translate(r.DB.WithContext(ctx).Save(admin).Error)
}

func (r *GormRepo) DeleteAdmin(ctx context.Context, tenantID, id string) error {
	res := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CountAdmins(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
