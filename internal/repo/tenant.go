package repo

import (
	"context"

	"github.com/koolee1372/bpr-cms/internal/models"
)

func (r *GormRepo) TenantByID(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, translate(err)
	}
	return &tenant, nil
}

func (r *GormRepo) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return translate(r.DB.WithContext(ctx).Create(tenant).Error)
}

func (r *GormRepo) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	return translate(r.DB.WithContext(ctx).Save(tenant).Error)
}
