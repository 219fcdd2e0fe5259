package models

import (
	"encoding/json"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRole reports whether r belongs to the fixed role set.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEditor
}

type Tenant struct {
	ID           string          `gorm:"primaryKey"      json:"id"`
	Name         string          `gorm:"not null"        json:"name"`
	Slug         string          `gorm:"unique;not null" json:"slug"`
	CustomDomain string          `gorm:"unique;not null" json:"custom_domain"`
	Config       json.RawMessage `gorm:"type:jsonb"      json:"config"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Admin email uniqueness is scoped to the tenant: the same address may
// administer two different tenants.
type Admin struct {
	ID           string    `gorm:"primaryKey"                                json:"id"`
	TenantID     string    `gorm:"uniqueIndex:idx_admins_tenant_email;not null" json:"tenant_id"`
	Email        string    `gorm:"uniqueIndex:idx_admins_tenant_email;not null" json:"email"`
	PasswordHash string    `gorm:"not null"                                  json:"-"`
	Role         string    `gorm:"not null"                                  json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Article struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	TenantID     string          `gorm:"uniqueIndex:idx_articles_tenant_slug;not null" json:"tenant_id"`
	AuthorID     string          `gorm:"not null"                          json:"author_id"`
	PostType     string          `gorm:"not null;default:BLOG"             json:"post_type"`
	Title        string          `gorm:"not null"                          json:"title"`
	Slug         string          `gorm:"uniqueIndex:idx_articles_tenant_slug;not null" json:"slug"`
	Content      string          `json:"content"`
	ThumbnailURL string          `json:"thumbnail_url"`
	SEOMeta      json.RawMessage `gorm:"type:jsonb"                        json:"seo_meta"`
	IsPublic     bool            `gorm:"not null;default:false"            json:"is_public"`
	PublishedAt  *time.Time      `json:"published_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID string `gorm:"index;not null"           json:"tenant_id"`
	Name     string `gorm:"not null"                 json:"name"`
	Slug     string `gorm:"not null"                 json:"slug"`
}

type ArticleCategory struct {
	ArticleID  uint `gorm:"primaryKey" json:"article_id"`
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
}
