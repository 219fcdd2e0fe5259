package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
)

func newContentEnv(t *testing.T) *ContentService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Article{}))

	// no Kafka, no Elasticsearch: both side channels are optional
	return &ContentService{Repo: repo.New(db)}
}

func TestContentService_Search_UnavailableWithoutBackend(t *testing.T) {
	t.Parallel()

	svc := newContentEnv(t)

	_, _, err := svc.SearchArticles(context.Background(), "tenant-1", "hello", 0, 10)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestContentService_CreateArticle_SetsPublishedAt(t *testing.T) {
	t.Parallel()

	svc := newContentEnv(t)
	ctx := context.Background()

	article := &models.Article{
		TenantID: "tenant-1",
		AuthorID: "admin-1",
		PostType: "BLOG",
		Title:    "Hello",
		Slug:     "hello",
		IsPublic: true,
	}
	require.NoError(t, svc.CreateArticle(ctx, article))
	assert.NotNil(t, article.PublishedAt)
}

func TestContentService_CreateArticle_DraftHasNoPublishedAt(t *testing.T) {
	t.Parallel()

	svc := newContentEnv(t)
	ctx := context.Background()

	article := &models.Article{
		TenantID: "tenant-1",
		AuthorID: "admin-1",
		PostType: "BLOG",
		Title:    "Draft",
		Slug:     "draft",
	}
	require.NoError(t, svc.CreateArticle(ctx, article))
	assert.Nil(t, article.PublishedAt)
}

func TestContentService_UpdateArticle_PublishSetsTimestamp(t *testing.T) {
	t.Parallel()

	svc := newContentEnv(t)
	ctx := context.Background()

	article := &models.Article{
		TenantID: "tenant-1", AuthorID: "admin-1", PostType: "BLOG",
		Title: "Draft", Slug: "draft",
	}
	require.NoError(t, svc.CreateArticle(ctx, article))

	article.IsPublic = true
	require.NoError(t, svc.UpdateArticle(ctx, article))
	assert.NotNil(t, article.PublishedAt)
}

func TestContentService_DeleteArticle_UnknownID(t *testing.T) {
	t.Parallel()

	svc := newContentEnv(t)

	err := svc.DeleteArticle(context.Background(), "tenant-1", 42)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestContentService_DeleteArticle_OtherTenant(t *testing.T) {
	t.Parallel()

	svc := newContentEnv(t)
	ctx := context.Background()

	article := &models.Article{
		TenantID: "tenant-1", AuthorID: "admin-1", PostType: "BLOG",
		Title: "Hello", Slug: "hello",
	}
	require.NoError(t, svc.CreateArticle(ctx, article))

	// tenant-2 cannot delete tenant-1's article
	err := svc.DeleteArticle(ctx, "tenant-2", article.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
