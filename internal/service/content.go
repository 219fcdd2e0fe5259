package service

import (
	"context"
	"errors"
	"time"

	"github.com/koolee1372/bpr-cms/internal/es"
	"github.com/koolee1372/bpr-cms/internal/events"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

// ErrSearchUnavailable is returned when no search backend is
// configured for the process.
var ErrSearchUnavailable = errors.New("search is not available")

// ContentService owns article and category writes. Kafka and
// Elasticsearch are best-effort side channels: a failure there is
// logged, never surfaced, so content writes do not depend on either
// being up.
type ContentService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Search *es.Articles
}

func (s *ContentService) CreateArticle(ctx context.Context, article *models.Article) error {
	now := time.Now().UTC()
	if article.IsPublic && article.PublishedAt == nil {
		article.PublishedAt = &now
	}
	if err := s.Repo.CreateArticle(ctx, article); err != nil {
		return err
	}
	s.afterWrite(ctx, "created", article)
	return nil
}

func (s *ContentService) UpdateArticle(ctx context.Context, article *models.Article) error {
	now := time.Now().UTC()
	if article.IsPublic && article.PublishedAt == nil {
		article.PublishedAt = &now
	}
	if err := s.Repo.UpdateArticle(ctx, article); err != nil {
		return err
	}
	s.afterWrite(ctx, "updated", article)
	return nil
}

func (s *ContentService) DeleteArticle(ctx context.Context, tenantID string, id uint) error {
	article, err := s.Repo.ArticleByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteArticle(ctx, tenantID, id); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("svc", "content", "tenant_id", tenantID)
	if s.Search != nil {
		if err := s.Search.Delete(ctx, tenantID, id); err != nil {
			l.Warn("search_delete_failed", "article_id", id, "error", err)
		}
	}
	s.publish(ctx, "deleted", article)
	return nil
}

func (s *ContentService) SearchArticles(ctx context.Context, tenantID, query string, from, size int) (int64, []es.ArticleDoc, error) {
	if s.Search == nil {
		return 0, nil, ErrSearchUnavailable
	}
	return s.Search.Search(ctx, tenantID, query, from, size)
}

func (s *ContentService) afterWrite(ctx context.Context, action string, article *models.Article) {
	l := logging.FromContext(ctx).With("svc", "content", "tenant_id", article.TenantID)
	if s.Search != nil {
		if err := s.Search.Index(ctx, article); err != nil {
			l.Warn("search_index_failed", "article_id", article.ID, "error", err)
		}
	}
	s.publish(ctx, action, article)
}

func (s *ContentService) publish(ctx context.Context, action string, article *models.Article) {
	if s.Events == nil {
		return
	}
	event := events.ArticleEvent{
		Action:    action,
		TenantID:  article.TenantID,
		ArticleID: article.ID,
		Slug:      article.Slug,
		At:        time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, article.TenantID, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"svc", "content", "tenant_id", article.TenantID, "article_id", article.ID, "error", err)
	}
}
