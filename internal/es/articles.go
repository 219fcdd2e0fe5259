package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/koolee1372/bpr-cms/internal/models"
)

const articleIndex = "cms-articles"

// ArticleDoc is the search projection of an article. Documents are
// filtered by tenant_id at query time; the index itself is shared.
type ArticleDoc struct {
	ID       uint   `json:"id"`
	TenantID string `json:"tenant_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
}

type Articles struct {
	Client *elasticsearch.Client
}

func NewArticles(client *elasticsearch.Client) *Articles {
	return &Articles{Client: client}
}

func docID(tenantID string, articleID uint) string {
	return tenantID + ":" + strconv.FormatUint(uint64(articleID), 10)
}

func (a *Articles) Index(ctx context.Context, article *models.Article) error {
	doc := ArticleDoc{
		ID:       article.ID,
		TenantID: article.TenantID,
		Title:    article.Title,
		Slug:     article.Slug,
		Content:  article.Content,
		IsPublic: article.IsPublic,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("es: encode article doc: %w", err)
	}

	res, err := a.Client.Index(
		articleIndex,
		&buf,
		a.Client.Index.WithContext(ctx),
		a.Client.Index.WithDocumentID(docID(article.TenantID, article.ID)),
	)
	if err != nil {
		return fmt.Errorf("es: index article: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es: index article: %s", res.Status())
	}
	return nil
}

func (a *Articles) Delete(ctx context.Context, tenantID string, articleID uint) error {
	res, err := a.Client.Delete(
		articleIndex,
		docID(tenantID, articleID),
		a.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete article: %w", err)
	}
	defer res.Body.Close()

	// 404 is fine: the article may have never been indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete article: %s", res.Status())
	}
	return nil
}

func (a *Articles) Search(ctx context.Context, tenantID, query string, from, size int) (int64, []ArticleDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "content"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"tenant_id": tenantID},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := a.Client.Search(
		a.Client.Search.WithContext(ctx),
		a.Client.Search.WithIndex(articleIndex),
		a.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("es: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ArticleDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode response: %w", err)
	}

	docs := make([]ArticleDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
