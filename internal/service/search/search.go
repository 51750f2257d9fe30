// Package search runs full-text photo search against Elasticsearch and keeps
// the photo index in sync as photos change. When no Elasticsearch client is
// configured, handlers fall back to the store's regex matching instead.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"photofolio/internal/models"

	"github.com/elastic/go-elasticsearch/v9"
)

const DefaultIndex = "photos"

type Service struct {
	es    *elasticsearch.Client
	index string
	log   *slog.Logger
}

// New returns nil when es is nil; callers nil-check to decide between
// Elasticsearch and the store fallback.
func New(es *elasticsearch.Client, index string, log *slog.Logger) *Service {
	if es == nil {
		return nil
	}
	if index == "" {
		index = DefaultIndex
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{es: es, index: index, log: log}
}

// Search queries title, description and tags, title weighted highest.
func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Photo, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "description", "tags"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"isHidden": false},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search: %s: %s", res.Status(), raw)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Photo `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	photos := make([]models.Photo, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		photos[i] = hit.Source
	}
	return r.Hits.Total.Value, photos, nil
}

// IndexPhoto upserts the full photo document so search hits decode back
// into complete records, identical to what the store path returns. The
// model's json tags keep storage keys out of the index. Indexing is best
// effort: a failure is logged and the caller proceeds.
func (s *Service) IndexPhoto(ctx context.Context, p *models.Photo) {
	data, err := json.Marshal(p)
	if err != nil {
		s.log.Error("search: marshal photo doc", "photo_id", p.ID, "error", err)
		return
	}

	res, err := s.es.Index(
		s.index,
		strings.NewReader(string(data)),
		s.es.Index.WithDocumentID(p.ID),
		s.es.Index.WithContext(ctx),
	)
	if err != nil {
		s.log.Error("search: index photo", "photo_id", p.ID, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.log.Error("search: index photo", "photo_id", p.ID, "status", res.Status())
	}
}

// DeletePhoto removes the photo from the index, best effort.
func (s *Service) DeletePhoto(ctx context.Context, id string) {
	res, err := s.es.Delete(
		s.index, id,
		s.es.Delete.WithContext(ctx),
	)
	if err != nil {
		s.log.Error("search: delete photo", "photo_id", id, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		s.log.Error("search: delete photo", "photo_id", id, "status", res.Status())
	}
}
