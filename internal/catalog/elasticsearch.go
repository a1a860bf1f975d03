package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const courseMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "integer"},
      "name":        {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "duration":    {"type": "keyword"},
      "fees":        {"type": "keyword"},
      "description": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "category":    {"type": "keyword"}
    }
  }
}`

// ElasticsearchSearcher serves course search from an index seeded with the catalog.
type ElasticsearchSearcher struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearchSearcher(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchSearcher {
	return &ElasticsearchSearcher{
		client: client,
		index:  index,
		logger: logger.Component(log, "catalog.elasticsearch"),
	}
}

// EnsureIndex creates the index with its mapping and indexes every course
// by id, so running it twice leaves the same documents behind.
func (s *ElasticsearchSearcher) EnsureIndex(ctx context.Context, c *Catalog) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.index, err)
	}
	res.Body.Close()

	if res.StatusCode == 404 {
		res, err = s.client.Indices.Create(s.index,
			s.client.Indices.Create.WithContext(ctx),
			s.client.Indices.Create.WithBody(strings.NewReader(courseMapping)),
		)
		if err != nil {
			return fmt.Errorf("create index %s: %w", s.index, err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("create index %s: %s", s.index, res.Status())
		}
	}

	for _, course := range c.Courses() {
		body, err := json.Marshal(course)
		if err != nil {
			return err
		}
		res, err := s.client.Index(s.index, bytes.NewReader(body),
			s.client.Index.WithContext(ctx),
			s.client.Index.WithDocumentID(strconv.Itoa(course.ID)),
			s.client.Index.WithRefresh("true"),
		)
		if err != nil {
			return fmt.Errorf("index course %d: %w", course.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index course %d: %s", course.ID, res.Status())
		}
	}

	s.logger.Info("course index ready", map[string]interface{}{
		"index":   s.index,
		"courses": len(c.Courses()),
	})
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// buildQuery mirrors Catalog.Filter: substring match on name or description, exact category.
func buildQuery(term, category string) map[string]interface{} {
	boolQuery := map[string]interface{}{}

	if term != "" {
		pattern := "*" + wildcardEscaper.Replace(strings.ToLower(term)) + "*"
		boolQuery["should"] = []interface{}{
			map[string]interface{}{"wildcard": map[string]interface{}{
				"name.keyword": map[string]interface{}{"value": pattern, "case_insensitive": true},
			}},
			map[string]interface{}{"wildcard": map[string]interface{}{
				"description.keyword": map[string]interface{}{"value": pattern, "case_insensitive": true},
			}},
		}
		boolQuery["minimum_should_match"] = 1
	}

	if category != "" && category != models.CategoryAll {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"category": category}},
		}
	}

	if len(boolQuery) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
			"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
			"size":  100,
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
		"size":  100,
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Course `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSearcher) Search(ctx context.Context, term, category string) ([]models.Course, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(term, category)); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.index, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	courses := make([]models.Course, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		courses = append(courses, hit.Source)
	}
	return courses, nil
}

// FallbackSearcher answers from the in-memory catalog when the primary searcher fails.
type FallbackSearcher struct {
	primary  Searcher
	fallback *Catalog
	logger   logger.Logger
}

func NewFallbackSearcher(primary Searcher, fallback *Catalog, log logger.Logger) *FallbackSearcher {
	return &FallbackSearcher{primary: primary, fallback: fallback, logger: logger.Component(log, "catalog")}
}

func (f *FallbackSearcher) Search(ctx context.Context, term, category string) ([]models.Course, error) {
	courses, err := f.primary.Search(ctx, term, category)
	if err == nil {
		return courses, nil
	}
	f.logger.Warn("primary course search failed, using in-memory catalog", map[string]interface{}{
		"error": err.Error(),
	})
	return f.fallback.Search(ctx, term, category)
}
