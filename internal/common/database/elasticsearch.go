package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"admissions-workers/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// Elasticsearch holds the client behind course search.
type Elasticsearch struct {
	Client *elasticsearch.Client
}

// NewElasticsearch builds a client for the configured cluster. Basic auth
// is sent only when a username is set.
func NewElasticsearch(cfg config.ElasticsearchConfig) (*Elasticsearch, error) {
	url := cfg.GetURL()
	if url == "" {
		return nil, fmt.Errorf("elasticsearch address is empty")
	}

	addresses := cfg.Addresses
	if len(addresses) == 0 {
		addresses = []string{url}
	}
	esCfg := elasticsearch.Config{
		Addresses:  addresses,
		MaxRetries: 2,
		Transport: &http.Transport{
			ResponseHeaderTimeout: 5 * time.Second,
		},
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &Elasticsearch{Client: es}, nil
}

func (e *Elasticsearch) Name() string { return "elasticsearch" }

func (e *Elasticsearch) Ping(ctx context.Context) error {
	res, err := e.Client.Ping(e.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// Close is a no-op; the client holds no pooled resources of its own.
func (e *Elasticsearch) Close() error { return nil }
