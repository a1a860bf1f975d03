// Package app opens the backends selected in configuration and builds the
// admissions service on top of them.
package app

import (
	"context"
	"fmt"
	"time"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/catalog"
	"admissions-workers/internal/common/aws"
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/database"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/downloads"
	"admissions-workers/internal/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/afero"
)

// Options tunes how patiently backends are dialled.
type Options struct {
	ConnectAttempts int
	ConnectDelay    time.Duration
}

var DefaultOptions = Options{ConnectAttempts: 10, ConnectDelay: 2 * time.Second}

// Resources holds every opened backend plus the service built on them.
type Resources struct {
	Config   *config.Config
	Store    storage.Store
	Sink     downloads.Sink
	Catalog  *catalog.Catalog
	Searcher catalog.Searcher
	Service  *admissions.Service

	Email *aws.SESClient
	SMS   *aws.SNSClient

	logger  logger.Logger
	awsCfg  *awssdk.Config
	checks  map[string]func(context.Context) error
	closers []func() error
}

// Open dials the configured backends. A failing Elasticsearch only degrades
// course search to the in-memory catalog; any other failure is fatal.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*Resources, error) {
	r := &Resources{
		Config:  cfg,
		Catalog: catalog.Default(),
		logger:  logger.Component(log, "app"),
		checks:  make(map[string]func(context.Context) error),
	}
	r.Searcher = r.Catalog

	steps := []func(context.Context, Options) error{
		r.openStore,
		r.openSink,
		r.openSearch,
		r.openNotifications,
	}
	for _, step := range steps {
		if err := step(ctx, opts); err != nil {
			r.Close()
			return nil, err
		}
	}

	svc, err := admissions.NewService(cfg, r.Store, r.Sink, r.Catalog.CourseNames(), log)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.Service = svc
	return r, nil
}

func (r *Resources) openStore(ctx context.Context, opts Options) error {
	cfg := r.Config
	switch cfg.Storage.Backend {
	case config.StorageMemory, "":
		r.Store = storage.NewMemoryStore()
		r.logger.Warn("using in-memory store, data is lost on restart", nil)

	case config.StorageRedis:
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		if err := r.dial(ctx, client, opts); err != nil {
			return err
		}
		r.Store = storage.NewRedisStore(client.Client, "")

	case config.StoragePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := r.dial(ctx, pg, opts); err != nil {
			return err
		}
		store, err := storage.NewPostgresStore(pg.DB, cfg.Storage.PostgresTable)
		if err != nil {
			return err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		r.Store = store

	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	r.logger.Info("store ready", map[string]interface{}{"backend": cfg.Storage.Backend})
	return nil
}

// dial retries the first ping of b, then keeps it for readiness and Close.
func (r *Resources) dial(ctx context.Context, b database.Backend, opts Options) error {
	r.closers = append(r.closers, b.Close)
	if err := Retry(ctx, r.logger, b.Name()+" connection", opts.ConnectAttempts, opts.ConnectDelay, b.Ping); err != nil {
		return err
	}
	r.checks[b.Name()] = b.Ping
	return nil
}

func (r *Resources) openSink(ctx context.Context, _ Options) error {
	cfg := r.Config.Downloads
	switch cfg.Backend {
	case config.DownloadsLocal, "":
		r.Sink = downloads.NewLocalSink(afero.NewOsFs(), cfg.Directory)
	case config.DownloadsS3:
		awsCfg, err := r.aws(ctx, cfg.Region)
		if err != nil {
			return err
		}
		r.Sink = downloads.NewS3Sink(aws.NewS3Client(awsCfg), cfg.S3Bucket, cfg.S3Prefix)
	default:
		return fmt.Errorf("unknown downloads backend %q", cfg.Backend)
	}

	r.logger.Info("download sink ready", map[string]interface{}{"backend": cfg.Backend})
	return nil
}

func (r *Resources) openSearch(ctx context.Context, _ Options) error {
	if !r.Config.Catalog.ElasticsearchEnabled {
		return nil
	}

	es, err := database.NewElasticsearch(r.Config.Database.Elasticsearch)
	if err == nil {
		err = es.Ping(ctx)
	}
	if err != nil {
		r.logger.Warn("elasticsearch unavailable, searching the in-memory catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	searcher := catalog.NewElasticsearchSearcher(es.Client, r.Config.Catalog.ElasticsearchIndex, r.logger)
	if err := searcher.EnsureIndex(ctx, r.Catalog); err != nil {
		r.logger.Warn("course index not seeded, searching the in-memory catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	r.Searcher = catalog.NewFallbackSearcher(searcher, r.Catalog, r.logger)
	r.checks[es.Name()] = es.Ping
	return nil
}

func (r *Resources) openNotifications(ctx context.Context, _ Options) error {
	n := r.Config.Notifications
	if !n.Email.Enabled && !n.SMS.Enabled {
		return nil
	}
	awsCfg, err := r.aws(ctx, n.AWS.Region)
	if err != nil {
		return err
	}
	if n.Email.Enabled {
		r.Email = aws.NewSESClient(awsCfg, n.Email.FromEmail)
	}
	if n.SMS.Enabled {
		r.SMS = aws.NewSNSClient(awsCfg, n.SMS.SenderID)
	}
	return nil
}

func (r *Resources) aws(ctx context.Context, region string) (awssdk.Config, error) {
	if r.awsCfg != nil && r.awsCfg.Region == region {
		return *r.awsCfg, nil
	}
	cfg, err := aws.LoadConfig(ctx, region)
	if err != nil {
		return awssdk.Config{}, err
	}
	r.awsCfg = &cfg
	return cfg, nil
}

// Ready checks every dialled backend.
func (r *Resources) Ready(ctx context.Context) map[string]error {
	out := make(map[string]error, len(r.checks))
	for name, check := range r.checks {
		out[name] = check(ctx)
	}
	return out
}

// AddCheck registers an extra readiness check, such as the broker.
func (r *Resources) AddCheck(name string, check func(context.Context) error) {
	r.checks[name] = check
}

func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.logger.Warn("close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	r.closers = nil
}
