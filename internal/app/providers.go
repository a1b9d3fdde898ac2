package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docpod/internal/api/server"
	v1routes "docpod/internal/api/v1/routes"
	"docpod/internal/api/v1/services"
	"docpod/internal/app/audio"
	"docpod/internal/app/extract"
	"docpod/internal/app/pipeline"
	"docpod/internal/app/queue"
	"docpod/internal/app/repository"
	"docpod/internal/app/repository/pg"
	"docpod/internal/app/repository/sqlite"
	"docpod/internal/app/script"
	"docpod/internal/app/storage"
	"docpod/internal/app/synth"
	"docpod/internal/app/tts"
	"docpod/internal/app/worker"
	"docpod/internal/config"
)

// Application is everything `docpod serve` runs
type Application struct {
	Config *config.Config
	Logger *zap.Logger
	Store  repository.Store
	Queue  queue.Queue
	Pool   *worker.Pool
	Server *server.Server
}

// Generator is the inline pipeline used by `docpod generate`
type Generator struct {
	Store       repository.Store
	Pipeline    *pipeline.Pipeline
	Synthesizer *synth.Synthesizer
	Artifacts   storage.ArtifactStore
	Uploads     *storage.UploadStore
}

func provideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, func(), error) {
	var store repository.Store
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		store = db
	case config.DriverPostgres:
		db, err := pg.NewPostgresDB(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		store = db
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	logger.Info("database ready", zap.String("driver", cfg.Database.Driver))
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

func provideArtifactStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.ArtifactStore, error) {
	return storage.NewArtifactStore(ctx, cfg.Storage, logger)
}

func provideUploadStore(cfg *config.Config) (*storage.UploadStore, error) {
	return storage.NewUploadStore(cfg.Storage.UploadDir)
}

func provideQueue(cfg *config.Config, logger *zap.Logger) (queue.Queue, func(), error) {
	q, err := queue.New(cfg.Queue, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := q.Close(); err != nil {
			logger.Warn("failed to close queue", zap.Error(err))
		}
	}
	return q, cleanup, nil
}

// provideInlineQueue backs the CLI pipeline, which never enqueues
func provideInlineQueue() queue.Queue {
	return queue.NewMemoryQueue(1)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *pipeline.Metrics {
	return pipeline.NewMetrics(reg)
}

func provideExtractor(logger *zap.Logger) extract.TextExtractor {
	return extract.NewFileExtractor(logger)
}

func provideScriptGenerator(cfg *config.Config, logger *zap.Logger) (script.Generator, error) {
	return script.NewGenerator(cfg.Script, cfg.Pipeline.ScriptTimeout, logger)
}

func provideTTSModel(cfg *config.Config, logger *zap.Logger) *tts.Model {
	return tts.NewModelFromConfig(cfg, logger)
}

func provideEncoder(cfg *config.Config) audio.Encoder {
	return audio.NewFFmpegEncoder(cfg.Pipeline.FFmpegPath, audio.ExecRunner{})
}

func provideSynthesizer(cfg *config.Config, model *tts.Model, encoder audio.Encoder, logger *zap.Logger) *synth.Synthesizer {
	return synth.NewSynthesizer(model, synth.NewSentenceSplitter(), encoder, synth.Options{
		Voices: synth.Voices{
			Host:   cfg.TTS.HostVoice,
			Expert: cfg.TTS.ExpertVoice,
		},
		TempRoot:      cfg.Storage.TempDir,
		TTSTimeout:    cfg.Pipeline.TTSTimeout,
		EncodeTimeout: cfg.Pipeline.EncodeTimeout,
	}, logger)
}

func providePipeline(
	cfg *config.Config,
	store repository.Store,
	q queue.Queue,
	extractor extract.TextExtractor,
	generator script.Generator,
	synthesizer *synth.Synthesizer,
	artifacts storage.ArtifactStore,
	metrics *pipeline.Metrics,
	logger *zap.Logger,
) *pipeline.Pipeline {
	// Synthesis has no overall bound; the synthesizer limits each sentence and the encode.
	return pipeline.New(store, q, extractor, generator, synthesizer, artifacts, pipeline.Timeouts{
		Extract: cfg.Pipeline.ExtractTimeout,
		Script:  cfg.Pipeline.ScriptTimeout,
	}, metrics, logger)
}

func providePool(cfg *config.Config, q queue.Queue, p *pipeline.Pipeline, logger *zap.Logger) *worker.Pool {
	return worker.NewPool(q, p, cfg.Queue.Workers, logger)
}

func provideServiceContainer(
	cfg *config.Config,
	store repository.Store,
	p *pipeline.Pipeline,
	uploads *storage.UploadStore,
	artifacts storage.ArtifactStore,
	logger *zap.Logger,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		PodcastService: services.NewPodcastService(store, p, uploads, artifacts, cfg.Pipeline.PageSize, logger),
		AuthService:    services.NewAuthService(store, cfg.Auth.SessionTTL, cfg.Auth.BcryptCost, logger),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}
}

func provideServer(
	cfg *config.Config,
	container *v1routes.ServiceContainer,
	store repository.Store,
	pool *worker.Pool,
	reg *prometheus.Registry,
	logger *zap.Logger,
) *server.Server {
	return server.NewServer(cfg.Server, cfg.Environment, server.Options{
		Services: container,
		Database: store,
		Workers:  pool,
		Gatherer: reg,
	}, logger)
}

func newApplication(cfg *config.Config, logger *zap.Logger, store repository.Store, q queue.Queue, pool *worker.Pool, srv *server.Server) *Application {
	return &Application{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Queue:  q,
		Pool:   pool,
		Server: srv,
	}
}

func newGenerator(
	store repository.Store,
	p *pipeline.Pipeline,
	synthesizer *synth.Synthesizer,
	artifacts storage.ArtifactStore,
	uploads *storage.UploadStore,
) *Generator {
	return &Generator{
		Store:       store,
		Pipeline:    p,
		Synthesizer: synthesizer,
		Artifacts:   artifacts,
		Uploads:     uploads,
	}
}
