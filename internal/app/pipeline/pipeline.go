package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/app/extract"
	"docpod/internal/app/model"
	"docpod/internal/app/queue"
	"docpod/internal/app/repository"
	"docpod/internal/app/script"
	"docpod/internal/app/storage"
	"docpod/internal/app/synth"
)

// Failure messages stored on failed jobs
const (
	MsgExtractFailed = "Could not extract text from the file."
	MsgScriptFailed  = "AI script generation failed: %s"
	MsgAudioFailed   = "Audio generation failed."
	MsgStorageFailed = "Could not store the generated audio."
	MsgQueueFailed   = "Could not queue podcast generation."
)

// Timeouts bounds each stage of one run
type Timeouts struct {
	Extract time.Duration
	Script  time.Duration
	Synth   time.Duration
}

// Pipeline drives a job from processing to completed or failed
type Pipeline struct {
	store     repository.PodcastDAO
	queue     queue.Queue
	extractor extract.TextExtractor
	generator script.Generator
	synth     synth.AudioSynthesizer
	artifacts storage.ArtifactStore
	timeouts  Timeouts
	metrics   *Metrics
	logger    *zap.Logger
}

// New creates a pipeline
func New(
	store repository.PodcastDAO,
	q queue.Queue,
	extractor extract.TextExtractor,
	generator script.Generator,
	synthesizer synth.AudioSynthesizer,
	artifacts storage.ArtifactStore,
	timeouts Timeouts,
	metrics *Metrics,
	logger *zap.Logger,
) *Pipeline {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Pipeline{
		store:     store,
		queue:     q,
		extractor: extractor,
		generator: generator,
		synth:     synthesizer,
		artifacts: artifacts,
		timeouts:  timeouts,
		metrics:   metrics,
		logger:    logger,
	}
}

// OutputFilename names the artifact of job id: "<stem>_<id>.mp3"
func OutputFilename(originalFilename string, id int64) string {
	base := filepath.Base(strings.ReplaceAll(originalFilename, "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%d.mp3", storage.SanitizeFilename(stem), id)
}

// Submit persists a processing job and queues it for the workers
func (p *Pipeline) Submit(ctx context.Context, userID int64, originalFilename, sourcePath string) (*model.Podcast, error) {
	job := &model.Podcast{
		UserID:           userID,
		OriginalFilename: originalFilename,
		SourcePath:       sourcePath,
	}
	if err := p.store.CreatePodcast(ctx, job); err != nil {
		return nil, err
	}

	if err := p.queue.Enqueue(ctx, job.ID); err != nil {
		p.logger.Error("failed to enqueue podcast", zap.Int64("podcast_id", job.ID), zap.Error(err))
		p.fail(context.WithoutCancel(ctx), job.ID, MsgQueueFailed)
		return nil, errors.Wrapf(err, "enqueue podcast %d", job.ID)
	}

	p.logger.Info("podcast submitted",
		zap.Int64("podcast_id", job.ID),
		zap.Int64("user_id", userID),
		zap.String("file", originalFilename))
	return job, nil
}

// Run creates a job and processes it inline, returning the final record
func (p *Pipeline) Run(ctx context.Context, userID int64, originalFilename, sourcePath string) (*model.Podcast, error) {
	job := &model.Podcast{
		UserID:           userID,
		OriginalFilename: originalFilename,
		SourcePath:       sourcePath,
	}
	if err := p.store.CreatePodcast(ctx, job); err != nil {
		return nil, err
	}
	if err := p.Process(ctx, job.ID); err != nil {
		return nil, err
	}
	return p.store.GetPodcast(ctx, job.ID)
}

// Process executes extract, script, synthesize and commit for one job.
// Stage failures end in the failed state and are not returned as errors;
// only persistence problems are.
func (p *Pipeline) Process(ctx context.Context, id int64) error {
	job, err := p.store.GetPodcast(ctx, id)
	if err != nil {
		return err
	}
	if job.Status != model.StatusProcessing {
		p.logger.Info("skipping podcast that is no longer processing",
			zap.Int64("podcast_id", id), zap.String("status", string(job.Status)))
		return nil
	}

	p.metrics.inFlight.Inc()
	defer p.metrics.inFlight.Dec()

	logger := p.logger.With(zap.Int64("podcast_id", id), zap.String("file", job.OriginalFilename))
	logger.Info("processing podcast")

	// Stage 1: text extraction
	start := time.Now()
	extractCtx, cancel := withTimeout(ctx, p.timeouts.Extract)
	text := p.extractor.Extract(extractCtx, job.SourcePath)
	cancel()
	p.metrics.observeStage(StageExtract, start, text != "")
	if text == "" {
		return p.fail(ctx, id, MsgExtractFailed)
	}

	// Stage 2: script generation
	start = time.Now()
	scriptCtx, cancel := withTimeout(ctx, p.timeouts.Script)
	raw := p.generator.Generate(scriptCtx, text)
	cancel()
	p.metrics.observeStage(StageScript, start, !script.IsError(raw))
	if script.IsError(raw) {
		return p.fail(ctx, id, fmt.Sprintf(MsgScriptFailed, raw))
	}

	// Stage 3: audio synthesis
	name := OutputFilename(job.OriginalFilename, id)
	staged, err := p.artifacts.StagingPath(name)
	if err != nil {
		logger.Error("invalid artifact name", zap.String("name", name), zap.Error(err))
		return p.fail(ctx, id, MsgAudioFailed)
	}

	start = time.Now()
	synthCtx, cancel := withTimeout(ctx, p.timeouts.Synth)
	ok := p.synth.Synthesize(synthCtx, fmt.Sprint(id), raw, staged)
	cancel()
	p.metrics.observeStage(StageSynth, start, ok)
	if !ok {
		return p.fail(ctx, id, MsgAudioFailed)
	}

	// Stage 4: store the artifact and complete
	start = time.Now()
	location, err := p.artifacts.Commit(ctx, name, staged)
	p.metrics.observeStage(StageCommit, start, err == nil)
	if err != nil {
		logger.Error("failed to commit artifact", zap.Error(err))
		return p.fail(ctx, id, MsgStorageFailed)
	}

	if err := p.store.MarkCompleted(ctx, id, location); err != nil {
		logger.Error("failed to mark podcast completed", zap.Error(err))
		if rmErr := p.artifacts.Remove(context.WithoutCancel(ctx), location); rmErr != nil {
			logger.Warn("failed to remove orphaned artifact", zap.String("location", location), zap.Error(rmErr))
		}
		if stderrors.Is(err, errors.ErrNotProcessing) {
			return nil
		}
		return err
	}

	p.metrics.finished(string(model.StatusCompleted))
	logger.Info("podcast completed", zap.String("location", location))
	return nil
}

// fail records message on the job. A job that already left processing is left alone.
func (p *Pipeline) fail(ctx context.Context, id int64, message string) error {
	err := p.store.MarkFailed(context.WithoutCancel(ctx), id, message)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotProcessing) {
			return nil
		}
		p.logger.Error("failed to mark podcast failed", zap.Int64("podcast_id", id), zap.Error(err))
		return err
	}
	p.metrics.finished(string(model.StatusFailed))
	p.logger.Warn("podcast failed", zap.Int64("podcast_id", id), zap.String("reason", message))
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
