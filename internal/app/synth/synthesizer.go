package synth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"

	"docpod/internal/app/audio"
	"docpod/internal/app/model"
	"docpod/internal/app/script"
	"docpod/internal/app/tts"
)

// Pauses inserted into the stitched track
const (
	LeadingSilence = 500 * time.Millisecond
	ClipGap        = 400 * time.Millisecond
)

// AudioSynthesizer renders a script into an MP3 file
type AudioSynthesizer interface {
	Synthesize(ctx context.Context, jobKey, rawScript, outputPath string) bool
}

// Observer receives progress notifications during one synthesis run
type Observer interface {
	Planned(total int)
	ClipDone(clip model.AudioClip)
}

// Voices maps each speaker to an engine voice name
type Voices struct {
	Host   string
	Expert string
}

func (v Voices) For(speaker model.Speaker) string {
	if speaker == model.SpeakerExpert {
		return v.Expert
	}
	return v.Host
}

// Options configures a Synthesizer
type Options struct {
	Voices        Voices
	TempRoot      string
	TTSTimeout    time.Duration
	EncodeTimeout time.Duration
}

// Synthesizer turns scripts into stitched podcasts using a shared TTS model.
// Every run works in its own temporary directory.
type Synthesizer struct {
	model    *tts.Model
	splitter *SentenceSplitter
	encoder  audio.Encoder
	opts     Options
	logger   *zap.Logger
	observer Observer
}

// NewSynthesizer creates a synthesizer
func NewSynthesizer(m *tts.Model, splitter *SentenceSplitter, encoder audio.Encoder, opts Options, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		model:    m,
		splitter: splitter,
		encoder:  encoder,
		opts:     opts,
		logger:   logger,
	}
}

// Observe registers an observer for subsequent runs
func (s *Synthesizer) Observe(o Observer) {
	s.observer = o
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type sentenceJob struct {
	speaker model.Speaker
	text    string
}

// Synthesize returns true only when outputPath holds the encoded podcast.
// On any failure the workspace and any partial output are removed.
func (s *Synthesizer) Synthesize(ctx context.Context, jobKey, rawScript, outputPath string) bool {
	logger := s.logger.With(zap.String("job", jobKey))

	workspace, err := os.MkdirTemp(s.opts.TempRoot, fmt.Sprintf("podcast-%s-*", unsafeKeyChars.ReplaceAllString(jobKey, "_")))
	if err != nil {
		logger.Error("failed to create workspace", zap.Error(err))
		return false
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			logger.Warn("failed to remove workspace", zap.String("dir", workspace), zap.Error(err))
		}
	}()

	if err := s.render(ctx, logger, workspace, rawScript, outputPath); err != nil {
		logger.Error("audio synthesis failed", zap.Error(err))
		_ = os.Remove(outputPath)
		return false
	}
	return true
}

func (s *Synthesizer) render(ctx context.Context, logger *zap.Logger, workspace, rawScript, outputPath string) error {
	engine, err := s.model.Engine(ctx)
	if err != nil {
		return fmt.Errorf("tts model unavailable: %w", err)
	}

	lines := script.ParseScript(rawScript)
	var jobs []sentenceJob
	for _, line := range lines {
		parts, err := s.splitter.Split(line.Text)
		if err != nil {
			return err
		}
		for _, p := range parts {
			jobs = append(jobs, sentenceJob{speaker: line.Speaker, text: p})
		}
	}
	if s.observer != nil {
		s.observer.Planned(len(jobs))
	}
	logger.Info("synthesizing script", zap.Int("lines", len(lines)), zap.Int("sentences", len(jobs)))

	clips := make([]model.AudioClip, 0, len(jobs))
	for i, job := range jobs {
		clip, err := s.synthesizeClip(ctx, engine, workspace, i, job)
		if err != nil {
			return err
		}
		clips = append(clips, clip)
		if s.observer != nil {
			s.observer.ClipDone(clip)
		}
	}

	track, err := stitch(clips)
	if err != nil {
		return err
	}

	trackPath := filepath.Join(workspace, "track.wav")
	if err := audio.WriteWav(trackPath, track.Samples(), audio.SampleRate); err != nil {
		return err
	}

	encodeCtx, cancel := withTimeout(ctx, s.opts.EncodeTimeout)
	defer cancel()
	if err := s.encoder.EncodeMP3(encodeCtx, trackPath, outputPath); err != nil {
		return err
	}

	logger.Info("podcast audio written",
		zap.String("output", outputPath),
		zap.Int("clips", len(clips)),
		zap.Duration("duration", track.Duration()))
	return nil
}

func (s *Synthesizer) synthesizeClip(ctx context.Context, engine tts.Engine, workspace string, index int, job sentenceJob) (model.AudioClip, error) {
	clipCtx, cancel := withTimeout(ctx, s.opts.TTSTimeout)
	defer cancel()

	samples, err := engine.Synthesize(clipCtx, job.text, s.opts.Voices.For(job.speaker))
	if err != nil {
		return model.AudioClip{}, fmt.Errorf("clip %d: %w", index, err)
	}

	path := filepath.Join(workspace, fmt.Sprintf("clip_%d.wav", index))
	if err := audio.WriteWav(path, samples, audio.SampleRate); err != nil {
		return model.AudioClip{}, fmt.Errorf("clip %d: %w", index, err)
	}

	return model.AudioClip{
		Speaker: job.speaker,
		Index:   index,
		Path:    path,
		Samples: len(samples),
	}, nil
}

// stitch lays out the leading pause followed by the clips separated by gaps
func stitch(clips []model.AudioClip) (*audio.Track, error) {
	track := audio.NewTrack()
	track.AppendSilence(LeadingSilence)

	for i, clip := range clips {
		if i > 0 {
			track.AppendSilence(ClipGap)
		}
		samples, rate, err := audio.ReadWav(clip.Path)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", clip.Index, err)
		}
		if rate != audio.SampleRate {
			return nil, fmt.Errorf("clip %d has sample rate %d", clip.Index, rate)
		}
		track.Append(samples)
	}
	return track, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
