package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CommandResult is the captured output of one process execution
type CommandResult struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// CommandRunner abstracts process execution for testability
type CommandRunner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (CommandResult, error)
}

// ExecRunner executes commands via os/exec
type ExecRunner struct{}

// Run executes one command and captures stdout, stderr and the exit code
func (ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.String(),
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}
	return result, nil
}

// Encoder turns the stitched WAV track into the final MP3
type Encoder interface {
	EncodeMP3(ctx context.Context, wavPath, mp3Path string) error
}

// FFmpegEncoder encodes with ffmpeg's libmp3lame
type FFmpegEncoder struct {
	ffmpegPath string
	runner     CommandRunner
}

// NewFFmpegEncoder creates an encoder. A nil runner uses ExecRunner.
func NewFFmpegEncoder(ffmpegPath string, runner CommandRunner) *FFmpegEncoder {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &FFmpegEncoder{ffmpegPath: ffmpegPath, runner: runner}
}

// EncodeMP3 overwrites mp3Path. A failed run leaves no partial output behind.
func (e *FFmpegEncoder) EncodeMP3(ctx context.Context, wavPath, mp3Path string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", wavPath,
		"-vn", "-acodec", "libmp3lame", "-ar", fmt.Sprint(SampleRate), "-ac", "1",
		mp3Path,
	}

	result, err := e.runner.Run(ctx, nil, e.ffmpegPath, args...)
	if err != nil {
		_ = os.Remove(mp3Path)
		return fmt.Errorf("FFmpeg error: %v, exit code: %d, stderr: %s", err, result.ExitCode, result.Stderr)
	}
	return nil
}
