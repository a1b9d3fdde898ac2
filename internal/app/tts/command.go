package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docpod/internal/app/audio"
)

// Argument placeholders substituted per invocation
const (
	VoicePlaceholder  = "{voice}"
	OutputPlaceholder = "{output}"
)

// CommandEngine runs a local TTS program once per sentence. The sentence is
// written to stdin and the program writes a 24 kHz mono WAV to {output}.
type CommandEngine struct {
	command string
	args    []string
	workDir string
	runner  audio.CommandRunner
}

// NewCommandEngine creates an engine. A nil runner uses audio.ExecRunner.
func NewCommandEngine(command string, args []string, workDir string, runner audio.CommandRunner) *CommandEngine {
	if runner == nil {
		runner = audio.ExecRunner{}
	}
	return &CommandEngine{
		command: command,
		args:    args,
		workDir: workDir,
		runner:  runner,
	}
}

// Name returns the engine name
func (e *CommandEngine) Name() string {
	return "command:" + filepath.Base(e.command)
}

// Synthesize runs the command and decodes its WAV output
func (e *CommandEngine) Synthesize(ctx context.Context, text, voice string) ([]int, error) {
	out, err := os.CreateTemp(e.workDir, "tts-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create tts output file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	args := make([]string, len(e.args))
	for i, arg := range e.args {
		arg = strings.ReplaceAll(arg, VoicePlaceholder, voice)
		args[i] = strings.ReplaceAll(arg, OutputPlaceholder, outPath)
	}

	result, err := e.runner.Run(ctx, strings.NewReader(text), e.command, args...)
	if err != nil {
		return nil, fmt.Errorf("tts command failed: %v, exit code: %d, stderr: %s", err, result.ExitCode, result.Stderr)
	}

	samples, rate, err := audio.ReadWav(outPath)
	if err != nil {
		return nil, err
	}
	if rate != audio.SampleRate {
		return nil, fmt.Errorf("tts command produced %d Hz audio, expected %d Hz", rate, audio.SampleRate)
	}
	return samples, nil
}

// LookPath verifies the command exists, so a missing binary fails at load time
func (e *CommandEngine) LookPath() error {
	if _, err := lookPath(e.command); err != nil {
		return fmt.Errorf("tts command not found: %w", err)
	}
	return nil
}
