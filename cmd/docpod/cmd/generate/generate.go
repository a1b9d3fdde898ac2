package generate

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docpod/cmd/docpod/cmd/cmdutil"
	"docpod/internal/app"
	"docpod/internal/app/errors"
	"docpod/internal/app/extract"
	"docpod/internal/app/model"
	"docpod/internal/app/progress"
	"docpod/internal/app/repository"
)

// CLIUserEmail owns jobs created from the command line when --email is not given
const CLIUserEmail = "cli@docpod.local"

var (
	inputFile    string
	outputFile   string
	ownerEmail   string
	showProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "PDF or TXT document to convert")
	Cmd.Flags().StringVarP(&outputFile, "out", "o", "", "copy the finished MP3 to this path")
	Cmd.Flags().StringVarP(&ownerEmail, "email", "e", "", "email of the user who owns the podcast")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "force the progress bar even when stderr is not a terminal")

	Cmd.MarkFlagRequired("file")
}

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Convert one document into a podcast without the HTTP server",
	Long: `Convert one document into a podcast without the HTTP server

- The job is recorded in the database like an uploaded one
- Progress over the synthesized clips is shown on stderr`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !extract.IsSupported(inputFile) {
			return errors.Wrapf(errors.ErrUnsupportedFile, "%s (want one of %v)", inputFile, extract.SupportedExtensions)
		}

		cfg, logger, err := cmdutil.Load(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		gen, cleanup, err := app.InitializeGenerator(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		owner, err := ensureOwner(ctx, gen.Store, ownerEmail)
		if err != nil {
			return err
		}

		source, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", inputFile, err)
		}
		name := filepath.Base(inputFile)
		sourcePath, err := gen.Uploads.Save(name, source)
		source.Close()
		if err != nil {
			return err
		}

		manager := progress.NewManager(progress.Config{
			Enabled: progress.ShouldShow(showProgress),
			Writer:  cmd.ErrOrStderr(),
		})
		tracker := progress.NewClipTracker(manager)
		gen.Synthesizer.Observe(tracker)

		job, err := gen.Pipeline.Run(ctx, owner.ID, name, sourcePath)
		tracker.Finish()
		manager.Wait()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if job.Status != model.StatusCompleted {
			fmt.Fprintf(out, "podcast %d failed: %s\n", job.ID, job.ErrorMessage)
			return fmt.Errorf("podcast generation failed")
		}

		logger.Info("podcast generated", zap.Int64("podcast_id", job.ID), zap.Int("clips", tracker.Done()))
		location := *job.GeneratedAudioPath
		if outputFile != "" {
			if err := copyArtifact(ctx, gen, location, outputFile); err != nil {
				return err
			}
			location = outputFile
		}
		fmt.Fprintf(out, "podcast %d completed: %s\n", job.ID, location)
		return nil
	},
}

// ensureOwner returns the user with email, creating the command-line user on first use
func ensureOwner(ctx context.Context, users repository.UserDAO, email string) (*model.User, error) {
	if email != "" {
		return users.GetUserByEmail(ctx, email)
	}

	user, err := users.GetUserByEmail(ctx, CLIUserEmail)
	if err == nil {
		return user, nil
	}
	if !stderrors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	// "!" is never a valid bcrypt hash, so this user cannot log in
	user = &model.User{Username: "cli", Email: CLIUserEmail, PasswordHash: "!"}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func copyArtifact(ctx context.Context, gen *app.Generator, location, dest string) error {
	src, _, err := gen.Artifacts.Open(ctx, location)
	if err != nil {
		return err
	}
	defer src.Close()

	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return fmt.Errorf("failed to copy podcast to %s: %w", dest, err)
	}
	return f.Close()
}
