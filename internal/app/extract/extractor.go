package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// SupportedExtensions is the upload allow-list, lower case with leading dot
var SupportedExtensions = []string{".pdf", ".txt"}

// IsSupported reports whether filename has an allowed extension
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range SupportedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// TextExtractor turns an uploaded document into plain text.
// An empty result is the only failure signal.
type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}

// FileExtractor extracts text from PDF and plain text files on local disk
type FileExtractor struct {
	logger *zap.Logger
}

// NewFileExtractor creates a new file extractor
func NewFileExtractor(logger *zap.Logger) *FileExtractor {
	return &FileExtractor{logger: logger}
}

// Extract returns the document text, or "" for unsupported or unreadable files
func (e *FileExtractor) Extract(ctx context.Context, path string) string {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = e.extractPDF(ctx, path)
	case ".txt":
		text, err = extractText(path)
	default:
		e.logger.Info("unsupported file type, skipping extraction", zap.String("path", path))
		return ""
	}

	if err != nil {
		e.logger.Warn("text extraction failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return text
}

// extractPDF concatenates the plain text of every page in page order.
// The pdf reader panics on some malformed inputs, so panics are turned into errors.
func (e *FileExtractor) extractPDF(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
