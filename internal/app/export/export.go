package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/tealeg/xlsx"

	"docpod/internal/app/model"
)

// Supported export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var header = []string{"ID", "Original File", "Status", "Audio File", "Error Message", "Created At", "Updated At"}

func record(p model.Podcast) []string {
	audio := ""
	if p.HasAudio() {
		audio = filepath.Base(*p.GeneratedAudioPath)
	}
	return []string{
		fmt.Sprint(p.ID),
		p.OriginalFilename,
		string(p.Status),
		audio,
		p.ErrorMessage,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	}
}

// ContentType returns the MIME type of format
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write renders podcasts in format to w
func Write(w io.Writer, format string, podcasts []model.Podcast) error {
	switch format {
	case FormatXLSX:
		return ToExcel(w, podcasts)
	case FormatCSV:
		return ToCSV(w, podcasts)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ToExcel writes a single-sheet workbook
func ToExcel(w io.Writer, podcasts []model.Podcast) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Podcasts")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().Value = h
	}

	for _, p := range podcasts {
		row := sheet.AddRow()
		for _, v := range record(p) {
			row.AddCell().Value = v
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ToCSV writes a header line followed by one line per podcast
func ToCSV(w io.Writer, podcasts []model.Podcast) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range podcasts {
		if err := cw.Write(record(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
