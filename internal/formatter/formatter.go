// package formatter exports folder run reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/ytfolder/internal/models"
	"github.com/desertthunder/ytfolder/internal/shared"
)

// Format is an export file format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
	JSON     Format = "json"
)

// FormatFromPath picks the export format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".md", ".markdown":
		return Markdown, nil
	case ".txt":
		return Text, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported export extension %q (use .csv, .md, .txt or .json)", shared.ErrInvalidArgument, filepath.Ext(path))
	}
}

// ExportToCSV converts a report to CSV format with columns: Song, Search Query, Video Title, Channel, URL, Outcome, Path
//
// Every scanned song gets a row; unmatched songs leave the video columns empty.
func ExportToCSV(report models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Song", "Search Query", "Video Title", "Channel", "URL", "Outcome", "Path"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range report.Entries {
		record := []string{entry.Song.Display, entry.Song.Query, "", "", "", entry.Outcome.String(), entry.Song.Path}
		if entry.Result != nil {
			record[1] = entry.Result.Query
			record[2] = entry.Result.VideoTitle
			record[3] = entry.Result.ChannelName
			record[4] = entry.Result.URL
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a report to Markdown format
func ExportToMarkdown(report models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title(report)))

	if report.URL != "" {
		buf.WriteString(fmt.Sprintf("**Playlist**: [Play all](%s)\n", report.URL))
	}
	buf.WriteString(fmt.Sprintf("**Matched**: %d of %d\n\n", len(report.Results()), len(report.Entries)))

	buf.WriteString("## Songs\n\n")
	for i, entry := range report.Entries {
		if entry.Result == nil {
			buf.WriteString(fmt.Sprintf("%d. ~~%s~~ (%s)\n", i+1, entry.Song.Display, entry.Outcome))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. %s: [%s](%s) by %s\n",
			i+1, entry.Song.Display, entry.Result.VideoTitle, entry.Result.URL, entry.Result.ChannelName))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a report to plain text format
func ExportToText(report models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Folder: %s\n", report.Folder))
	if report.URL != "" {
		buf.WriteString(fmt.Sprintf("Playlist: %s\n", report.URL))
	}
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(report.Entries)))

	for i, entry := range report.Entries {
		if entry.Result == nil {
			buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, entry.Song.Display, entry.Outcome))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. %s -> %s (%s) %s\n",
			i+1, entry.Song.Display, entry.Result.VideoTitle, entry.Result.ChannelName, entry.Result.URL))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a report to indented JSON
func ExportToJSON(report models.Report) ([]byte, error) {
	return shared.MarshalJSON(report, true)
}

// Export renders report in format.
func Export(report models.Report, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(report)
	case Markdown:
		return ExportToMarkdown(report)
	case Text:
		return ExportToText(report)
	case JSON:
		return ExportToJSON(report)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders report in format and writes it to path, creating parent directories.
func WriteExport(report models.Report, format Format, path string) error {
	data, err := Export(report, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}

func title(report models.Report) string {
	if report.Folder == "" {
		return "ytfolder"
	}
	return filepath.Base(report.Folder)
}
