package tasks

import (
	"fmt"

	"github.com/desertthunder/ytfolder/internal/formatter"
	"github.com/desertthunder/ytfolder/internal/shared"
)

// Export writes the run's report to path, choosing the format from the file extension.
func (e *Engine) Export(result *RunResult, path string) error {
	if result == nil {
		return fmt.Errorf("%w: no run to export", shared.ErrInvalidArgument)
	}

	format, err := formatter.FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := formatter.WriteExport(result.Report, format, path); err != nil {
		return err
	}

	e.logger.Debug("exported report", "path", path, "format", format)
	e.sendProgress(exportedUpdate(path, len(result.Report.Entries)))
	return nil
}
