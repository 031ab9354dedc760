// Package export writes sweep results as spreadsheets, TSV files and text tables.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RMahshie/matchviz/internal/sweep"
)

// Format is a file export format.
type Format string

const (
	XLSX Format = "xlsx"
	TSV  Format = "tsv"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps "xlsx" or "tsv" (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case XLSX:
		return XLSX, nil
	case TSV:
		return TSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/tab-separated-values"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Write writes res to w in the given format.
func Write(w io.Writer, res *sweep.Result, f Format) error {
	switch f {
	case XLSX:
		return WriteXLSX(w, res)
	case TSV:
		return WriteTSV(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Save writes res to path, choosing the format from its extension.
func Save(path string, res *sweep.Result) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	switch f {
	case XLSX:
		return SaveXLSX(path, res)
	default:
		return SaveTSV(path, res)
	}
}

// display scales (SI -> presentation units)
const (
	toNanohenries = 1e9
	toPicofarads  = 1e12
)

func fmt4(x float64) string { return fmt.Sprintf("%.4g", x) }

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	fp, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return fp, nil
}
