package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/navshell/pkg/model"
)

// SnapshotOptions configures SaveSnapshot.
type SnapshotOptions struct {
	Path   string
	Layout model.Config
	// Format is "svg" or "png". Empty picks it from the Path extension.
	Format string
	Options
}

// Format names.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// SaveSnapshot writes a layout diagram to opts.Path.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Path == "" {
		return fmt.Errorf("snapshot path is required")
	}
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Path)), ".")
	}

	var write func(f *os.File) error
	switch format {
	case FormatSVG:
		write = func(f *os.File) error { return WriteSVG(f, opts.Layout, opts.Options) }
	case FormatPNG:
		write = func(f *os.File) error { return WritePNG(f, opts.Layout, opts.Options) }
	default:
		return fmt.Errorf("unsupported snapshot format %q (use svg or png)", format)
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", opts.Path, err)
	}
	return f.Close()
}
