// Package converter turns .docx documents into plain text or Markdown.
//
// A Converter is cheap to construct and safe for concurrent use; all
// per-document state lives in an internal conversion created for each call.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/sudipnext/docx2everything/config"
)

// Options tune a single conversion call.
type Options struct {
	// ImageDir, when set, receives extracted images; output references the
	// files written there. When empty, output references archive paths.
	ImageDir string

	// EnableOCR runs tesseract over extracted images and appends the
	// recognized text, when the binary is on PATH.
	EnableOCR bool
}

// Result is the outcome of one conversion.
type Result struct {
	Output   string
	Warnings []string
}

// Converter converts .docx documents.
type Converter struct {
	cfg  *config.Config
	log  *slog.Logger
	html *md.Converter
}

// New creates a Converter. A nil cfg loads configuration from the
// environment; a nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Converter {
	if cfg == nil {
		cfg = config.Load()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		cfg:  cfg,
		log:  logger,
		html: md.NewConverter("", true, nil),
	}
}

// ConvertFile converts the document at path.
func (c *Converter) ConvertFile(ctx context.Context, path string, format Format, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if info.Size() > c.cfg.MaxFileSizeBytes {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), c.cfg.MaxFileSizeBytes)
	}
	if !CanConvert(path) {
		return nil, fmt.Errorf("unsupported format: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.ConvertBytes(ctx, data, format, opts)
}

// ConvertBytes converts an in-memory document.
func (c *Converter) ConvertBytes(ctx context.Context, data []byte, format Format, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pkg, err := openPackage(data)
	if err != nil {
		return nil, err
	}
	return newConversion(c, pkg, format, opts).run(ctx)
}

// Info returns a human-readable summary of the converter's capabilities and
// current configuration.
func (c *Converter) Info() string {
	ocr := "unavailable (tesseract not on PATH)"
	if ocrAvailable() {
		ocr = "available"
	}
	return fmt.Sprintf(
		"docx2everything converter\n"+
			"Supported input: .docx\n"+
			"Output formats: text, markdown\n"+
			"Max file size: %d MB\n"+
			"OCR: %s",
		c.cfg.MaxFileSizeMB(), ocr)
}

// ToText converts the document at path to plain text using environment
// configuration and the default logger. imageDir may be empty.
func ToText(ctx context.Context, path, imageDir string) (string, error) {
	return convertPath(ctx, path, FormatText, imageDir)
}

// ToMarkdown converts the document at path to Markdown using environment
// configuration and the default logger. imageDir may be empty.
func ToMarkdown(ctx context.Context, path, imageDir string) (string, error) {
	return convertPath(ctx, path, FormatMarkdown, imageDir)
}

func convertPath(ctx context.Context, path string, format Format, imageDir string) (string, error) {
	c := New(nil, nil)
	res, err := c.ConvertFile(ctx, path, format, Options{ImageDir: imageDir})
	if err != nil {
		return "", err
	}
	for _, w := range res.Warnings {
		c.log.Warn(w)
	}
	return res.Output, nil
}
