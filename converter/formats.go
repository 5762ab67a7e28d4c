package converter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the output rendering: plain text or Markdown.
type Format int

const (
	FormatText Format = iota
	FormatMarkdown
)

// String returns the canonical name of the format.
func (f Format) String() string {
	if f == FormatMarkdown {
		return "markdown"
	}
	return "text"
}

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return FormatText, fmt.Errorf("unknown output format %q (expected text or markdown)", s)
}

// CanConvert returns true when the file extension is a DOCX package.
func CanConvert(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".docx")
}
