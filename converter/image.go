package converter

// image.go — media part extraction and image references.
//
// With an image directory configured, media bytes are written under their
// archive base name, adding -1, -2, ... before the extension whenever the
// name is taken by a prior run on disk or an earlier extraction in this run.
// Without a directory the reference points at the in-archive part path and
// no bytes are written. An unresolvable image degrades to a placeholder and
// a warning; it never aborts the conversion.

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const imageUnavailable = "[Image: unavailable]"

type imageExtractor struct {
	dir  string
	used map[string]bool
}

func newImageExtractor(dir string) *imageExtractor {
	return &imageExtractor{dir: dir, used: make(map[string]bool)}
}

// write stores data under a collision-free variant of base inside the target
// directory and returns the name used.
func (e *imageExtractor) write(base string, data []byte) (string, error) {
	name := e.nextName(base)
	if err := os.WriteFile(filepath.Join(e.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	e.used[name] = true
	return name, nil
}

func (e *imageExtractor) nextName(base string) string {
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := base
	for i := 1; e.taken(name); i++ {
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	return name
}

func (e *imageExtractor) taken(name string) bool {
	if e.used[name] {
		return true
	}
	_, err := os.Stat(filepath.Join(e.dir, name))
	return err == nil
}

func (c *conversion) renderImageFragment(f inlineFragment) string {
	rel, ok := c.curRels[f.relID]
	if !ok {
		c.warnf("image relationship %s not found in %s", f.relID, c.curPart)
		return imageUnavailable
	}
	if rel.TargetMode == "External" {
		// linked, not embedded: the target is a URL, there are no bytes to
		// extract or OCR
		alt := f.alt
		if alt == "" {
			alt = path.Base(rel.Target)
		}
		if c.format == FormatMarkdown {
			return fmt.Sprintf("![%s](%s)", alt, rel.Target)
		}
		return fmt.Sprintf("[Image: %s]", alt)
	}
	partPath := resolvePartPath(c.curPart, rel.Target)
	data, ok := c.pkg.part(partPath)
	if !ok || len(data) == 0 {
		c.warnf("image part %s missing or empty", partPath)
		return imageUnavailable
	}

	alt := f.alt
	if alt == "" {
		alt = path.Base(partPath)
	}

	ref := partPath
	if c.opts.ImageDir != "" {
		name, err := c.images.write(path.Base(partPath), data)
		if err != nil {
			c.warnf("image extraction failed for %s: %v", partPath, err)
		} else {
			ref = filepath.Join(c.opts.ImageDir, name)
		}
	}

	var out string
	if c.format == FormatMarkdown {
		out = fmt.Sprintf("![%s](%s)", alt, ref)
	} else {
		out = fmt.Sprintf("[Image: %s]", alt)
	}

	if c.ocrEnabled() && ocrAvailable() {
		if text, err := ocrImageData(data, path.Ext(partPath), c.cfg.OCRLanguage); err == nil && text != "" {
			if c.format == FormatMarkdown {
				out += "\n> OCR: " + strings.ReplaceAll(text, "\n", " ")
			} else {
				out += "\nOCR: " + strings.ReplaceAll(text, "\n", " ")
			}
		}
	}
	return out
}

func (c *conversion) ocrEnabled() bool {
	return c.opts.EnableOCR || c.cfg.EnableOCR
}
