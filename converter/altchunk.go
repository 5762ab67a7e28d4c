package converter

// altchunk.go — embedded HTML chunk rendering.
//
// A w:altChunk points, via the part rels, at an embedded HTML part. In
// Markdown mode the chunk goes through html-to-markdown; in text mode
// goquery strips the markup down to its text content. A chunk that fails to
// render is dropped, like any other malformed optional part.

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func (c *conversion) renderAltChunk(relID string) string {
	rel, ok := c.curRels[relID]
	if !ok {
		c.log.Debug("altChunk relationship not found", "id", relID, "part", c.curPart)
		return ""
	}
	data, ok := c.pkg.part(resolvePartPath(c.curPart, rel.Target))
	if !ok {
		c.log.Debug("altChunk part missing", "target", rel.Target, "part", c.curPart)
		return ""
	}
	html := string(data)

	if c.format == FormatMarkdown {
		out, err := c.html.ConvertString(html)
		if err != nil {
			c.log.Debug("altChunk html conversion failed", "error", err)
			return ""
		}
		return strings.TrimSpace(out)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		c.log.Debug("altChunk html parse failed", "error", err)
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
