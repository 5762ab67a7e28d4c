package converter

// document.go — the per-conversion state and the pipeline that drives it.
//
// One conversion processes one document start-to-finish: open package,
// resolve styles/numbering/notes/comments, then build and render blocks for
// the main document, each header, and each footer, in that fixed order.
// Every optional part is allowed to be missing or malformed; only a broken
// main document part degrades visibly, and even then everything else still
// renders.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/sudipnext/docx2everything/config"
)

// conversion owns all mutable state of a single conversion, so a Converter
// stays safe for concurrent use without locking.
type conversion struct {
	pkg    *docxPackage
	format Format
	opts   Options
	cfg    *config.Config
	log    *slog.Logger
	html   *md.Converter

	styles    *styleResolver
	numbering *numberingState
	footnotes map[string]string
	endnotes  map[string]string
	comments  map[string]commentInfo
	refs      refTracker
	images    *imageExtractor
	warnings  []string

	// part currently being processed, with its relationship table
	curPart string
	curRels map[string]relationship
}

func newConversion(c *Converter, pkg *docxPackage, format Format, opts Options) *conversion {
	return &conversion{
		pkg:       pkg,
		format:    format,
		opts:      opts,
		cfg:       c.cfg,
		log:       c.log,
		html:      c.html,
		styles:    newStyleResolver(nil),
		numbering: newNumberingState(nil),
		footnotes: map[string]string{},
		endnotes:  map[string]string{},
		comments:  map[string]commentInfo{},
		refs:      newRefTracker(),
		images:    newImageExtractor(opts.ImageDir),
	}
}

func (c *conversion) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, msg)
	c.log.Warn(msg)
}

func (c *conversion) run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.loadStyles()
	c.loadNumbering()
	c.loadNotes()
	c.loadComments()

	parts := []string{mainDocumentPart}
	parts = append(parts, c.pkg.matchSorted(headerPartRE)...)
	parts = append(parts, c.pkg.matchSorted(footerPartRE)...)

	var sections []string
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, ok := c.pkg.part(part)
		if !ok {
			continue
		}

		c.curPart = part
		rels, err := c.pkg.rels(part)
		if err != nil {
			c.log.Debug("part rels unparsable", "part", part, "error", err)
			rels = map[string]relationship{}
		}
		c.curRels = rels

		items, err := parseBlockItems(data)
		if err != nil {
			if part == mainDocumentPart {
				c.log.Debug("main document unparsable", "error", err)
				sections = append(sections, "<!-- Error parsing document -->")
				continue
			}
			c.log.Debug("skipping malformed part", "part", part, "error", err)
			continue
		}

		var blocks []block
		for _, item := range items {
			switch v := item.(type) {
			case *paragraphXML:
				blocks = append(blocks, c.paragraphBlocks(v)...)
			case *tableXML:
				blocks = append(blocks, block{kind: blockTable, table: c.buildTableModel(v)})
			case *altChunkXML:
				if raw := c.renderAltChunk(v.ID); raw != "" {
					blocks = append(blocks, block{kind: blockHTML, raw: raw})
				}
			}
		}
		if rendered := c.renderBlocks(blocks); rendered != "" {
			sections = append(sections, rendered)
		}
	}

	sections = append(sections, c.referenceSections()...)

	return &Result{
		Output:   strings.TrimSpace(strings.Join(sections, "\n\n")),
		Warnings: c.warnings,
	}, nil
}

func (c *conversion) loadStyles() {
	data, ok := c.pkg.part("word/styles.xml")
	if !ok {
		return // built-in name fallback stays active
	}
	resolver, err := parseStyles(data)
	if err != nil {
		c.log.Debug("styles.xml unparsable, using built-in heading names", "error", err)
		return
	}
	c.styles = resolver
}

func (c *conversion) loadNumbering() {
	data, ok := c.pkg.part("word/numbering.xml")
	if !ok {
		return // everything renders as bullets
	}
	table, err := parseNumbering(data)
	if err != nil {
		c.log.Debug("numbering.xml unparsable, using bullets", "error", err)
		return
	}
	c.numbering = newNumberingState(table)
}

func (c *conversion) loadNotes() {
	if data, ok := c.pkg.part("word/footnotes.xml"); ok {
		if notes, err := parseFootnotes(data); err != nil {
			c.log.Debug("footnotes.xml unparsable", "error", err)
		} else {
			c.footnotes = notes
		}
	}
	if data, ok := c.pkg.part("word/endnotes.xml"); ok {
		if notes, err := parseEndnotes(data); err != nil {
			c.log.Debug("endnotes.xml unparsable", "error", err)
		} else {
			c.endnotes = notes
		}
	}
}

func (c *conversion) loadComments() {
	data, ok := c.pkg.part("word/comments.xml")
	if !ok {
		return
	}
	comments, raw, err := parseComments(data)
	if err != nil {
		c.log.Debug("comments.xml unparsable", "error", err)
		return
	}
	c.comments = comments

	extData, ok := c.pkg.part("word/commentsExtended.xml")
	if !ok {
		return
	}
	ext, err := parseCommentsExtended(extData)
	if err != nil {
		c.log.Debug("commentsExtended.xml unparsable", "error", err)
		return
	}
	applyCommentExtensions(c.comments, raw, ext)
}
