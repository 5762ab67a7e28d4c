package converter

// blocks.go — the block-level model and its renderer.
//
// Every body element becomes one of a closed set of block kinds, so the
// rendering switch stays exhaustive. Blocks are immutable once built; the
// only state a render mutates is the numbering counters and reference
// sequence numbers owned by the conversion.

import "strings"

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockListItem
	blockTable
	blockPageBreak
	blockSectionBreak
	blockHTML
)

type block struct {
	kind      blockKind
	level     int // heading depth, 0 = Title
	numID     string
	ilvl      int
	fragments []inlineFragment
	table     *tableModel
	raw       string // pre-rendered content (altChunk)
}

// paragraphBlocks converts one paragraph into zero or more blocks: an
// optional PageBreak (w:pageBreakBefore), the content block, and an optional
// SectionBreak (paragraph-level w:sectPr). Empty non-list paragraphs emit no
// content block.
func (c *conversion) paragraphBlocks(p *paragraphXML) []block {
	frags := c.buildFragments(p)

	var out []block
	if p.props != nil && p.props.PageBreakBefore.isOn() {
		out = append(out, block{kind: blockPageBreak})
	}

	heading, headingLvl := false, 0
	isList := false
	numID := ""
	ilvl := 0
	if p.props != nil {
		if p.props.Style != nil {
			headingLvl, heading = c.styles.headingLevel(p.props.Style.Val)
		}
		if !heading && p.props.NumPr != nil {
			isList = true
			if p.props.NumPr.NumID != nil {
				numID = p.props.NumPr.NumID.Val
			}
			if p.props.NumPr.ILvl != nil {
				ilvl = p.props.NumPr.ILvl.Val
			}
		}
	}

	switch {
	case heading && len(frags) > 0:
		out = append(out, block{kind: blockHeading, level: headingLvl, fragments: frags})
	case isList:
		out = append(out, block{kind: blockListItem, numID: numID, ilvl: ilvl, fragments: frags})
	case len(frags) > 0:
		out = append(out, block{kind: blockParagraph, fragments: frags})
	}

	if p.props != nil && p.props.SectPr != nil {
		out = append(out, block{kind: blockSectionBreak})
	}
	return out
}

// buildFragments flattens a paragraph's ordered children into fragments,
// resolving hyperlink targets through the current part's relationships.
func (c *conversion) buildFragments(p *paragraphXML) []inlineFragment {
	var frags []inlineFragment
	for _, child := range p.children {
		switch v := child.(type) {
		case *runXML:
			frags = append(frags, fragmentsFromRun(v, "")...)
		case *hyperlinkXML:
			target := c.hyperlinkTarget(v)
			for i := range v.Runs {
				frags = append(frags, fragmentsFromRun(&v.Runs[i], target)...)
			}
		}
	}
	return frags
}

// hyperlinkTarget resolves r:id through the part rels, falls back to a
// document-internal anchor, and degrades to "#" when neither resolves.
func (c *conversion) hyperlinkTarget(h *hyperlinkXML) string {
	if h.ID != "" {
		if rel, ok := c.curRels[h.ID]; ok {
			return rel.Target
		}
		c.log.Debug("hyperlink relationship not found", "id", h.ID, "part", c.curPart)
		return "#"
	}
	if h.Anchor != "" {
		return "#" + h.Anchor
	}
	return "#"
}

func (c *conversion) renderBlocks(blocks []block) string {
	var parts []string
	for _, b := range blocks {
		if s := c.renderBlock(b); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (c *conversion) renderBlock(b block) string {
	switch b.kind {
	case blockHeading:
		inline := c.renderFragments(b.fragments)
		if c.format == FormatText {
			return inline
		}
		level := b.level
		if level < 1 {
			level = 1 // Title renders as the top heading
		}
		return strings.Repeat("#", level) + " " + inline
	case blockListItem:
		marker := c.numbering.marker(b.numID, b.ilvl)
		return strings.Repeat("  ", b.ilvl) + marker + " " + c.renderFragments(b.fragments)
	case blockTable:
		return c.renderTable(b.table)
	case blockPageBreak:
		if c.format == FormatMarkdown {
			return "<!-- Page Break -->"
		}
		return "" // plain text gets the blank line from block joining
	case blockSectionBreak:
		if c.format == FormatMarkdown {
			return "<!-- Section Break -->"
		}
		return ""
	case blockHTML:
		return b.raw
	}

	inline := c.renderFragments(b.fragments)
	if c.format == FormatMarkdown {
		inline = escapeBlockStart(inline)
	}
	return inline
}
