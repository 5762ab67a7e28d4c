package converter

// inline.go — inline fragments and their rendering.
//
// A paragraph's content is flattened into an ordered fragment sequence at
// build time; formatting flags apply to exactly the fragment's own text span,
// so overlapping bold/italic from split runs realign at run boundaries.
// Literal Markdown-significant characters are escaped before any wrapper is
// applied, so document content cannot forge structural Markdown.

import (
	"fmt"
	"regexp"
	"strings"
)

type fragKind int

const (
	fragText fragKind = iota
	fragTab
	fragBreak
	fragFootnoteRef
	fragEndnoteRef
	fragCommentRef
	fragImage
	fragChart
)

type inlineFragment struct {
	kind   fragKind
	text   string
	bold   bool
	italic bool
	strike bool
	link   string // hyperlink target, already resolved
	refID  string // original note/comment ID
	relID  string // drawing relationship ID
	alt    string // image alt text from wp:docPr/@descr
}

// fragmentsFromRun flattens one run into fragments, preserving piece order.
// link, when non-empty, is the enclosing hyperlink's target.
func fragmentsFromRun(r *runXML, link string) []inlineFragment {
	var frags []inlineFragment
	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		frags = append(frags, inlineFragment{
			kind:   fragText,
			text:   text.String(),
			bold:   r.bold(),
			italic: r.italic(),
			strike: r.strike(),
			link:   link,
		})
		text.Reset()
	}

	for _, pc := range r.pieces {
		switch pc.kind {
		case pieceText:
			text.WriteString(pc.text)
		case pieceTab:
			flush()
			frags = append(frags, inlineFragment{kind: fragTab})
		case pieceBreak:
			flush()
			frags = append(frags, inlineFragment{kind: fragBreak})
		case pieceFootnoteRef:
			flush()
			frags = append(frags, inlineFragment{kind: fragFootnoteRef, refID: pc.id})
		case pieceEndnoteRef:
			flush()
			frags = append(frags, inlineFragment{kind: fragEndnoteRef, refID: pc.id})
		case pieceCommentRef:
			flush()
			frags = append(frags, inlineFragment{kind: fragCommentRef, refID: pc.id})
		case pieceDrawing:
			flush()
			if f, ok := drawingFragment(pc.draw); ok {
				frags = append(frags, f)
			}
		}
	}
	flush()
	return frags
}

func drawingFragment(d *drawingXML) (inlineFragment, bool) {
	content := d.content()
	if content == nil {
		return inlineFragment{}, false
	}
	if chart := content.Graphic.Data.Chart; chart != nil && chart.ID != "" {
		return inlineFragment{kind: fragChart, relID: chart.ID}, true
	}
	if pic := content.Graphic.Data.Pic; pic != nil {
		if id := pic.BlipFill.Blip.relID(); id != "" {
			return inlineFragment{kind: fragImage, relID: id, alt: content.DocPr.Descr}, true
		}
	}
	return inlineFragment{}, false
}

// renderFragments renders a fragment sequence in the conversion's format,
// trimming surrounding whitespace of the assembled line.
func (c *conversion) renderFragments(frags []inlineFragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(c.renderFragment(f))
	}
	return strings.TrimSpace(sb.String())
}

func (c *conversion) renderFragment(f inlineFragment) string {
	switch f.kind {
	case fragTab:
		if c.format == FormatMarkdown {
			return "    "
		}
		return "\t"
	case fragBreak:
		return "\n"
	case fragFootnoteRef:
		n := c.refs.footnotes.number(f.refID)
		if c.format == FormatMarkdown {
			return fmt.Sprintf("[^%d]", n)
		}
		return fmt.Sprintf("[%d]", n)
	case fragEndnoteRef:
		n := c.refs.endnotes.number(f.refID)
		if c.format == FormatMarkdown {
			return fmt.Sprintf("[^e%d]", n)
		}
		return fmt.Sprintf("[e%d]", n)
	case fragCommentRef:
		n := c.refs.comments.number(f.refID)
		if c.format == FormatMarkdown {
			return fmt.Sprintf("[^c%d]", n)
		}
		return fmt.Sprintf("[c%d]", n)
	case fragImage:
		return c.renderImageFragment(f)
	case fragChart:
		return c.renderChartFragment(f)
	}

	if c.format == FormatText {
		return f.text // plain mode drops styling and link markup
	}
	text := applyInlineFormat(escapeMarkdown(f.text), f.bold, f.italic, f.strike)
	if f.link != "" && strings.TrimSpace(text) != "" {
		return "[" + text + "](" + f.link + ")"
	}
	return text
}

// applyInlineFormat wraps text with Markdown emphasis markers in a fixed
// nesting order: strikethrough outermost, then bold, then italic.
func applyInlineFormat(text string, bold, italic, strike bool) string {
	if text == "" {
		return text
	}
	switch {
	case bold && italic:
		text = "***" + text + "***"
	case bold:
		text = "**" + text + "**"
	case italic:
		text = "*" + text + "*"
	}
	if strike {
		text = "~~" + text + "~~"
	}
	return text
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`~`, `\~`,
	`|`, `\|`,
)

// escapeMarkdown backslash-escapes Markdown-significant characters in literal
// text content.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var orderedListStartRE = regexp.MustCompile(`^(\d+)([.)]) `)

// escapeBlockStart neutralizes paragraph-leading characters that would turn a
// plain paragraph into structural Markdown (headings, quotes, list items).
func escapeBlockStart(s string) string {
	switch {
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, ">"):
		return `\` + s
	case strings.HasPrefix(s, "- "), strings.HasPrefix(s, "+ "):
		return `\` + s
	}
	if m := orderedListStartRE.FindStringSubmatch(s); m != nil {
		return m[1] + `\` + m[2] + " " + s[len(m[0]):]
	}
	return s
}
