package converter

// notes.go — footnotes, endnotes, comments, and the trailing sections.
//
// Reference numbers are assigned in first-encounter order during rendering,
// never from the raw XML IDs: raw IDs may be non-contiguous or reused.
// Footnotes, endnotes, and comments each have an independent sequence.

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// refSeq assigns monotonically increasing numbers to IDs as they are first
// encountered and remembers the assignment for repeats.
type refSeq struct {
	order    []string
	assigned map[string]int
}

func newRefSeq() *refSeq {
	return &refSeq{assigned: map[string]int{}}
}

func (s *refSeq) number(id string) int {
	if n, ok := s.assigned[id]; ok {
		return n
	}
	n := len(s.order) + 1
	s.order = append(s.order, id)
	s.assigned[id] = n
	return n
}

type refTracker struct {
	footnotes *refSeq
	endnotes  *refSeq
	comments  *refSeq
}

func newRefTracker() refTracker {
	return refTracker{footnotes: newRefSeq(), endnotes: newRefSeq(), comments: newRefSeq()}
}

// ---------------------------------------------------------------------------
// Footnotes / endnotes
// ---------------------------------------------------------------------------

type footnotesXML struct {
	Notes []noteXML `xml:"footnote"`
}

type endnotesXML struct {
	Notes []noteXML `xml:"endnote"`
}

type noteXML struct {
	ID         string         `xml:"id,attr"`
	Type       string         `xml:"type,attr"`
	Paragraphs []paragraphXML `xml:"p"`
}

func parseFootnotes(data []byte) (map[string]string, error) {
	var doc footnotesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse footnotes xml: %w", err)
	}
	return noteBodies(doc.Notes), nil
}

func parseEndnotes(data []byte) (map[string]string, error) {
	var doc endnotesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse endnotes xml: %w", err)
	}
	return noteBodies(doc.Notes), nil
}

func noteBodies(notes []noteXML) map[string]string {
	bodies := make(map[string]string, len(notes))
	for i := range notes {
		n := &notes[i]
		switch n.Type {
		case "separator", "continuationSeparator", "continuationNotice":
			continue
		}
		if n.ID == "" {
			continue
		}
		if text := paragraphsPlainText(n.Paragraphs); text != "" {
			bodies[n.ID] = text
		}
	}
	return bodies
}

// paragraphsPlainText flattens paragraphs to a single line of plain text.
func paragraphsPlainText(paragraphs []paragraphXML) string {
	var parts []string
	for i := range paragraphs {
		var sb strings.Builder
		for _, child := range paragraphs[i].children {
			switch v := child.(type) {
			case *runXML:
				writeRunPlainText(&sb, v)
			case *hyperlinkXML:
				for j := range v.Runs {
					writeRunPlainText(&sb, &v.Runs[j])
				}
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func writeRunPlainText(sb *strings.Builder, r *runXML) {
	for _, pc := range r.pieces {
		switch pc.kind {
		case pieceText:
			sb.WriteString(pc.text)
		case pieceTab, pieceBreak:
			sb.WriteByte(' ')
		}
	}
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

type commentInfo struct {
	author   string
	date     string
	text     string
	resolved bool
	reply    bool
}

type commentsXML struct {
	Comments []commentXML `xml:"comment"`
}

type commentXML struct {
	ID         string           `xml:"id,attr"`
	Author     string           `xml:"author,attr"`
	Date       string           `xml:"date,attr"`
	Paragraphs []commentParaXML `xml:"p"`
}

type commentParaXML struct {
	ParaID string          `xml:"paraId,attr"`
	Runs   []commentRunXML `xml:"r"`
}

type commentRunXML struct {
	Text []string `xml:"t"`
}

// parseComments returns the comment table plus the raw entries, which
// applyCommentExtensions needs for the paraId join.
func parseComments(data []byte) (map[string]commentInfo, []commentXML, error) {
	var doc commentsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse comments xml: %w", err)
	}
	comments := make(map[string]commentInfo, len(doc.Comments))
	for _, cm := range doc.Comments {
		if cm.ID == "" {
			continue
		}
		author := cm.Author
		if author == "" {
			author = "Unknown"
		}
		var sb strings.Builder
		for _, p := range cm.Paragraphs {
			for _, r := range p.Runs {
				for _, t := range r.Text {
					sb.WriteString(t)
				}
			}
			sb.WriteByte(' ')
		}
		comments[cm.ID] = commentInfo{
			author: author,
			date:   cm.Date,
			text:   strings.TrimSpace(sb.String()),
		}
	}
	return comments, doc.Comments, nil
}

// commentExtState carries the w15 extended flags keyed by paragraph ID.
type commentExtState struct {
	done      bool
	hasParent bool
}

type commentsExXML struct {
	Items []commentExXML `xml:"commentEx"`
}

type commentExXML struct {
	ParaID       string `xml:"paraId,attr"`
	Done         string `xml:"done,attr"`
	ParentParaID string `xml:"paraIdParent,attr"`
}

func parseCommentsExtended(data []byte) (map[string]commentExtState, error) {
	var doc commentsExXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse commentsExtended xml: %w", err)
	}
	out := make(map[string]commentExtState, len(doc.Items))
	for _, item := range doc.Items {
		if item.ParaID == "" {
			continue
		}
		out[item.ParaID] = commentExtState{
			done:      item.Done == "1" || item.Done == "true",
			hasParent: item.ParentParaID != "",
		}
	}
	return out, nil
}

// applyCommentExtensions joins extended flags onto comments via the last
// paragraph's w14:paraId, the anchor commentsExtended.xml uses.
func applyCommentExtensions(comments map[string]commentInfo, raw []commentXML, ext map[string]commentExtState) {
	for _, cm := range raw {
		if len(cm.Paragraphs) == 0 {
			continue
		}
		paraID := cm.Paragraphs[len(cm.Paragraphs)-1].ParaID
		st, ok := ext[paraID]
		if !ok {
			continue
		}
		info, ok := comments[cm.ID]
		if !ok {
			continue
		}
		info.resolved = st.done
		info.reply = st.hasParent
		comments[cm.ID] = info
	}
}

// ---------------------------------------------------------------------------
// Trailing sections
// ---------------------------------------------------------------------------

// referenceSections renders the Footnotes / Endnotes / Comments sections, in
// that order, each only when something referenced it.
func (c *conversion) referenceSections() []string {
	var sections []string

	if s := c.noteSection("Footnotes", c.refs.footnotes, c.footnotes, ""); s != "" {
		sections = append(sections, s)
	}
	if s := c.noteSection("Endnotes", c.refs.endnotes, c.endnotes, "e"); s != "" {
		sections = append(sections, s)
	}
	if s := c.commentSection(); s != "" {
		sections = append(sections, s)
	}
	return sections
}

func (c *conversion) noteSection(title string, seq *refSeq, bodies map[string]string, prefix string) string {
	var lines []string
	for i, id := range seq.order {
		body, ok := bodies[id]
		if !ok {
			continue // referenced but never defined; the marker stays in the text
		}
		if c.format == FormatMarkdown {
			lines = append(lines, fmt.Sprintf("[^%s%d]: %s", prefix, i+1, body))
		} else {
			lines = append(lines, fmt.Sprintf("[%s%d] %s", prefix, i+1, body))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	if c.format == FormatText {
		lines = append([]string{title + ":"}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (c *conversion) commentSection() string {
	seq := c.refs.comments
	if len(seq.order) == 0 {
		return ""
	}
	var lines []string
	if c.format == FormatText {
		lines = append(lines, "Comments:")
	}
	for i, id := range seq.order {
		info := c.comments[id]
		if info.author == "" {
			info.author = "Unknown"
		}
		var markers string
		if info.date != "" {
			markers += " (" + info.date + ")"
		}
		if info.resolved {
			markers += " (resolved)"
		}
		if info.reply {
			markers += " (reply)"
		}
		if c.format == FormatMarkdown {
			lines = append(lines, fmt.Sprintf("[^c%d]: **%s**%s: %s", i+1, info.author, markers, info.text))
		} else {
			lines = append(lines, fmt.Sprintf("[c%d] %s%s: %s", i+1, info.author, markers, info.text))
		}
	}
	return strings.Join(lines, "\n")
}
