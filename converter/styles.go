package converter

// styles.go — style table and heading resolution.
//
// Heading depth for a paragraph style comes from, in order: an explicit
// w:outlineLvl in the style, a recognizable style name or ID ("Heading 2",
// "heading2", "h2", "Title"), then the basedOn chain. The chain walk is
// depth-capped so a cyclic styles.xml resolves to "not a heading" instead of
// looping. When styles.xml is missing or unparsable the resolver still
// classifies built-in names from the raw style ID alone.

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxStyleDepth bounds the basedOn chain walk.
const maxStyleDepth = 10

type styleEntry struct {
	id         string
	name       string
	basedOn    string
	outline    int
	hasOutline bool
}

type styleResolver struct {
	styles map[string]styleEntry
}

type stylesXML struct {
	Styles []styleXML `xml:"style"`
}

type styleXML struct {
	ID      string       `xml:"styleId,attr"`
	Name    *valAttr     `xml:"name"`
	BasedOn *valAttr     `xml:"basedOn"`
	PPr     *stylePPrXML `xml:"pPr"`
}

type stylePPrXML struct {
	OutlineLvl *intAttr `xml:"outlineLvl"`
}

// newStyleResolver builds a resolver over a parsed style table. A nil table
// yields the built-in-names fallback resolver.
func newStyleResolver(styles map[string]styleEntry) *styleResolver {
	if styles == nil {
		styles = map[string]styleEntry{}
	}
	return &styleResolver{styles: styles}
}

func parseStyles(data []byte) (*styleResolver, error) {
	var doc stylesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse styles xml: %w", err)
	}
	styles := make(map[string]styleEntry, len(doc.Styles))
	for _, s := range doc.Styles {
		if s.ID == "" {
			continue
		}
		e := styleEntry{id: s.ID}
		if s.Name != nil {
			e.name = s.Name.Val
		}
		if s.BasedOn != nil {
			e.basedOn = s.BasedOn.Val
		}
		if s.PPr != nil && s.PPr.OutlineLvl != nil {
			e.outline = s.PPr.OutlineLvl.Val
			e.hasOutline = true
		}
		styles[s.ID] = e
	}
	return newStyleResolver(styles), nil
}

// headingLevel resolves a style reference to a heading depth.
// Level 0 means Title, 1-9 are heading depths; ok is false for non-headings.
func (r *styleResolver) headingLevel(styleID string) (int, bool) {
	if styleID == "" {
		return 0, false
	}
	id := styleID
	for depth := 0; depth < maxStyleDepth; depth++ {
		e, ok := r.styles[id]
		if !ok {
			break
		}
		if e.hasOutline && e.outline >= 0 && e.outline <= 8 {
			return e.outline + 1, true
		}
		if lvl, ok := headingFromName(e.name); ok {
			return lvl, true
		}
		if lvl, ok := headingFromName(e.id); ok {
			return lvl, true
		}
		if e.basedOn == "" {
			return 0, false
		}
		id = e.basedOn
	}
	// Unknown style (or missing/cyclic styles.xml): classify from the raw ID.
	return headingFromName(styleID)
}

var headingNameRE = regexp.MustCompile(`^(?:heading ?|h)([1-9])$`)

func headingFromName(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "title" {
		return 0, true
	}
	if m := headingNameRE.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	return 0, false
}
