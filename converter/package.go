package converter

// package.go — DOCX ZIP container access.
//
// A DOCX file is a ZIP archive of OOXML parts. docxPackage reads the whole
// archive into memory once, so no handles outlive the conversion, and exposes
// parts by name plus the .rels relationship tables that tie parts together.

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const mainDocumentPart = "word/document.xml"

var (
	headerPartRE = regexp.MustCompile(`^word/header(\d+)\.xml$`)
	footerPartRE = regexp.MustCompile(`^word/footer(\d+)\.xml$`)
)

// relationship is one entry of an OOXML .rels part.
type relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

type docxPackage struct {
	parts map[string][]byte
	names []string // archive order
}

// openPackage reads a DOCX archive from raw bytes. It fails with
// ErrInvalidPackage when the bytes are not a ZIP or the archive has no main
// document part.
func openPackage(data []byte) (*docxPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx package: %w (%v)", ErrInvalidPackage, err)
	}

	pkg := &docxPackage{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			continue // skip corrupt entry, keep the rest of the archive
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			continue
		}
		pkg.parts[f.Name] = content
		pkg.names = append(pkg.names, f.Name)
	}

	if _, ok := pkg.parts[mainDocumentPart]; !ok {
		return nil, fmt.Errorf("missing %s: %w", mainDocumentPart, ErrInvalidPackage)
	}
	return pkg, nil
}

func (p *docxPackage) part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// rels returns the relationship table of the given part, keyed by ID.
// A part without a .rels sibling yields an empty map and no error.
func (p *docxPackage) rels(partName string) (map[string]relationship, error) {
	relsName := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
	data, ok := p.parts[relsName]
	if !ok {
		return map[string]relationship{}, nil
	}
	return parseRels(bytes.NewReader(data))
}

// matchSorted returns part names matching re, sorted numerically by the
// first captured digit group (header2.xml before header10.xml).
func (p *docxPackage) matchSorted(re *regexp.Regexp) []string {
	type entry struct {
		num  int
		name string
	}
	var entries []entry
	for _, name := range p.names {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		entries = append(entries, entry{n, name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].num < entries[j].num })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// parseRels parses an OOXML .rels part into a relationship table.
func parseRels(r io.Reader) (map[string]relationship, error) {
	dec := xml.NewDecoder(r)
	m := make(map[string]relationship)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse rels xml: %w", err)
		}
		if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "Relationship" {
			id := attrVal(t, "Id")
			target := attrVal(t, "Target")
			if id == "" || target == "" {
				continue
			}
			m[id] = relationship{
				ID:         id,
				Type:       attrVal(t, "Type"),
				Target:     target,
				TargetMode: attrVal(t, "TargetMode"),
			}
		}
	}
	return m, nil
}

// resolvePartPath resolves a relationship Target to an in-archive part path.
// Targets are relative to the owning part's directory; a leading slash means
// package-absolute. ZIP paths always use forward slashes.
func resolvePartPath(ownerPart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(ownerPart), target))
}

func attrVal(t xml.StartElement, localName string) string {
	for _, a := range t.Attr {
		if a.Name.Local == localName {
			return a.Value
		}
	}
	return ""
}
