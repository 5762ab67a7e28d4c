package converter

import (
	"errors"
	"strings"
	"testing"
)

func TestOpenPackage_NotAZip(t *testing.T) {
	_, err := openPackage([]byte("plain text"))
	assertErr(t, err)
	if !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("error %v is not ErrInvalidPackage", err)
	}
}

func TestOpenPackage_EmptyZip(t *testing.T) {
	// a valid zip end-of-central-directory record with zero entries
	empty := append([]byte("PK\x05\x06"), make([]byte, 18)...)
	_, err := openPackage(empty)
	assertErr(t, err)
	if !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("error %v is not ErrInvalidPackage", err)
	}
}

func TestRels_MissingRelsPart(t *testing.T) {
	pkg, err := openPackage(makeDocx(t, `<w:p/>`))
	assertNoErr(t, err)

	rels, err := pkg.rels(mainDocumentPart)
	assertNoErr(t, err)
	if len(rels) != 0 {
		t.Errorf("expected empty rels, got %v", rels)
	}
}

func TestRels_Parsed(t *testing.T) {
	parts := map[string]string{
		"word/document.xml": wrapBody(`<w:p/>`),
		"word/_rels/document.xml.rels": docRels(
			`<Relationship Id="rId1" Type="http://example.com/image" Target="media/a.png"/>` +
				`<Relationship Id="rId2" Type="http://example.com/hyperlink" Target="https://example.com" TargetMode="External"/>`),
	}
	pkg, err := openPackage(makeDocxArchive(t, parts))
	assertNoErr(t, err)

	rels, err := pkg.rels(mainDocumentPart)
	assertNoErr(t, err)
	if len(rels) != 2 {
		t.Fatalf("got %d rels", len(rels))
	}
	if rels["rId1"].Target != "media/a.png" {
		t.Errorf("rId1 target: %q", rels["rId1"].Target)
	}
	if rels["rId2"].TargetMode != "External" {
		t.Errorf("rId2 mode: %q", rels["rId2"].TargetMode)
	}
}

func TestMatchSorted_NumericOrder(t *testing.T) {
	parts := map[string]string{
		"word/document.xml": wrapBody(`<w:p/>`),
		"word/header10.xml": wrapHdr("h10"),
		"word/header2.xml":  wrapHdr("h2"),
		"word/header1.xml":  wrapHdr("h1"),
	}
	pkg, err := openPackage(makeDocxArchive(t, parts))
	assertNoErr(t, err)

	got := pkg.matchSorted(headerPartRE)
	want := []string{"word/header1.xml", "word/header2.xml", "word/header10.xml"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePartPath(t *testing.T) {
	cases := []struct {
		owner, target, want string
	}{
		{"word/document.xml", "media/image1.png", "word/media/image1.png"},
		{"word/charts/chart1.xml", "../embeddings/data.xlsx", "word/embeddings/data.xlsx"},
		{"word/document.xml", "/word/media/abs.png", "word/media/abs.png"},
	}
	for _, tc := range cases {
		if got := resolvePartPath(tc.owner, tc.target); got != tc.want {
			t.Errorf("resolvePartPath(%q, %q) = %q, want %q", tc.owner, tc.target, got, tc.want)
		}
	}
}

// wrapHdr builds a minimal header part.
func wrapHdr(text string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:hdr ` + ooxmlNS + `><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:hdr>`
}

// wrapFtr builds a minimal footer part.
func wrapFtr(text string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:ftr ` + ooxmlNS + `><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:ftr>`
}
