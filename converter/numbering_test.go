package converter

import "testing"

func wrapNumbering(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:numbering ` + ooxmlNS + `>` + inner + `</w:numbering>`
}

// decimalNumbering defines num 1 -> abstract 0 with decimal levels 0-2.
func decimalNumbering() string {
	return wrapNumbering(
		`<w:abstractNum w:abstractNumId="0">` +
			`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/></w:lvl>` +
			`<w:lvl w:ilvl="1"><w:start w:val="1"/><w:numFmt w:val="decimal"/></w:lvl>` +
			`<w:lvl w:ilvl="2"><w:start w:val="1"/><w:numFmt w:val="decimal"/></w:lvl>` +
			`</w:abstractNum>` +
			`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`)
}

func TestMarker_HierarchicalOrdinals(t *testing.T) {
	table, err := parseNumbering([]byte(decimalNumbering()))
	assertNoErr(t, err)
	s := newNumberingState(table)

	// 1. / 1.1. / 2. with the deeper counter resetting on the way back up.
	seq := []struct {
		ilvl int
		want string
	}{
		{0, "1."},
		{1, "1.1."},
		{1, "1.2."},
		{0, "2."},
		{1, "2.1."},
	}
	for i, step := range seq {
		got := s.marker("1", step.ilvl)
		if got != step.want {
			t.Errorf("step %d (ilvl %d): got %q, want %q", i, step.ilvl, got, step.want)
		}
	}
}

func TestMarker_UnknownNumIDFallsBackToBullet(t *testing.T) {
	s := newNumberingState(nil)
	if got := s.marker("42", 0); got != bulletMarker {
		t.Errorf("got %q, want %q", got, bulletMarker)
	}
}

func TestMarker_BulletFormat(t *testing.T) {
	table, err := parseNumbering([]byte(wrapNumbering(
		`<w:abstractNum w:abstractNumId="0">` +
			`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/></w:lvl>` +
			`</w:abstractNum>` +
			`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`)))
	assertNoErr(t, err)
	s := newNumberingState(table)

	if got := s.marker("1", 0); got != bulletMarker {
		t.Errorf("got %q, want %q", got, bulletMarker)
	}
}

func TestMarker_LettersAndRomans(t *testing.T) {
	table, err := parseNumbering([]byte(wrapNumbering(
		`<w:abstractNum w:abstractNumId="0">` +
			`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="lowerLetter"/></w:lvl>` +
			`</w:abstractNum>` +
			`<w:abstractNum w:abstractNumId="1">` +
			`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="upperRoman"/></w:lvl>` +
			`</w:abstractNum>` +
			`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
			`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>`)))
	assertNoErr(t, err)
	s := newNumberingState(table)

	for _, want := range []string{"a.", "b.", "c."} {
		if got := s.marker("1", 0); got != want {
			t.Errorf("letter: got %q, want %q", got, want)
		}
	}
	for _, want := range []string{"I.", "II.", "III.", "IV."} {
		if got := s.marker("2", 0); got != want {
			t.Errorf("roman: got %q, want %q", got, want)
		}
	}
}

func TestMarker_StartOverride(t *testing.T) {
	table, err := parseNumbering([]byte(wrapNumbering(
		`<w:abstractNum w:abstractNumId="0">` +
			`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/></w:lvl>` +
			`</w:abstractNum>` +
			`<w:num w:numId="1">` +
			`<w:abstractNumId w:val="0"/>` +
			`<w:lvlOverride w:ilvl="0"><w:startOverride w:val="5"/></w:lvlOverride>` +
			`</w:num>`)))
	assertNoErr(t, err)
	s := newNumberingState(table)

	if got := s.marker("1", 0); got != "5." {
		t.Errorf("got %q, want %q", got, "5.")
	}
	if got := s.marker("1", 0); got != "6." {
		t.Errorf("got %q, want %q", got, "6.")
	}
}

func TestAlphaOrdinal_Wraps(t *testing.T) {
	cases := map[int]string{1: "a", 26: "z", 27: "aa", 28: "ab", 52: "az", 53: "ba"}
	for n, want := range cases {
		if got := alphaOrdinal(n); got != want {
			t.Errorf("alphaOrdinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestListRendering(t *testing.T) {
	parts := map[string]string{
		"word/document.xml": wrapBody(
			`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
				`<w:r><w:t>First</w:t></w:r></w:p>` +
				`<w:p><w:pPr><w:numPr><w:ilvl w:val="1"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
				`<w:r><w:t>Nested</w:t></w:r></w:p>` +
				`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
				`<w:r><w:t>Second</w:t></w:r></w:p>`),
		"word/numbering.xml": decimalNumbering(),
	}
	out := convert(t, makeDocxArchive(t, parts), FormatMarkdown)
	assertContains(t, out, "1. First")
	assertContains(t, out, "  1.1. Nested")
	assertContains(t, out, "2. Second")
}

func TestListRendering_NoNumberingPart(t *testing.T) {
	body := `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
		`<w:r><w:t>Item</w:t></w:r></w:p>`
	out := convert(t, makeDocx(t, body), FormatMarkdown)
	assertContains(t, out, "- Item")
}
