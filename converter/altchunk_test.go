package converter

import "testing"

func altChunkDocx(t *testing.T) []byte {
	t.Helper()
	return makeDocxArchive(t, map[string]string{
		"word/document.xml": wrapBody(
			`<w:p><w:r><w:t>before</w:t></w:r></w:p>` +
				`<w:altChunk r:id="rId7"/>` +
				`<w:p><w:r><w:t>after</w:t></w:r></w:p>`),
		"word/_rels/document.xml.rels": docRels(
			`<Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/aFChunk" Target="chunk1.html"/>`),
		"word/chunk1.html": `<html><body><p>embedded <b>bold</b> text</p></body></html>`,
	})
}

func TestAltChunk_Markdown(t *testing.T) {
	out := convert(t, altChunkDocx(t), FormatMarkdown)

	assertContains(t, out, "before")
	assertContains(t, out, "**bold**")
	assertContains(t, out, "after")
}

func TestAltChunk_PlainText(t *testing.T) {
	out := convert(t, altChunkDocx(t), FormatText)

	assertContains(t, out, "embedded bold text")
	assertNotContains(t, out, "**")
	assertNotContains(t, out, "<b>")
}

func TestAltChunk_MissingPartIgnored(t *testing.T) {
	data := makeDocx(t, `<w:p><w:r><w:t>solo</w:t></w:r></w:p><w:altChunk r:id="rId9"/>`)
	out := convert(t, data, FormatMarkdown)
	if out != "solo" {
		t.Errorf("got %q", out)
	}
}
