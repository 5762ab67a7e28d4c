package converter

import (
	"os"
	"path/filepath"
	"testing"
)

// tiny but valid PNG header bytes; content is never decoded
var pngBytes = []byte("\x89PNG\r\n\x1a\nfakepixels")

func imageDrawing(relID, descr string) string {
	return `<w:p><w:r><w:drawing><wp:inline><wp:docPr id="1" name="Picture 1" descr="` + descr + `"/>` +
		`<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="` + relID + `"/></pic:blipFill></pic:pic></a:graphicData></a:graphic>` +
		`</wp:inline></w:drawing></w:r></w:p>`
}

func imageDocx(t *testing.T, descr string) []byte {
	t.Helper()
	return makeDocxArchive(t, map[string]string{
		"word/document.xml": wrapBody(imageDrawing("rId4", descr)),
		"word/_rels/document.xml.rels": docRels(
			`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>`),
		"word/media/image1.png": string(pngBytes),
	})
}

func TestImage_ArchivePathWithoutImageDir(t *testing.T) {
	out := convert(t, imageDocx(t, "a diagram"), FormatMarkdown)
	if out != "![a diagram](word/media/image1.png)" {
		t.Errorf("got %q", out)
	}
}

func TestImage_AltFallsBackToFileName(t *testing.T) {
	out := convert(t, imageDocx(t, ""), FormatMarkdown)
	if out != "![image1.png](word/media/image1.png)" {
		t.Errorf("got %q", out)
	}
}

func TestImage_PlainText(t *testing.T) {
	out := convert(t, imageDocx(t, "a diagram"), FormatText)
	if out != "[Image: a diagram]" {
		t.Errorf("got %q", out)
	}
}

func TestImage_ExtractsToImageDir(t *testing.T) {
	dir := t.TempDir()
	res := convertOpts(t, imageDocx(t, "a diagram"), FormatMarkdown, Options{ImageDir: dir})

	want := filepath.Join(dir, "image1.png")
	if res.Output != "![a diagram]("+want+")" {
		t.Errorf("got %q", res.Output)
	}
	data, err := os.ReadFile(want)
	assertNoErr(t, err)
	if string(data) != string(pngBytes) {
		t.Error("extracted bytes differ from archive bytes")
	}
}

func TestImage_CollisionGetsSuffixedName(t *testing.T) {
	dir := t.TempDir()
	doc := imageDocx(t, "")
	convertOpts(t, doc, FormatMarkdown, Options{ImageDir: dir})
	res := convertOpts(t, doc, FormatMarkdown, Options{ImageDir: dir})

	assertContains(t, res.Output, filepath.Join(dir, "image1-1.png"))
	if _, err := os.Stat(filepath.Join(dir, "image1-1.png")); err != nil {
		t.Errorf("suffixed file not written: %v", err)
	}
}

func TestImage_LinkedExternalImage(t *testing.T) {
	// a:blip r:link with an External relationship references a URL; nothing
	// is extracted and no warning is raised
	data := makeDocxArchive(t, map[string]string{
		"word/document.xml": wrapBody(
			`<w:p><w:r><w:drawing><wp:inline><wp:docPr id="1" name="Picture 1"/>` +
				`<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:link="rId4"/></pic:blipFill></pic:pic></a:graphicData></a:graphic>` +
				`</wp:inline></w:drawing></w:r></w:p>`),
		"word/_rels/document.xml.rels": docRels(
			`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="https://example.com/logo.png" TargetMode="External"/>`),
	})

	res := convertOpts(t, data, FormatMarkdown, Options{ImageDir: t.TempDir()})
	if res.Output != "![logo.png](https://example.com/logo.png)" {
		t.Errorf("got %q", res.Output)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	out := convert(t, data, FormatText)
	if out != "[Image: logo.png]" {
		t.Errorf("plain: got %q", out)
	}
}

func TestImage_UnresolvedRelationship(t *testing.T) {
	data := makeDocx(t, imageDrawing("rId4", ""))
	res := convertOpts(t, data, FormatMarkdown, Options{})

	if res.Output != imageUnavailable {
		t.Errorf("got %q", res.Output)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the unresolved image")
	}
}

func TestImage_MissingMediaPart(t *testing.T) {
	data := makeDocxArchive(t, map[string]string{
		"word/document.xml": wrapBody(imageDrawing("rId4", "")),
		"word/_rels/document.xml.rels": docRels(
			`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/missing.png"/>`),
	})
	res := convertOpts(t, data, FormatMarkdown, Options{})

	if res.Output != imageUnavailable {
		t.Errorf("got %q", res.Output)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the missing media part")
	}
}

func TestNextName(t *testing.T) {
	e := newImageExtractor(filepath.Join(os.TempDir(), "does-not-exist-xyz"))
	if got := e.nextName("pic.png"); got != "pic.png" {
		t.Errorf("got %q", got)
	}
	e.used["pic.png"] = true
	if got := e.nextName("pic.png"); got != "pic-1.png" {
		t.Errorf("got %q", got)
	}
	e.used["pic-1.png"] = true
	if got := e.nextName("pic.png"); got != "pic-2.png" {
		t.Errorf("got %q", got)
	}
}
