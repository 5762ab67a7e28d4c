package converter

// ooxml.go — typed model for the WordprocessingML parts we consume.
//
// Elements are matched by local name, so the w:/r:/wp:/a:/pic:/c: namespace
// prefixes need no registration. Paragraphs and runs use custom unmarshalling
// because child order matters: runs and hyperlinks interleave in a paragraph,
// and text/tab/break/reference pieces interleave in a run.

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// blockItem is a body-level element: paragraph, table, or altChunk.
type blockItem interface{ isBlockItem() }

func (*paragraphXML) isBlockItem() {}
func (*tableXML) isBlockItem()     {}
func (*altChunkXML) isBlockItem()  {}

// parseBlockItems extracts the ordered body-level elements of a part.
// It works for word/document.xml (children under w:body) as well as header
// and footer parts (children directly under w:hdr / w:ftr).
func parseBlockItems(data []byte) ([]blockItem, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var items []blockItem
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse part xml: %w", err)
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch t.Name.Local {
		case "p":
			var p paragraphXML
			if err := dec.DecodeElement(&p, &t); err != nil {
				return nil, fmt.Errorf("parse paragraph: %w", err)
			}
			items = append(items, &p)
		case "tbl":
			var tb tableXML
			if err := dec.DecodeElement(&tb, &t); err != nil {
				return nil, fmt.Errorf("parse table: %w", err)
			}
			items = append(items, &tb)
		case "altChunk":
			items = append(items, &altChunkXML{ID: attrVal(t, "id")})
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parse altChunk: %w", err)
			}
		}
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Shared attribute carriers
// ---------------------------------------------------------------------------

type valAttr struct {
	Val string `xml:"val,attr"`
}

type intAttr struct {
	Val int `xml:"val,attr"`
}

// boolProp models the OOXML on/off toggle: present means on unless the val
// attribute says otherwise.
type boolProp struct {
	Val string `xml:"val,attr"`
}

func (b *boolProp) isOn() bool {
	return b != nil && b.Val != "0" && b.Val != "false"
}

// presence records that an element existed, content ignored.
type presence struct{}

// ---------------------------------------------------------------------------
// Paragraphs
// ---------------------------------------------------------------------------

type paraChild interface{ isParaChild() }

func (*runXML) isParaChild()       {}
func (*hyperlinkXML) isParaChild() {}

type paragraphXML struct {
	props    *paraProps
	children []paraChild
}

type paraProps struct {
	Style           *valAttr  `xml:"pStyle"`
	NumPr           *numPrXML `xml:"numPr"`
	Justification   *valAttr  `xml:"jc"`
	OutlineLvl      *intAttr  `xml:"outlineLvl"`
	PageBreakBefore *boolProp `xml:"pageBreakBefore"`
	SectPr          *presence `xml:"sectPr"`
}

type numPrXML struct {
	ILvl  *intAttr `xml:"ilvl"`
	NumID *valAttr `xml:"numId"`
}

type insXML struct {
	Runs []runXML `xml:"r"`
}

// UnmarshalXML keeps runs and hyperlinks in document order. Tracked
// insertions (w:ins) contribute their runs; tracked deletions (w:del) are
// dropped, giving the accepted-revisions view.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var pr paraProps
				if err := d.DecodeElement(&pr, &t); err != nil {
					return err
				}
				p.props = &pr
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.children = append(p.children, &r)
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.children = append(p.children, &h)
			case "ins":
				var ins insXML
				if err := d.DecodeElement(&ins, &t); err != nil {
					return err
				}
				for i := range ins.Runs {
					p.children = append(p.children, &ins.Runs[i])
				}
			case "del":
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type hyperlinkXML struct {
	ID     string   `xml:"id,attr"`
	Anchor string   `xml:"anchor,attr"`
	Runs   []runXML `xml:"r"`
}

// ---------------------------------------------------------------------------
// Runs
// ---------------------------------------------------------------------------

type pieceKind int

const (
	pieceText pieceKind = iota
	pieceTab
	pieceBreak
	pieceFootnoteRef
	pieceEndnoteRef
	pieceCommentRef
	pieceDrawing
)

type runPiece struct {
	kind pieceKind
	text string
	id   string // reference ID for note/comment pieces
	draw *drawingXML
}

type runXML struct {
	props  *runProps
	pieces []runPiece
}

type runProps struct {
	Bold    *boolProp `xml:"b"`
	Italic  *boolProp `xml:"i"`
	Strike  *boolProp `xml:"strike"`
	DStrike *boolProp `xml:"dstrike"`
}

func (r *runXML) bold() bool   { return r.props != nil && r.props.Bold.isOn() }
func (r *runXML) italic() bool { return r.props != nil && r.props.Italic.isOn() }
func (r *runXML) strike() bool {
	return r.props != nil && (r.props.Strike.isOn() || r.props.DStrike.isOn())
}

// UnmarshalXML keeps run content pieces in document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				var pr runProps
				if err := d.DecodeElement(&pr, &t); err != nil {
					return err
				}
				r.props = &pr
			case "t":
				var text string
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.pieces = append(r.pieces, runPiece{kind: pieceText, text: text})
			case "tab":
				r.pieces = append(r.pieces, runPiece{kind: pieceTab})
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				r.pieces = append(r.pieces, runPiece{kind: pieceBreak})
				if err := d.Skip(); err != nil {
					return err
				}
			case "footnoteReference":
				r.pieces = append(r.pieces, runPiece{kind: pieceFootnoteRef, id: attrVal(t, "id")})
				if err := d.Skip(); err != nil {
					return err
				}
			case "endnoteReference":
				r.pieces = append(r.pieces, runPiece{kind: pieceEndnoteRef, id: attrVal(t, "id")})
				if err := d.Skip(); err != nil {
					return err
				}
			case "commentReference":
				r.pieces = append(r.pieces, runPiece{kind: pieceCommentRef, id: attrVal(t, "id")})
				if err := d.Skip(); err != nil {
					return err
				}
			case "drawing":
				var dr drawingXML
				if err := d.DecodeElement(&dr, &t); err != nil {
					return err
				}
				r.pieces = append(r.pieces, runPiece{kind: pieceDrawing, draw: &dr})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// ---------------------------------------------------------------------------
// Drawings (images and chart references)
// ---------------------------------------------------------------------------

type drawingXML struct {
	Inline *drawingContent `xml:"inline"`
	Anchor *drawingContent `xml:"anchor"`
}

func (d *drawingXML) content() *drawingContent {
	if d.Inline != nil {
		return d.Inline
	}
	return d.Anchor
}

type drawingContent struct {
	DocPr   docPrXML   `xml:"docPr"`
	Graphic graphicXML `xml:"graphic"`
}

type docPrXML struct {
	Descr string `xml:"descr,attr"`
}

type graphicXML struct {
	Data graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	Pic   *picXML      `xml:"pic"`
	Chart *chartRefXML `xml:"chart"`
}

type picXML struct {
	BlipFill blipFillXML `xml:"blipFill"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"`
	Link  string `xml:"link,attr"`
}

func (b blipXML) relID() string {
	if b.Embed != "" {
		return b.Embed
	}
	return b.Link
}

type chartRefXML struct {
	ID string `xml:"id,attr"`
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

type tableXML struct {
	Grid tblGridXML    `xml:"tblGrid"`
	Rows []tableRowXML `xml:"tr"`
}

type tblGridXML struct {
	Cols []presence `xml:"gridCol"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Props      *cellPropsXML  `xml:"tcPr"`
	Paragraphs []paragraphXML `xml:"p"`
}

type cellPropsXML struct {
	GridSpan *intAttr   `xml:"gridSpan"`
	VMerge   *vMergeXML `xml:"vMerge"`
	Jc       *valAttr   `xml:"jc"`
}

type vMergeXML struct {
	Val string `xml:"val,attr"`
}

// continuation is a vMerge element without val="restart".
func (v *vMergeXML) continuation() bool {
	return v != nil && v.Val != "restart"
}

// ---------------------------------------------------------------------------
// altChunk
// ---------------------------------------------------------------------------

type altChunkXML struct {
	ID string
}
