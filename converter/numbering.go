package converter

// numbering.go — list numbering definitions and running counters.
//
// numbering.xml maps a concrete numId through an abstractNum to per-level
// {numFmt, start}; a lvlOverride/startOverride on the concrete num wins.
// Ordinals are hierarchical paths: emitting level L first resets all counters
// strictly deeper than L, then renders the counters of levels 0..L joined
// with dots ("1.", "1.1.", "2."). Bullets never touch the counters.

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const bulletMarker = "-"

type numKey struct {
	numID string
	ilvl  int
}

type levelDef struct {
	format string
	start  int
}

type numberingTable struct {
	levels map[numKey]levelDef
}

func newNumberingTable() *numberingTable {
	return &numberingTable{levels: map[numKey]levelDef{}}
}

func (t *numberingTable) level(numID string, ilvl int) (levelDef, bool) {
	def, ok := t.levels[numKey{numID, ilvl}]
	return def, ok
}

type numberingXML struct {
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

type abstractNumXML struct {
	ID     string   `xml:"abstractNumId,attr"`
	Levels []lvlXML `xml:"lvl"`
}

type lvlXML struct {
	ILvl   int      `xml:"ilvl,attr"`
	NumFmt *valAttr `xml:"numFmt"`
	Start  *intAttr `xml:"start"`
}

type numXML struct {
	NumID         string           `xml:"numId,attr"`
	AbstractNumID *valAttr         `xml:"abstractNumId"`
	Overrides     []lvlOverrideXML `xml:"lvlOverride"`
}

type lvlOverrideXML struct {
	ILvl          int      `xml:"ilvl,attr"`
	StartOverride *intAttr `xml:"startOverride"`
}

func parseNumbering(data []byte) (*numberingTable, error) {
	var doc numberingXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse numbering xml: %w", err)
	}

	abstract := make(map[string]map[int]levelDef, len(doc.AbstractNums))
	for _, an := range doc.AbstractNums {
		levels := make(map[int]levelDef, len(an.Levels))
		for _, lvl := range an.Levels {
			def := levelDef{start: 1}
			if lvl.NumFmt != nil {
				def.format = lvl.NumFmt.Val
			}
			if lvl.Start != nil && lvl.Start.Val > 0 {
				def.start = lvl.Start.Val
			}
			levels[lvl.ILvl] = def
		}
		abstract[an.ID] = levels
	}

	table := newNumberingTable()
	for _, num := range doc.Nums {
		if num.NumID == "" || num.AbstractNumID == nil {
			continue
		}
		for ilvl, def := range abstract[num.AbstractNumID.Val] {
			table.levels[numKey{num.NumID, ilvl}] = def
		}
		for _, ov := range num.Overrides {
			if ov.StartOverride == nil {
				continue
			}
			key := numKey{num.NumID, ov.ILvl}
			def := table.levels[key]
			if def.start == 0 {
				def.start = 1
			}
			def.start = ov.StartOverride.Val
			table.levels[key] = def
		}
	}
	return table, nil
}

// numberingState carries the per-conversion running counters. It is owned by
// exactly one conversion, so independent conversions never share state.
type numberingState struct {
	table    *numberingTable
	counters map[numKey]int
}

func newNumberingState(table *numberingTable) *numberingState {
	if table == nil {
		table = newNumberingTable()
	}
	return &numberingState{table: table, counters: map[numKey]int{}}
}

// marker returns the list marker for one emitted item, advancing the counters
// for ordered kinds. Unknown numbering IDs and formats fall back to a bullet.
func (s *numberingState) marker(numID string, ilvl int) string {
	def, ok := s.table.level(numID, ilvl)
	if !ok || !orderedFormat(def.format) {
		return bulletMarker
	}

	for k := range s.counters {
		if k.numID == numID && k.ilvl > ilvl {
			delete(s.counters, k)
		}
	}

	key := numKey{numID, ilvl}
	if _, fired := s.counters[key]; !fired {
		s.counters[key] = def.start
	} else {
		s.counters[key]++
	}

	var parts []string
	for lvl := 0; lvl <= ilvl; lvl++ {
		n, fired := s.counters[numKey{numID, lvl}]
		if !fired {
			continue
		}
		d, _ := s.table.level(numID, lvl)
		parts = append(parts, formatOrdinal(n, d.format))
	}
	return strings.Join(parts, ".") + "."
}

func orderedFormat(format string) bool {
	switch format {
	case "decimal", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman":
		return true
	}
	return false
}

func formatOrdinal(n int, format string) string {
	switch format {
	case "lowerLetter":
		return alphaOrdinal(n)
	case "upperLetter":
		return strings.ToUpper(alphaOrdinal(n))
	case "lowerRoman":
		return strings.ToLower(romanOrdinal(n))
	case "upperRoman":
		return romanOrdinal(n)
	default:
		return strconv.Itoa(n)
	}
}

// alphaOrdinal renders 1..n as a, b, ..., z, aa, ab (bijective base 26).
func alphaOrdinal(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func romanOrdinal(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	pairs := []struct {
		v int
		s string
	}{
		{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
		{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
		{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
	}
	var sb strings.Builder
	for _, p := range pairs {
		for n >= p.v {
			sb.WriteString(p.s)
			n -= p.v
		}
	}
	return sb.String()
}
