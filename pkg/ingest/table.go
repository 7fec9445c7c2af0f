package ingest

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"

	"github.com/clinicops/rollup/pkg/errors"
)

// zipMagic marks a real .xlsx workbook (a ZIP container).
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// headerScanLimit bounds how deep into a file the header search looks. The
// payroll export carries an eight-row preamble and the HTML reports put a
// title block above the table, so the header is never at a fixed row.
const headerScanLimit = 25

// parseSource turns raw export bytes into rows of cells. The exports arrive
// in three shapes behind their file names: plain CSV, a real xlsx workbook,
// and an HTML table saved with an .xls extension.
func parseSource(source string, data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return readXLSX(source, data)
	}

	text, err := Decode(source, data)
	if err != nil {
		return nil, err
	}
	if looksLikeHTML(text) {
		return readHTML(source, text)
	}
	return readCSV(source, text)
}

// looksLikeHTML sniffs decoded text for an HTML document or table.
func looksLikeHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = strings.TrimSpace(head)
	return strings.HasPrefix(head, "<!doctype") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<table")
}

// readCSV parses CSV text into rows. The exports are not strict CSV: quotes
// appear mid-field, row lengths vary, and cells carry stray leading spaces.
func readCSV(source, text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", source, err)
	}
	return rows, nil
}

// readHTML extracts table rows from an HTML document. Each <tr> becomes a
// row; <td> and <th> cells become trimmed strings.
func readHTML(source, text string) ([][]string, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, errors.WrapParse("html", source, err)
	}

	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, rowCells(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return rows, nil
}

// rowCells collects the cell texts of a <tr> node.
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

// nodeText concatenates the text content under a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// readXLSX reads the first sheet of a real xlsx workbook.
func readXLSX(source string, data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapParse("xlsx", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WrapParse("xlsx", source, err)
	}
	return rows, nil
}

// column is one required or optional column of a source schema, identified
// by the header spellings the exports use for it.
type column struct {
	name    string
	aliases []string
}

// col builds a column from its canonical name and accepted header spellings.
func col(name string, aliases ...string) column {
	return column{name: name, aliases: append([]string{name}, aliases...)}
}

// headerIndex maps normalized header text to cell position for one row.
func headerIndex(row []string) map[string]int {
	index := make(map[string]int, len(row))
	for i, h := range row {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}

// normalizeHeader folds a header cell for matching: lowercased with
// whitespace runs collapsed, so "Provider Name" and "provider  name" agree.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// find looks a column up in a header index.
func (c column) find(index map[string]int) (int, bool) {
	for _, alias := range c.aliases {
		if i, ok := index[normalizeHeader(alias)]; ok {
			return i, true
		}
	}
	return 0, false
}

// findHeaderRow scans for the first row satisfying every required column and
// returns its position and header index. When no row qualifies, it reports
// which required column the file is missing.
func findHeaderRow(rows [][]string, required []column) (int, map[string]int, string) {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	seen := make(map[string]bool, len(required))
	for i := 0; i < limit; i++ {
		index := headerIndex(rows[i])
		ok := true
		for _, c := range required {
			if _, found := c.find(index); found {
				seen[c.name] = true
			} else {
				ok = false
			}
		}
		if ok {
			return i, index, ""
		}
	}

	for _, c := range required {
		if !seen[c.name] {
			return 0, nil, c.name
		}
	}
	return 0, nil, required[0].name
}

// cell returns the trimmed value at position i, tolerating short rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowEmpty reports whether every cell in the row is blank. Trailing blank
// lines and spacer rows are not data.
func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
