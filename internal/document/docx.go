package document

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a3tai/mcp-fer-extract/internal/extract"
)

const docxBodyPart = "word/document.xml"

// decodeDOCX reads word/document.xml into a single page: body paragraphs
// first, then every non-empty table cell on its own line. Tables nested in
// a cell are flattened into that cell.
func (r *Reader) decodeDOCX(ctx context.Context, path string) (*Content, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &DecodeError{Format: FormatDOCX, Op: "open", Err: fmt.Errorf("open zip: %w", err)}
	}
	defer zr.Close()

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, &DecodeError{Format: FormatDOCX, Op: "open", Err: fmt.Errorf("%s not found in archive", docxBodyPart)}
	}

	rc, err := part.Open()
	if err != nil {
		return nil, &DecodeError{Format: FormatDOCX, Op: "open", Err: fmt.Errorf("open %s: %w", docxBodyPart, err)}
	}
	defer rc.Close()

	paragraphs, tables, err := parseDocumentXML(ctx, rc)
	if err != nil {
		return nil, &DecodeError{Format: FormatDOCX, Op: "parse", Err: err}
	}

	lines := paragraphs
	for _, table := range tables {
		for _, row := range table {
			for _, cell := range row {
				if cell != "" {
					lines = append(lines, cell)
				}
			}
		}
	}

	content := &Content{
		Format:    FormatDOCX,
		PageCount: 1,
	}
	content.Pages = []string{strings.Join(lines, "\n")}
	content.Tables = [][]extract.Table{tables}

	return content, nil
}

// docxState tracks the position of the token stream inside body
// paragraphs and (possibly nested) tables.
type docxState struct {
	paragraphs []string
	tables     []extract.Table

	depth     int
	inText    bool
	inTabs    bool
	paragraph strings.Builder
	cell      []string
}

func parseDocumentXML(ctx context.Context, rd io.Reader) ([]string, []extract.Table, error) {
	decoder := xml.NewDecoder(rd)
	st := &docxState{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			st.start(t.Name.Local)
		case xml.EndElement:
			st.end(t.Name.Local)
		case xml.CharData:
			if st.inText {
				st.paragraph.Write(t)
			}
		}
	}

	return st.paragraphs, st.tables, nil
}

func (st *docxState) start(name string) {
	switch name {
	case "tbl":
		st.depth++
		if st.depth == 1 {
			st.tables = append(st.tables, extract.Table{})
		}
	case "tr":
		if st.depth == 1 {
			last := len(st.tables) - 1
			st.tables[last] = append(st.tables[last], []string{})
		}
	case "tc":
		if st.depth == 1 {
			st.cell = st.cell[:0]
		}
	case "p":
		st.paragraph.Reset()
	case "t":
		st.inText = true
	case "tabs":
		st.inTabs = true
	case "tab":
		if !st.inTabs {
			st.paragraph.WriteByte('\t')
		}
	case "br", "cr":
		st.paragraph.WriteByte('\n')
	}
}

func (st *docxState) end(name string) {
	switch name {
	case "t":
		st.inText = false
	case "tabs":
		st.inTabs = false
	case "p":
		text := strings.TrimSpace(st.paragraph.String())
		st.paragraph.Reset()
		if st.depth == 0 {
			st.paragraphs = append(st.paragraphs, text)
			return
		}
		if text != "" {
			st.cell = append(st.cell, text)
		}
	case "tc":
		if st.depth == 1 && len(st.tables) > 0 {
			table := st.tables[len(st.tables)-1]
			if len(table) > 0 {
				row := len(table) - 1
				table[row] = append(table[row], strings.Join(st.cell, "\n"))
			}
			st.cell = st.cell[:0]
		}
	case "tbl":
		if st.depth > 0 {
			st.depth--
		}
	}
}
