package document

import (
	"context"
	"fmt"

	"github.com/a3tai/mcp-fer-extract/internal/extract"
	"github.com/ledongthuc/pdf"
)

// decodePDF extracts per-page plain text with ledongthuc/pdf and rebuilds
// tables from the positioned glyphs of each page.
func (r *Reader) decodePDF(ctx context.Context, path string) (content *Content, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			content = nil
			err = &DecodeError{Format: FormatPDF, Op: "open", Err: fmt.Errorf("malformed PDF: %v", rec)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &DecodeError{
			Format: FormatPDF,
			Op:     "open",
			Err:    fmt.Errorf("failed to open PDF: %w", err),
		}
	}
	defer f.Close()

	numPages := reader.NumPage()
	content = &Content{
		Format:    FormatPDF,
		PageCount: numPages,
	}
	content.Pages = make([]string, 0, numPages)
	content.Tables = make([][]extract.Table, 0, numPages)

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			content.Pages = append(content.Pages, "")
			content.Tables = append(content.Tables, nil)
			continue
		}

		text, tables, images := r.readPage(page, pageNum)
		content.Pages = append(content.Pages, text)
		content.Tables = append(content.Tables, tables)
		content.ImageCount += images
	}

	return content, nil
}

// readPage decodes one page. A panic or error in any step leaves that
// step's output empty and is logged at debug.
func (r *Reader) readPage(page pdf.Page, pageNum int) (text string, tables []extract.Table, images int) {
	r.guard(pageNum, "text", func() {
		t, err := page.GetPlainText(nil)
		if err != nil {
			r.log.Debug().Err(err).Int("page", pageNum).Msg("plain text extraction failed")
			return
		}
		text = t
	})

	r.guard(pageNum, "tables", func() {
		tables = buildTables(glyphsOf(page.Content().Text))
	})

	r.guard(pageNum, "images", func() {
		images = countImages(page)
	})

	return text, tables, images
}

func (r *Reader) guard(pageNum int, op string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Debug().
				Int("page", pageNum).
				Str("op", op).
				Interface("panic", rec).
				Msg("recovered from malformed page stream")
		}
	}()
	fn()
}

func glyphsOf(texts []pdf.Text) []glyph {
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		glyphs = append(glyphs, glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: t.S})
	}
	return glyphs
}

// countImages counts the image XObjects referenced by the page resources.
func countImages(page pdf.Page) int {
	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	count := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		if subtype := obj.Key("Subtype"); !subtype.IsNull() && subtype.Name() == "Image" {
			count++
		}
	}
	return count
}
