package document

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func relaxedConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// inspectPDF reads the PDF structure with pdfcpu and fills the page count,
// header version, encryption flag and image streams of info.
func (r *Reader) inspectPDF(path string, info *Info) error {
	file, err := os.Open(path)
	if err != nil {
		return &DecodeError{Format: FormatPDF, Op: "inspect", Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	ctx, err := api.ReadContext(file, relaxedConfiguration())
	if err != nil {
		return &DecodeError{Format: FormatPDF, Op: "inspect", Err: fmt.Errorf("failed to read PDF context: %w", err)}
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return &DecodeError{Format: FormatPDF, Op: "inspect", Err: fmt.Errorf("failed to ensure page count: %w", err)}
	}

	info.Pages = ctx.PageCount
	info.Encrypted = ctx.Encrypt != nil
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	if streams := countImageStreams(ctx); streams > info.Images {
		info.Images = streams
	}

	return r.Validate(path)
}

// Validate runs pdfcpu's relaxed structural validation on a PDF file.
func (r *Reader) Validate(path string) error {
	if err := api.ValidateFile(path, relaxedConfiguration()); err != nil {
		return &DecodeError{Format: FormatPDF, Op: "validate", Err: err}
	}
	return nil
}

// countImageStreams counts image XObjects, per page when the context has
// been optimized, otherwise by scanning the cross-reference table.
func countImageStreams(ctx *model.Context) int {
	if ctx.Optimize != nil {
		count := 0
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			count += len(pdfcpu.ImageObjNrs(ctx, pageNr))
		}
		if count > 0 {
			return count
		}
	}

	count := 0
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				count++
			}
		}
	}
	return count
}
