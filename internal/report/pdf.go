package report

import (
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// PDFConverter turns rendered HTML into a paginated document.
type PDFConverter interface {
	Convert(html string) ([]byte, error)
}

type wkhtmlConverter struct{}

// NewPDFConverter returns the wkhtmltopdf-backed converter. binPath
// overrides the wkhtmltopdf binary lookup when non-empty.
func NewPDFConverter(binPath string) PDFConverter {
	if binPath != "" {
		wkhtmltopdf.SetPath(binPath)
	}
	return wkhtmlConverter{}
}

func (wkhtmlConverter) Convert(html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}
	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)
	if err := pdfg.Create(); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}
